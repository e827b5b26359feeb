package services

import (
	"time"

	"cashbook/internal/access"
	"cashbook/internal/models"
	"cashbook/internal/pagination"
	"cashbook/internal/report"
)

// UserInput holds the writable fields of a user account.
type UserInput struct {
	Name      string
	Mobile    string
	Email     string
	Password  string
	RoleID    *uint
	CampusIDs []uint
	IsActive  *bool
	IsStaff   bool
}

// UserUpdate holds optional updates to a user account. Nil fields are left unchanged.
type UserUpdate struct {
	Name      *string
	Mobile    *string
	Email     *string
	Password  *string
	RoleID    *uint
	CampusIDs []uint
	IsActive  *bool
	IsStaff   *bool
}

// UserServicer defines the contract for user and login business logic.
type UserServicer interface {
	AttemptLogin(mobile, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
	CreateUser(scope *access.Scope, input UserInput) (*models.User, error)
	ListUsers(scope *access.Scope, page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	GetUser(scope *access.Scope, id uint) (*models.User, error)
	UpdateUser(scope *access.Scope, id uint, input UserUpdate) (*models.User, error)
	DeleteUser(scope *access.Scope, id uint) error
}

// RoleServicer defines the contract for role business logic.
type RoleServicer interface {
	CreateRole(name string) (*models.Role, error)
	ListRoles(page pagination.PageRequest) (*pagination.PageResponse[models.Role], error)
	GetRoleByID(id uint) (*models.Role, error)
	UpdateRole(id uint, name string) (*models.Role, error)
	DeleteRole(id uint) error
}

// CampusInput holds the writable fields of a campus.
type CampusInput struct {
	Name          string
	Address       string
	ContactNumber string
	Email         string
	IsActive      *bool
}

// CampusServicer defines the contract for campus business logic.
type CampusServicer interface {
	CreateCampus(input CampusInput) (*models.Campus, error)
	ListCampuses(scope *access.Scope, page pagination.PageRequest) (*pagination.PageResponse[models.Campus], error)
	GetCampusByID(scope *access.Scope, id uint) (*models.Campus, error)
	UpdateCampus(id uint, input CampusInput) (*models.Campus, error)
	DeleteCampus(id uint) error
}

// CategoryServicer defines the contract for category business logic.
type CategoryServicer interface {
	CreateCategory(name string, isActive *bool) (*models.Category, error)
	ListCategories(page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(id uint) (*models.Category, error)
	UpdateCategory(id uint, name string, isActive *bool) (*models.Category, error)
	DeleteCategory(id uint) error
}

// PaymentModeServicer defines the contract for payment mode business logic.
type PaymentModeServicer interface {
	CreatePaymentMode(name string, isActive *bool) (*models.PaymentMode, error)
	ListPaymentModes(page pagination.PageRequest) (*pagination.PageResponse[models.PaymentMode], error)
	GetPaymentModeByID(id uint) (*models.PaymentMode, error)
	UpdatePaymentMode(id uint, name string, isActive *bool) (*models.PaymentMode, error)
	DeletePaymentMode(id uint) error
}

// PartyServicer defines the contract for party business logic.
type PartyServicer interface {
	CreateParty(name, mobileNumber string) (*models.Party, error)
	ListParties(page pagination.PageRequest, search string) (*pagination.PageResponse[models.Party], error)
	GetPartyByID(id uint) (*models.Party, error)
	UpdateParty(id uint, name, mobileNumber *string) (*models.Party, error)
	DeleteParty(id uint) error
}

// CashBookServicer defines the contract for cash book business logic.
type CashBookServicer interface {
	CreateCashBook(scope *access.Scope, name string, campusID uint, isActive *bool) (*models.CashBook, error)
	ListCashBooks(scope *access.Scope, page pagination.PageRequest) (*pagination.PageResponse[models.CashBook], error)
	GetCashBookByID(scope *access.Scope, id uint) (*models.CashBook, error)
	UpdateCashBook(scope *access.Scope, id uint, name *string, campusID *uint, isActive *bool) (*models.CashBook, error)
	DeleteCashBook(scope *access.Scope, id uint) error
}

// TransactionInput holds the writable fields of a new transaction.
type TransactionInput struct {
	Type          models.TransactionType
	Amount        int64
	CashBookID    uint
	CategoryID    *uint
	PaymentModeID *uint
	PartyID       *uint
	PartyName     string
	PartyMobile   string
	Date          time.Time
	Time          string
	Remarks       string
}

// TransactionUpdate holds optional updates to a transaction. Nil fields are left unchanged.
type TransactionUpdate struct {
	Type          *models.TransactionType
	Amount        *int64
	CashBookID    *uint
	CategoryID    *uint
	PaymentModeID *uint
	PartyID       *uint
	Date          *time.Time
	Time          *string
	Remarks       *string
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Type          *models.TransactionType
	CategoryID    *uint
	PaymentModeID *uint
	CashBookID    *uint
	CampusID      *uint
	UserID        *uint
	Date          *time.Time
	FromDate      *time.Time
	ToDate        *time.Time
	Search        string
	OrderAsc      bool
}

// PartyOption is a distinct (name, mobile) pair seen in visible transactions,
// used for input assistance on the client.
type PartyOption struct {
	PartyName   string `json:"party_name"`
	PartyMobile string `json:"party_mobile"`
}

// TransactionServicer defines the contract for transaction business logic.
type TransactionServicer interface {
	CreateTransaction(scope *access.Scope, input TransactionInput) (*models.Transaction, error)
	ListTransactions(scope *access.Scope, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(scope *access.Scope, id uint) (*models.Transaction, error)
	UpdateTransaction(scope *access.Scope, id uint, input TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(scope *access.Scope, id uint) error
	DistinctParties(scope *access.Scope) ([]PartyOption, error)
}

// OpeningBalanceServicer defines the contract for opening balance business logic.
type OpeningBalanceServicer interface {
	CreateOpeningBalance(scope *access.Scope, cashBookID uint, amount int64) (*models.OpeningBalance, error)
	ListOpeningBalances(scope *access.Scope, page pagination.PageRequest) (*pagination.PageResponse[models.OpeningBalance], error)
	GetOpeningBalanceByID(scope *access.Scope, id uint) (*models.OpeningBalance, error)
	UpdateOpeningBalance(scope *access.Scope, id uint, amount int64) (*models.OpeningBalance, error)
	DeleteOpeningBalance(scope *access.Scope, id uint) error
}

// ReportFilter carries the optional filters applied when generating a report.
type ReportFilter struct {
	CampusID       *uint
	CashBookID     *uint
	Type           models.TransactionType // empty means both directions
	CategoryIDs    []uint
	PaymentModeIDs []uint
	UserIDs        []uint
	Preset         string // today|yesterday|this_month|date|range; empty defaults to today
	Date           *time.Time
	From           *time.Time
	To             *time.Time
}

// ReportServicer defines the contract for report generation.
type ReportServicer interface {
	Generate(scope *access.Scope, filter ReportFilter) (*report.Data, error)
}
