package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"cashbook/internal/access"
	apperrors "cashbook/internal/errors"
	"cashbook/internal/models"
	"cashbook/internal/pagination"
)

// transactionService handles ledger entry business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// backdated reports whether date falls on a calendar day before now's day.
// Dates arrive parsed in UTC while now is in server time, so the comparison
// uses year/month/day components rather than instants.
func backdated(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return m1 < m2
	}
	return d1 < d2
}

// CreateTransaction records a ledger entry. Staff may only write into cash
// books of their assigned campuses and may not backdate entries; admins are
// exempt from the backdating rule.
func (s *transactionService) CreateTransaction(scope *access.Scope, input TransactionInput) (*models.Transaction, error) {
	if input.Type != models.TransactionTypeIn && input.Type != models.TransactionTypeOut {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if input.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}

	var book models.CashBook
	if err := s.db.First(&book, input.CashBookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCashBookNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !scope.CanAccessCampus(book.CampusID) {
		return nil, apperrors.ErrForbidden
	}

	now := time.Now()
	date := input.Date
	if date.IsZero() {
		date = startOfDay(now)
	}
	if !scope.IsAdmin() && backdated(date, now) {
		return nil, apperrors.ErrBackdatedTransaction
	}

	clock := input.Time
	if clock == "" {
		clock = now.Format("15:04:05")
	}

	txn := &models.Transaction{
		UserID:        scope.UserID,
		Type:          input.Type,
		Amount:        input.Amount,
		CashBookID:    input.CashBookID,
		CategoryID:    input.CategoryID,
		PaymentModeID: input.PaymentModeID,
		Date:          startOfDay(date),
		Time:          clock,
		Remarks:       input.Remarks,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		switch {
		case input.PartyID != nil:
			var party models.Party
			if err := tx.First(&party, *input.PartyID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrPartyNotFound
				}
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			txn.PartyID = &party.ID
			txn.PartyName = party.Name
			txn.PartyMobile = party.MobileNumber
		case input.PartyName != "":
			// Inline party: reuse an existing (name, mobile) pair or create one.
			var party models.Party
			err := tx.Where("name = ? AND mobile_number = ?", input.PartyName, input.PartyMobile).First(&party).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				party = models.Party{Name: input.PartyName, MobileNumber: input.PartyMobile}
				if err := tx.Create(&party).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
			} else if err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			txn.PartyID = &party.ID
			txn.PartyName = party.Name
			txn.PartyMobile = party.MobileNumber
		}

		if err := tx.Create(txn).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetTransactionByID(scope, txn.ID)
}

// applyFilter narrows a transaction query by the optional filter fields.
func applyFilter(db *gorm.DB, filter TransactionFilter) *gorm.DB {
	if filter.Type != nil {
		db = db.Where("transactions.type = ?", *filter.Type)
	}
	if filter.CategoryID != nil {
		db = db.Where("transactions.category_id = ?", *filter.CategoryID)
	}
	if filter.PaymentModeID != nil {
		db = db.Where("transactions.payment_mode_id = ?", *filter.PaymentModeID)
	}
	if filter.CashBookID != nil {
		db = db.Where("transactions.cash_book_id = ?", *filter.CashBookID)
	}
	if filter.UserID != nil {
		db = db.Where("transactions.user_id = ?", *filter.UserID)
	}
	if filter.CampusID != nil {
		db = db.Where(
			"transactions.cash_book_id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).
				Model(&models.CashBook{}).
				Select("id").
				Where("campus_id = ?", *filter.CampusID),
		)
	}
	if filter.Date != nil {
		db = db.Where("transactions.date = ?", startOfDay(*filter.Date))
	}
	if filter.FromDate != nil {
		db = db.Where("transactions.date >= ?", startOfDay(*filter.FromDate))
	}
	if filter.ToDate != nil {
		db = db.Where("transactions.date <= ?", startOfDay(*filter.ToDate))
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		db = db.Where("LOWER(transactions.remarks) LIKE ? OR LOWER(transactions.party_name) LIKE ?", like, like)
	}
	return db
}

// ListTransactions returns the visible entries matching the filter, newest
// first unless ascending order is requested.
func (s *transactionService) ListTransactions(scope *access.Scope, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := applyFilter(s.db.Model(&models.Transaction{}).Scopes(scope.Transactions()), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	order := "transactions.date desc, transactions.time desc, transactions.id desc"
	if filter.OrderAsc {
		order = "transactions.date asc, transactions.time asc, transactions.id asc"
	}

	var txns []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Preload("Category").
		Preload("PaymentMode").
		Preload("CashBook").
		Preload("CashBook.Campus").
		Preload("User").
		Order(order).
		Find(&txns).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(txns, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionByID retrieves a visible entry by ID.
func (s *transactionService) GetTransactionByID(scope *access.Scope, id uint) (*models.Transaction, error) {
	var txn models.Transaction
	if err := s.db.Scopes(scope.Transactions()).
		Preload("Category").
		Preload("PaymentMode").
		Preload("CashBook").
		Preload("CashBook.Campus").
		Preload("User").
		First(&txn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &txn, nil
}

// UpdateTransaction applies the provided field updates. The backdating rule
// and the cash book campus check apply the same as on create.
func (s *transactionService) UpdateTransaction(scope *access.Scope, id uint, input TransactionUpdate) (*models.Transaction, error) {
	txn, err := s.GetTransactionByID(scope, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.Type != nil {
		if *input.Type != models.TransactionTypeIn && *input.Type != models.TransactionTypeOut {
			return nil, apperrors.ErrInvalidTransactionType
		}
		updates["type"] = *input.Type
	}
	if input.Amount != nil {
		if *input.Amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
		}
		updates["amount"] = *input.Amount
	}
	if input.CashBookID != nil && *input.CashBookID != txn.CashBookID {
		var book models.CashBook
		if err := s.db.First(&book, *input.CashBookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCashBookNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if !scope.CanAccessCampus(book.CampusID) {
			return nil, apperrors.ErrForbidden
		}
		updates["cash_book_id"] = *input.CashBookID
	}
	if input.CategoryID != nil {
		updates["category_id"] = *input.CategoryID
	}
	if input.PaymentModeID != nil {
		updates["payment_mode_id"] = *input.PaymentModeID
	}
	if input.PartyID != nil {
		var party models.Party
		if err := s.db.First(&party, *input.PartyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrPartyNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		updates["party_id"] = party.ID
		updates["party_name"] = party.Name
		updates["party_mobile"] = party.MobileNumber
	}
	if input.Date != nil {
		if !scope.IsAdmin() && backdated(*input.Date, time.Now()) {
			return nil, apperrors.ErrBackdatedTransaction
		}
		updates["date"] = startOfDay(*input.Date)
	}
	if input.Time != nil {
		updates["time"] = *input.Time
	}
	if input.Remarks != nil {
		updates["remarks"] = *input.Remarks
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.Transaction{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return s.GetTransactionByID(scope, id)
}

// DeleteTransaction removes a visible entry.
func (s *transactionService) DeleteTransaction(scope *access.Scope, id uint) error {
	txn, err := s.GetTransactionByID(scope, id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(&models.Transaction{}, txn.ID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// DistinctParties lists the distinct (name, mobile) pairs seen in the
// caller's visible transactions, for client-side input assistance.
func (s *transactionService) DistinctParties(scope *access.Scope) ([]PartyOption, error) {
	var options []PartyOption
	if err := s.db.Model(&models.Transaction{}).
		Scopes(scope.Transactions()).
		Select("DISTINCT transactions.party_name AS party_name, transactions.party_mobile AS party_mobile").
		Where("transactions.party_name <> ''").
		Order("party_name asc").
		Scan(&options).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return options, nil
}
