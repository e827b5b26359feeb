package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"cashbook/internal/access"
	apperrors "cashbook/internal/errors"
	"cashbook/internal/models"
	"cashbook/internal/pagination"
)

// openingBalanceService handles opening balance business logic.
type openingBalanceService struct {
	db *gorm.DB
}

// NewOpeningBalanceService creates a new OpeningBalanceServicer.
func NewOpeningBalanceService(db *gorm.DB) OpeningBalanceServicer {
	return &openingBalanceService{db: db}
}

// CreateOpeningBalance records a baseline for a cash book. The date and the
// creating user are stamped automatically and never change afterwards.
func (s *openingBalanceService) CreateOpeningBalance(scope *access.Scope, cashBookID uint, amount int64) (*models.OpeningBalance, error) {
	var book models.CashBook
	if err := s.db.First(&book, cashBookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCashBookNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !scope.CanAccessCampus(book.CampusID) {
		return nil, apperrors.ErrForbidden
	}

	balance := &models.OpeningBalance{
		CashBookID: cashBookID,
		Amount:     amount,
		Date:       startOfDay(time.Now()),
		CreatedBy:  scope.UserID,
	}
	if err := s.db.Create(balance).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetOpeningBalanceByID(scope, balance.ID)
}

// ListOpeningBalances returns the visible opening balances, newest first.
func (s *openingBalanceService) ListOpeningBalances(scope *access.Scope, page pagination.PageRequest) (*pagination.PageResponse[models.OpeningBalance], error) {
	page.Defaults()

	base := s.db.Model(&models.OpeningBalance{}).Scopes(scope.OpeningBalances())

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var balances []models.OpeningBalance
	if err := base.Scopes(pagination.Paginate(page)).
		Preload("CashBook").
		Preload("CashBook.Campus").
		Preload("Creator").
		Order("opening_balances.date desc, opening_balances.id desc").
		Find(&balances).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(balances, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetOpeningBalanceByID retrieves a visible opening balance by ID.
func (s *openingBalanceService) GetOpeningBalanceByID(scope *access.Scope, id uint) (*models.OpeningBalance, error) {
	var balance models.OpeningBalance
	if err := s.db.Scopes(scope.OpeningBalances()).
		Preload("CashBook").
		Preload("CashBook.Campus").
		Preload("Creator").
		First(&balance, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOpeningBalanceNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &balance, nil
}

// UpdateOpeningBalance corrects the amount of an existing record. Date,
// cash book and creator are immutable.
func (s *openingBalanceService) UpdateOpeningBalance(scope *access.Scope, id uint, amount int64) (*models.OpeningBalance, error) {
	balance, err := s.GetOpeningBalanceByID(scope, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.OpeningBalance{}).Where("id = ?", id).Update("amount", amount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	balance.Amount = amount
	return balance, nil
}

// DeleteOpeningBalance removes a visible opening balance.
func (s *openingBalanceService) DeleteOpeningBalance(scope *access.Scope, id uint) error {
	balance, err := s.GetOpeningBalanceByID(scope, id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(&models.OpeningBalance{}, balance.ID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
