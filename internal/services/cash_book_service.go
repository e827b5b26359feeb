package services

import (
	"errors"

	"gorm.io/gorm"

	"cashbook/internal/access"
	apperrors "cashbook/internal/errors"
	"cashbook/internal/models"
	"cashbook/internal/pagination"
)

// cashBookService handles cash book business logic.
type cashBookService struct {
	db *gorm.DB
}

// NewCashBookService creates a new CashBookServicer.
func NewCashBookService(db *gorm.DB) CashBookServicer {
	return &cashBookService{db: db}
}

// CreateCashBook creates a cash book under a campus the caller can write to.
func (s *cashBookService) CreateCashBook(scope *access.Scope, name string, campusID uint, isActive *bool) (*models.CashBook, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "cash book name is required")
	}
	if !scope.CanAccessCampus(campusID) {
		return nil, apperrors.ErrForbidden
	}

	var campus models.Campus
	if err := s.db.First(&campus, campusID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCampusNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var count int64
	if err := s.db.Model(&models.CashBook{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCashBook
	}

	book := &models.CashBook{Name: name, CampusID: campusID, IsActive: true}
	if isActive != nil {
		book.IsActive = *isActive
	}

	if err := s.db.Create(book).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	book.Campus = campus
	return book, nil
}

// ListCashBooks returns the cash books visible to the caller, ordered by name.
func (s *cashBookService) ListCashBooks(scope *access.Scope, page pagination.PageRequest) (*pagination.PageResponse[models.CashBook], error) {
	page.Defaults()

	base := s.db.Model(&models.CashBook{}).Scopes(scope.CashBooks())

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var books []models.CashBook
	if err := base.Scopes(pagination.Paginate(page)).
		Preload("Campus").
		Order("cash_books.name asc").
		Find(&books).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(books, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCashBookByID retrieves a cash book within the caller's visible set.
func (s *cashBookService) GetCashBookByID(scope *access.Scope, id uint) (*models.CashBook, error) {
	var book models.CashBook
	if err := s.db.Scopes(scope.CashBooks()).Preload("Campus").First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCashBookNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &book, nil
}

// UpdateCashBook applies the provided field updates. Moving a cash book to a
// different campus requires write access to the target campus as well.
func (s *cashBookService) UpdateCashBook(scope *access.Scope, id uint, name *string, campusID *uint, isActive *bool) (*models.CashBook, error) {
	book, err := s.GetCashBookByID(scope, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != nil && *name != "" && *name != book.Name {
		var count int64
		if err := s.db.Model(&models.CashBook{}).Where("name = ? AND id <> ?", *name, id).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicateCashBook
		}
		updates["name"] = *name
	}
	if campusID != nil && *campusID != book.CampusID {
		if !scope.CanAccessCampus(*campusID) {
			return nil, apperrors.ErrForbidden
		}
		var campus models.Campus
		if err := s.db.First(&campus, *campusID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCampusNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		updates["campus_id"] = *campusID
	}
	if isActive != nil {
		updates["is_active"] = *isActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(book).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return s.GetCashBookByID(scope, id)
}

// DeleteCashBook removes a cash book only when no transactions or opening
// balances reference it. The guard applies to admins too.
func (s *cashBookService) DeleteCashBook(scope *access.Scope, id uint) error {
	book, err := s.GetCashBookByID(scope, id)
	if err != nil {
		return err
	}

	var txCount int64
	if err := s.db.Model(&models.Transaction{}).Where("cash_book_id = ?", id).Count(&txCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var obCount int64
	if err := s.db.Model(&models.OpeningBalance{}).Where("cash_book_id = ?", id).Count(&obCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if txCount > 0 || obCount > 0 {
		return apperrors.ErrCashBookInUse
	}

	if err := s.db.Delete(book).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
