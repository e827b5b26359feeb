package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "cashbook/internal/errors"
	"cashbook/internal/models"
	"cashbook/internal/pagination"
)

// paymentModeService handles payment-mode-related business logic.
type paymentModeService struct {
	db *gorm.DB
}

// NewPaymentModeService creates a new PaymentModeServicer.
func NewPaymentModeService(db *gorm.DB) PaymentModeServicer {
	return &paymentModeService{db: db}
}

// CreatePaymentMode creates a new payment mode with a unique name.
func (s *paymentModeService) CreatePaymentMode(name string, isActive *bool) (*models.PaymentMode, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "payment mode name is required")
	}

	var count int64
	if err := s.db.Model(&models.PaymentMode{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicatePaymentMode
	}

	mode := &models.PaymentMode{Name: name, IsActive: true}
	if isActive != nil {
		mode.IsActive = *isActive
	}

	if err := s.db.Create(mode).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return mode, nil
}

// ListPaymentModes returns all payment modes ordered by name.
func (s *paymentModeService) ListPaymentModes(page pagination.PageRequest) (*pagination.PageResponse[models.PaymentMode], error) {
	page.Defaults()

	base := s.db.Model(&models.PaymentMode{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var modes []models.PaymentMode
	if err := base.Scopes(pagination.Paginate(page)).Order("name asc").Find(&modes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(modes, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetPaymentModeByID retrieves a payment mode by ID.
func (s *paymentModeService) GetPaymentModeByID(id uint) (*models.PaymentMode, error) {
	var mode models.PaymentMode
	if err := s.db.First(&mode, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPaymentModeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &mode, nil
}

// UpdatePaymentMode renames or toggles a payment mode.
func (s *paymentModeService) UpdatePaymentMode(id uint, name string, isActive *bool) (*models.PaymentMode, error) {
	mode, err := s.GetPaymentModeByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" && name != mode.Name {
		var count int64
		if err := s.db.Model(&models.PaymentMode{}).Where("name = ? AND id <> ?", name, id).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicatePaymentMode
		}
		updates["name"] = name
	}
	if isActive != nil {
		updates["is_active"] = *isActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(mode).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return mode, nil
}

// DeletePaymentMode removes a payment mode. Existing transactions keep their
// rows with the payment mode reference cleared.
func (s *paymentModeService) DeletePaymentMode(id uint) error {
	mode, err := s.GetPaymentModeByID(id)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Transaction{}).Where("payment_mode_id = ?", id).
			Update("payment_mode_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(mode).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
