package services

import (
	"errors"

	"gorm.io/gorm"

	"cashbook/internal/access"
	apperrors "cashbook/internal/errors"
	"cashbook/internal/models"
	"cashbook/internal/pagination"
)

// campusService handles campus-related business logic.
type campusService struct {
	db *gorm.DB
}

// NewCampusService creates a new CampusServicer.
func NewCampusService(db *gorm.DB) CampusServicer {
	return &campusService{db: db}
}

// CreateCampus creates a new campus with a unique name.
func (s *campusService) CreateCampus(input CampusInput) (*models.Campus, error) {
	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "campus name is required")
	}

	var count int64
	if err := s.db.Model(&models.Campus{}).Where("name = ?", input.Name).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCampus
	}

	campus := &models.Campus{
		Name:          input.Name,
		Address:       input.Address,
		ContactNumber: input.ContactNumber,
		Email:         input.Email,
		IsActive:      true,
	}
	if input.IsActive != nil {
		campus.IsActive = *input.IsActive
	}

	if err := s.db.Create(campus).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return campus, nil
}

// ListCampuses returns the campuses visible to the caller, ordered by name.
func (s *campusService) ListCampuses(scope *access.Scope, page pagination.PageRequest) (*pagination.PageResponse[models.Campus], error) {
	page.Defaults()

	base := s.db.Model(&models.Campus{}).Scopes(scope.Campuses())

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var campuses []models.Campus
	if err := base.Scopes(pagination.Paginate(page)).Order("name asc").Find(&campuses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(campuses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCampusByID retrieves a campus within the caller's visible set.
func (s *campusService) GetCampusByID(scope *access.Scope, id uint) (*models.Campus, error) {
	var campus models.Campus
	if err := s.db.Scopes(scope.Campuses()).First(&campus, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCampusNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &campus, nil
}

// UpdateCampus applies the provided field updates.
func (s *campusService) UpdateCampus(id uint, input CampusInput) (*models.Campus, error) {
	var campus models.Campus
	if err := s.db.First(&campus, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCampusNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if input.Name != "" && input.Name != campus.Name {
		var count int64
		if err := s.db.Model(&models.Campus{}).Where("name = ? AND id <> ?", input.Name, id).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicateCampus
		}
		updates["name"] = input.Name
	}
	if input.Address != "" {
		updates["address"] = input.Address
	}
	if input.ContactNumber != "" {
		updates["contact_number"] = input.ContactNumber
	}
	if input.Email != "" {
		updates["email"] = input.Email
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&campus).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &campus, nil
}

// DeleteCampus removes a campus and its user assignments.
func (s *campusService) DeleteCampus(id uint) error {
	var campus models.Campus
	if err := s.db.First(&campus, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCampusNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM user_campuses WHERE campus_id = ?", id).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(&campus).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
