package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "cashbook/internal/errors"
	"cashbook/internal/models"
	"cashbook/internal/pagination"
)

// roleService handles role-related business logic.
type roleService struct {
	db *gorm.DB
}

// NewRoleService creates a new RoleServicer.
func NewRoleService(db *gorm.DB) RoleServicer {
	return &roleService{db: db}
}

// CreateRole creates a new role with a unique name.
func (s *roleService) CreateRole(name string) (*models.Role, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "role name is required")
	}

	var count int64
	if err := s.db.Model(&models.Role{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateRole
	}

	role := &models.Role{Name: name}
	if err := s.db.Create(role).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return role, nil
}

// ListRoles returns all roles.
func (s *roleService) ListRoles(page pagination.PageRequest) (*pagination.PageResponse[models.Role], error) {
	page.Defaults()

	base := s.db.Model(&models.Role{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var roles []models.Role
	if err := base.Scopes(pagination.Paginate(page)).Order("name asc").Find(&roles).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(roles, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetRoleByID retrieves a role by ID.
func (s *roleService) GetRoleByID(id uint) (*models.Role, error) {
	var role models.Role
	if err := s.db.First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRoleNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &role, nil
}

// UpdateRole renames a role.
func (s *roleService) UpdateRole(id uint, name string) (*models.Role, error) {
	role, err := s.GetRoleByID(id)
	if err != nil {
		return nil, err
	}

	if name == "" || name == role.Name {
		return role, nil
	}

	var count int64
	if err := s.db.Model(&models.Role{}).Where("name = ? AND id <> ?", name, id).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateRole
	}

	if err := s.db.Model(role).Update("name", name).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return role, nil
}

// DeleteRole removes a role. Users referencing it keep a dangling role_id set
// to NULL by the foreign key.
func (s *roleService) DeleteRole(id uint) error {
	role, err := s.GetRoleByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(role).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
