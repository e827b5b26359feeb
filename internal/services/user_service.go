package services

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cashbook/internal/access"
	apperrors "cashbook/internal/errors"
	"cashbook/internal/models"
	"cashbook/internal/pagination"
)

const (
	maxFailedLogins = 5
	lockoutDuration = 15 * time.Minute

	// defaultPassword is assigned when an admin creates a user without one;
	// the user is expected to change it on first login.
	defaultPassword = "123456"
)

// userService handles user-related business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// AttemptLogin verifies credentials against the stored bcrypt hash, enforcing
// the failed-attempt lockout. The mobile number is the login identity.
func (s *userService) AttemptLogin(mobile, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Role").Preload("Campuses").
		Where("mobile = ? AND is_active = ?", mobile, true).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if user.LockedUntil != nil && user.LockedUntil.After(time.Now()) {
		return nil, apperrors.ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		updates := map[string]interface{}{"failed_login_attempts": user.FailedLoginAttempts + 1}
		if user.FailedLoginAttempts+1 >= maxFailedLogins {
			lockedUntil := time.Now().Add(lockoutDuration)
			updates["locked_until"] = lockedUntil
			updates["failed_login_attempts"] = 0
		}
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.db.Model(&user).Updates(map[string]interface{}{
		"failed_login_attempts": 0,
		"locked_until":          nil,
		"last_login_at":         now,
	}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	user.LastLoginAt = &now

	return &user, nil
}

// GetUserByID retrieves a user with role and campuses preloaded.
func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Role").Preload("Campuses").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// StoreRefreshTokenHash persists the SHA-256 digest of the active refresh token.
func (s *userService) StoreRefreshTokenHash(userID uint, tokenHash string) error {
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("refresh_token_hash", tokenHash).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetRefreshTokenHash returns the stored refresh token digest for a user.
func (s *userService) GetRefreshTokenHash(userID uint) (string, error) {
	var user models.User
	if err := s.db.Select("refresh_token_hash").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrUserNotFound
		}
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user.RefreshTokenHash, nil
}

// CreateUser registers a new user with a role and campus assignments.
func (s *userService) CreateUser(scope *access.Scope, input UserInput) (*models.User, error) {
	if input.Mobile == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "mobile number is required")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("mobile = ?", input.Mobile).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateMobile
	}

	if input.RoleID != nil {
		if err := s.db.First(&models.Role{}, *input.RoleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrRoleNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	campuses, err := s.loadCampuses(input.CampusIDs)
	if err != nil {
		return nil, err
	}

	password := input.Password
	if password == "" {
		password = defaultPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Mobile:   input.Mobile,
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		RoleID:   input.RoleID,
		IsActive: true,
		IsStaff:  input.IsStaff,
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if len(campuses) > 0 {
			if err := tx.Model(user).Association("Campuses").Replace(campuses); err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetUserByID(user.ID)
}

// ListUsers returns the users visible to the caller: admins see everyone,
// staff see users sharing at least one assigned campus.
func (s *userService) ListUsers(scope *access.Scope, page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
	page.Defaults()

	base := s.db.Model(&models.User{}).Scopes(scope.Users())

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var users []models.User
	if err := base.Preload("Role").Preload("Campuses").
		Scopes(pagination.Paginate(page)).
		Order("users.name asc").
		Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(users, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetUser retrieves a single user within the caller's visible set.
func (s *userService) GetUser(scope *access.Scope, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.Scopes(scope.Users()).
		Preload("Role").Preload("Campuses").
		First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// UpdateUser applies the provided field updates, rehashing the password and
// replacing campus assignments when given.
func (s *userService) UpdateUser(scope *access.Scope, id uint, input UserUpdate) (*models.User, error) {
	user, err := s.GetUser(scope, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Mobile != nil && *input.Mobile != user.Mobile {
		var count int64
		if err := s.db.Model(&models.User{}).Where("mobile = ? AND id <> ?", *input.Mobile, id).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicateMobile
		}
		updates["mobile"] = *input.Mobile
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Password != nil && *input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		updates["password"] = string(hashed)
	}
	if input.RoleID != nil {
		if err := s.db.First(&models.Role{}, *input.RoleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrRoleNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		updates["role_id"] = *input.RoleID
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if input.IsStaff != nil {
		updates["is_staff"] = *input.IsStaff
	}

	var campuses []models.Campus
	if input.CampusIDs != nil {
		campuses, err = s.loadCampuses(input.CampusIDs)
		if err != nil {
			return nil, err
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(user).Updates(updates).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		if input.CampusIDs != nil {
			if err := tx.Model(user).Association("Campuses").Replace(campuses); err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetUserByID(id)
}

// DeleteUser removes a user within the caller's visible set.
func (s *userService) DeleteUser(scope *access.Scope, id uint) error {
	user, err := s.GetUser(scope, id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Association("Campuses").Clear(); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(user).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	return err
}

// loadCampuses resolves campus IDs, failing when any is unknown.
func (s *userService) loadCampuses(ids []uint) ([]models.Campus, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var campuses []models.Campus
	if err := s.db.Where("id IN ?", ids).Find(&campuses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(campuses) != len(ids) {
		return nil, apperrors.ErrCampusNotFound
	}
	return campuses, nil
}
