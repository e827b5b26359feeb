// Package access implements the per-request visibility scope. A Scope is
// resolved once after authentication and passed explicitly into every service
// call; role names are folded into a RoleKind at resolution time so that no
// other layer ever compares role strings.
package access

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "cashbook/internal/errors"
	"cashbook/internal/models"
)

// RoleKind is the resolved authorization level of a user.
type RoleKind int

const (
	RoleStaff RoleKind = iota
	RoleAdmin
)

// KindFromRole maps a role name to a RoleKind. The comparison is
// case-insensitive; anything that is not "admin" is staff.
func KindFromRole(name string) RoleKind {
	if strings.EqualFold(name, "admin") {
		return RoleAdmin
	}
	return RoleStaff
}

// Scope is the visible subset of the system for one authenticated request.
type Scope struct {
	UserID    uint
	Kind      RoleKind
	CampusIDs []uint
}

// IsAdmin reports whether the scope grants full visibility.
func (s *Scope) IsAdmin() bool {
	return s.Kind == RoleAdmin
}

// CanAccessCampus reports whether the campus is writable/visible for this scope.
func (s *Scope) CanAccessCampus(campusID uint) bool {
	if s.IsAdmin() {
		return true
	}
	for _, id := range s.CampusIDs {
		if id == campusID {
			return true
		}
	}
	return false
}

// Campuses returns a GORM scope restricting campus rows to the visible set.
func (s *Scope) Campuses() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if s.IsAdmin() {
			return db
		}
		return db.Where("campuses.id IN ?", s.CampusIDs)
	}
}

// CashBooks returns a GORM scope restricting cash books to those whose campus
// is in the visible set.
func (s *Scope) CashBooks() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if s.IsAdmin() {
			return db
		}
		return db.Where("cash_books.campus_id IN ?", s.CampusIDs)
	}
}

// Transactions returns a GORM scope restricting transactions to those whose
// cash book belongs to a visible campus. The campus hop goes through the cash
// book; transactions carry no campus column of their own.
func (s *Scope) Transactions() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if s.IsAdmin() {
			return db
		}
		return db.Where(
			"transactions.cash_book_id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).
				Model(&models.CashBook{}).
				Select("id").
				Where("campus_id IN ?", s.CampusIDs),
		)
	}
}

// OpeningBalances returns a GORM scope restricting opening balances to cash
// books in the visible set.
func (s *Scope) OpeningBalances() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if s.IsAdmin() {
			return db
		}
		return db.Where(
			"opening_balances.cash_book_id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).
				Model(&models.CashBook{}).
				Select("id").
				Where("campus_id IN ?", s.CampusIDs),
		)
	}
}

// Users returns a GORM scope restricting users to those assigned to at least
// one visible campus.
func (s *Scope) Users() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if s.IsAdmin() {
			return db
		}
		return db.Where(
			"users.id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).
				Table("user_campuses").
				Select("user_id").
				Where("campus_id IN ?", s.CampusIDs),
		)
	}
}

// Resolver loads scopes from the database.
type Resolver struct {
	db *gorm.DB
}

// NewResolver creates a scope Resolver.
func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// Resolve builds the Scope for a user ID. Superusers are admins regardless of
// their role row.
func (r *Resolver) Resolve(userID uint) (*Scope, error) {
	var user models.User
	if err := r.db.Preload("Role").Preload("Campuses").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return ScopeForUser(&user), nil
}

// ScopeForUser builds a Scope from an already-loaded user (Role and Campuses
// must be populated).
func ScopeForUser(user *models.User) *Scope {
	kind := RoleStaff
	if user.IsSuperuser {
		kind = RoleAdmin
	} else if user.Role != nil {
		kind = KindFromRole(user.Role.Name)
	}

	campusIDs := make([]uint, 0, len(user.Campuses))
	for _, c := range user.Campuses {
		campusIDs = append(campusIDs, c.ID)
	}

	return &Scope{UserID: user.ID, Kind: kind, CampusIDs: campusIDs}
}
