package models

import "time"

// User represents a staff or admin account. The mobile number is the login identity.
type User struct {
	Base
	Mobile              string     `gorm:"uniqueIndex;size:15;not null" json:"mobile"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Password            string     `gorm:"not null" json:"-"`
	RoleID              *uint      `json:"role_id,omitempty"`
	IsActive            bool       `gorm:"default:true" json:"is_active"`
	IsStaff             bool       `gorm:"default:false" json:"is_staff"`
	IsSuperuser         bool       `gorm:"default:false" json:"is_superuser"`
	RefreshTokenHash    string     `gorm:"size:64" json:"-"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`

	Role     *Role    `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Campuses []Campus `gorm:"many2many:user_campuses" json:"campuses,omitempty"`
}
