package models

// Role is a named user role. Authorization never compares role names directly;
// the access package resolves them into a RoleKind once per request.
type Role struct {
	Base
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}
