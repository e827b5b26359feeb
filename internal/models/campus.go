package models

// Campus is an organizational branch. It scopes user visibility and owns cash books.
type Campus struct {
	Base
	Name          string `gorm:"uniqueIndex;not null" json:"name"`
	Address       string `json:"address"`
	ContactNumber string `gorm:"size:15" json:"contact_number"`
	Email         string `json:"email"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`

	CashBooks []CashBook `gorm:"foreignKey:CampusID" json:"cash_books,omitempty"`
}
