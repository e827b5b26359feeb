package models

// PaymentMode is a tagging dimension for how cash moved (cash, UPI, bank, ...).
type PaymentMode struct {
	Base
	Name     string `gorm:"uniqueIndex;not null" json:"name"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	Transactions []Transaction `gorm:"foreignKey:PaymentModeID" json:"transactions,omitempty"`
}
