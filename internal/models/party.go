package models

// Party is a payer/payee counterpart, reusable across transactions.
type Party struct {
	Base
	Name         string `gorm:"not null" json:"name"`
	MobileNumber string `gorm:"size:15" json:"mobile_number"`

	Transactions []Transaction `gorm:"foreignKey:PartyID" json:"transactions,omitempty"`
}
