package models

import "time"

// TransactionType represents the direction of a cash movement.
type TransactionType string

const (
	TransactionTypeIn  TransactionType = "IN"
	TransactionTypeOut TransactionType = "OUT"
)

// Transaction is a single cash-in or cash-out entry against a cash book.
// Amounts are stored in minor units (cents). The campus affiliation is derived
// transitively via the cash book and never stored on the row itself.
type Transaction struct {
	Base
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	Type          TransactionType `gorm:"size:3;not null" json:"type"`
	CategoryID    *uint           `json:"category_id,omitempty"`
	PaymentModeID *uint           `json:"payment_mode_id,omitempty"`
	CashBookID    uint            `gorm:"not null;index" json:"cash_book_id"`
	Date          time.Time       `gorm:"type:date;not null;index" json:"date"`
	Time          string          `gorm:"size:8;not null" json:"time"`
	Amount        int64           `gorm:"type:bigint;not null" json:"amount"`
	Remarks       string          `json:"remarks"`
	PartyID       *uint           `json:"party_id,omitempty"`
	PartyName     string          `json:"party_name"`
	PartyMobile   string          `gorm:"size:15" json:"party_mobile"`

	User        User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Category    *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	PaymentMode *PaymentMode `gorm:"foreignKey:PaymentModeID" json:"payment_mode,omitempty"`
	CashBook    CashBook     `gorm:"foreignKey:CashBookID" json:"cash_book,omitempty"`
	Party       *Party       `gorm:"foreignKey:PartyID" json:"party,omitempty"`
}
