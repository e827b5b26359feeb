package models

import "time"

// OpeningBalance is a baseline snapshot for a cash book. Multiple historical
// records may exist; the latest by date is the authoritative baseline.
// Date and CreatedBy are set at creation and immutable thereafter.
type OpeningBalance struct {
	Base
	CashBookID uint      `gorm:"not null;index" json:"cash_book_id"`
	Amount     int64     `gorm:"type:bigint;not null" json:"amount"`
	Date       time.Time `gorm:"type:date;not null" json:"date"`
	CreatedBy  uint      `gorm:"not null" json:"created_by"`

	CashBook CashBook `gorm:"foreignKey:CashBookID" json:"cash_book,omitempty"`
	Creator  User     `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}
