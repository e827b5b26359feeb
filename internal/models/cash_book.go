package models

// CashBook is a named ledger bucket tied to exactly one campus. It cannot be
// deleted while any transaction or opening balance still references it.
type CashBook struct {
	Base
	Name     string `gorm:"uniqueIndex;not null" json:"name"`
	CampusID uint   `gorm:"not null;index" json:"campus_id"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	Campus          Campus           `gorm:"foreignKey:CampusID" json:"campus,omitempty"`
	Transactions    []Transaction    `gorm:"foreignKey:CashBookID" json:"transactions,omitempty"`
	OpeningBalances []OpeningBalance `gorm:"foreignKey:CashBookID" json:"opening_balances,omitempty"`
}
