// Package report renders ledger report data into downloadable artifacts.
// The data is assembled by the report service; this package only formats it.
package report

import "fmt"

// Row is one transaction line of a report, in chronological order.
// Amounts are in minor units; exactly one of CashIn/CashOut is non-zero.
type Row struct {
	Date        string
	Time        string
	Remarks     string
	CreatedBy   string
	PartyName   string
	PartyMobile string
	Category    string
	PaymentMode string
	CashIn      int64
	CashOut     int64
	Balance     int64
}

// Data is the logical content of a report artifact.
type Data struct {
	CampusName   string
	CashBookName string
	RangeLabel   string
	TotalIn      int64
	TotalOut     int64
	NetBalance   int64
	Rows         []Row
}

// FormatAmount renders minor units as a decimal string, e.g. 12345 -> "123.45".
func FormatAmount(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// formatOptional renders an amount column that stays blank when zero, so IN
// rows leave the cash-out column empty and vice versa.
func formatOptional(v int64) string {
	if v == 0 {
		return ""
	}
	return FormatAmount(v)
}

// columnHeaders is the shared column layout of both artifact formats.
var columnHeaders = []string{
	"Date", "Time", "Remarks", "Created By", "Party", "Party Mobile",
	"Category", "Payment Mode", "Cash In", "Cash Out", "Balance",
}
