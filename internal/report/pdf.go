package report

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
)

// Fixed column widths in millimetres, landscape A4.
var pdfColumnWidths = []float64{20, 16, 56, 26, 28, 22, 26, 22, 18, 18, 20}

const (
	pdfRowHeight   = 6.0
	pdfPageBreakAt = 190.0
)

// PDF renders the report as a paginated PDF with a fixed-width column layout.
// A page break is inserted whenever the vertical space is exhausted.
func PDF(data *Data) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 10)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Cash Book Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Campus: "+data.CampusName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Cash Book: "+data.CashBookName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Period: "+data.RangeLabel, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6,
		"Total In: "+FormatAmount(data.TotalIn)+
			"   Total Out: "+FormatAmount(data.TotalOut)+
			"   Net Balance: "+FormatAmount(data.NetBalance),
		"", 1, "L", false, 0, "")
	pdf.Ln(2)

	writeColumnHeader(pdf)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range data.Rows {
		if pdf.GetY() > pdfPageBreakAt {
			pdf.AddPage()
			writeColumnHeader(pdf)
			pdf.SetFont("Helvetica", "", 8)
		}
		cells := []string{
			row.Date, row.Time, truncate(row.Remarks, 40), row.CreatedBy,
			row.PartyName, row.PartyMobile, row.Category, row.PaymentMode,
			formatOptional(row.CashIn), formatOptional(row.CashOut),
			FormatAmount(row.Balance),
		}
		for i, cell := range cells {
			align := "L"
			if i >= 8 {
				align = "R"
			}
			pdf.CellFormat(pdfColumnWidths[i], pdfRowHeight, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeColumnHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 8)
	for i, h := range columnHeaders {
		pdf.CellFormat(pdfColumnWidths[i], pdfRowHeight, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
}

// truncate shortens s to at most max characters, counting runes so multibyte
// text is never cut mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
