package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Report"

// Excel renders the report as an XLSX workbook.
func Excel(data *Data) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name report sheet: %w", err)
	}

	headerRows := [][]interface{}{
		{"Campus", data.CampusName},
		{"Cash Book", data.CashBookName},
		{"Period", data.RangeLabel},
		{
			"Total In", FormatAmount(data.TotalIn),
			"Total Out", FormatAmount(data.TotalOut),
			"Net Balance", FormatAmount(data.NetBalance),
		},
	}
	for i, row := range headerRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	columns := make([]interface{}, len(columnHeaders))
	for i, h := range columnHeaders {
		columns[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A6", &columns); err != nil {
		return nil, err
	}

	for i, row := range data.Rows {
		cell, err := excelize.CoordinatesToCellName(1, 7+i)
		if err != nil {
			return nil, err
		}
		values := []interface{}{
			row.Date, row.Time, row.Remarks, row.CreatedBy,
			row.PartyName, row.PartyMobile, row.Category, row.PaymentMode,
			formatOptional(row.CashIn), formatOptional(row.CashOut),
			FormatAmount(row.Balance),
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
