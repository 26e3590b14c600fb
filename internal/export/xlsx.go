package export

import (
	"fmt"
	"io"

	"fjacquet/statement-reconciler/internal/models"

	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the worksheet holding the reconciliation table.
const SheetName = "Reconciliation"

// DateNumFmt is the number format of the Date column.
const DateNumFmt = "yyyy-mm-dd"

var columnWidths = map[string]float64{
	"A": 12,
	"B": 48,
	"C": 14,
	"D": 16,
	"E": 32,
	"F": 32,
}

// writeXLSX renders the table into a single-sheet workbook. Dates are real
// date cells and amounts are numbers so the sheet can sort, filter and sum.
func writeXLSX(w io.Writer, results []models.ReconciliationResult, rows []ReportRow) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("error closing workbook: %w", closeErr)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}

	header := make([]interface{}, len(ReportHeader))
	for i, h := range ReportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("error creating header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "F1", style); err != nil {
		return fmt.Errorf("error styling header: %w", err)
	}

	for i, row := range rows {
		var date interface{} = row.Date
		if results[i].Date != nil {
			date = *results[i].Date
		}
		var amount interface{} = row.Amount
		if results[i].Amount.Valid {
			amount = results[i].Amount.Decimal.InexactFloat64()
		}
		values := []interface{}{date, row.Description, amount, row.Key, row.Found, row.Missing}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("error writing row %d: %w", i+1, err)
		}
	}

	if len(rows) > 0 {
		dateFmt := DateNumFmt
		dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
		if err != nil {
			return fmt.Errorf("error creating date style: %w", err)
		}
		last, err := excelize.CoordinatesToCellName(1, len(rows)+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetName, "A2", last, dateStyle); err != nil {
			return fmt.Errorf("error styling dates: %w", err)
		}
	}

	for col, width := range columnWidths {
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("error setting column width: %w", err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("error freezing header: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}
