// Package export writes the reconciliation table and the document archive.
package export

import (
	"fjacquet/statement-reconciler/internal/currencyutils"
	"fjacquet/statement-reconciler/internal/dateutils"
	"fjacquet/statement-reconciler/internal/models"
)

// ReportRow is one line of the reconciliation table as written to disk.
type ReportRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Key         string `csv:"Key"`
	Found       string `csv:"Found"`
	Missing     string `csv:"Missing"`
}

// ReportHeader lists the table columns in output order.
var ReportHeader = []string{"Date", "Description", "Amount", "Key", "Found", "Missing"}

// NewReportRows renders results for output. Missing keys and empty category
// lists are replaced by placeholder.
func NewReportRows(results []models.ReconciliationResult, placeholder string) []ReportRow {
	rows := make([]ReportRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, ReportRow{
			Date:        dateutils.ToISODate(r.Date),
			Description: r.Description,
			Amount:      currencyutils.FormatAmount(r.Amount),
			Key:         r.KeyOr(placeholder),
			Found:       r.FoundText(placeholder),
			Missing:     r.MissingText(placeholder),
		})
	}
	return rows
}
