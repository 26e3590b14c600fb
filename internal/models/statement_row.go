package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementRow is one normalized line of a bank statement.
// Date is nil and Amount is invalid when the source value could not be parsed.
type StatementRow struct {
	Date        *time.Time
	Description string
	Amount      decimal.NullDecimal
}

// NewStatementRow builds a row from already parsed values.
func NewStatementRow(date *time.Time, description string, amount decimal.NullDecimal) StatementRow {
	return StatementRow{Date: date, Description: description, Amount: amount}
}

// HasDate reports whether the row carries a parsed date.
func (r StatementRow) HasDate() bool {
	return r.Date != nil
}

// HasAmount reports whether the row carries a parsed amount.
func (r StatementRow) HasAmount() bool {
	return r.Amount.Valid
}
