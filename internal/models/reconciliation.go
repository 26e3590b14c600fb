package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationResult is the outcome for one statement row.
// Found and Missing partition RequiredCategories and keep its order.
type ReconciliationResult struct {
	Date             *time.Time
	Description      string
	Amount           decimal.NullDecimal
	Key              string
	HasKey           bool
	Found            []Category
	Missing          []Category
	MatchedDocuments []string
}

// IsComplete reports whether every required category is present.
func (r ReconciliationResult) IsComplete() bool {
	return len(r.Missing) == 0
}

// KeyOr returns the key, or placeholder when the row has none.
func (r ReconciliationResult) KeyOr(placeholder string) string {
	if !r.HasKey {
		return placeholder
	}
	return r.Key
}

// FoundText renders Found for the table.
func (r ReconciliationResult) FoundText(placeholder string) string {
	return JoinCategories(r.Found, placeholder)
}

// MissingText renders Missing for the table.
func (r ReconciliationResult) MissingText(placeholder string) string {
	return JoinCategories(r.Missing, placeholder)
}

func containsKey(documentKey, rowKey string) bool {
	return strings.Contains(documentKey, rowKey)
}
