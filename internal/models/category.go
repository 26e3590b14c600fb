// Package models provides the data structures shared by the loaders, the
// reconciliation engine and the exporters.
package models

import "strings"

// Category is the kind of supporting document inferred from its filename.
type Category string

const (
	CategoryInvoice     Category = "invoice"
	CategoryPaymentSlip Category = "payment_slip"
	CategoryReceipt     Category = "receipt"
	CategoryOther       Category = "other"
)

// RequiredCategories lists, in canonical order, the categories a statement row
// needs to be fully reconciled.
func RequiredCategories() []Category {
	return []Category{CategoryInvoice, CategoryPaymentSlip, CategoryReceipt}
}

// AllCategories lists every category a document can be classified as.
func AllCategories() []Category {
	return append(RequiredCategories(), CategoryOther)
}

// IsRequired reports whether the category counts toward reconciliation.
func (c Category) IsRequired() bool {
	switch c {
	case CategoryInvoice, CategoryPaymentSlip, CategoryReceipt:
		return true
	}
	return false
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	return c.IsRequired() || c == CategoryOther
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory maps a name such as "Payment_Slip" to its Category.
func ParseCategory(name string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(name)))
	if !c.IsValid() {
		return "", false
	}
	return c, true
}

// JoinCategories renders categories joined by ", ", or placeholder when empty.
func JoinCategories(categories []Category, placeholder string) string {
	if len(categories) == 0 {
		return placeholder
	}
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
