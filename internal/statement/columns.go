package statement

import "strings"

// Field identifies a logical statement column.
type Field string

const (
	FieldDate        Field = "date"
	FieldDescription Field = "description"
	FieldAmount      Field = "amount"
)

// ColumnRule selects the column for a field: the first header containing any
// of Keywords wins, otherwise the Fallback position is used. A negative
// fallback counts from the end (-1 is the last column).
type ColumnRule struct {
	Field    Field
	Keywords []string
	Fallback int
}

var defaultColumnRules = []ColumnRule{
	{Field: FieldDate, Keywords: []string{"date", "data"}, Fallback: 0},
	{Field: FieldDescription, Keywords: []string{"desc", "hist"}, Fallback: 1},
	{Field: FieldAmount, Keywords: []string{"amount", "valor"}, Fallback: -1},
}

// ColumnRules returns a copy of the built-in column discovery rules.
func ColumnRules() []ColumnRule {
	rules := make([]ColumnRule, len(defaultColumnRules))
	copy(rules, defaultColumnRules)
	return rules
}

// ColumnMap holds the resolved index per field. -1 means the field has no column.
type ColumnMap map[Field]int

// Index returns the column for a field, or -1.
func (m ColumnMap) Index(field Field) int {
	idx, ok := m[field]
	if !ok {
		return -1
	}
	return idx
}

// DiscoverColumns resolves every rule against a header row. Headers are
// compared lower-cased and trimmed.
func DiscoverColumns(header []string, rules []ColumnRule) ColumnMap {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	columns := make(ColumnMap, len(rules))
	for _, rule := range rules {
		columns[rule.Field] = resolveColumn(normalized, rule)
	}
	return columns
}

func resolveColumn(header []string, rule ColumnRule) int {
	for i, h := range header {
		for _, kw := range rule.Keywords {
			if strings.Contains(h, kw) {
				return i
			}
		}
	}

	idx := rule.Fallback
	if idx < 0 {
		idx = len(header) + idx
	}
	if idx < 0 || idx >= len(header) {
		return -1
	}
	return idx
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
