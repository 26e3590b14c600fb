// Package keyextract pulls the normalized reference key (for example "NF123")
// out of statement descriptions and document filenames.
package keyextract

import (
	"regexp"
	"strings"
)

// Pattern is one entry of the priority table: a label and the matcher for it.
type Pattern struct {
	Label string
	Regex *regexp.Regexp
}

// defaultPatterns is ordered by priority. The first pattern with a match wins.
// Separators include Unicode spaces such as U+00A0 from spreadsheet exports.
var defaultPatterns = []Pattern{
	{Label: "NF", Regex: regexp.MustCompile(`(?i)nf[\s\p{Zs}]*\d+`)},
	{Label: "NFE", Regex: regexp.MustCompile(`(?i)nfe?[\s\p{Zs}]*\d+`)},
	{Label: "INVOICE", Regex: regexp.MustCompile(`(?i)invoice[\s\p{Zs}]*\d+`)},
	{Label: "PAGAMENTO", Regex: regexp.MustCompile(`(?i)pagamento[\s\p{Zs}]*\d+`)},
}

var nonKeyChars = regexp.MustCompile(`[^A-Z0-9]`)

// Patterns returns a copy of the built-in priority table.
func Patterns() []Pattern {
	out := make([]Pattern, len(defaultPatterns))
	copy(out, defaultPatterns)
	return out
}

// Extractor finds reference keys using an ordered pattern table.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	patterns []Pattern
}

// New returns an Extractor using the built-in patterns.
func New() *Extractor {
	return &Extractor{patterns: defaultPatterns}
}

// NewWithPatterns returns an Extractor using a custom priority table.
func NewWithPatterns(patterns []Pattern) *Extractor {
	return &Extractor{patterns: patterns}
}

// Extract returns the normalized key of the first matching pattern.
// ok is false when no pattern matches; that is not an error.
func (e *Extractor) Extract(text string) (key string, ok bool) {
	key, _, ok = e.ExtractWithLabel(text)
	return key, ok
}

// ExtractWithLabel is Extract that also reports which pattern matched.
func (e *Extractor) ExtractWithLabel(text string) (key, label string, ok bool) {
	if text == "" {
		return "", "", false
	}
	for _, p := range e.patterns {
		match := p.Regex.FindString(text)
		if match == "" {
			continue
		}
		normalized := Normalize(match)
		if normalized == "" {
			continue
		}
		return normalized, p.Label, true
	}
	return "", "", false
}

// Normalize uppercases raw and drops every character outside A-Z and 0-9.
func Normalize(raw string) string {
	return nonKeyChars.ReplaceAllString(strings.ToUpper(raw), "")
}

var defaultExtractor = New()

// Extract runs the built-in extractor.
func Extract(text string) (string, bool) {
	return defaultExtractor.Extract(text)
}
