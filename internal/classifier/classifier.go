// Package classifier infers the category of a supporting document from its filename.
package classifier

import (
	"fmt"
	"regexp"
	"strings"

	"fjacquet/statement-reconciler/internal/logging"
	"fjacquet/statement-reconciler/internal/models"
	"fjacquet/statement-reconciler/internal/parsererror"
)

// Matcher is one keyword test within a rule.
type Matcher struct {
	Label string
	Regex *regexp.Regexp
}

// Rule selects Category when any of its matchers hits.
type Rule struct {
	Category models.Category
	Matchers []Matcher
}

// Classifier evaluates rules in order and returns the first category that matches.
// It is read-only after construction.
type Classifier struct {
	rules  []Rule
	logger logging.Logger
}

// DefaultRuleConfigs is the built-in rule table.
func DefaultRuleConfigs() []models.ClassificationRuleConfig {
	return []models.ClassificationRuleConfig{
		{
			Category: string(models.CategoryInvoice),
			Keywords: []models.KeywordConfig{
				{Term: "nf", WholeWord: true},
				{Term: "nfe", WholeWord: true},
				{Term: "nota fiscal"},
			},
		},
		{
			Category: string(models.CategoryPaymentSlip),
			Keywords: []models.KeywordConfig{
				{Term: "boleto", WholeWord: true},
			},
		},
		{
			Category: string(models.CategoryReceipt),
			Keywords: []models.KeywordConfig{
				{Term: "comprovante", WholeWord: true},
				{Term: "pix", WholeWord: true},
				{Term: "recibo", WholeWord: true},
			},
		},
	}
}

// New returns a Classifier with the built-in rules.
func New(logger logging.Logger) *Classifier {
	c, err := NewFromConfig(DefaultRuleConfigs(), logger)
	if err != nil {
		panic(fmt.Sprintf("classifier: invalid built-in rules: %v", err))
	}
	return c
}

// NewFromConfig compiles rules loaded from configuration.
// "other" is the fallback and cannot be the target of a rule.
func NewFromConfig(configs []models.ClassificationRuleConfig, logger logging.Logger) (*Classifier, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	rules := make([]Rule, 0, len(configs))
	for i, cfg := range configs {
		category, ok := models.ParseCategory(cfg.Category)
		if !ok || category == models.CategoryOther {
			return nil, &parsererror.ValidationError{
				Subject: fmt.Sprintf("rule %d", i),
				Reason:  fmt.Sprintf("unsupported category %q", cfg.Category),
			}
		}
		if len(cfg.Keywords) == 0 {
			return nil, &parsererror.ValidationError{
				Subject: fmt.Sprintf("rule %d (%s)", i, category),
				Reason:  "no keywords",
			}
		}

		rule := Rule{Category: category}
		for _, kw := range cfg.Keywords {
			term := strings.TrimSpace(kw.Term)
			if term == "" {
				return nil, &parsererror.ValidationError{
					Subject: fmt.Sprintf("rule %d (%s)", i, category),
					Reason:  "empty keyword",
				}
			}
			rule.Matchers = append(rule.Matchers, Matcher{
				Label: term,
				Regex: keywordRegex(term, kw.WholeWord),
			})
		}
		rules = append(rules, rule)
	}

	return &Classifier{rules: rules, logger: logger}, nil
}

// keywordRegex compiles a case-insensitive matcher. A whole word is delimited by
// the text edges or by any rune that is neither a letter nor a digit, so "_" and
// "-" separate words in filenames.
func keywordRegex(term string, wholeWord bool) *regexp.Regexp {
	quoted := regexp.QuoteMeta(term)
	if wholeWord {
		return regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])` + quoted + `(?:[^\p{L}\p{N}]|$)`)
	}
	return regexp.MustCompile(`(?i)` + quoted)
}

// Rules returns the compiled rules in evaluation order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Classify returns the category of the document named name, or other.
func (c *Classifier) Classify(name string) models.Category {
	category, _ := c.ClassifyWithMatch(name)
	return category
}

// ClassifyWithMatch is Classify that also returns the keyword that decided it.
func (c *Classifier) ClassifyWithMatch(name string) (models.Category, string) {
	for _, rule := range c.rules {
		for _, m := range rule.Matchers {
			if m.Regex.MatchString(name) {
				c.logger.Debug("Document classified",
					logging.Field{Key: logging.FieldDocument, Value: name},
					logging.Field{Key: "keyword", Value: m.Label},
					logging.Field{Key: logging.FieldCategory, Value: rule.Category})
				return rule.Category, m.Label
			}
		}
	}
	return models.CategoryOther, ""
}
