package models

// KeywordConfig is one keyword of a classification rule as stored in YAML.
type KeywordConfig struct {
	Term      string `yaml:"term"`
	WholeWord bool   `yaml:"whole_word"`
}

// ClassificationRuleConfig maps a category to the keywords that select it.
// Rules are evaluated in file order.
type ClassificationRuleConfig struct {
	Category string          `yaml:"category"`
	Keywords []KeywordConfig `yaml:"keywords"`
}

// ClassificationRulesFile is the top-level shape of a rules file.
type ClassificationRulesFile struct {
	Rules []ClassificationRuleConfig `yaml:"rules"`
}
