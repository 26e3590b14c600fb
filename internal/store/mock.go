package store

import (
	"fjacquet/statement-reconciler/internal/models"
)

// MockRuleStore is a mock implementation of RuleStore for testing.
type MockRuleStore struct {
	Rules     []models.ClassificationRuleConfig
	Saved     []models.ClassificationRuleConfig
	RulesPath string

	// Error flags for testing error conditions
	LoadRulesError error
	SaveRulesError error
}

// LoadRules returns the mock rules.
func (m *MockRuleStore) LoadRules() ([]models.ClassificationRuleConfig, error) {
	if m.LoadRulesError != nil {
		return nil, m.LoadRulesError
	}
	result := make([]models.ClassificationRuleConfig, len(m.Rules))
	copy(result, m.Rules)
	return result, nil
}

// SaveRules records the rules passed in.
func (m *MockRuleStore) SaveRules(rules []models.ClassificationRuleConfig) error {
	if m.SaveRulesError != nil {
		return m.SaveRulesError
	}
	m.Saved = rules
	return nil
}

// Path returns RulesPath.
func (m *MockRuleStore) Path() string {
	return m.RulesPath
}
