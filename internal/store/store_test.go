package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/statement-reconciler/internal/logging"
	"fjacquet/statement-reconciler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	err := os.WriteFile(path, []byte(content), 0600)
	require.NoError(t, err)
}

func TestNewRuleStore(t *testing.T) {
	s := NewRuleStore("rules.yaml", nil)
	assert.Equal(t, "rules.yaml", s.RulesFile)
	assert.NotNil(t, s.logger)
	assert.Equal(t, DefaultRulesFile, NewRuleStore("", nil).filename())
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "test.yaml")
	writeFile(t, testFile, "rules: []")

	s := NewRuleStore("", logging.NewMockLogger())

	file, err := s.FindConfigFile(testFile)
	assert.NoError(t, err)
	assert.Equal(t, testFile, file)

	_, err = s.FindConfigFile(filepath.Join(dir, "nonexistent.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadRules_Valid(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "rules.yaml")
	writeFile(t, file, `rules:
  - category: receipt
    keywords:
      - term: recibo
        whole_word: true
  - category: invoice
    keywords:
      - term: fatura
        whole_word: true
      - term: nota fiscal
`)

	logger := logging.NewMockLogger()
	rules, err := NewRuleStore(file, logger).LoadRules()
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "receipt", rules[0].Category)
	assert.Equal(t, "invoice", rules[1].Category)
	assert.Equal(t, models.KeywordConfig{Term: "nota fiscal", WholeWord: false}, rules[1].Keywords[1])
	assert.True(t, logger.HasEntry("DEBUG", "Loaded classification rules"))
}

func TestLoadRules_BareList(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "rules.yaml")
	writeFile(t, file, `- category: payment_slip
  keywords:
    - term: boleto
      whole_word: true
`)

	rules, err := NewRuleStore(file, logging.NewMockLogger()).LoadRules()
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "payment_slip", rules[0].Category)
}

func TestLoadRules_Missing(t *testing.T) {
	dir := t.TempDir()
	rules, err := NewRuleStore(filepath.Join(dir, "missing.yaml"), logging.NewMockLogger()).LoadRules()
	assert.NoError(t, err)
	assert.NotNil(t, rules)
	assert.Empty(t, rules)
}

func TestLoadRules_Malformed(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "rules.yaml")
	writeFile(t, file, "rules: [unclosed")

	_, err := NewRuleStore(file, logging.NewMockLogger()).LoadRules()
	assert.Error(t, err)
}

func TestSaveRules_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "nested", "rules.yaml")
	s := NewRuleStore(file, logging.NewMockLogger())

	rules := []models.ClassificationRuleConfig{
		{Category: "invoice", Keywords: []models.KeywordConfig{{Term: "nf", WholeWord: true}}},
	}
	require.NoError(t, s.SaveRules(rules))

	loaded, err := s.LoadRules()
	require.NoError(t, err)
	assert.Equal(t, rules, loaded)
}

func TestRuleStore_Path(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdirForTest(t, t.TempDir())

	s := NewRuleStore("", logging.NewMockLogger())
	assert.Equal(t, DefaultRulesFile, s.Path(), "nothing found yet: the default name")

	require.NoError(t, os.Mkdir("config", 0750))
	writeFile(t, filepath.Join("config", DefaultRulesFile), "rules: []")
	assert.Equal(t, filepath.Join("config", DefaultRulesFile), s.Path())

	require.NoError(t, s.SaveRules([]models.ClassificationRuleConfig{{Category: "receipt"}}))
	assert.False(t, fileExists(DefaultRulesFile), "the located file is written, not a new one")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestMockRuleStore(t *testing.T) {
	m := &MockRuleStore{Rules: []models.ClassificationRuleConfig{{Category: "invoice"}}}
	rules, err := m.LoadRules()
	require.NoError(t, err)
	assert.Len(t, rules, 1)

	m.LoadRulesError = errors.New("boom")
	_, err = m.LoadRules()
	assert.Error(t, err)

	require.NoError(t, m.SaveRules(rules))
	assert.Equal(t, rules, m.Saved)

	m.RulesPath = "rules.yaml"
	assert.Equal(t, "rules.yaml", m.Path())
}
