// Package store loads and saves the classification rules file.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/statement-reconciler/internal/logging"
	"fjacquet/statement-reconciler/internal/models"

	"gopkg.in/yaml.v3"
)

// DefaultRulesFile is the file name looked up when none is configured.
const DefaultRulesFile = "classification_rules.yaml"

// RuleStore manages loading and saving of classification rules
type RuleStore struct {
	RulesFile string
	logger    logging.Logger
}

// NewRuleStore creates a new store for the given rules file
func NewRuleStore(rulesFile string, logger logging.Logger) *RuleStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &RuleStore{
		RulesFile: rulesFile,
		logger:    logger,
	}
}

func (s *RuleStore) filename() string {
	if s.RulesFile == "" {
		return DefaultRulesFile
	}
	return s.RulesFile
}

// Path returns the file LoadRules reads and SaveRules writes: the first
// existing location from FindConfigFile, else the configured name.
func (s *RuleStore) Path() string {
	filename := s.filename()
	if found, err := s.FindConfigFile(filename); err == nil {
		return found
	}
	return filename
}

// FindConfigFile looks for a configuration file in standard locations
func (s *RuleStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join(".reconciler", filename),
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".reconciler", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadRules loads classification rules from the YAML file. A missing file
// yields an empty slice so callers can fall back to the built-in rules.
func (s *RuleStore) LoadRules() ([]models.ClassificationRuleConfig, error) {
	filename := s.filename()

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("Classification rules file not found, using built-in rules",
				logging.F(logging.FieldFile, filename))
			return []models.ClassificationRuleConfig{}, nil
		}
		return nil, fmt.Errorf("error resolving rules file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}

	var rulesFile models.ClassificationRulesFile
	if err := yaml.Unmarshal(data, &rulesFile); err != nil {
		return nil, fmt.Errorf("error parsing rules file %s: %w", filePath, err)
	}

	// Fallback: a bare list without the top-level "rules" key
	if len(rulesFile.Rules) == 0 {
		var rules []models.ClassificationRuleConfig
		if err := yaml.Unmarshal(data, &rules); err == nil && len(rules) > 0 {
			rulesFile.Rules = rules
		}
	}

	s.logger.Debug("Loaded classification rules",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(rulesFile.Rules)))
	if rulesFile.Rules == nil {
		return []models.ClassificationRuleConfig{}, nil
	}
	return rulesFile.Rules, nil
}

// SaveRules writes rules to Path, creating parent directories. An existing
// file is replaced.
func (s *RuleStore) SaveRules(rules []models.ClassificationRuleConfig) error {
	filePath := s.Path()

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(models.ClassificationRulesFile{Rules: rules})
	if err != nil {
		return fmt.Errorf("error marshaling rules: %w", err)
	}

	if err := os.WriteFile(filePath, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing rules: %w", err)
	}

	s.logger.Debug("Saved classification rules",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(rules)))
	return nil
}
