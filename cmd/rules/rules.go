// Package rules shows or initializes the document classification rules
package rules

import (
	"fmt"
	"io"

	"fjacquet/statement-reconciler/cmd/root"
	"fjacquet/statement-reconciler/internal/classifier"
	"fjacquet/statement-reconciler/internal/fileutils"
	"fjacquet/statement-reconciler/internal/models"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// RuleStore is the part of the rule store the command needs.
type RuleStore interface {
	LoadRules() ([]models.ClassificationRuleConfig, error)
	SaveRules(rules []models.ClassificationRuleConfig) error
	Path() string
}

var (
	initRules  bool
	forceRules bool
)

// Cmd represents the rules command
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the document classification rules",
	Long: `Show the classification rules in effect as YAML. Rules come from
classification.rules_file when it exists and from the built-in table otherwise.

Use --init to write the built-in table to the rules file as a starting point.
An existing rules file is only replaced with --force.`,
	RunE: rulesFunc,
}

func init() {
	Cmd.Flags().BoolVar(&initRules, "init", false, "Write the built-in rules to the configured rules file")
	Cmd.Flags().BoolVar(&forceRules, "force", false, "Overwrite an existing rules file with --init")
}

func rulesFunc(cmd *cobra.Command, args []string) error {
	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}

	ruleStore := appContainer.GetStore()
	if initRules {
		return initRulesFile(cmd.OutOrStdout(), ruleStore, forceRules)
	}
	return writeRules(cmd.OutOrStdout(), ruleStore)
}

func initRulesFile(out io.Writer, store RuleStore, force bool) error {
	path := store.Path()
	if !force && fileutils.FileExists(path) {
		return fmt.Errorf("rules file %s already exists, use --force to overwrite it", path)
	}
	if err := store.SaveRules(classifier.DefaultRuleConfigs()); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote built-in rules to %s\n", path)
	return nil
}

func writeRules(out io.Writer, store RuleStore) error {
	rules, err := store.LoadRules()
	if err != nil {
		return err
	}
	if len(rules) == 0 {
		rules = classifier.DefaultRuleConfigs()
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(models.ClassificationRulesFile{Rules: rules}); err != nil {
		return fmt.Errorf("error encoding rules: %w", err)
	}
	return enc.Close()
}
