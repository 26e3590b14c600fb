// Package container provides dependency injection for the reconciler.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"
	"strings"

	"fjacquet/statement-reconciler/internal/classifier"
	"fjacquet/statement-reconciler/internal/config"
	"fjacquet/statement-reconciler/internal/documents"
	"fjacquet/statement-reconciler/internal/export"
	"fjacquet/statement-reconciler/internal/keyextract"
	"fjacquet/statement-reconciler/internal/logging"
	"fjacquet/statement-reconciler/internal/reconciler"
	"fjacquet/statement-reconciler/internal/statement"
	"fjacquet/statement-reconciler/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation: all fields are private and only
// reachable through getters.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	store      *store.RuleStore
	extractor  *keyextract.Extractor
	classifier *classifier.Classifier
	statements *statement.Loader
	documents  *documents.Loader
	engine     *reconciler.Engine
	exporter   *export.Exporter
	service    *reconciler.Service
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Create logger first as it's needed by other components
	logger := logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))

	ruleStore := store.NewRuleStore(cfg.Classification.RulesFile, logger)
	cls, err := newClassifier(ruleStore, logger)
	if err != nil {
		return nil, err
	}

	extractor := keyextract.New()
	statements := statement.NewLoader(cfg.Statement.DayFirst, logger)
	docs := documents.NewLoader(cls, extractor, logger)
	engine := reconciler.NewEngine(extractor, logger)
	exporter := export.NewExporter(export.Options{
		Placeholder:   cfg.Export.Placeholder,
		NoKeySentinel: strings.TrimSpace(cfg.Export.NoKeySentinel),
		Delimiter:     []rune(cfg.CSV.Delimiter)[0],
		DefaultFormat: export.Format(strings.ToLower(cfg.Export.Format)),
	}, logger)
	service := reconciler.NewService(statements, docs, engine, exporter, logger)

	logger.Debug("Container initialized successfully",
		logging.Field{Key: "classification_rules", Value: len(cls.Rules())},
		logging.Field{Key: "day_first", Value: cfg.Statement.DayFirst})

	return &Container{
		logger:     logger,
		config:     cfg,
		store:      ruleStore,
		extractor:  extractor,
		classifier: cls,
		statements: statements,
		documents:  docs,
		engine:     engine,
		exporter:   exporter,
		service:    service,
	}, nil
}

// newClassifier uses the rules file when it has rules, the built-in table otherwise.
func newClassifier(ruleStore *store.RuleStore, logger logging.Logger) (*classifier.Classifier, error) {
	rules, err := ruleStore.LoadRules()
	if err != nil {
		return nil, fmt.Errorf("failed to load classification rules: %w", err)
	}
	if len(rules) == 0 {
		return classifier.New(logger), nil
	}

	cls, err := classifier.NewFromConfig(rules, logger)
	if err != nil {
		return nil, fmt.Errorf("invalid classification rules in %s: %w", ruleStore.Path(), err)
	}
	logger.Info("Using custom classification rules",
		logging.F(logging.FieldFile, ruleStore.Path()),
		logging.F(logging.FieldCount, len(rules)))
	return cls, nil
}

// GetLogger returns the logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the classification rule store.
func (c *Container) GetStore() *store.RuleStore {
	return c.store
}

// GetExtractor returns the key extractor.
func (c *Container) GetExtractor() *keyextract.Extractor {
	return c.extractor
}

// GetClassifier returns the document classifier.
func (c *Container) GetClassifier() *classifier.Classifier {
	return c.classifier
}

// GetStatementLoader returns the statement loader.
func (c *Container) GetStatementLoader() *statement.Loader {
	return c.statements
}

// GetDocumentLoader returns the document loader.
func (c *Container) GetDocumentLoader() *documents.Loader {
	return c.documents
}

// GetEngine returns the reconciliation engine.
func (c *Container) GetEngine() *reconciler.Engine {
	return c.engine
}

// GetExporter returns the report and archive exporter.
func (c *Container) GetExporter() *export.Exporter {
	return c.exporter
}

// GetService returns the batch reconciliation service.
func (c *Container) GetService() *reconciler.Service {
	return c.service
}
