package reconciler

import (
	"context"
	"fmt"

	"fjacquet/statement-reconciler/internal/logging"
	"fjacquet/statement-reconciler/internal/models"

	"github.com/google/uuid"
)

// StatementLoader reads a statement file into rows.
type StatementLoader interface {
	Load(path string) ([]models.StatementRow, error)
}

// DocumentLoader reads supporting files into documents.
type DocumentLoader interface {
	Load(paths []string) ([]models.Document, error)
}

// Exporter writes the reconciliation table and the document archive.
type Exporter interface {
	WriteReport(path string, results []models.ReconciliationResult) error
	WriteArchive(path string, docs []models.Document) error
}

// Request describes one batch: a statement, its documents and where to write
// the outputs. Empty output paths skip the corresponding output.
type Request struct {
	StatementPath string
	DocumentPaths []string
	ReportPath    string
	ArchivePath   string
}

// Report is what a run produced.
type Report struct {
	BatchID   string
	Skipped   bool
	Results   []models.ReconciliationResult
	Documents []models.Document
	Stats     models.ReconciliationStats
}

// Service runs a whole batch: load, reconcile, export.
type Service struct {
	statements StatementLoader
	documents  DocumentLoader
	engine     *Engine
	exporter   Exporter
	logger     logging.Logger
}

// NewService wires the collaborators of a run.
func NewService(statements StatementLoader, documents DocumentLoader, engine *Engine, exporter Exporter, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Service{
		statements: statements,
		documents:  documents,
		engine:     engine,
		exporter:   exporter,
		logger:     logger,
	}
}

// Run reconciles one batch. Without a statement there is nothing to do and the
// run is reported as skipped.
func (s *Service) Run(ctx context.Context, req Request) (*Report, error) {
	report := &Report{BatchID: uuid.NewString()}
	log := s.logger.WithFields(logging.F(logging.FieldBatchID, report.BatchID))

	if req.StatementPath == "" {
		log.Info("No statement supplied, nothing to reconcile")
		report.Skipped = true
		return report, nil
	}

	rows, err := s.statements.Load(req.StatementPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load statement %s: %w", req.StatementPath, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	docs, err := s.documents.Load(req.DocumentPaths)
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.Documents = docs
	report.Results = s.engine.Reconcile(rows, docs)
	report.Stats = Summarize(report.Results, docs)

	if req.ReportPath != "" {
		if err := s.exporter.WriteReport(req.ReportPath, report.Results); err != nil {
			return nil, fmt.Errorf("failed to export reconciliation: %w", err)
		}
	}
	if req.ArchivePath != "" {
		if err := s.exporter.WriteArchive(req.ArchivePath, docs); err != nil {
			return nil, fmt.Errorf("failed to export documents: %w", err)
		}
	}

	report.Stats.LogSummary(log)
	return report, nil
}
