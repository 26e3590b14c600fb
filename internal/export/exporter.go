package export

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"fjacquet/statement-reconciler/internal/fileutils"
	"fjacquet/statement-reconciler/internal/logging"
	"fjacquet/statement-reconciler/internal/models"
	"fjacquet/statement-reconciler/internal/parsererror"
)

// Format is a reconciliation table output format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Options configure an Exporter.
type Options struct {
	Placeholder   string
	NoKeySentinel string
	Delimiter     rune
	// DefaultFormat applies when the report path has no known extension.
	DefaultFormat Format
}

// Exporter writes reconciliation tables and document archives.
type Exporter struct {
	opts   Options
	logger logging.Logger
}

// NewExporter creates an exporter, filling unset options with defaults.
func NewExporter(opts Options, logger logging.Logger) *Exporter {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if opts.Placeholder == "" {
		opts.Placeholder = models.DefaultPlaceholder
	}
	if opts.NoKeySentinel == "" {
		opts.NoKeySentinel = models.DefaultNoKeySentinel
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if opts.DefaultFormat == "" {
		opts.DefaultFormat = FormatXLSX
	}
	return &Exporter{opts: opts, logger: logger}
}

// FormatFor picks the table format from a file extension.
func (e *Exporter) FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX
	case ".csv":
		return FormatCSV
	default:
		return e.opts.DefaultFormat
	}
}

// WriteReportTo writes the reconciliation table in the given format.
func (e *Exporter) WriteReportTo(w io.Writer, format Format, results []models.ReconciliationResult) error {
	rows := NewReportRows(results, e.opts.Placeholder)
	switch format {
	case FormatCSV:
		return writeCSV(w, rows, e.opts.Delimiter)
	case FormatXLSX:
		return writeXLSX(w, results, rows)
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

// WriteReport writes the reconciliation table to path.
func (e *Exporter) WriteReport(path string, results []models.ReconciliationResult) error {
	format := e.FormatFor(path)

	var buf bytes.Buffer
	if err := e.WriteReportTo(&buf, format, results); err != nil {
		return &parsererror.ExportError{FilePath: path, Format: string(format), Err: err}
	}
	if err := writeOutput(path, buf.Bytes()); err != nil {
		return &parsererror.ExportError{FilePath: path, Format: string(format), Err: err}
	}

	e.logger.Info("Wrote reconciliation report",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldFormat, string(format)),
		logging.F(logging.FieldCount, len(results)))
	return nil
}

// WriteArchiveTo writes the document archive as ZIP.
func (e *Exporter) WriteArchiveTo(w io.Writer, docs []models.Document) error {
	return writeArchive(w, docs, e.opts.NoKeySentinel)
}

// WriteArchive writes the document archive to path.
func (e *Exporter) WriteArchive(path string, docs []models.Document) error {
	var buf bytes.Buffer
	if err := e.WriteArchiveTo(&buf, docs); err != nil {
		return &parsererror.ExportError{FilePath: path, Format: "zip", Err: err}
	}
	if err := writeOutput(path, buf.Bytes()); err != nil {
		return &parsererror.ExportError{FilePath: path, Format: "zip", Err: err}
	}

	e.logger.Info("Wrote document archive",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCount, len(docs)))
	return nil
}

// writeOutput only touches path once the content has been rendered in full.
func writeOutput(path string, data []byte) (err error) {
	file, err := fileutils.CreateFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", closeErr)
		}
	}()

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
