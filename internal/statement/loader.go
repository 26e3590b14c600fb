// Package statement loads bank statements (CSV or XLSX) into statement rows.
package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fjacquet/statement-reconciler/internal/currencyutils"
	"fjacquet/statement-reconciler/internal/dateutils"
	"fjacquet/statement-reconciler/internal/logging"
	"fjacquet/statement-reconciler/internal/models"
	"fjacquet/statement-reconciler/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	sniffSampleSize = 8 * 1024

	// Largest serial Excel can represent (9999-12-31).
	maxExcelSerial = 2958465
)

// Format is the input format of a statement file.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat chooses the format from the file extension. Anything that is
// not a spreadsheet is read as delimited text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatCSV
	}
}

// Loader turns statement files into rows.
type Loader struct {
	dayFirst bool
	rules    []ColumnRule
	logger   logging.Logger
}

// NewLoader creates a loader with the built-in column rules.
func NewLoader(dayFirst bool, logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Loader{
		dayFirst: dayFirst,
		rules:    ColumnRules(),
		logger:   logger,
	}
}

// Load reads the statement at path.
func (l *Loader) Load(path string) ([]models.StatementRow, error) {
	file, err := os.Open(path) // #nosec G304 -- path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("failed to open statement: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			l.logger.Warn("Failed to close statement file",
				logging.F(logging.FieldFile, path),
				logging.F(logging.FieldError, closeErr.Error()))
		}
	}()

	return l.LoadReader(file, path, DetectFormat(path))
}

// LoadReader reads a statement from r. source names the input in errors and logs.
func (l *Loader) LoadReader(r io.Reader, source string, format Format) ([]models.StatementRow, error) {
	var (
		records [][]string
		err     error
	)
	switch format {
	case FormatXLSX:
		records, err = l.readXLSX(r, source)
	default:
		records, err = l.readCSV(r, source)
	}
	if err != nil {
		return nil, err
	}

	records = dropBlankRecords(records)
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       source,
			ExpectedFormat: "statement with a header row",
			Msg:            "no header row found",
		}
	}

	columns := DiscoverColumns(records[0], l.rules)
	l.logger.Debug("Resolved statement columns",
		logging.F(logging.FieldFile, source),
		logging.F("date_column", columns.Index(FieldDate)),
		logging.F("description_column", columns.Index(FieldDescription)),
		logging.F("amount_column", columns.Index(FieldAmount)))

	rows := make([]models.StatementRow, 0, len(records)-1)
	for i, record := range records[1:] {
		rows = append(rows, l.buildRow(record, columns, format, source, i+2))
	}

	l.logger.Info("Loaded statement",
		logging.F(logging.FieldFile, source),
		logging.F(logging.FieldFormat, string(format)),
		logging.F(logging.FieldCount, len(rows)))
	return rows, nil
}

func (l *Loader) readCSV(r io.Reader, source string) ([][]string, error) {
	sample, replay, err := readSample(r, sniffSampleSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read statement %s: %w", source, err)
	}
	delimiter := SniffDelimiter(sample)
	l.logger.Debug("Detected statement delimiter",
		logging.F(logging.FieldFile, source),
		logging.F(logging.FieldDelimiter, string(delimiter)))

	reader := csv.NewReader(&bomSkipper{r: replay})
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       source,
			ExpectedFormat: "delimited text",
			Msg:            err.Error(),
		}
	}
	return records, nil
}

func (l *Loader) readXLSX(r io.Reader, source string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       source,
			ExpectedFormat: "XLSX workbook",
			Msg:            err.Error(),
		}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			l.logger.Warn("Failed to close workbook",
				logging.F(logging.FieldFile, source),
				logging.F(logging.FieldError, closeErr.Error()))
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       source,
			ExpectedFormat: "XLSX workbook",
			Msg:            "workbook has no sheets",
		}
	}

	// Raw values keep dates as serial numbers instead of locale formatted text.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s of %s: %w", sheet, source, err)
	}
	return rows, nil
}

func (l *Loader) buildRow(record []string, columns ColumnMap, format Format, source string, line int) models.StatementRow {
	rawDate := cell(record, columns.Index(FieldDate))
	rawAmount := cell(record, columns.Index(FieldAmount))

	var date *time.Time
	if rawDate != "" {
		parsed, err := l.parseDate(rawDate, format)
		if err != nil {
			l.logUnparseable("Unparseable statement date", source, line, FieldDate, rawDate, err)
		} else {
			date = &parsed
		}
	}

	var amount decimal.NullDecimal
	if rawAmount != "" {
		parsed, err := currencyutils.ParseAmount(rawAmount)
		if err != nil {
			l.logUnparseable("Unparseable statement amount", source, line, FieldAmount, rawAmount, err)
		} else {
			amount = decimal.NewNullDecimal(parsed)
		}
	}

	return models.NewStatementRow(date, cell(record, columns.Index(FieldDescription)), amount)
}

// logUnparseable records a cell that is kept as an absent value.
func (l *Loader) logUnparseable(msg, source string, line int, field Field, value string, err error) {
	l.logger.WithError(&parsererror.ParseError{
		Source: source,
		Field:  string(field),
		Value:  value,
		Err:    err,
	}).Debug(msg,
		logging.F(logging.FieldFile, source),
		logging.F(logging.FieldRow, line),
		logging.F(logging.FieldColumn, string(field)))
}

func (l *Loader) parseDate(raw string, format Format) (time.Time, error) {
	if format == FormatXLSX {
		if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial >= 1 && serial <= maxExcelSerial {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return t, nil
			}
		}
	}
	return dateutils.ParseStatementDate(raw, l.dayFirst)
}

func dropBlankRecords(records [][]string) [][]string {
	kept := records[:0]
	for _, record := range records {
		for _, value := range record {
			if strings.TrimSpace(value) != "" {
				kept = append(kept, record)
				break
			}
		}
	}
	return kept
}

// bomSkipper drops a leading UTF-8 byte order mark.
type bomSkipper struct {
	r       io.Reader
	checked bool
}

func (b *bomSkipper) Read(p []byte) (int, error) {
	if b.checked {
		return b.r.Read(p)
	}
	b.checked = true

	head := make([]byte, len(utf8BOM))
	n, err := io.ReadFull(b.r, head)
	if n == len(utf8BOM) && string(head) == utf8BOM {
		return b.r.Read(p)
	}
	b.r = io.MultiReader(strings.NewReader(string(head[:n])), b.r)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return 0, err
	}
	return b.r.Read(p)
}
