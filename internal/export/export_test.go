package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"fjacquet/statement-reconciler/internal/logging"
	"fjacquet/statement-reconciler/internal/models"
	"fjacquet/statement-reconciler/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleResults() []models.ReconciliationResult {
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	return []models.ReconciliationResult{
		{
			Date:        &date,
			Description: "Pagamento NF 123",
			Amount:      decimal.NewNullDecimal(decimal.RequireFromString("-150.5")),
			Key:         "NF123",
			HasKey:      true,
			Found:       []models.Category{models.CategoryPaymentSlip},
			Missing:     []models.Category{models.CategoryInvoice, models.CategoryReceipt},
		},
		{
			Description: "Transferência qualquer",
			Missing:     models.RequiredCategories(),
		},
	}
}

func TestNewReportRows(t *testing.T) {
	rows := NewReportRows(sampleResults(), "-")
	require.Len(t, rows, 2)

	assert.Equal(t, ReportRow{
		Date:        "2024-03-05",
		Description: "Pagamento NF 123",
		Amount:      "-150.50",
		Key:         "NF123",
		Found:       "payment_slip",
		Missing:     "invoice, receipt",
	}, rows[0])

	assert.Equal(t, ReportRow{
		Description: "Transferência qualquer",
		Key:         "-",
		Found:       "-",
		Missing:     "invoice, payment_slip, receipt",
	}, rows[1])
}

func TestNewExporter_Defaults(t *testing.T) {
	e := NewExporter(Options{}, nil)
	assert.Equal(t, "-", e.opts.Placeholder)
	assert.Equal(t, "_NO_KEY", e.opts.NoKeySentinel)
	assert.Equal(t, ',', e.opts.Delimiter)
	assert.Equal(t, FormatXLSX, e.opts.DefaultFormat)
}

func TestFormatFor(t *testing.T) {
	e := NewExporter(Options{DefaultFormat: FormatCSV}, logging.NewMockLogger())
	assert.Equal(t, FormatXLSX, e.FormatFor("out.XLSX"))
	assert.Equal(t, FormatCSV, e.FormatFor("out.csv"))
	assert.Equal(t, FormatCSV, e.FormatFor("out.txt"))
}

func TestWriteReportTo_CSV(t *testing.T) {
	e := NewExporter(Options{Delimiter: ';'}, logging.NewMockLogger())

	var buf bytes.Buffer
	require.NoError(t, e.WriteReportTo(&buf, FormatCSV, sampleResults()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date;Description;Amount;Key;Found;Missing", lines[0])
	assert.Equal(t, "2024-03-05;Pagamento NF 123;-150.50;NF123;payment_slip;invoice, receipt", lines[1])
	assert.Equal(t, ";Transferência qualquer;;-;-;invoice, payment_slip, receipt", lines[2])
}

func TestWriteReportTo_CSVEmpty(t *testing.T) {
	e := NewExporter(Options{}, logging.NewMockLogger())

	var buf bytes.Buffer
	require.NoError(t, e.WriteReportTo(&buf, FormatCSV, nil))
	assert.Equal(t, "Date,Description,Amount,Key,Found,Missing\n", buf.String())
}

func TestWriteReportTo_UnknownFormat(t *testing.T) {
	e := NewExporter(Options{}, logging.NewMockLogger())
	assert.Error(t, e.WriteReportTo(io.Discard, Format("pdf"), nil))
}

func TestWriteReport_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "reconciliation.xlsx")
	logger := logging.NewMockLogger()
	e := NewExporter(Options{}, logger)

	require.NoError(t, e.WriteReport(path, sampleResults()))
	assert.True(t, logger.HasEntry("INFO", "Wrote reconciliation report"))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, SheetName, f.GetSheetName(0))
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ReportHeader, rows[0])
	assert.Equal(t, "2024-03-05", rows[1][0])
	assert.Equal(t, "Pagamento NF 123", rows[1][1])
	assert.Equal(t, "NF123", rows[1][3])
	assert.Equal(t, "payment_slip", rows[1][4])
	assert.Equal(t, "invoice, receipt", rows[1][5])
	assert.Equal(t, "-", rows[2][3])

	amount, err := f.GetCellValue(SheetName, "C2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "-150.5", amount)
}

func TestWriteReport_XLSXDateCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reconciliation.xlsx")
	e := NewExporter(Options{}, logging.NewMockLogger())
	require.NoError(t, e.WriteReport(path, sampleResults()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	// 2024-03-05 is serial 45356 in the 1900 date system.
	raw, err := f.GetCellValue(SheetName, "A2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "45356", raw)

	serial, err := strconv.ParseFloat(raw, 64)
	require.NoError(t, err)
	date, err := excelize.ExcelDateToTime(serial, false)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", date.Format("2006-01-02"))

	styleID, err := f.GetCellStyle(SheetName, "A2")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.CustomNumFmt)
	assert.Equal(t, DateNumFmt, *style.CustomNumFmt)

	missing, err := f.GetCellValue(SheetName, "A3")
	require.NoError(t, err)
	assert.Equal(t, "", missing)
}

func TestWriteReport_CSVByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reconciliation.csv")
	e := NewExporter(Options{}, logging.NewMockLogger())

	require.NoError(t, e.WriteReport(path, sampleResults()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Date,Description,Amount,Key,Found,Missing\n"))
}

func TestWriteReport_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	e := NewExporter(Options{}, logging.NewMockLogger())
	err := e.WriteReport(filepath.Join(blocker, "out.csv"), sampleResults())

	var exportErr *parsererror.ExportError
	require.True(t, errors.As(err, &exportErr))
	assert.Equal(t, "csv", exportErr.Format)
}

func readArchive(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	entries := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		entries[f.Name] = string(content)
	}
	return entries
}

func TestWriteArchiveTo(t *testing.T) {
	docs := []models.Document{
		{Name: "Boleto NF123.pdf", Category: models.CategoryPaymentSlip, Key: "NF123", HasKey: true, Content: []byte("slip")},
		{Name: "comprovante_pix_456.pdf", Category: models.CategoryReceipt, Content: []byte("receipt")},
		{Name: "contrato.pdf", Category: models.CategoryOther, Content: []byte("other")},
	}

	e := NewExporter(Options{NoKeySentinel: "_SEM_CHAVE"}, logging.NewMockLogger())
	var buf bytes.Buffer
	require.NoError(t, e.WriteArchiveTo(&buf, docs))

	assert.Equal(t, map[string]string{
		"NF123/payment_slip/Boleto NF123.pdf":        "slip",
		"_SEM_CHAVE/receipt/comprovante_pix_456.pdf": "receipt",
		"_SEM_CHAVE/other/contrato.pdf":              "other",
	}, readArchive(t, buf.Bytes()))
}

func TestWriteArchiveTo_DuplicatePaths(t *testing.T) {
	docs := []models.Document{
		{Name: "NF 1.pdf", Category: models.CategoryInvoice, Key: "NF1", HasKey: true, Content: []byte("a")},
		{Name: "NF 1.pdf", Category: models.CategoryInvoice, Key: "NF1", HasKey: true, Content: []byte("b")},
		{Name: "NF 1.pdf", Category: models.CategoryInvoice, Key: "NF1", HasKey: true, Content: []byte("c")},
	}

	e := NewExporter(Options{}, logging.NewMockLogger())
	var buf bytes.Buffer
	require.NoError(t, e.WriteArchiveTo(&buf, docs))

	assert.Equal(t, map[string]string{
		"NF1/invoice/NF 1.pdf":     "a",
		"NF1/invoice/NF 1 (2).pdf": "b",
		"NF1/invoice/NF 1 (3).pdf": "c",
	}, readArchive(t, buf.Bytes()))
}

func TestWriteArchive_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.zip")
	logger := logging.NewMockLogger()
	e := NewExporter(Options{}, logger)

	require.NoError(t, e.WriteArchive(path, nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, readArchive(t, data))
	assert.True(t, logger.HasEntry("INFO", "Wrote document archive"))
}
