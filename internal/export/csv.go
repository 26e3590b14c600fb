package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// writeCSV marshals report rows with a header line using the given delimiter.
func writeCSV(w io.Writer, rows []ReportRow, delimiter rune) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter

	if len(rows) == 0 {
		// gocsv writes nothing for an empty slice; keep the header.
		if err := csvWriter.Write(ReportHeader); err != nil {
			return fmt.Errorf("error writing CSV header: %w", err)
		}
	} else if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("error flushing CSV data: %w", err)
	}
	return nil
}
