// Package reconcile handles the statement reconciliation command
package reconcile

import (
	"fmt"

	"fjacquet/statement-reconciler/cmd/root"
	"fjacquet/statement-reconciler/internal/reconciler"

	"github.com/spf13/cobra"
)

// Default output names
const (
	DefaultReportFile  = "reconciliation_result.xlsx"
	DefaultArchiveFile = "reconciliation_documents.zip"
)

// Flags holds the reconcile command options
type Flags struct {
	Statement string
	Documents []string
	Output    string
	Archive   string
	NoArchive bool
}

var flags = Flags{}

// Cmd represents the reconcile command
var Cmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile a bank statement against its supporting documents",
	Long: `Reconcile a bank statement (CSV or XLSX) against invoices, payment slips and receipts.

Each statement line is matched with the documents whose filename carries the same
reference key. The result table lists, per line, the document types found and
missing; the archive groups the documents as <key>/<category>/<file>.

Example:
  reconciler reconcile -s extrato.csv -d docs/ -o result.xlsx -a documents.zip`,
	RunE: reconcileFunc,
}

func init() {
	Cmd.Flags().StringVarP(&flags.Statement, "statement", "s", "", "Bank statement file (CSV or XLSX)")
	Cmd.Flags().StringSliceVarP(&flags.Documents, "docs", "d", nil, "Document files or directories (repeatable)")
	Cmd.Flags().StringVarP(&flags.Output, "output", "o", DefaultReportFile, "Reconciliation table (.xlsx or .csv)")
	Cmd.Flags().StringVarP(&flags.Archive, "archive", "a", DefaultArchiveFile, "ZIP archive of the documents")
	Cmd.Flags().BoolVar(&flags.NoArchive, "no-archive", false, "Do not write the document archive")
}

func reconcileFunc(cmd *cobra.Command, args []string) error {
	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}

	documents := make([]string, 0, len(flags.Documents)+len(args))
	documents = append(documents, flags.Documents...)
	documents = append(documents, args...)

	req := reconciler.Request{
		StatementPath: flags.Statement,
		DocumentPaths: documents,
		ReportPath:    flags.Output,
		ArchivePath:   flags.Archive,
	}
	if flags.NoArchive {
		req.ArchivePath = ""
	}

	report, err := appContainer.GetService().Run(cmd.Context(), req)
	if err != nil {
		return err
	}
	if report.Skipped {
		return nil
	}

	s := report.Stats
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Reconciled %d statement lines against %d documents\n", s.Total, s.Documents)
	fmt.Fprintf(out, "  complete: %d  partial: %d  unmatched: %d  without key: %d\n", s.Complete, s.Partial, s.Unmatched, s.NoKey)
	if s.Orphans > 0 {
		fmt.Fprintf(out, "  documents matching no line: %d\n", s.Orphans)
	}
	if req.ReportPath != "" {
		fmt.Fprintf(out, "Report: %s\n", req.ReportPath)
	}
	if req.ArchivePath != "" {
		fmt.Fprintf(out, "Archive: %s\n", req.ArchivePath)
	}
	return nil
}
