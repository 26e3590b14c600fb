// Package classify previews how document filenames are classified and keyed
package classify

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"fjacquet/statement-reconciler/cmd/root"
	"fjacquet/statement-reconciler/internal/classifier"
	"fjacquet/statement-reconciler/internal/keyextract"

	"github.com/spf13/cobra"
)

// Cmd represents the classify command
var Cmd = &cobra.Command{
	Use:   "classify [filename...]",
	Short: "Show the category and key detected for document filenames",
	Long: `Show the category and reference key detected for each filename, without
reading the files. Use it to check a naming convention before reconciling.

Tip: names such as "NF 123.pdf", "Boleto NF 123.pdf" and "Comprovante NF 123.pdf"
reconcile best.`,
	Args: cobra.MinimumNArgs(1),
	RunE: classifyFunc,
}

func classifyFunc(cmd *cobra.Command, args []string) error {
	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}
	return writeClassification(cmd.OutOrStdout(), appContainer.GetClassifier(), appContainer.GetExtractor(),
		appContainer.GetConfig().Export.Placeholder, args)
}

func writeClassification(out io.Writer, cls *classifier.Classifier, extractor *keyextract.Extractor, placeholder string, names []string) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tCATEGORY\tKEYWORD\tKEY\tPATTERN")

	for _, name := range names {
		base := filepath.Base(name)
		category, keyword := cls.ClassifyWithMatch(base)
		key, label, ok := extractor.ExtractWithLabel(base)
		if !ok {
			key, label = placeholder, placeholder
		}
		if keyword == "" {
			keyword = placeholder
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", base, category, keyword, key, label)
	}
	return tw.Flush()
}
