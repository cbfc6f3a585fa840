package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/eddkit/internal/core/ports/driving"
)

var importCmd = &cobra.Command{
	Use:   "import <dataset.yaml>",
	Short: "Load customers, orders, discounts and downloads from a YAML file",
	Long: `Import a YAML dataset into the store. Records replace existing records
with the same ID. Top level keys: customers, orders (with nested items),
adjustments, notes, logs, downloads, meta, active_plugins and cart.

With the memory storage backend the data only lives for the current
command; use the global --dataset flag to seed it instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	summary, err := importFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return writeOutput(cmd, summary, func(w io.Writer) error {
		_, err := fmt.Fprintf(w,
			"Imported %d customers, %d orders, %d discounts, %d notes, %d logs, %d downloads and %d meta values.\n",
			summary.Customers, summary.Orders, summary.Adjustments, summary.Notes, summary.Logs,
			summary.Downloads, summary.Meta)
		return err
	})
}

func importFile(ctx context.Context, path string) (driving.ImportSummary, error) {
	s, err := requireServices()
	if err != nil {
		return driving.ImportSummary{}, err
	}
	data, err := readDataset(path)
	if err != nil {
		return driving.ImportSummary{}, err
	}
	return s.Importer.Import(ctx, data)
}
