// Package cli provides the eddkit command line interface.
//
// Commands are registered on rootCmd from init functions. The services they
// call are supplied by main through SetServices before Execute runs.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/eddkit/internal/core/domain"
	"github.com/custodia-labs/eddkit/internal/logger"
)

// version is set by SetVersion from build flags.
var version = "dev"

// Output formats accepted by --output.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	verbose      bool
	outputFormat string
	datasetPath  string
)

var rootCmd = &cobra.Command{
	Use:   "eddkit",
	Short: "Lookup and search helpers for Easy Digital Downloads store data",
	Long: `eddkit reads customers, orders, discounts and downloads from a store
database and answers the questions admin screens ask: does this record
exist, what is this field, which records match what the user typed.

Search commands print {value, label} option pairs ready for dropdowns.
Use --output json or --output yaml for machine readable output.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: preRun,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatText, "output format: text, json or yaml")
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "import a YAML dataset before running the command")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx available to every command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func preRun(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	switch outputFormat {
	case formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("invalid output format %q: must be text, json or yaml: %w", outputFormat, domain.ErrInvalidInput)
	}

	if datasetPath == "" {
		return nil
	}
	summary, err := importFile(cmd.Context(), datasetPath)
	if err != nil {
		return err
	}
	logger.Debug("Seeded %d customers, %d orders, %d downloads from %s",
		summary.Customers, summary.Orders, summary.Downloads, datasetPath)
	return nil
}

// readDataset decodes a YAML dataset file.
func readDataset(path string) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	var data domain.Dataset
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}
	return &data, nil
}
