package cli

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"maps"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// writeOutput encodes v in the selected format. Text output is produced by
// the text callback.
func writeOutput(cmd *cobra.Command, v any, text func(w io.Writer) error) error {
	w := cmd.OutOrStdout()
	switch outputFormat {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		return text(w)
	}
}

// writeOptions prints option pairs. Structured formats keep labels escaped
// exactly as a widget receives them; the text table unescapes them.
func writeOptions(cmd *cobra.Command, options []domain.OptionPair) error {
	return writeOutput(cmd, options, func(w io.Writer) error {
		if len(options) == 0 {
			_, err := fmt.Fprintln(w, "No matches.")
			return err
		}
		rows := make([][]string, 0, len(options))
		for _, o := range options {
			rows = append(rows, []string{o.Value, html.UnescapeString(o.Label)})
		}
		_, err := fmt.Fprintln(w, renderTable([]string{"VALUE", "LABEL"}, rows))
		return err
	})
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(false).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

// writeLines prints one value per line, or a list in structured formats.
func writeLines(cmd *cobra.Command, values []string) error {
	if values == nil {
		values = []string{}
	}
	return writeOutput(cmd, values, func(w io.Writer) error {
		for _, v := range values {
			if _, err := fmt.Fprintln(w, v); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeValue prints a single scalar.
func writeValue(cmd *cobra.Command, v any) error {
	return writeOutput(cmd, v, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, domain.FormatValue(v))
		return err
	})
}

// writeRecords prints host records by their attribute view.
func writeRecords[T any](cmd *cobra.Command, items []T, record func(*T) domain.Record) error {
	records := make([]domain.Record, 0, len(items))
	for i := range items {
		records = append(records, record(&items[i]))
	}
	return writeOutput(cmd, records, func(w io.Writer) error {
		if len(records) == 0 {
			_, err := fmt.Fprintln(w, "No matches.")
			return err
		}
		for i, r := range records {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if err := writeRecordText(w, r); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeRecord prints one record as aligned key: value lines.
func writeRecord(cmd *cobra.Command, r domain.Record) error {
	return writeOutput(cmd, r, func(w io.Writer) error {
		return writeRecordText(w, r)
	})
}

func writeRecordText(w io.Writer, r domain.Record) error {
	keys := slices.Sorted(maps.Keys(r))
	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", width+1, k+":", domain.FormatValue(r[k])); err != nil {
			return err
		}
	}
	return nil
}
