package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
)

var extensionsCmd = &cobra.Command{
	Use:   "extensions [name]",
	Short: "Show which store extensions are active",
	Long: `Without arguments, list every known extension and whether it is active.
With a name, print true or false for that extension.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtensions,
}

// extensionState is one row of the extensions listing.
type extensionState struct {
	Name   string `json:"name" yaml:"name"`
	Active bool   `json:"active" yaml:"active"`
}

func init() {
	rootCmd.AddCommand(extensionsCmd)
}

func runExtensions(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if len(args) == 1 {
		active := s.Extensions.Has(ctx, args[0])
		return writeOutput(cmd, active, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, active)
			return err
		})
	}

	active := s.Extensions.Active(ctx)
	states := make([]extensionState, 0, len(s.Extensions.Names()))
	for _, name := range s.Extensions.Names() {
		states = append(states, extensionState{Name: name, Active: slices.Contains(active, name)})
	}
	return writeOutput(cmd, states, func(w io.Writer) error {
		rows := make([][]string, 0, len(states))
		for _, st := range states {
			mark := "no"
			if st.Active {
				mark = "yes"
			}
			rows = append(rows, []string{st.Name, mark})
		}
		_, err := fmt.Fprintln(w, renderTable([]string{"EXTENSION", "ACTIVE"}, rows))
		return err
	})
}
