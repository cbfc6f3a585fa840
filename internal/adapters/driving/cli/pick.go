package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/eddkit/internal/adapters/driving/tui"
	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// errNotTerminal is returned when pick cannot open an interactive session.
var errNotTerminal = errors.New("pick needs an interactive terminal")

// errNothingPicked is returned when the picker is cancelled.
var errNothingPicked = errors.New("nothing selected")

// isTerminal reports whether fd is a terminal.
var isTerminal = func(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

var pickCmd = &cobra.Command{
	Use:   "pick <customers|discounts|downloads>",
	Short: "Choose a record interactively and print its ID",
	Long: `Open an autocomplete picker. Type to search, move with the arrow keys,
press Enter to choose and Esc to cancel.

The picker draws on stderr, so only the chosen ID reaches stdout:
  customer=$(eddkit pick customers)`,
	Args: cobra.ExactArgs(1),
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

// pickPorts selects the search helper and label for an entity.
func pickPorts(s *Services, name string) (*tui.Ports, error) {
	entity, err := domain.ParseEntityType(name)
	if err != nil {
		return nil, fmt.Errorf("entity %q: %w", name, err)
	}

	switch entity {
	case domain.EntityCustomer:
		return &tui.Ports{Search: s.CustomerSearch, Label: "Customer", Placeholder: "name, email or ID"}, nil
	case domain.EntityAdjustment:
		return &tui.Ports{Search: s.DiscountSearch, Label: "Discount", Placeholder: "code, name or ID"}, nil
	case domain.EntityDownload:
		return &tui.Ports{Search: s.DownloadSearch, Label: "Download", Placeholder: "title or ID"}, nil
	default:
		return nil, fmt.Errorf("entity %q cannot be searched: %w", name, domain.ErrUnsupportedType)
	}
}

func runPick(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	ports, err := pickPorts(s, args[0])
	if err != nil {
		return err
	}
	if !isTerminal(os.Stdin.Fd()) || !isTerminal(os.Stderr.Fd()) {
		return errNotTerminal
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return err
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithContext(cmd.Context()), tea.WithOutput(os.Stderr))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running picker: %w", err)
	}

	chosen, ok := app.Chosen()
	if !ok {
		return errNothingPicked
	}
	return writeOutput(cmd, chosen, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, chosen.Value)
		return err
	})
}
