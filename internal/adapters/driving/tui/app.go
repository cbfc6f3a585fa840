package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/eddkit/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/eddkit/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/eddkit/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/eddkit/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/eddkit/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/eddkit/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// debounce is how long typing must pause before a search runs.
const debounce = 150 * time.Millisecond

// chromeHeight is the number of rows used by everything but the list.
const chromeHeight = 6

// App is the option picker following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	input  *input.TermInput
	list   *list.OptionList
	status *status.Bar

	// seq counts edits to the term. Only the newest search is shown.
	seq int

	chosen    *domain.OptionPair
	cancelled bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a picker over the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating picker: %w", err)
	}

	label := ports.Label
	if label == "" {
		label = "Search"
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		keymap: km,
		input:  input.NewTermInput(s, label, ports.Placeholder),
		list:   list.NewOptionList(s),
		status: status.NewBar(s, km),
	}, nil
}

// WithContext sets the context passed to searches.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model. It lists the unfiltered first page.
func (a *App) Init() tea.Cmd {
	a.status.SetState(status.StateSearching)
	return tea.Batch(a.input.Init(), a.search(a.seq, ""))
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.input.SetWidth(msg.Width)
		a.list.SetDimensions(msg.Width, max(msg.Height-chromeHeight, 1))
		a.status.SetWidth(msg.Width)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.SearchDue:
		if msg.Seq != a.seq {
			return a, nil
		}
		return a, a.search(msg.Seq, a.input.Value())

	case messages.OptionsLoaded:
		if msg.Seq != a.seq {
			return a, nil
		}
		a.list.SetOptions(msg.Options)
		a.status.SetResultCount(len(msg.Options))
		a.status.SetState(status.StateResults)
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, a.keymap.Quit), keymap.Matches(keyStr, a.keymap.Cancel):
		a.cancelled = true
		return a, tea.Quit

	case keymap.Matches(keyStr, a.keymap.Select):
		if option, ok := a.list.SelectedOption(); ok {
			a.chosen = &option
			return a, tea.Quit
		}
		return a, nil

	case keymap.Matches(keyStr, a.keymap.Up), keymap.Matches(keyStr, a.keymap.Down):
		var cmd tea.Cmd
		a.list, cmd = a.list.Update(msg)
		return a, cmd

	case keymap.Matches(keyStr, a.keymap.Clear):
		a.input.Reset()
		return a, a.termChanged()
	}

	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if a.input.Value() == before {
		return a, cmd
	}
	return a, tea.Batch(cmd, a.termChanged())
}

// termChanged schedules a search once typing pauses.
func (a *App) termChanged() tea.Cmd {
	a.seq++
	seq := a.seq
	a.status.SetState(status.StateSearching)
	return tea.Tick(debounce, func(time.Time) tea.Msg {
		return messages.SearchDue{Seq: seq}
	})
}

// search runs the helper outside the update loop.
func (a *App) search(seq int, term string) tea.Cmd {
	ctx := a.ctx
	searcher := a.ports.Search
	extra := a.ports.Extra
	return func() tea.Msg {
		return messages.OptionsLoaded{
			Seq:     seq,
			Term:    term,
			Options: searcher.Results(ctx, term, extra),
		}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		a.input.View(),
		"",
		a.list.View(),
		"",
		a.status.View(),
	)
}

// Chosen returns the option the user selected. It reports false when the
// picker was cancelled.
func (a *App) Chosen() (domain.OptionPair, bool) {
	if a.chosen == nil {
		return domain.OptionPair{}, false
	}
	return *a.chosen, true
}

// Cancelled reports whether the user left without choosing.
func (a *App) Cancelled() bool {
	return a.cancelled
}
