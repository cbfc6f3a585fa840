// Package list renders option pairs as a navigable list.
package list

import (
	"fmt"
	"html"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/eddkit/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// OptionList displays option pairs with a cursor.
type OptionList struct {
	options  []domain.OptionPair
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewOptionList creates an empty option list.
func NewOptionList(s *styles.Styles) *OptionList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &OptionList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Update moves the cursor on arrow keys.
func (l *OptionList) Update(msg tea.Msg) (*OptionList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // only arrows move the cursor
		switch msg.Type {
		case tea.KeyUp, tea.KeyCtrlP:
			l.MoveUp()
		case tea.KeyDown, tea.KeyCtrlN:
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the visible window of options, one per line.
func (l *OptionList) View() string {
	if len(l.options) == 0 {
		return l.styles.Muted.Render("No matches")
	}

	visible := max(l.height, 1)
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.options))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderOption(i, l.options[i]))
	}
	return strings.Join(lines, "\n")
}

// renderOption shows the unescaped label padded to the width, then the value.
func (l *OptionList) renderOption(index int, option domain.OptionPair) string {
	label := html.UnescapeString(option.Label)
	maxLabel := max(l.width-len(option.Value)-6, 10)
	if len([]rune(label)) > maxLabel {
		label = string([]rune(label)[:maxLabel-3]) + "..."
	}

	if index == l.selected {
		return l.styles.Selected.Render(fmt.Sprintf("> %-*s  %s", maxLabel, label, option.Value))
	}
	return l.styles.Normal.Render(fmt.Sprintf("  %-*s  ", maxLabel, label)) +
		l.styles.Value.Render(option.Value)
}

// SetOptions replaces the options and moves the cursor to the top.
func (l *OptionList) SetOptions(options []domain.OptionPair) {
	l.options = options
	l.selected = 0
}

// Options returns the current options.
func (l *OptionList) Options() []domain.OptionPair {
	return l.options
}

// Selected returns the cursor index.
func (l *OptionList) Selected() int {
	return l.selected
}

// SelectedOption returns the option under the cursor.
func (l *OptionList) SelectedOption() (domain.OptionPair, bool) {
	if l.selected < 0 || l.selected >= len(l.options) {
		return domain.OptionPair{}, false
	}
	return l.options[l.selected], true
}

// MoveUp moves the cursor up.
func (l *OptionList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves the cursor down.
func (l *OptionList) MoveDown() {
	if l.selected < len(l.options)-1 {
		l.selected++
	}
}

// SetDimensions sets the width and the number of visible rows.
func (l *OptionList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of options.
func (l *OptionList) Count() int {
	return len(l.options)
}
