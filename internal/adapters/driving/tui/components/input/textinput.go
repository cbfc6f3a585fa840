// Package input provides the picker's search box.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/eddkit/internal/adapters/driving/tui/styles"
)

// minInputWidth keeps the box usable on narrow terminals.
const minInputWidth = 20

// TermInput wraps a bubbles textinput with a label naming what is searched.
type TermInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewTermInput creates a focused input labelled label, e.g. "Customer".
func NewTermInput(s *styles.Styles, label, placeholder string) *TermInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return &TermInput{
		textinput: ti,
		styles:    s,
		label:     label,
		width:     50,
	}
}

// Init starts the cursor blinking.
func (t *TermInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (t *TermInput) Update(msg tea.Msg) (*TermInput, tea.Cmd) {
	var cmd tea.Cmd
	t.textinput, cmd = t.textinput.Update(msg)
	return t, cmd
}

// View renders the label and the input box.
func (t *TermInput) View() string {
	label := t.styles.Title.Render(t.label + ": ")
	box := t.styles.InputField.Render(t.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, box)
}

// Value returns the current input value.
func (t *TermInput) Value() string {
	return t.textinput.Value()
}

// SetValue sets the input value.
func (t *TermInput) SetValue(value string) {
	t.textinput.SetValue(value)
}

// Focused returns whether the input is focused.
func (t *TermInput) Focused() bool {
	return t.textinput.Focused()
}

// SetWidth sets the width of the whole component.
func (t *TermInput) SetWidth(width int) {
	t.width = width
	t.textinput.Width = max(width-len(t.label)-8, minInputWidth)
}

// Width returns the current width.
func (t *TermInput) Width() int {
	return t.width
}

// Reset clears the input.
func (t *TermInput) Reset() {
	t.textinput.Reset()
}
