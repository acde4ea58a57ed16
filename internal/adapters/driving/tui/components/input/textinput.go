// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/libris-cli/internal/core/domain"
)

// QueryInput is a single-line input for an exact-match find, labelled with
// the field it matches on.
type QueryInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	field     domain.BookField
	width     int
}

// NewQueryInput creates a focused input matching on title.
func NewQueryInput(s *styles.Styles) *QueryInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	q := &QueryInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
	q.SetField(domain.FieldTitle)
	return q
}

// Init starts the cursor blinking.
func (q *QueryInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (q *QueryInput) Update(msg tea.Msg) (*QueryInput, tea.Cmd) {
	var cmd tea.Cmd
	q.textinput, cmd = q.textinput.Update(msg)
	return q, cmd
}

// View renders the label and input.
func (q *QueryInput) View() string {
	label := q.styles.Title.Render(q.Label() + ": ")
	field := q.styles.InputField.Render(q.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Label names the field being matched.
func (q *QueryInput) Label() string {
	if q.field == domain.FieldAuthor {
		return "Author"
	}
	return "Title"
}

// Field returns the field the query matches on.
func (q *QueryInput) Field() domain.BookField {
	return q.field
}

// SetField changes the matched field and its placeholder.
func (q *QueryInput) SetField(field domain.BookField) {
	q.field = field
	if field == domain.FieldAuthor {
		q.textinput.Placeholder = "Exact author name..."
	} else {
		q.textinput.Placeholder = "Exact book title..."
	}
}

// ToggleField switches between title and author.
func (q *QueryInput) ToggleField() {
	if q.field == domain.FieldTitle {
		q.SetField(domain.FieldAuthor)
	} else {
		q.SetField(domain.FieldTitle)
	}
}

// Value returns the current input value.
func (q *QueryInput) Value() string {
	return q.textinput.Value()
}

// SetValue sets the input value.
func (q *QueryInput) SetValue(value string) {
	q.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (q *QueryInput) Focus() tea.Cmd {
	return q.textinput.Focus()
}

// Blur removes focus from the input.
func (q *QueryInput) Blur() {
	q.textinput.Blur()
}

// Focused returns whether the input is focused.
func (q *QueryInput) Focused() bool {
	return q.textinput.Focused()
}

// SetWidth sets the width of the input, leaving room for the label.
func (q *QueryInput) SetWidth(width int) {
	q.width = width
	inputWidth := width - 12
	if inputWidth < 20 {
		inputWidth = 20
	}
	q.textinput.Width = inputWidth
}

// Width returns the current width.
func (q *QueryInput) Width() int {
	return q.width
}

// Reset clears the value and returns to matching on title.
func (q *QueryInput) Reset() {
	q.textinput.Reset()
	q.SetField(domain.FieldTitle)
}
