// Package search provides the find view for the TUI: an exact match on
// title or author.
package search

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/libris-cli/internal/core/domain"
	"github.com/custodia-labs/libris-cli/internal/core/ports/driving"
)

// View is the find view: a query input above the matching books.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.BookList
	statusbar *status.Bar

	catalog driving.CatalogService
	ctx     context.Context

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = typing a query, false = navigating matches
	searched   bool
}

// NewView creates a new find view.
func NewView(s *styles.Styles, km *keymap.KeyMap, catalog driving.CatalogService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewQueryInput(s),
		list:       list.NewBookList(s),
		statusbar:  status.NewBar(s, km),
		catalog:    catalog,
		ctx:        context.Background(),
		width:      80,
		height:     24,
		focusInput: true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the find view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.Fail(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	if keymap.Matches(keyStr, v.keymap.Back) {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewBooks}
		}
	}

	if keymap.Matches(keyStr, v.keymap.ToggleField) {
		v.input.ToggleField()
		return v, nil
	}

	if v.focusInput {
		if keymap.Matches(keyStr, v.keymap.Submit) {
			value := v.input.Value()
			if value == "" {
				return v, nil
			}
			v.statusbar.SetState(status.StateLoading)
			return v, v.find(v.input.Field(), value)
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch keyStr {
	case "n", "/":
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

func (v *View) find(field domain.BookField, value string) tea.Cmd {
	catalog, ctx := v.catalog, v.ctx
	return func() tea.Msg {
		if catalog == nil {
			return messages.SearchCompleted{Field: field, Value: value, Err: ErrNoCatalogService}
		}
		books, err := catalog.Find(ctx, field, value)
		return messages.SearchCompleted{Field: field, Value: value, Books: books, Err: err}
	}
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.Fail(msg.Err)
		return
	}

	v.err = nil
	v.searched = true
	v.list.SetBooks(msg.Books)
	v.statusbar.Clear()
	v.statusbar.SetCount(len(msg.Books))

	if len(msg.Books) > 0 {
		v.focusInput = false
		v.input.Blur()
	}
}

// View renders the find view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("Find Books"), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.searched {
		sections = append(sections, v.list.View())
	} else {
		sections = append(sections, v.styles.Muted.Render(
			fmt.Sprintf("Type an exact %s and press enter.", strings.ToLower(v.input.Label()))))
	}

	sections = append(sections, "", v.renderHelp(), v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderHelp() string {
	if v.focusInput {
		return v.styles.Help.Render(keymap.Hints(v.keymap.SearchHelp()))
	}
	return v.styles.Help.Render("[j/k] move  [n] new search  [tab] title/author  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current query text.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the query text.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Field returns the field being matched.
func (v *View) Field() domain.BookField {
	return v.input.Field()
}

// Books returns the current matches.
func (v *View) Books() []domain.Book {
	return v.list.Books()
}

// SelectedIndex returns the index of the selected match.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.statusbar
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Reset returns the view to an empty title query.
func (v *View) Reset() {
	v.focusInput = true
	v.searched = false
	v.input.Reset()
	v.input.Focus()
	v.list.SetBooks(nil)
	v.err = nil
	v.statusbar.Clear()
	v.statusbar.SetCount(0)
}
