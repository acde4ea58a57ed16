// Package books provides the catalog list view for the TUI.
package books

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/libris-cli/internal/core/domain"
	"github.com/custodia-labs/libris-cli/internal/core/ports/driving"
)

// ErrNoCatalogService indicates that no catalog service was provided.
var ErrNoCatalogService = errors.New("catalog service not available")

// View lists every book sorted by title and edits stock in place.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	list      *list.BookList
	statusbar *status.Bar

	catalog driving.CatalogService
	ctx     context.Context

	width   int
	height  int
	ready   bool
	loading bool
	err     error
}

// NewView creates a new books view.
func NewView(s *styles.Styles, km *keymap.KeyMap, catalog driving.CatalogService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	l := list.NewBookList(s)
	l.SetEmptyMessage("No books found in the library.")

	return &View{
		styles:    s,
		keymap:    km,
		list:      l,
		statusbar: status.NewBar(s, km),
		catalog:   catalog,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context used for catalog calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the catalog.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.statusbar.SetState(status.StateLoading)
	return v.loadBooks()
}

func (v *View) loadBooks() tea.Cmd {
	catalog, ctx := v.catalog, v.ctx
	return func() tea.Msg {
		if catalog == nil {
			return messages.BooksLoaded{Err: ErrNoCatalogService}
		}
		books, err := catalog.ListAll(ctx)
		return messages.BooksLoaded{Books: books, Err: err}
	}
}

func (v *View) setStock(title string, stock int) tea.Cmd {
	catalog, ctx := v.catalog, v.ctx
	return func() tea.Msg {
		if catalog == nil {
			return messages.StockChanged{Title: title, Stock: stock, Err: ErrNoCatalogService}
		}
		updated, err := catalog.SetStock(ctx, title, stock)
		return messages.StockChanged{Title: title, Stock: stock, Updated: updated, Err: err}
	}
}

func (v *View) removeBook(title string) tea.Cmd {
	catalog, ctx := v.catalog, v.ctx
	return func() tea.Msg {
		if catalog == nil {
			return messages.BookRemoved{Title: title, Err: ErrNoCatalogService}
		}
		deleted, err := catalog.Remove(ctx, title)
		return messages.BookRemoved{Title: title, Deleted: deleted, Err: err}
	}
}

// Update handles messages for the books view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.BooksLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.Fail(msg.Err)
			return v, nil
		}
		v.err = nil
		v.list.SetBooks(msg.Books)
		v.statusbar.SetCount(len(msg.Books))
		if v.statusbar.State() == status.StateLoading {
			v.statusbar.Clear()
		}
		return v, nil

	case messages.StockChanged:
		return v.afterChange(msg.Err, msg.Updated, "Stock updated successfully.")

	case messages.BookRemoved:
		return v.afterChange(msg.Err, msg.Deleted, "Book deleted successfully.")

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.Fail(msg.Err)
		return v, nil
	}

	return v, nil
}

// afterChange reports a stock or delete outcome and reloads on success.
func (v *View) afterChange(err error, matched bool, success string) (*View, tea.Cmd) {
	if err != nil {
		v.err = err
		v.statusbar.Fail(err)
		return v, nil
	}
	if !matched {
		v.statusbar.Notice("No matching book found.")
		return v, v.loadBooks()
	}
	v.statusbar.Notice(success)
	return v, v.loadBooks()
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }

	case keymap.Matches(keyStr, v.keymap.Up), keymap.Matches(keyStr, v.keymap.Down):
		v.list, _ = v.list.Update(msg)
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Increment):
		if b := v.list.SelectedBook(); b != nil {
			return v, v.setStock(b.Title, b.Stock+1)
		}

	case keymap.Matches(keyStr, v.keymap.Decrement):
		if b := v.list.SelectedBook(); b != nil {
			if b.Stock <= 0 {
				v.statusbar.Notice("Stock is already zero.")
				return v, nil
			}
			return v, v.setStock(b.Title, b.Stock-1)
		}

	case keymap.Matches(keyStr, v.keymap.Delete):
		if b := v.list.SelectedBook(); b != nil {
			return v, v.removeBook(b.Title)
		}

	case keymap.Matches(keyStr, v.keymap.Reload):
		return v, v.Init()

	case keymap.Matches(keyStr, v.keymap.Search):
		return v, viewChange(messages.ViewSearch)

	case keymap.Matches(keyStr, v.keymap.Settings):
		return v, viewChange(messages.ViewSettings)

	case keymap.Matches(keyStr, v.keymap.Help):
		return v, viewChange(messages.ViewHelp)

	default:
		v.list, _ = v.list.Update(msg)
	}

	return v, nil
}

func viewChange(view messages.ViewType) tea.Cmd {
	return func() tea.Msg { return messages.ViewChanged{View: view} }
}

// View renders the books view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Library Catalog"))
	b.WriteString("\n\n")

	switch {
	case v.loading && v.list.IsEmpty():
		b.WriteString(v.styles.Muted.Render("Loading books..."))
	case v.err != nil && v.list.IsEmpty():
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	default:
		b.WriteString(v.list.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	b.WriteString("\n")
	b.WriteString(v.statusbar.View())
	return b.String()
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render(keymap.Hints(v.keymap.BooksHelp()))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	// title, blank, help, status bar
	v.list.SetDimensions(width, height-6)
	v.statusbar.SetWidth(width)
}

// Books returns the books currently shown.
func (v *View) Books() []domain.Book {
	return v.list.Books()
}

// SelectedIndex returns the selected row.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.statusbar
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
