package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/views/books"
	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/libris-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports *Ports
	ctx   context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	booksView    *books.View
	searchView   *search.View
	settingsView *settings.View

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	h := help.New()
	h.Styles.FullKey = s.Subtitle
	h.Styles.FullDesc = s.Normal
	h.Styles.FullSeparator = s.Muted

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		help:         h,
		booksView:    books.NewView(s, km, ports.Catalog),
		searchView:   search.NewView(s, km, ports.Catalog),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewBooks,
	}, nil
}

// WithContext sets the context used for catalog calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.booksView.WithContext(ctx)
	a.searchView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("libris - Library Catalog"),
		a.booksView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.routeKey(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.BooksLoaded, messages.StockChanged, messages.BookRemoved:
		a.booksView, cmd = a.booksView.Update(msg)
		a.err = a.booksView.Err()
		return a, cmd

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
		case messages.ViewBooks, messages.ViewSettings, messages.ViewHelp:
			a.booksView, cmd = a.booksView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Cursor blinks and other ticks go to the active view.
	switch a.currentView {
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewBooks:
		a.booksView, cmd = a.booksView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

func (a *App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}
		if keymap.Matches(msg.String(), a.keymap.Back) || keymap.Matches(msg.String(), a.keymap.Help) {
			a.currentView = messages.ViewBooks
		}
	case messages.ViewBooks:
		a.booksView, cmd = a.booksView.Update(msg)
	}
	return a, cmd
}

// switchTo activates a view, reloading the catalog when returning to it.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view

	switch view {
	case messages.ViewBooks:
		return a.booksView.Init()
	case messages.ViewSearch:
		a.searchView.Reset()
		return a.searchView.Init()
	case messages.ViewSettings:
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewHelp:
	}
	return nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewBooks:
	}
	return a.booksView.View()
}

func (a *App) viewHelp() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(a.help.FullHelpView(a.keymap.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Muted.Render("Find matches a title or author exactly. Stock can never go below zero."))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("[esc] back to catalog"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Books returns the books shown in the catalog view.
func (a *App) Books() []domain.Book {
	return a.booksView.Books()
}

// SearchResults returns the books matched by the last find.
func (a *App) SearchResults() []domain.Book {
	return a.searchView.Books()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.booksView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
