package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/libris-cli/internal/core/domain"
)

func newTestCatalog() *MockCatalogService {
	return &MockCatalogService{books: []domain.Book{
		{ID: "1", Title: "Dune", Author: "Frank Herbert", Genre: "SF", Stock: 2},
		{ID: "2", Title: "Emma", Author: "Jane Austen", Genre: "Classic", Stock: 0},
	}}
}

func newTestApp(t *testing.T) (*App, *MockCatalogService) {
	t.Helper()
	catalog := newTestCatalog()
	app, err := NewApp(NewPorts(catalog, nil))
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app, catalog
}

// drain runs a command and feeds every resulting message back into the app.
func drain(app *App, cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				drain(app, c)
			}
			return
		}
		switch msg.(type) {
		case nil:
			return
		case messages.BooksLoaded, messages.StockChanged, messages.BookRemoved,
			messages.SearchCompleted, messages.SettingsLoaded, messages.SettingsSaved,
			messages.ViewChanged, messages.Quit, messages.ErrorOccurred:
			_, cmd = app.Update(msg)
		default:
			return
		}
	}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(NewPorts(&MockCatalogService{}, nil))

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewBooks, app.CurrentView())
	assert.False(t, app.Ready())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingCatalogService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := NewApp(NewPorts(&MockCatalogService{}, nil))

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Same(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_InitLoadsCatalog(t *testing.T) {
	app, _ := newTestApp(t)

	drain(app, app.Init())

	require.Len(t, app.Books(), 2)
	assert.Equal(t, "Dune", app.Books()[0].Title)
}

func TestApp_ViewBeforeReady(t *testing.T) {
	app, _ := NewApp(NewPorts(&MockCatalogService{}, nil))

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_WindowSize(t *testing.T) {
	app, _ := NewApp(NewPorts(&MockCatalogService{}, nil))

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Same(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.Equal(t, 120, app.width)
}

func TestApp_CtrlCQuits(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)

	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestApp_QuitMessage(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(messages.Quit{})
	require.NotNil(t, cmd)

	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestApp_IncrementStockReloads(t *testing.T) {
	app, catalog := newTestApp(t)
	drain(app, app.Init())

	_, cmd := app.Update(runeKey("+"))
	drain(app, cmd)

	assert.Equal(t, 3, catalog.books[0].Stock)
	assert.Equal(t, 3, app.Books()[0].Stock)
	assert.Contains(t, app.View(), "Stock updated successfully.")
}

func TestApp_DeleteBook(t *testing.T) {
	app, catalog := newTestApp(t)
	drain(app, app.Init())

	_, cmd := app.Update(runeKey("d"))
	drain(app, cmd)

	require.Len(t, catalog.books, 1)
	assert.Len(t, app.Books(), 1)
	assert.Equal(t, "Emma", app.Books()[0].Title)
}

func TestApp_FindByAuthor(t *testing.T) {
	app, _ := newTestApp(t)
	drain(app, app.Init())

	_, cmd := app.Update(runeKey("/"))
	drain(app, cmd)
	require.Equal(t, messages.ViewSearch, app.CurrentView())

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	for _, r := range "Jane Austen" {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drain(app, cmd)

	require.Len(t, app.SearchResults(), 1)
	assert.Equal(t, "Emma", app.SearchResults()[0].Title)
	assert.Contains(t, app.View(), "Find Books")

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	drain(app, cmd)
	assert.Equal(t, messages.ViewBooks, app.CurrentView())
}

func TestApp_SettingsWithoutService(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(runeKey("s"))
	drain(app, cmd)

	assert.Equal(t, messages.ViewSettings, app.CurrentView())
	assert.Contains(t, app.View(), "settings service not available")
}

func TestApp_HelpView(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(runeKey("?"))
	drain(app, cmd)
	require.Equal(t, messages.ViewHelp, app.CurrentView())

	out := app.View()
	assert.Contains(t, out, "Help")
	assert.Contains(t, out, "stock +1")
	assert.Contains(t, out, "title/author")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewBooks, app.CurrentView())
}

func TestApp_HelpQuit(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewHelp})

	_, cmd := app.Update(runeKey("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestApp_StoreError(t *testing.T) {
	app, catalog := newTestApp(t)
	catalog.err = errors.New("server selection timeout")

	drain(app, app.Init())

	require.Error(t, app.Err())
	assert.Contains(t, app.View(), "server selection timeout")
}

func TestApp_ErrorOccurred(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, app.Err(), "boom")
}
