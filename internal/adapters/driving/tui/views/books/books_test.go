package books

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/libris-cli/internal/core/domain"
)

// MockCatalogService implements driving.CatalogService for testing.
type MockCatalogService struct {
	ListAllFunc  func(ctx context.Context) ([]domain.Book, error)
	SetStockFunc func(ctx context.Context, title string, stock int) (bool, error)
	RemoveFunc   func(ctx context.Context, title string) (bool, error)
}

func (m *MockCatalogService) Add(ctx context.Context, book domain.Book) (string, error) {
	return "id", nil
}

func (m *MockCatalogService) Find(ctx context.Context, field domain.BookField, value string) ([]domain.Book, error) {
	return []domain.Book{}, nil
}

func (m *MockCatalogService) SetStock(ctx context.Context, title string, stock int) (bool, error) {
	if m.SetStockFunc != nil {
		return m.SetStockFunc(ctx, title, stock)
	}
	return true, nil
}

func (m *MockCatalogService) Remove(ctx context.Context, title string) (bool, error) {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, title)
	}
	return true, nil
}

func (m *MockCatalogService) ListAll(ctx context.Context) ([]domain.Book, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return []domain.Book{}, nil
}

func sampleBooks() []domain.Book {
	return []domain.Book{
		{ID: "1", Title: "Book A", Author: "X", Genre: "G", Stock: 1},
		{ID: "2", Title: "Book B", Author: "Y", Genre: "G", Stock: 0},
	}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedView(t *testing.T, mock *MockCatalogService) *View {
	t.Helper()
	view := NewView(nil, nil, mock)
	view, _ = view.Update(messages.BooksLoaded{Books: sampleBooks()})
	return view
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil, &MockCatalogService{})

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.NotNil(t, view.keymap)
	assert.False(t, view.ready)
	assert.Empty(t, view.Books())
}

func TestView_Init_LoadsBooks(t *testing.T) {
	mock := &MockCatalogService{
		ListAllFunc: func(ctx context.Context) ([]domain.Book, error) {
			return sampleBooks(), nil
		},
	}
	view := NewView(nil, nil, mock)

	cmd := view.Init()
	require.NotNil(t, cmd)
	assert.Equal(t, status.StateLoading, view.Status().State())

	loaded, ok := cmd().(messages.BooksLoaded)
	require.True(t, ok)
	assert.Len(t, loaded.Books, 2)

	view, _ = view.Update(loaded)
	assert.Len(t, view.Books(), 2)
	assert.Equal(t, status.StateReady, view.Status().State())
	assert.Equal(t, 2, view.Status().Count())
}

func TestView_Init_NilService(t *testing.T) {
	view := NewView(nil, nil, nil)

	loaded, ok := view.Init()().(messages.BooksLoaded)
	require.True(t, ok)
	assert.ErrorIs(t, loaded.Err, ErrNoCatalogService)
}

func TestView_BooksLoadedError(t *testing.T) {
	view := NewView(nil, nil, &MockCatalogService{})

	view, _ = view.Update(messages.BooksLoaded{Err: errors.New("store down")})

	assert.Error(t, view.Err())
	assert.Equal(t, status.StateError, view.Status().State())
	assert.Contains(t, view.View(), "store down")
}

func TestView_Navigation(t *testing.T) {
	view := loadedView(t, &MockCatalogService{})

	view, _ = view.Update(runeKey("j"))
	assert.Equal(t, 1, view.SelectedIndex())

	view, _ = view.Update(runeKey("k"))
	assert.Equal(t, 0, view.SelectedIndex())
}

func TestView_IncrementStock(t *testing.T) {
	var gotTitle string
	var gotStock int
	mock := &MockCatalogService{
		SetStockFunc: func(ctx context.Context, title string, stock int) (bool, error) {
			gotTitle, gotStock = title, stock
			return true, nil
		},
	}
	view := loadedView(t, mock)

	_, cmd := view.Update(runeKey("+"))
	require.NotNil(t, cmd)
	changed, ok := cmd().(messages.StockChanged)
	require.True(t, ok)

	assert.Equal(t, "Book A", gotTitle)
	assert.Equal(t, 2, gotStock)
	assert.True(t, changed.Updated)

	view, reload := view.Update(changed)
	assert.NotNil(t, reload)
	assert.Equal(t, "Stock updated successfully.", view.Status().Message())
}

func TestView_DecrementStock(t *testing.T) {
	var gotStock int
	mock := &MockCatalogService{
		SetStockFunc: func(ctx context.Context, title string, stock int) (bool, error) {
			gotStock = stock
			return true, nil
		},
	}
	view := loadedView(t, mock)

	_, cmd := view.Update(runeKey("-"))
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, 0, gotStock)
}

func TestView_DecrementAtZeroDoesNothing(t *testing.T) {
	called := false
	mock := &MockCatalogService{
		SetStockFunc: func(ctx context.Context, title string, stock int) (bool, error) {
			called = true
			return true, nil
		},
	}
	view := loadedView(t, mock)
	view, _ = view.Update(runeKey("j"))

	view, cmd := view.Update(runeKey("-"))
	assert.Nil(t, cmd)
	assert.False(t, called)
	assert.Equal(t, "Stock is already zero.", view.Status().Message())
}

func TestView_StockChanged_NoMatch(t *testing.T) {
	view := loadedView(t, &MockCatalogService{})

	view, cmd := view.Update(messages.StockChanged{Title: "Gone", Stock: 1, Updated: false})

	assert.NotNil(t, cmd)
	assert.Equal(t, "No matching book found.", view.Status().Message())
}

func TestView_StockChanged_Error(t *testing.T) {
	view := loadedView(t, &MockCatalogService{})

	view, cmd := view.Update(messages.StockChanged{Title: "Book A", Err: errors.New("timeout")})

	assert.Nil(t, cmd)
	assert.Equal(t, status.StateError, view.Status().State())
	assert.Equal(t, "timeout", view.Status().Message())
}

func TestView_DeleteBook(t *testing.T) {
	var gotTitle string
	mock := &MockCatalogService{
		RemoveFunc: func(ctx context.Context, title string) (bool, error) {
			gotTitle = title
			return true, nil
		},
	}
	view := loadedView(t, mock)
	view, _ = view.Update(runeKey("j"))

	_, cmd := view.Update(runeKey("d"))
	require.NotNil(t, cmd)
	removed, ok := cmd().(messages.BookRemoved)
	require.True(t, ok)
	assert.Equal(t, "Book B", gotTitle)

	view, reload := view.Update(removed)
	assert.NotNil(t, reload)
	assert.Equal(t, "Book deleted successfully.", view.Status().Message())
}

func TestView_KeysOnEmptyListDoNothing(t *testing.T) {
	view := NewView(nil, nil, &MockCatalogService{})

	for _, k := range []string{"+", "-", "d"} {
		_, cmd := view.Update(runeKey(k))
		assert.Nil(t, cmd, "key %s", k)
	}
}

func TestView_Reload(t *testing.T) {
	view := loadedView(t, &MockCatalogService{})

	_, cmd := view.Update(runeKey("r"))
	require.NotNil(t, cmd)
	_, ok := cmd().(messages.BooksLoaded)
	assert.True(t, ok)
}

func TestView_NavigationKeys(t *testing.T) {
	tests := []struct {
		key  string
		view messages.ViewType
	}{
		{"/", messages.ViewSearch},
		{"s", messages.ViewSettings},
		{"?", messages.ViewHelp},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			view := loadedView(t, &MockCatalogService{})

			_, cmd := view.Update(runeKey(tt.key))
			require.NotNil(t, cmd)
			changed, ok := cmd().(messages.ViewChanged)
			require.True(t, ok)
			assert.Equal(t, tt.view, changed.View)
		})
	}
}

func TestView_Quit(t *testing.T) {
	view := loadedView(t, &MockCatalogService{})

	_, cmd := view.Update(runeKey("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(messages.Quit)
	assert.True(t, ok)
}

func TestView_WindowSize(t *testing.T) {
	view := NewView(nil, nil, nil)

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 100, view.width)
	assert.Equal(t, 100, view.Status().Width())
}

func TestView_Render(t *testing.T) {
	view := loadedView(t, &MockCatalogService{})
	view.SetDimensions(100, 30)

	out := view.View()
	assert.Contains(t, out, "Library Catalog")
	assert.Contains(t, out, "Book A")
	assert.Contains(t, out, "Book B")
	assert.Contains(t, out, "[+/-] stock")
}

func TestView_RenderEmpty(t *testing.T) {
	view := NewView(nil, nil, &MockCatalogService{})
	view, _ = view.Update(messages.BooksLoaded{Books: []domain.Book{}})

	assert.Contains(t, view.View(), "No books found in the library.")
}
