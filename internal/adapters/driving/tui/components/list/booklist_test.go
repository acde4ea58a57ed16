package list

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/libris-cli/internal/core/domain"
)

func sampleBooks() []domain.Book {
	return []domain.Book{
		{ID: "1", Title: "1984", Author: "George Orwell", Genre: "Dystopian", Stock: 5},
		{ID: "2", Title: "Dune", Author: "Frank Herbert", Genre: "SF", Stock: 0},
		{ID: "3", Title: "Emma", Author: "Jane Austen", Genre: "Romance", Stock: 2},
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewBookList(t *testing.T) {
	l := NewBookList(nil)

	require.NotNil(t, l)
	assert.True(t, l.IsEmpty())
	assert.Nil(t, l.SelectedBook())
	assert.Nil(t, l.Init())
}

func TestBookList_EmptyView(t *testing.T) {
	l := NewBookList(nil)
	assert.Contains(t, l.View(), "No books found.")

	l.SetEmptyMessage("No books found in the library.")
	assert.Contains(t, l.View(), "No books found in the library.")
}

func TestBookList_ViewShowsRows(t *testing.T) {
	l := NewBookList(nil)
	l.SetBooks(sampleBooks())

	view := l.View()
	assert.Contains(t, view, "Title")
	assert.Contains(t, view, "Stock")
	assert.Contains(t, view, "1984")
	assert.Contains(t, view, "Frank Herbert")
	assert.Contains(t, view, "Romance")
	assert.Contains(t, view, "> ")
}

func TestBookList_Navigation(t *testing.T) {
	l := NewBookList(nil)
	l.SetBooks(sampleBooks())

	l, _ = l.Update(key("j"))
	assert.Equal(t, 1, l.Selected())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, l.Selected())

	l, _ = l.Update(key("j"))
	assert.Equal(t, 2, l.Selected(), "stays on last row")

	l, _ = l.Update(key("k"))
	assert.Equal(t, 1, l.Selected())

	l, _ = l.Update(key("g"))
	assert.Equal(t, 0, l.Selected())

	l, _ = l.Update(key("G"))
	assert.Equal(t, 2, l.Selected())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "Dune", l.SelectedBook().Title)
}

func TestBookList_SetBooksClampsSelection(t *testing.T) {
	l := NewBookList(nil)
	l.SetBooks(sampleBooks())
	l.SetSelected(2)

	l.SetBooks(sampleBooks()[:1])
	assert.Equal(t, 0, l.Selected())

	l.SetBooks(nil)
	assert.Equal(t, 0, l.Selected())
	assert.Nil(t, l.SelectedBook())
}

func TestBookList_SetSelectedIgnoresOutOfRange(t *testing.T) {
	l := NewBookList(nil)
	l.SetBooks(sampleBooks())

	l.SetSelected(10)
	assert.Equal(t, 0, l.Selected())
	l.SetSelected(-1)
	assert.Equal(t, 0, l.Selected())
}

func TestBookList_ScrollsToKeepSelectionVisible(t *testing.T) {
	books := make([]domain.Book, 30)
	for i := range books {
		books[i] = domain.Book{Title: fmt.Sprintf("Book %02d", i)}
	}

	l := NewBookList(nil)
	l.SetDimensions(80, 7)
	l.SetBooks(books)
	l.SetSelected(20)

	view := l.View()
	assert.Contains(t, view, "Book 20")
	assert.NotContains(t, view, "Book 00")
	assert.Contains(t, view, "of 30")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Dune", truncate("Dune", 10))
	assert.Equal(t, "The Gr...", truncate("The Great Gatsby", 9))
	assert.Equal(t, "Th", truncate("The", 2))
	assert.Equal(t, "Ñandú", truncate("Ñandú", 5))
}
