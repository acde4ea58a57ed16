// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/libris-cli/internal/core/domain"
)

// BookList displays books as a navigable table.
type BookList struct {
	books    []domain.Book
	selected int
	styles   *styles.Styles
	empty    string
	width    int
	height   int
}

// NewBookList creates a new book list component.
func NewBookList(s *styles.Styles) *BookList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &BookList{
		styles: s,
		empty:  "No books found.",
		width:  80,
		height: 20,
	}
}

// Init initialises the book list.
func (l *BookList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation keys.
func (l *BookList) Update(msg tea.Msg) (*BookList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if len(l.books) > 0 {
				l.selected = len(l.books) - 1
			}
		}
	}
	return l, nil
}

// View renders the table.
func (l *BookList) View() string {
	if len(l.books) == 0 {
		return l.styles.Muted.Render(l.empty)
	}

	titleW, authorW, genreW := l.columnWidths()
	lines := make([]string, 0, len(l.books)+1)
	lines = append(lines, l.styles.Header.Render(
		fmt.Sprintf("  %-*s %-*s %-*s %5s", titleW, "Title", authorW, "Author", genreW, "Genre", "Stock")))

	start, end := l.visibleRange()
	for i := start; i < end; i++ {
		lines = append(lines, l.renderBook(i, &l.books[i], titleW, authorW, genreW))
	}

	if end-start < len(l.books) {
		lines = append(lines, l.styles.Muted.Render(
			fmt.Sprintf("  %d-%d of %d", start+1, end, len(l.books))))
	}
	return strings.Join(lines, "\n")
}

func (l *BookList) renderBook(index int, b *domain.Book, titleW, authorW, genreW int) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	row := fmt.Sprintf("%s%-*s %-*s %-*s ", indicator,
		titleW, truncate(b.Title, titleW),
		authorW, truncate(b.Author, authorW),
		genreW, truncate(b.Genre, genreW))
	stock := fmt.Sprintf("%5d", b.Stock)

	if index == l.selected {
		return l.styles.Selected.Render(row + stock)
	}
	return l.styles.Normal.Render(row) + l.styles.Stock(b.Stock, stock)
}

// columnWidths splits the width between title, author and genre.
func (l *BookList) columnWidths() (title, author, genre int) {
	avail := l.width - 2 - 3 - 5 - 2
	if avail < 30 {
		avail = 30
	}
	title = avail * 45 / 100
	author = avail * 35 / 100
	genre = avail - title - author
	return title, author, genre
}

// visibleRange returns the window of rows that fits the height, keeping the
// selection visible.
func (l *BookList) visibleRange() (start, end int) {
	visible := l.height - 2
	if visible < 1 {
		visible = 1
	}
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end = start + visible
	if end > len(l.books) {
		end = len(l.books)
	}
	return start, end
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// SetBooks replaces the books, keeping the selection in range.
func (l *BookList) SetBooks(books []domain.Book) {
	l.books = books
	if l.selected >= len(books) {
		l.selected = len(books) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// Books returns the current books.
func (l *BookList) Books() []domain.Book {
	return l.books
}

// SetEmptyMessage sets the text shown when there are no books.
func (l *BookList) SetEmptyMessage(msg string) {
	l.empty = msg
}

// Selected returns the index of the selected book.
func (l *BookList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *BookList) SetSelected(index int) {
	if index >= 0 && index < len(l.books) {
		l.selected = index
	}
}

// SelectedBook returns the currently selected book, or nil if none.
func (l *BookList) SelectedBook() *domain.Book {
	if len(l.books) == 0 || l.selected < 0 || l.selected >= len(l.books) {
		return nil
	}
	return &l.books[l.selected]
}

// MoveUp moves selection up.
func (l *BookList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *BookList) MoveDown() {
	if l.selected < len(l.books)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *BookList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of books.
func (l *BookList) Count() int {
	return len(l.books)
}

// IsEmpty returns whether the list is empty.
func (l *BookList) IsEmpty() bool {
	return len(l.books) == 0
}
