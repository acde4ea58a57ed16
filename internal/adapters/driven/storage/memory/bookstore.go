// Package memory provides in-memory implementations of driven port interfaces.
// Data lives only for the lifetime of the process. Useful for tests and for
// trying the CLI without a database server.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/libris-cli/internal/core/domain"
	"github.com/custodia-labs/libris-cli/internal/core/ports/driven"
)

// Ensure BookStore implements the interface.
var _ driven.BookStore = (*BookStore)(nil)

// BookStore is an in-memory implementation of driven.BookStore.
// Books are kept in insertion order, which is the order "first match"
// refers to for title-addressed operations.
type BookStore struct {
	mu    sync.RWMutex
	books []domain.Book
}

// NewBookStore creates a new in-memory book store.
func NewBookStore() *BookStore {
	return &BookStore{
		books: make([]domain.Book, 0),
	}
}

// Insert stores a new book and assigns it a UUID.
func (s *BookStore) Insert(_ context.Context, book domain.Book) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	book.ID = uuid.New().String()
	s.books = append(s.books, book)
	return book.ID, nil
}

// Find returns every book whose field exactly equals value.
func (s *BookStore) Find(_ context.Context, field domain.BookField, value string) ([]domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Book, 0)
	if !field.IsValid() {
		return result, nil
	}
	for _, b := range s.books {
		if fieldValue(b, field) == value {
			result = append(result, b)
		}
	}
	return result, nil
}

// SetStock overwrites the stock of the first book with this title.
func (s *BookStore) SetStock(_ context.Context, title string, stock int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOfTitle(title)
	if i < 0 {
		return false, nil
	}
	s.books[i].Stock = stock
	return true, nil
}

// DeleteByTitle removes the first book with this title.
func (s *BookStore) DeleteByTitle(_ context.Context, title string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOfTitle(title)
	if i < 0 {
		return false, nil
	}
	s.books = append(s.books[:i], s.books[i+1:]...)
	return true, nil
}

// List returns every book ordered by title ascending.
// Books sharing a title keep their insertion order.
func (s *BookStore) List(_ context.Context) ([]domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Book, len(s.books))
	copy(result, s.books)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Title < result[j].Title
	})
	return result, nil
}

// Ping always succeeds.
func (s *BookStore) Ping(_ context.Context) error {
	return nil
}

// Close drops all books.
func (s *BookStore) Close(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = nil
	return nil
}

// indexOfTitle returns the position of the first book with title, or -1.
// Caller must hold the lock.
func (s *BookStore) indexOfTitle(title string) int {
	for i := range s.books {
		if s.books[i].Title == title {
			return i
		}
	}
	return -1
}

func fieldValue(b domain.Book, field domain.BookField) string {
	switch field {
	case domain.FieldTitle:
		return b.Title
	case domain.FieldAuthor:
		return b.Author
	default:
		return ""
	}
}
