package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/libris-cli/internal/core/domain"
	"github.com/custodia-labs/libris-cli/internal/core/ports/driven"
	"github.com/custodia-labs/libris-cli/internal/core/ports/driving"
	"github.com/custodia-labs/libris-cli/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService manages the book catalog on top of a BookStore.
type CatalogService struct {
	bookStore driven.BookStore
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(bookStore driven.BookStore) *CatalogService {
	return &CatalogService{bookStore: bookStore}
}

// Add stores a new book and returns its store-assigned identifier.
func (s *CatalogService) Add(ctx context.Context, book domain.Book) (string, error) {
	if s.bookStore == nil {
		return "", domain.ErrNotImplemented
	}
	if err := book.Validate(); err != nil {
		return "", err
	}
	book.ID = ""

	logger.Debug("Adding book: %q by %q (genre=%q, stock=%d)", book.Title, book.Author, book.Genre, book.Stock)
	id, err := s.bookStore.Insert(ctx, book)
	if err != nil {
		return "", fmt.Errorf("add book: %w", err)
	}
	logger.Debug("Book stored with ID %s", id)
	return id, nil
}

// Find returns books whose field exactly matches value.
// Unsupported fields return an empty result without touching the store.
func (s *CatalogService) Find(ctx context.Context, field domain.BookField, value string) ([]domain.Book, error) {
	if s.bookStore == nil {
		return nil, domain.ErrNotImplemented
	}
	if !field.IsValid() {
		logger.Debug("Unsupported lookup field %q, returning no results", field)
		return []domain.Book{}, nil
	}

	logger.Debug("Finding books where %s = %q", field, value)
	books, err := s.bookStore.Find(ctx, field, value)
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	logger.Debug("Found %d book(s)", len(books))
	return books, nil
}

// SetStock overwrites the stock of the first book with this title.
func (s *CatalogService) SetStock(ctx context.Context, title string, stock int) (bool, error) {
	if s.bookStore == nil {
		return false, domain.ErrNotImplemented
	}
	if err := domain.ValidateStock(stock); err != nil {
		return false, err
	}

	logger.Debug("Setting stock of %q to %d", title, stock)
	matched, err := s.bookStore.SetStock(ctx, title, stock)
	if err != nil {
		return false, fmt.Errorf("update stock: %w", err)
	}
	if !matched {
		logger.Debug("No book titled %q", title)
	}
	return matched, nil
}

// Remove deletes the first book with this title.
func (s *CatalogService) Remove(ctx context.Context, title string) (bool, error) {
	if s.bookStore == nil {
		return false, domain.ErrNotImplemented
	}

	logger.Debug("Deleting book %q", title)
	deleted, err := s.bookStore.DeleteByTitle(ctx, title)
	if err != nil {
		return false, fmt.Errorf("delete book: %w", err)
	}
	if !deleted {
		logger.Debug("No book titled %q", title)
	}
	return deleted, nil
}

// ListAll returns every book ordered by title ascending.
func (s *CatalogService) ListAll(ctx context.Context) ([]domain.Book, error) {
	if s.bookStore == nil {
		return nil, domain.ErrNotImplemented
	}

	books, err := s.bookStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	logger.Debug("Listed %d book(s)", len(books))
	return books, nil
}
