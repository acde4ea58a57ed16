package driving

import (
	"context"

	"github.com/custodia-labs/libris-cli/internal/core/domain"
)

// CatalogService manages the book catalog.
type CatalogService interface {
	// Add stores a new book and returns its store-assigned identifier.
	// No duplicate check is made.
	Add(ctx context.Context, book domain.Book) (string, error)

	// Find returns books whose field exactly matches value.
	// Fields other than title and author yield an empty result.
	Find(ctx context.Context, field domain.BookField, value string) ([]domain.Book, error)

	// SetStock overwrites the stock of the first book with this title.
	// Returns false if no book matched.
	SetStock(ctx context.Context, title string, stock int) (bool, error)

	// Remove deletes the first book with this title.
	// Returns false if no book matched.
	Remove(ctx context.Context, title string) (bool, error)

	// ListAll returns every book ordered by title ascending.
	ListAll(ctx context.Context) ([]domain.Book, error)
}
