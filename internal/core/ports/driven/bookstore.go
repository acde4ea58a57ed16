package driven

import (
	"context"

	"github.com/custodia-labs/libris-cli/internal/core/domain"
)

// BookStore persists book records in the catalog store.
//
// Title is not a unique key. Operations addressed by title act on the
// first matching record in the backend's natural order.
type BookStore interface {
	// Insert stores a new book unconditionally and returns the
	// store-assigned identifier. The book's ID field is ignored.
	Insert(ctx context.Context, book domain.Book) (string, error)

	// Find returns every book whose field exactly equals value.
	// An invalid field yields an empty result and no error.
	Find(ctx context.Context, field domain.BookField, value string) ([]domain.Book, error)

	// SetStock overwrites the stock of the first book with this title.
	// Returns true if a book matched, whether or not the value changed.
	SetStock(ctx context.Context, title string, stock int) (bool, error)

	// DeleteByTitle removes the first book with this title.
	// Returns true if a book was deleted.
	DeleteByTitle(ctx context.Context, title string) (bool, error)

	// List returns every book ordered by title ascending.
	List(ctx context.Context) ([]domain.Book, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the store connection.
	Close(ctx context.Context) error
}
