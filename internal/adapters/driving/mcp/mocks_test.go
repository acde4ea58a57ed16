package mcp

import (
	"context"

	"github.com/custodia-labs/libris-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/libris-cli/internal/core/domain"
	"github.com/custodia-labs/libris-cli/internal/core/services"
)

// failingCatalog is a driving.CatalogService whose every call fails.
type failingCatalog struct {
	err error
}

func (m *failingCatalog) Add(_ context.Context, _ domain.Book) (string, error) {
	return "", m.err
}

func (m *failingCatalog) Find(_ context.Context, _ domain.BookField, _ string) ([]domain.Book, error) {
	return nil, m.err
}

func (m *failingCatalog) SetStock(_ context.Context, _ string, _ int) (bool, error) {
	return false, m.err
}

func (m *failingCatalog) Remove(_ context.Context, _ string) (bool, error) {
	return false, m.err
}

func (m *failingCatalog) ListAll(_ context.Context) ([]domain.Book, error) {
	return nil, m.err
}

// newTestServer returns a server over an in-memory catalog seeded with books.
func newTestServer(books ...domain.Book) (*Server, *services.CatalogService) {
	catalog := services.NewCatalogService(memory.NewBookStore())
	for _, b := range books {
		if _, err := catalog.Add(context.Background(), b); err != nil {
			panic(err)
		}
	}
	server, err := NewServer(&Ports{Catalog: catalog})
	if err != nil {
		panic(err)
	}
	return server, catalog
}
