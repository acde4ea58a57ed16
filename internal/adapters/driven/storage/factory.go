// Package storage selects and opens the configured BookStore backend.
package storage

import (
	"context"
	"fmt"

	"github.com/custodia-labs/libris-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/libris-cli/internal/adapters/driven/storage/mongodb"
	"github.com/custodia-labs/libris-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/libris-cli/internal/core/domain"
	"github.com/custodia-labs/libris-cli/internal/core/ports/driven"
	"github.com/custodia-labs/libris-cli/internal/logger"
)

// Open creates a BookStore based on settings.Backend.
//
// Supported backends:
//
//	"mongo"  - MongoDB at settings.URI (default)
//	"sqlite" - SQLite database at settings.DataDir/catalog.db
//	"memory" - In-memory (ephemeral, for testing)
//
// Any failure to reach the backend is wrapped with domain.ErrStoreUnavailable.
func Open(ctx context.Context, settings domain.StoreSettings) (driven.BookStore, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	logger.Section("Catalog Store")
	logger.Info("backend: %s", settings.Backend.Description())

	switch settings.Backend {
	case domain.StoreBackendMongo:
		store, err := mongodb.NewStore(ctx, settings)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
		return store, nil
	case domain.StoreBackendSQLite:
		store, err := sqlite.NewStore(settings.DataDir)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
		return store, nil
	case domain.StoreBackendMemory:
		return memory.NewBookStore(), nil
	default:
		return nil, fmt.Errorf("%w: store backend %q (supported: mongo, sqlite, memory)",
			domain.ErrUnsupportedType, settings.Backend)
	}
}
