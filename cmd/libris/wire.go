package main

import (
	"context"
	"errors"
	"io/fs"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/libris-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/libris-cli/internal/adapters/driven/storage"
	"github.com/custodia-labs/libris-cli/internal/core/domain"
	"github.com/custodia-labs/libris-cli/internal/core/ports/driving"
	"github.com/custodia-labs/libris-cli/internal/core/services"
	"github.com/custodia-labs/libris-cli/internal/logger"
)

// loadDotEnv copies LIBRIS_* and other variables from a .env file into the
// environment. Variables already set win. A missing file is not an error.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("reading %s: %v", path, err)
	}
}

// newSettingsService builds settings over the TOML config in configDir.
func newSettingsService(configDir string) (driving.SettingsService, error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, err
	}
	logger.Debug("config: %s", configStore.Path())
	return services.NewSettingsService(configStore), nil
}

// openCatalog connects the configured store and returns a release func that
// closes it.
func openCatalog(ctx context.Context, settings domain.StoreSettings) (driving.CatalogService, func(), error) {
	store, err := storage.Open(ctx, settings)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), settings.ConnectTimeout+domain.DefaultConnectTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Warn("closing store: %v", err)
		}
	}
	return services.NewCatalogService(store), closeFn, nil
}
