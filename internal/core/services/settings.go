package services

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/custodia-labs/libris-cli/internal/core/domain"
	"github.com/custodia-labs/libris-cli/internal/core/ports/driven"
	"github.com/custodia-labs/libris-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStoreBackend        = "store.backend"
	keyStoreURI            = "store.uri"
	keyStoreDatabase       = "store.database"
	keyStoreCollection     = "store.collection"
	keyStoreDataDir        = "store.data_dir"
	keyStoreConnectTimeout = "store.connect_timeout_seconds"
)

// Environment variables that override the config file.
const (
	EnvStoreBackend    = "LIBRIS_STORE_BACKEND"
	EnvStoreURI        = "LIBRIS_STORE_URI"
	EnvStoreDatabase   = "LIBRIS_STORE_DATABASE"
	EnvStoreCollection = "LIBRIS_STORE_COLLECTION"
	EnvDataDir         = "LIBRIS_DATA_DIR"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Each value comes from the environment when set, else the config file,
// else the default.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Store: domain.StoreSettings{
			Backend:        domain.StoreBackend(s.getString(keyStoreBackend, EnvStoreBackend, defaults.Store.Backend.String())),
			URI:            s.getString(keyStoreURI, EnvStoreURI, defaults.Store.URI),
			Database:       s.getString(keyStoreDatabase, EnvStoreDatabase, defaults.Store.Database),
			Collection:     s.getString(keyStoreCollection, EnvStoreCollection, defaults.Store.Collection),
			DataDir:        s.getString(keyStoreDataDir, EnvDataDir, defaults.Store.DataDir),
			ConnectTimeout: s.getTimeout(defaults.Store.ConnectTimeout),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	store := settings.Store

	if err := s.configStore.Set(keyStoreBackend, store.Backend.String()); err != nil {
		return fmt.Errorf("save store backend: %w", err)
	}
	if err := s.configStore.Set(keyStoreURI, store.URI); err != nil {
		return fmt.Errorf("save store uri: %w", err)
	}
	if err := s.configStore.Set(keyStoreDatabase, store.Database); err != nil {
		return fmt.Errorf("save store database: %w", err)
	}
	if err := s.configStore.Set(keyStoreCollection, store.Collection); err != nil {
		return fmt.Errorf("save store collection: %w", err)
	}
	if err := s.configStore.Set(keyStoreDataDir, store.DataDir); err != nil {
		return fmt.Errorf("save store data_dir: %w", err)
	}
	seconds := int(store.ConnectTimeout / time.Second)
	if err := s.configStore.Set(keyStoreConnectTimeout, seconds); err != nil {
		return fmt.Errorf("save store connect timeout: %w", err)
	}

	return nil
}

// SetBackend selects the catalog store backend.
func (s *SettingsService) SetBackend(backend domain.StoreBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: store backend %q", domain.ErrUnsupportedType, backend)
	}
	return s.set(keyStoreBackend, backend.String())
}

// SetURI sets the connection string for remote backends.
func (s *SettingsService) SetURI(uri string) error {
	if uri == "" {
		return fmt.Errorf("%w: uri must not be empty", domain.ErrInvalidInput)
	}
	return s.set(keyStoreURI, uri)
}

// SetDatabase sets the database name.
func (s *SettingsService) SetDatabase(name string) error {
	if name == "" {
		return fmt.Errorf("%w: database name must not be empty", domain.ErrInvalidInput)
	}
	return s.set(keyStoreDatabase, name)
}

// SetCollection sets the collection holding book records.
func (s *SettingsService) SetCollection(name string) error {
	if name == "" {
		return fmt.Errorf("%w: collection name must not be empty", domain.ErrInvalidInput)
	}
	return s.set(keyStoreCollection, name)
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Store.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) set(key string, value any) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// getString resolves a value from the environment, then config, then default.
func (s *SettingsService) getString(key, envKey, defaultVal string) string {
	if v, ok := os.LookupEnv(envKey); ok && v != "" {
		return v
	}
	if s.configStore != nil {
		if v := s.configStore.GetString(key); v != "" {
			return v
		}
	}
	return defaultVal
}

func (s *SettingsService) getTimeout(defaultVal time.Duration) time.Duration {
	if s.configStore == nil {
		return defaultVal
	}
	if raw, ok := s.configStore.Get(keyStoreConnectTimeout); ok {
		switch v := raw.(type) {
		case int64:
			return time.Duration(v) * time.Second
		case int:
			return time.Duration(v) * time.Second
		case string:
			if n, err := strconv.Atoi(v); err == nil {
				return time.Duration(n) * time.Second
			}
		}
	}
	return defaultVal
}
