package driving

import "github.com/custodia-labs/libris-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, with environment
	// overrides applied on top of the config file.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetBackend selects the catalog store backend.
	SetBackend(backend domain.StoreBackend) error

	// SetURI sets the connection string for remote backends.
	SetURI(uri string) error

	// SetDatabase sets the database name.
	SetDatabase(name string) error

	// SetCollection sets the collection holding book records.
	SetCollection(name string) error

	// Validate checks if current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
