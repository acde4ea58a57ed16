package domain

import (
	"fmt"
	"net/url"
	"time"
)

const unknownDescription = "Unknown"

// StoreBackend identifies which catalog store implementation is used.
type StoreBackend string

// Available store backends.
const (
	// StoreBackendMongo is a MongoDB document database.
	StoreBackendMongo StoreBackend = "mongo"

	// StoreBackendSQLite is an embedded SQLite database file.
	StoreBackendSQLite StoreBackend = "sqlite"

	// StoreBackendMemory keeps books in process memory. Data is lost on exit.
	StoreBackendMemory StoreBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreBackendMongo, StoreBackendSQLite, StoreBackendMemory:
		return true
	default:
		return false
	}
}

// AllStoreBackends returns the selectable backends in display order.
func AllStoreBackends() []StoreBackend {
	return []StoreBackend{StoreBackendMongo, StoreBackendSQLite, StoreBackendMemory}
}

// RequiresURI returns true if this backend connects to a remote server.
func (b StoreBackend) RequiresURI() bool {
	return b == StoreBackendMongo
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StoreBackend) Description() string {
	switch b {
	case StoreBackendMongo:
		return "MongoDB (document database)"
	case StoreBackendSQLite:
		return "SQLite (local file)"
	case StoreBackendMemory:
		return "Memory (ephemeral)"
	default:
		return unknownDescription
	}
}

// Default store settings.
const (
	DefaultMongoURI       = "mongodb://localhost:27017/"
	DefaultDatabase       = "Library"
	DefaultCollection     = "Books"
	DefaultConnectTimeout = 5 * time.Second
)

// StoreSettings holds catalog store connection configuration.
type StoreSettings struct {
	// Backend selects the store implementation.
	Backend StoreBackend

	// URI is the connection string for remote backends.
	URI string

	// Database is the database name inside the server.
	Database string

	// Collection holds the book records.
	Collection string

	// DataDir is where file-based backends keep their data.
	// Empty means ~/.libris/data.
	DataDir string

	// ConnectTimeout bounds the startup connection check.
	ConnectTimeout time.Duration
}

// DefaultStoreSettings returns the settings used when nothing is configured.
func DefaultStoreSettings() StoreSettings {
	return StoreSettings{
		Backend:        StoreBackendMongo,
		URI:            DefaultMongoURI,
		Database:       DefaultDatabase,
		Collection:     DefaultCollection,
		ConnectTimeout: DefaultConnectTimeout,
	}
}

// Validate checks the settings are usable for the selected backend.
func (s *StoreSettings) Validate() error {
	if !s.Backend.IsValid() {
		return fmt.Errorf("%w: store backend %q", ErrUnsupportedType, s.Backend)
	}
	if s.Backend.RequiresURI() && s.URI == "" {
		return fmt.Errorf("%w: %s backend requires a connection URI", ErrInvalidInput, s.Backend)
	}
	if s.Database == "" || s.Collection == "" {
		return fmt.Errorf("%w: database and collection must be set", ErrInvalidInput)
	}
	if s.ConnectTimeout < 0 {
		return fmt.Errorf("%w: connect timeout must not be negative", ErrInvalidInput)
	}
	return nil
}

// AppSettings aggregates all application settings.
type AppSettings struct {
	Store StoreSettings
}

// DefaultAppSettings returns default application settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Store: DefaultStoreSettings(),
	}
}

// RedactURI hides the password of a connection string so it can be shown.
// Strings that do not parse or carry no password are returned unchanged.
func RedactURI(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, hasPassword := u.User.Password(); !hasPassword {
		return raw
	}
	return u.Redacted()
}
