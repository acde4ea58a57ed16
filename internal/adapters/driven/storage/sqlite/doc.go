// Package sqlite provides an embedded BookStore backed by a single SQLite file.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Books live in one table; an AUTOINCREMENT sequence column
// preserves insertion order so that "first match" is well defined for
// SetStock and DeleteByTitle when titles repeat.
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory, one NNN_name.up.sql file per version. Migrations only move
// forward; other files in the directory are ignored.
//
// # Data Location
//
// By default, the database is stored at ~/.libris/data/catalog.db
//
// # Thread Safety
//
// All operations are safe for concurrent use. The store relies on the
// locking SQLite provides in WAL mode.
package sqlite
