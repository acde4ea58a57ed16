package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/libris-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/libris-cli/internal/core/domain"
	"github.com/custodia-labs/libris-cli/internal/core/ports/driven"
	"github.com/custodia-labs/libris-cli/internal/logger"
)

// DatabaseFile is the file name of the catalog database inside the data dir.
const DatabaseFile = "catalog.db"

// Verify interface compliance.
var _ driven.BookStore = (*Store)(nil)

// Store is a SQLite-backed BookStore.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.libris/data/catalog.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".libris", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	logger.Debug("sqlite catalog opened at %s", dbPath)
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Insert stores a new book and returns its generated ID.
func (s *Store) Insert(ctx context.Context, book domain.Book) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books (id, title, author, genre, stock, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, book.Title, book.Author, book.Genre, book.Stock, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("inserting book: %w", err)
	}
	return id, nil
}

// Find returns books whose field exactly equals value, in insertion order.
func (s *Store) Find(ctx context.Context, field domain.BookField, value string) ([]domain.Book, error) {
	column, ok := columnFor(field)
	if !ok {
		return []domain.Book{}, nil
	}

	// column comes from a fixed whitelist, never from user input.
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, author, genre, stock FROM books WHERE "+column+" = ? ORDER BY seq", value)
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}
	defer rows.Close()

	return scanBooks(rows)
}

// SetStock overwrites the stock of the first book with the given title.
func (s *Store) SetStock(ctx context.Context, title string, stock int) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE books SET stock = ?
		WHERE seq = (SELECT seq FROM books WHERE title = ? ORDER BY seq LIMIT 1)
	`, stock, title)
	if err != nil {
		return false, fmt.Errorf("updating stock: %w", err)
	}
	return affected(res)
}

// DeleteByTitle removes the first book with the given title.
func (s *Store) DeleteByTitle(ctx context.Context, title string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM books
		WHERE seq = (SELECT seq FROM books WHERE title = ? ORDER BY seq LIMIT 1)
	`, title)
	if err != nil {
		return false, fmt.Errorf("deleting book: %w", err)
	}
	return affected(res)
}

// List returns all books sorted by title, ties in insertion order.
func (s *Store) List(ctx context.Context) ([]domain.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, author, genre, stock FROM books ORDER BY title COLLATE BINARY ASC, seq ASC")
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}
	defer rows.Close()

	return scanBooks(rows)
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close(_ context.Context) error {
	return s.db.Close()
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_books.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		logger.Debug("applied migration %s", name)
	}

	return nil
}

func columnFor(field domain.BookField) (string, bool) {
	switch field {
	case domain.FieldTitle:
		return "title", true
	case domain.FieldAuthor:
		return "author", true
	default:
		return "", false
	}
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}
	return n > 0, nil
}

func scanBooks(rows *sql.Rows) ([]domain.Book, error) {
	books := []domain.Book{}
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.Stock); err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("iterating books: %w", err)
	}
	return books, nil
}
