// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/libris-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewBooks is the catalog list.
	ViewBooks ViewType = iota
	// ViewSearch finds books by title or author.
	ViewSearch
	// ViewSettings shows the store settings.
	ViewSettings
	// ViewHelp is the keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewBooks:
		return "books"
	case ViewSearch:
		return "search"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// BooksLoaded carries the full catalog listing.
type BooksLoaded struct {
	Books []domain.Book
	Err   error
}

// StockChanged reports the result of a stock update.
type StockChanged struct {
	Title   string
	Stock   int
	Updated bool
	Err     error
}

// BookRemoved reports the result of a delete by title.
type BookRemoved struct {
	Title   string
	Deleted bool
	Err     error
}

// SearchCompleted carries the books matching a find.
type SearchCompleted struct {
	Field domain.BookField
	Value string
	Books []domain.Book
	Err   error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
