package domain

import (
	"fmt"
	"strings"
)

// Book is a single catalog record.
// Title is used as the lookup key by convention; stores do not enforce
// uniqueness, so several books may share a title.
type Book struct {
	// ID is the opaque identifier assigned by the store on insert.
	ID string `json:"id"`

	// Title is the book title.
	Title string `json:"title"`

	// Author is the author name.
	Author string `json:"author"`

	// Genre is a free-form genre label.
	Genre string `json:"genre"`

	// Stock is the number of copies on hand. Never negative.
	Stock int `json:"stock"`
}

// Validate checks the invariants a book must hold before it is stored.
func (b *Book) Validate() error {
	return ValidateStock(b.Stock)
}

// String renders the book on a single line for menu and CLI output.
func (b Book) String() string {
	if b.ID == "" {
		return fmt.Sprintf("%q by %s [%s] stock=%d", b.Title, b.Author, b.Genre, b.Stock)
	}
	return fmt.Sprintf("%s: %q by %s [%s] stock=%d", b.ID, b.Title, b.Author, b.Genre, b.Stock)
}

// ValidateStock returns ErrNegativeStock for counts below zero.
func ValidateStock(stock int) error {
	if stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// BookField names the single field a catalog lookup matches on.
type BookField string

// Searchable fields.
const (
	// FieldTitle matches on the exact title.
	FieldTitle BookField = "title"

	// FieldAuthor matches on the exact author name.
	FieldAuthor BookField = "author"
)

// IsValid returns true if the field can be used for a lookup.
func (f BookField) IsValid() bool {
	switch f {
	case FieldTitle, FieldAuthor:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f BookField) String() string {
	return string(f)
}

// ParseBookField normalises user input into a BookField. The result may be
// unsupported; lookups on such a field match nothing.
func ParseBookField(s string) BookField {
	return BookField(strings.ToLower(strings.TrimSpace(s)))
}
