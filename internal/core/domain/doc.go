// Package domain defines the core business entities for Libris.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Book: A catalog record with title, author, genre and stock
//   - BookField: The single field a catalog lookup matches on
//   - StoreSettings: Which catalog store backend to open and how
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
