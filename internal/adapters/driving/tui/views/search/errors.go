package search

import "errors"

// Error definitions for the find view.
var (
	// ErrNoCatalogService indicates that no catalog service was provided.
	ErrNoCatalogService = errors.New("catalog service is required")
)
