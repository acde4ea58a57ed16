// Package tui provides an interactive terminal user interface for libris.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/libris-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Catalog manages the book records.
	Catalog driving.CatalogService

	// Settings manages application settings. Optional; the settings view
	// reports it as unavailable when nil.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(catalog driving.CatalogService, settings driving.SettingsService) *Ports {
	return &Ports{
		Catalog:  catalog,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	return nil
}
