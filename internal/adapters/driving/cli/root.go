// Package cli provides the cobra command tree for libris.
//
// Running libris with no subcommand starts the interactive menu. Each
// subcommand is a one-shot form of a menu operation, plus commands for
// settings, the terminal UI and the MCP server.
//
// Services are injected by the entrypoint through SetFactories and the
// Set*Service functions. The catalog is opened lazily, so settings and
// version work even when the store is unreachable.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/libris-cli/internal/adapters/driving/menu"
	"github.com/custodia-labs/libris-cli/internal/core/domain"
	"github.com/custodia-labs/libris-cli/internal/core/ports/driving"
	"github.com/custodia-labs/libris-cli/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
)

var (
	settingsService driving.SettingsService
	catalogService  driving.CatalogService
)

// SettingsFactory builds the settings service for a config directory.
// An empty dir means the default location.
type SettingsFactory func(configDir string) (driving.SettingsService, error)

// CatalogFactory opens the configured store. The returned func releases it.
type CatalogFactory func(ctx context.Context, settings domain.StoreSettings) (driving.CatalogService, func(), error)

var (
	settingsFactory SettingsFactory
	catalogFactory  CatalogFactory
	closeCatalog    func()
)

// ConnectionError reports that the catalog store could not be opened.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("Connection failed: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

var rootCmd = &cobra.Command{
	Use:   "libris",
	Short: "Manage a book catalog",
	Long: `libris keeps an inventory of books in a document database.

Run without a subcommand to open the interactive menu:

  1. Add Book       4. Delete Book
  2. Query Books    5. List All Books
  3. Update Stock   6. Exit

The store backend is configured with 'libris settings' or the
LIBRIS_STORE_* environment variables.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runMenu,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.libris)")
}

// Execute runs the root command and releases the catalog afterwards.
// cmd.Print* writes to stderr unless an output writer is set.
func Execute(ctx context.Context) error {
	defer release()
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version string printed by 'libris version'.
func SetVersion(v string) {
	version = v
}

// SetFactories installs the constructors used once flags are parsed.
func SetFactories(settings SettingsFactory, catalog CatalogFactory) {
	settingsFactory = settings
	catalogFactory = catalog
}

// SetSettingsService sets the settings service directly.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetCatalogService sets the catalog service directly.
func SetCatalogService(s driving.CatalogService) {
	catalogService = s
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if settingsService != nil || settingsFactory == nil {
		return nil
	}
	svc, err := settingsFactory(configDir)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	settingsService = svc
	return nil
}

// requireCatalog opens the catalog on first use.
func requireCatalog(ctx context.Context) (driving.CatalogService, error) {
	if catalogService != nil {
		return catalogService, nil
	}
	if catalogFactory == nil || settingsService == nil {
		return nil, errors.New("catalog service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	svc, closeFn, err := catalogFactory(ctx, settings.Store)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	catalogService = svc
	closeCatalog = closeFn
	return svc, nil
}

func release() {
	if closeCatalog != nil {
		closeCatalog()
		closeCatalog = nil
	}
}

func runMenu(cmd *cobra.Command, _ []string) error {
	catalog, err := requireCatalog(cmd.Context())
	if err != nil {
		return err
	}
	return menu.New(catalog, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
}
