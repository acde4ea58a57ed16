package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/libris-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the catalog store.

Use subcommands to change a single setting. Environment variables
(LIBRIS_STORE_BACKEND, LIBRIS_STORE_URI, LIBRIS_STORE_DATABASE,
LIBRIS_STORE_COLLECTION, LIBRIS_DATA_DIR) take precedence over the file.`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsBackendCmd = &cobra.Command{
	Use:   "backend <mongo|sqlite|memory>",
	Short: "Set the store backend",
	Long: `Set the catalog store backend.

Available backends:
  mongo  - MongoDB document database (default)
  sqlite - Local SQLite file in the data directory
  memory - In-process store, lost on exit`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsBackend,
}

var settingsURICmd = &cobra.Command{
	Use:   "uri <connection-string>",
	Short: "Set the MongoDB connection string",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsURI,
}

var settingsDatabaseCmd = &cobra.Command{
	Use:   "database <name>",
	Short: "Set the database name",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsDatabase,
}

var settingsCollectionCmd = &cobra.Command{
	Use:   "collection <name>",
	Short: "Set the collection holding book records",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsCollection,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default store settings",
	Long: `Overwrite every store setting in the config file with its default:
the mongo backend at mongodb://localhost:27017/, database "Library",
collection "Books". Environment overrides still apply afterwards.`,
	Args: cobra.NoArgs,
	RunE: runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsBackendCmd)
	settingsCmd.AddCommand(settingsURICmd)
	settingsCmd.AddCommand(settingsDatabaseCmd)
	settingsCmd.AddCommand(settingsCollectionCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	store := settings.Store

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Store]")
	cmd.Printf("  Backend: %s\n", store.Backend.Description())
	if store.Backend.RequiresURI() {
		cmd.Printf("  URI: %s\n", domain.RedactURI(store.URI))
		cmd.Printf("  Database: %s\n", store.Database)
		cmd.Printf("  Collection: %s\n", store.Collection)
		cmd.Printf("  Connect timeout: %s\n", store.ConnectTimeout)
	}
	if store.Backend == domain.StoreBackendSQLite {
		dataDir := store.DataDir
		if dataDir == "" {
			dataDir = "~/.libris/data"
		}
		cmd.Printf("  Data dir: %s\n", dataDir)
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'libris settings backend' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsBackend(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	backend := domain.StoreBackend(strings.ToLower(args[0]))
	if !backend.IsValid() {
		return fmt.Errorf("%w: unknown backend %q (supported: mongo, sqlite, memory)",
			domain.ErrUnsupportedType, args[0])
	}

	if err := settingsService.SetBackend(backend); err != nil {
		return fmt.Errorf("failed to set backend: %w", err)
	}
	cmd.Printf("Store backend set to: %s\n", backend.Description())
	return nil
}

func runSettingsURI(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.SetURI(args[0]); err != nil {
		return fmt.Errorf("failed to set URI: %w", err)
	}
	cmd.Printf("Store URI set to: %s\n", domain.RedactURI(args[0]))
	return nil
}

func runSettingsDatabase(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.SetDatabase(args[0]); err != nil {
		return fmt.Errorf("failed to set database: %w", err)
	}
	cmd.Printf("Database set to: %s\n", args[0])
	return nil
}

func runSettingsCollection(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.SetCollection(args[0]); err != nil {
		return fmt.Errorf("failed to set collection: %w", err)
	}
	cmd.Printf("Collection set to: %s\n", args[0])
	return nil
}


func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	defaults := domain.DefaultAppSettings()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	cmd.Println("Store settings reset to defaults.")
	return nil
}
