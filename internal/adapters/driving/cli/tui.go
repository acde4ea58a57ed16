package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui"
)

// ErrNotTerminal is returned when 'libris tui' is run without a terminal.
var ErrNotTerminal = errors.New("the terminal UI needs an interactive terminal")

// isTerminal reports whether stdin is a terminal. Tests replace it.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// runApp runs the bubbletea program. Tests replace it.
var runApp = func(app *tui.App) error {
	return app.Run()
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the terminal catalog browser.

Controls:
  ↑/k, ↓/j  Navigate books
  +, -      Change stock of the selected book
  d         Delete the selected book
  r         Reload the catalog
  /         Find by title or author (tab switches)
  s         Store settings
  ?         Help
  q         Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if !isTerminal() {
		return ErrNotTerminal
	}

	catalog, err := requireCatalog(cmd.Context())
	if err != nil {
		return err
	}

	app, err := tui.NewApp(tui.NewPorts(catalog, settingsService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := runApp(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
