package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/libris-cli/internal/adapters/driving/tui/messages"
)

// stubTerminal swaps the terminal check and program runner for a test.
func stubTerminal(t *testing.T, terminal bool, run func(*tui.App) error) {
	t.Helper()
	oldIsTerminal, oldRunApp := isTerminal, runApp
	isTerminal = func() bool { return terminal }
	runApp = run
	t.Cleanup(func() {
		isTerminal, runApp = oldIsTerminal, oldRunApp
	})
}

func TestTUICmd_Metadata(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
	assert.Contains(t, tuiCmd.Long, "Find by title or author")
}

func TestTUICmd_RequiresTerminal(t *testing.T) {
	setupTestServices(t)
	stubTerminal(t, false, func(*tui.App) error {
		t.Fatal("program must not start without a terminal")
		return nil
	})

	_, err := executeCommand(t, "", "tui")

	assert.ErrorIs(t, err, ErrNotTerminal)
}

func TestTUICmd_RunsApp(t *testing.T) {
	setupTestServices(t)

	var got *tui.App
	stubTerminal(t, true, func(app *tui.App) error {
		got = app
		return nil
	})

	_, err := executeCommand(t, "", "tui")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, messages.ViewBooks, got.CurrentView())
}

func TestTUICmd_ProgramError(t *testing.T) {
	setupTestServices(t)
	stubTerminal(t, true, func(*tui.App) error {
		return errors.New("could not open tty")
	})

	_, err := executeCommand(t, "", "tui")

	assert.EqualError(t, err, "TUI error: could not open tty")
}
