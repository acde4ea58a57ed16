// Command libris manages a book catalog from the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/libris-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/libris-cli/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	loadDotEnv(".env")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetFactories(newSettingsService, openCatalog)

	return exitCode(os.Stderr, cli.Execute(ctx))
}

// exitCode reports err and maps it to the process exit status. A store
// connection failure is printed verbatim; anything else goes through the
// error logger.
func exitCode(stderr io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var connErr *cli.ConnectionError
	if errors.As(err, &connErr) {
		fmt.Fprintln(stderr, connErr.Error())
		return 1
	}
	logger.Error("%v", err)
	return 1
}
