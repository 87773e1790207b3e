// Command liencalc computes mechanics lien deadlines.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/turtacn/LienDeadline/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LienDeadline/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.ExecuteContext(ctx)
	stop()
	_ = logging.Default().Sync()
	os.Exit(cli.ExitCode(err))
}
