package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"seedmap/internal/appcore"
)

// Main runs a tool with a context cancelled by SIGINT/SIGTERM and exits with
// its code. No arguments shows help.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	argv := os.Args[1:]
	if len(argv) == 0 {
		argv = []string{"--help"}
	}

	code := exitCode(ctx, run(ctx, argv, os.Stdout, os.Stderr))
	stop()
	os.Exit(code)
}

// exitCode reports cancellation for a run that was interrupted after its
// last context check and still returned success.
func exitCode(ctx context.Context, code int) int {
	if ctx.Err() != nil && code == appcore.ExitOK {
		return appcore.ExitCancelled
	}
	return code
}
