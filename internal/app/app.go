// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"seedmap/internal/appcore"
	"seedmap/internal/cli"
	"seedmap/internal/logger"
	"seedmap/internal/version"
)

const examples = `  # minimum location over individual seeds
  seedmap almanac.txt

  # every value of every (start, length) seed range, 8 tasks at a time
  seedmap --mode ranges --threads 8 --batch-size 10000000 almanac.txt

  # same answer without visiting each value: split intervals at rule bounds
  seedmap --mode ranges --strategy interval -o json almanac.txt

  # per-stage path of each seed
  seedmap --trace day5/*.txt`

// NewCommand builds the root command. The process exit code is stored in
// *code once the command has run.
func NewCommand(ctx context.Context, stdout, stderr io.Writer, code *int) *cobra.Command {
	v := cli.NewViper()
	cmd := &cobra.Command{
		Use:   "seedmap [flags] ALMANAC...",
		Short: "Map seeds through an almanac of range tables and report the minimum result",
		Long: `seedmap reads almanac files (a seeds line followed by blocks of
"dest source length" rules), pushes every seed through each block in order,
and reports the smallest final value.

ALMANAC may be a path, a glob, or - for stdin. Gzip input is detected.
Flags may also be set through SEEDMAP_* environment variables or seedmap.yaml.`,
		Example:       examples,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			if err := cli.ReadConfig(v); err != nil {
				return err
			}
			opts, err := cli.Load(v, args)
			if err != nil {
				return err
			}
			if opts.Version {
				_, _ = fmt.Fprintf(stdout, "seedmap version %s\n", version.Version)
				*code = appcore.ExitOK
				return nil
			}
			log, err := logger.NewLogger(stderr, opts.LogFormat, opts.LogLevel)
			if err != nil {
				return fmt.Errorf("%w: %w", cli.ErrUsage, err)
			}
			defer func() { _ = log.Sync() }()

			*code = appcore.Run(ctx, stdout, stderr, appcore.Options{
				Inputs:      opts.Inputs,
				Mode:        opts.Mode,
				Strategy:    opts.Strategy,
				Threads:     opts.Threads,
				BatchSize:   opts.BatchSize,
				Trace:       opts.Trace,
				Output:      opts.Output,
				Header:      opts.Header,
				MetricsAddr: opts.MetricsAddr,
			}, log)
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	})
	cli.BindFlags(cmd, v)
	return cmd
}

// RunContext parses argv, runs the command, and returns the exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	code := appcore.ExitOK
	cmd := NewCommand(ctx, stdout, stderr, &code)
	cmd.SetArgs(argv)

	if err := cmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		if errors.Is(err, cli.ErrUsage) {
			_, _ = fmt.Fprintln(stderr)
			_, _ = fmt.Fprint(stderr, cmd.UsageString())
			return appcore.ExitUsage
		}
		return appcore.ExitRuntime
	}
	return code
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
