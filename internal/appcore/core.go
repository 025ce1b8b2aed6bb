// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"seedmap/internal/almanac"
	"seedmap/internal/engine"
	"seedmap/internal/logger"
	"seedmap/internal/metrics"
	"seedmap/internal/reducer"
	"seedmap/internal/runutil"
	"seedmap/internal/writers"
	"seedmap/pkg/api"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitUsage     = 2
	ExitRuntime   = 3
	ExitCancelled = 130
)

type Options struct {
	Inputs []string
	Mode   string

	Strategy  string
	Threads   int
	BatchSize uint64

	Trace  bool
	Output string
	Header bool

	MetricsAddr string
}

// Run loads every input, solves each in input order, and streams one result
// per input to the output writer. The first failing input stops the run; the
// results already written stay written.
func Run(parent context.Context, stdout, stderr io.Writer, o Options, log logger.Logger) int {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	if o.MetricsAddr != "" {
		srv, err := metrics.Serve(o.MetricsAddr)
		if err != nil {
			fmt.Fprintf(stderr, "error: metrics endpoint: %v\n", err)
			return ExitRuntime
		}
		log.Info("serving metrics", zap.String("addr", srv.Addr()))
		defer func() {
			sctx, scancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer scancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	docs, err := LoadAll(ctx, o.Inputs)
	if err != nil {
		return report(stderr, err)
	}

	outw := bufio.NewWriter(stdout)
	inCh, writeErr := writers.StartResultWriter(outw, o.Output, writers.Options{Header: o.Header}, len(docs))

	var solveErr error
	for i, doc := range docs {
		t0 := time.Now()
		flog := log.With(zap.String("source", o.Inputs[i]))
		res, err := Solve(ctx, o, o.Inputs[i], doc, flog)
		if err != nil {
			solveErr = fmt.Errorf("%s: %w", o.Inputs[i], err)
			break
		}
		flog.Info("solved almanac",
			zap.String("mode", res.Mode),
			zap.Uint64("minimum", res.Minimum),
			zap.Duration("elapsed", time.Since(t0)),
		)
		select {
		case inCh <- res:
		case <-ctx.Done():
			solveErr = ctx.Err()
		}
		if solveErr != nil {
			break
		}
	}
	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return ExitOK
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return ExitRuntime
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return ExitOK
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return ExitRuntime
	}
	if solveErr != nil {
		return report(stderr, solveErr)
	}
	return ExitOK
}

// report prints err and maps it to an exit code.
func report(stderr io.Writer, err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return ExitCancelled
	case errors.Is(err, almanac.ErrMalformed):
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitUsage
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitRuntime
	}
}

// LoadAll parses every input concurrently and returns them in input order.
func LoadAll(ctx context.Context, inputs []string) ([]*almanac.Almanac, error) {
	docs := make([]*almanac.Almanac, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a, err := almanac.Load(path)
			if err != nil {
				return err
			}
			docs[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// Solve computes the result for one parsed almanac.
func Solve(ctx context.Context, o Options, source string, a *almanac.Almanac, log logger.Logger) (api.ResultV1, error) {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	res := api.ResultV1{
		Source: source,
		Mode:   o.Mode,
		Seeds:  len(a.Seeds),
		Stages: a.Pipeline.Len(),
	}

	if o.Mode != runutil.ModeRanges {
		seeds := a.SeedValues()
		best, ok := engine.MinValue(a.Pipeline, seeds)
		if !ok {
			return res, reducer.ErrNoRanges
		}
		res.Minimum = best
		res.Values = uint64(len(seeds))
		if runutil.NeedTrace(o.Mode, o.Trace) {
			res.Trace = make([]api.SeedTraceV1, len(seeds))
			for i, s := range seeds {
				res.Trace[i] = api.SeedTraceV1{Seed: s, Path: engine.Trace(a.Pipeline, s)}
			}
		}
		return res, nil
	}

	ranges, err := a.SeedRanges()
	if err != nil {
		return res, err
	}
	batch, warns := runutil.ValidateBatching(o.Strategy, o.BatchSize, ranges)
	for _, w := range warns {
		log.Warn(w)
	}
	if o.Trace {
		log.Warn("--trace only applies to values mode; ignoring")
	}

	r, err := reducer.ReduceMin(ctx, a.Pipeline, ranges, reducer.Config{
		Workers:   o.Threads,
		BatchSize: batch,
		Strategy:  o.Strategy,
		Logger:    log,
	})
	if err != nil {
		return res, err
	}
	res.Strategy = o.Strategy
	if res.Strategy == "" {
		res.Strategy = reducer.StrategyScan
	}
	res.Minimum = r.Minimum
	res.Values = r.Values
	res.Tasks = r.Tasks
	return res, nil
}
