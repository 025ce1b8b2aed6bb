// internal/reducer/reducer.go
package reducer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"seedmap/internal/engine"
	"seedmap/internal/logger"
	"seedmap/internal/metrics"
)

// Strategy names accepted by Config.Strategy.
const (
	StrategyScan     = "scan"
	StrategyInterval = "interval"
)

var (
	// ErrNoRanges is returned when there is nothing to reduce.
	ErrNoRanges = errors.New("no non-empty seed ranges to reduce")
	// ErrTaskPanic wraps a panic recovered from a range task.
	ErrTaskPanic = errors.New("range task panicked")
	// ErrUnknownStrategy is returned for an unrecognised Config.Strategy.
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// Scanner computes the minimum image of one range. ok=false means the range
// contributed nothing.
type Scanner func(ctx context.Context, p engine.Pipeline, r engine.SeedRange) (uint64, bool, error)

// Config controls a reduction.
type Config struct {
	Workers   int    // max concurrent tasks; 0 = one goroutine per task
	BatchSize uint64 // max values per task; 0 = one task per input range
	Strategy  string // StrategyScan (default) | StrategyInterval
	Logger    logger.Logger

	// Scan overrides Strategy when set.
	Scan Scanner
}

// Result is the outcome of a successful reduction.
type Result struct {
	Minimum uint64
	Tasks   int
	Values  uint64 // values covered, saturating at MaxUint64
}

// ScannerFor returns the Scanner implementing a strategy name.
func ScannerFor(strategy string) (Scanner, error) {
	switch strategy {
	case "", StrategyScan:
		return engine.ScanRangeContext, nil
	case StrategyInterval:
		return func(ctx context.Context, p engine.Pipeline, r engine.SeedRange) (uint64, bool, error) {
			if err := ctx.Err(); err != nil {
				return 0, false, err
			}
			m, ok := engine.MinImage(p, r)
			return m, ok, nil
		}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownStrategy, strategy)
	}
}

type partial struct {
	min uint64
	ok  bool
}

// ReduceMin scans every value of every range through p and returns the
// smallest image. All tasks must succeed: the first failure (error, panic or
// cancellation) cancels the rest and is returned without a partial result.
func ReduceMin(ctx context.Context, p engine.Pipeline, ranges []engine.SeedRange, cfg Config) (Result, error) {
	strategy := cfg.Strategy
	if strategy == "" {
		strategy = StrategyScan
	}
	scan := cfg.Scan
	if scan == nil {
		var err error
		if scan, err = ScannerFor(strategy); err != nil {
			return Result{}, err
		}
	}
	log := cfg.Logger
	if log == nil {
		log = logger.NewNoopLogger()
	}

	tasks := Partition(ranges, cfg.BatchSize)
	if len(tasks) == 0 {
		metrics.ReductionsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return Result{}, ErrNoRanges
	}

	workers := cfg.Workers
	if workers <= 0 || workers > len(tasks) {
		workers = len(tasks)
	}
	log.DebugWithContext(ctx, "reduce fan-out",
		zap.String("strategy", strategy),
		zap.Int("ranges", len(ranges)),
		zap.Int("tasks", len(tasks)),
		zap.Int("workers", workers),
	)

	started := time.Now()
	pl := pool.NewWithResults[partial]().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(workers)

	for i, r := range tasks {
		pl.Go(func(ctx context.Context) (partial, error) {
			t0 := time.Now()
			var (
				part partial
				err  error
			)
			if rec := panics.Try(func() { part.min, part.ok, err = scan(ctx, p, r) }); rec != nil {
				err = fmt.Errorf("%w: task %d [%d,+%d): %w", ErrTaskPanic, i, r.Start, r.Length, rec.AsError())
			}
			metrics.TaskDurationSeconds.WithLabelValues(strategy).Observe(time.Since(t0).Seconds())
			if err != nil {
				metrics.TasksTotal.WithLabelValues(strategy, metrics.OutcomeError).Inc()
				return partial{}, err
			}
			metrics.TasksTotal.WithLabelValues(strategy, metrics.OutcomeOK).Inc()
			metrics.ValuesScannedTotal.WithLabelValues(strategy).Add(float64(r.Length))
			return part, nil
		})
	}

	parts, err := pl.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		metrics.ReductionsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		log.WarnWithContext(ctx, "reduce failed", zap.Error(err))
		return Result{}, err
	}

	res := Result{Tasks: len(tasks), Values: TotalValues(tasks)}
	found := false
	for _, part := range parts {
		if !part.ok {
			continue
		}
		if !found || part.min < res.Minimum {
			res.Minimum = part.min
		}
		found = true
	}
	if !found {
		metrics.ReductionsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return Result{}, ErrNoRanges
	}

	metrics.ReductionsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	log.InfoWithContext(ctx, "reduce done",
		zap.String("strategy", strategy),
		zap.Uint64("minimum", res.Minimum),
		zap.Int("tasks", res.Tasks),
		zap.Uint64("values", res.Values),
		zap.Duration("elapsed", time.Since(started)),
	)
	return res, nil
}
