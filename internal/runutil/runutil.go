// internal/runutil/runutil.go
package runutil

import (
	"fmt"
	"math"

	"seedmap/internal/engine"
	"seedmap/internal/reducer"
)

// MaxTasks caps how many range tasks one reduction may allocate.
const MaxTasks = 1 << 20

// ValidateBatching decides the batch size actually used, returning
// (batchSize, warnings). Rules:
//   - --strategy interval disables batching (ignore --batch-size)
//   - batchSize 0 means one task per input range, with no cap: the ranges are
//     already held in memory, so one task each costs no more than parsing did
//   - a batch size that would produce more than MaxTasks tasks is raised to
//     the smallest power-of-two multiple that fits
//   - when the ranges alone outnumber MaxTasks, no batch size can fit and
//     batching falls back to one task per range
func ValidateBatching(strategy string, batchSize uint64, ranges []engine.SeedRange) (uint64, []string) {
	var warns []string
	if strategy == reducer.StrategyInterval {
		if batchSize != 0 {
			warns = append(warns, "--strategy interval disables batching; ignoring --batch-size")
		}
		return 0, warns
	}
	if batchSize == 0 {
		return 0, nil
	}
	if reducer.TaskCount(ranges, batchSize) <= MaxTasks {
		return batchSize, nil
	}
	if n := reducer.TaskCount(ranges, 0); n > MaxTasks {
		warns = append(warns, fmt.Sprintf("%d seed ranges exceed %d tasks at any --batch-size; using one task per range", n, MaxTasks))
		return 0, warns
	}
	total := reducer.TotalValues(ranges)
	raised := total/MaxTasks + 1
	// Terminates: once raised covers the longest range the count is
	// len(ranges), which is within MaxTasks here.
	for reducer.TaskCount(ranges, raised) > MaxTasks {
		if raised > math.MaxUint64/2 {
			raised = math.MaxUint64
			break
		}
		raised *= 2
	}
	warns = append(warns, fmt.Sprintf("--batch-size %d yields more than %d tasks; using %d", batchSize, MaxTasks, raised))
	return raised, warns
}

// NeedTrace tells appcore whether per-seed paths must be recorded.
// Traces only exist in values mode.
func NeedTrace(mode string, trace bool) bool {
	return trace && mode == ModeValues
}

// Seed-list interpretations.
const (
	ModeValues = "values"
	ModeRanges = "ranges"
)
