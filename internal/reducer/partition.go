package reducer

import (
	"math"

	"seedmap/internal/engine"
)

// Partition turns ranges into task ranges. Empty ranges are dropped. With
// batch > 0 every range is cut into consecutive pieces of at most batch
// values; since min is associative the reduced minimum does not change.
func Partition(ranges []engine.SeedRange, batch uint64) []engine.SeedRange {
	out := make([]engine.SeedRange, 0, len(ranges))
	for _, r := range ranges {
		if r.Empty() {
			continue
		}
		if batch == 0 || r.Length <= batch {
			out = append(out, r)
			continue
		}
		start, remaining := r.Start, r.Length
		for remaining > 0 {
			n := min(batch, remaining)
			out = append(out, engine.SeedRange{Start: start, Length: n})
			start += n
			remaining -= n
		}
	}
	return out
}

// TaskCount is len(Partition(ranges, batch)) without allocating the tasks.
func TaskCount(ranges []engine.SeedRange, batch uint64) uint64 {
	var n uint64
	for _, r := range ranges {
		switch {
		case r.Empty():
		case batch == 0:
			n++
		default:
			n += (r.Length-1)/batch + 1
		}
	}
	return n
}

// TotalValues sums the range lengths, saturating at MaxUint64.
func TotalValues(ranges []engine.SeedRange) uint64 {
	var total uint64
	for _, r := range ranges {
		if r.Length > math.MaxUint64-total {
			return math.MaxUint64
		}
		total += r.Length
	}
	return total
}
