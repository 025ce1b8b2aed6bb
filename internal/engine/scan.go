package engine

import "context"

// pollEvery is how many values ScanRangeContext maps between context checks.
const pollEvery = 1 << 16

// ScanRange maps every value in r and returns the minimum.
// An empty range contributes nothing and reports ok=false.
func ScanRange(p Pipeline, r SeedRange) (uint64, bool) {
	best, ok, _ := ScanRangeContext(context.Background(), p, r)
	return best, ok
}

// ScanRangeContext is ScanRange with cancellation. It returns ctx.Err() as
// soon as it notices the context is done; the partial minimum is discarded.
func ScanRangeContext(ctx context.Context, p Pipeline, r SeedRange) (uint64, bool, error) {
	if r.Empty() {
		return 0, false, nil
	}
	best := MapValue(p, r.Start)
	last := r.Last()
	n := 0
	// v < last keeps the loop from wrapping when last == MaxUint64.
	for v := r.Start; v < last; {
		v++
		if n++; n == pollEvery {
			n = 0
			if err := ctx.Err(); err != nil {
				return 0, false, err
			}
		}
		if m := MapValue(p, v); m < best {
			best = m
		}
	}
	return best, true, nil
}
