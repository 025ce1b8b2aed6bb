package engine

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRuleContainsHalfOpen(t *testing.T) {
	r := Rule{SourceStart: 98, DestStart: 50, Length: 2}
	require.False(t, r.Contains(97))
	require.True(t, r.Contains(98))
	require.True(t, r.Contains(99))
	require.False(t, r.Contains(100))

	require.False(t, Rule{SourceStart: 5, Length: 0}.Contains(5), "zero-length rule matches nothing")

	top := Rule{SourceStart: math.MaxUint64 - 1, DestStart: 0, Length: 2}
	require.True(t, top.Contains(math.MaxUint64))
	require.Equal(t, uint64(1), top.Apply(math.MaxUint64))
}

func TestSingleRuleStage(t *testing.T) {
	p := Pipeline{Stages: []Stage{{Rules: []Rule{{SourceStart: 98, DestStart: 50, Length: 2}}}}}
	require.Equal(t, uint64(50), MapValue(p, 98))
	require.Equal(t, uint64(51), MapValue(p, 99))
	require.Equal(t, uint64(97), MapValue(p, 97))
}

func TestFirstMatchWins(t *testing.T) {
	st := Stage{Rules: []Rule{
		{SourceStart: 10, DestStart: 100, Length: 10},
		{SourceStart: 15, DestStart: 500, Length: 10},
	}}
	v, ok := st.Lookup(16)
	require.True(t, ok)
	require.Equal(t, uint64(106), v)

	v, ok = st.Lookup(22)
	require.True(t, ok)
	require.Equal(t, uint64(507), v)

	v, ok = st.Lookup(3)
	require.False(t, ok)
	require.Equal(t, uint64(3), v)
}

func TestIdentityPassThrough(t *testing.T) {
	p := canonicalPipeline()
	// Nothing in the canonical almanac maps values at or above 100 in any stage.
	for _, v := range []uint64{100, 1000, 1 << 40, math.MaxUint64} {
		require.Equal(t, v, MapValue(p, v))
	}
	require.Equal(t, uint64(42), MapValue(Pipeline{}, 42))
}

func TestMapValueDeterministic(t *testing.T) {
	p := canonicalPipeline()
	for v := uint64(0); v < 120; v++ {
		require.Equal(t, MapValue(p, v), MapValue(p, v))
	}
}

func TestCanonicalSeeds(t *testing.T) {
	p := canonicalPipeline()
	want := map[uint64]uint64{79: 82, 14: 43, 55: 86, 13: 35}
	for seed, loc := range want {
		require.Equal(t, loc, MapValue(p, seed), "seed %d", seed)
	}

	best, ok := MinValue(p, []uint64{79, 14, 55, 13})
	require.True(t, ok)
	require.Equal(t, uint64(35), best)

	_, ok = MinValue(p, nil)
	require.False(t, ok)
}

func TestTraceSeed79(t *testing.T) {
	p := canonicalPipeline()
	path := Trace(p, 79)
	require.Equal(t, []uint64{79, 81, 81, 81, 74, 78, 78, 82}, path)
	require.Len(t, path, p.Len()+1)

	// The last two canonical stages take seed 79's temperature to its location.
	tail := Pipeline{Stages: p.Stages[5:]}
	require.Equal(t, []uint64{78, 78, 82}, Trace(tail, path[5]))

	head := Pipeline{Stages: p.Stages[:2]}
	require.Equal(t, uint64(81), MapValue(head, 79))
}

func TestScanRangeCanonical(t *testing.T) {
	p := canonicalPipeline()

	a, ok := ScanRange(p, SeedRange{Start: 79, Length: 14})
	require.True(t, ok)
	b, ok := ScanRange(p, SeedRange{Start: 55, Length: 13})
	require.True(t, ok)
	require.Equal(t, uint64(46), min(a, b))

	_, ok = ScanRange(p, SeedRange{Start: 79, Length: 0})
	require.False(t, ok)
}

func TestScanRangeMatchesSequentialMap(t *testing.T) {
	p := canonicalPipeline()
	r := SeedRange{Start: 0, Length: 150}
	want := uint64(math.MaxUint64)
	for v := r.Start; v < r.Start+r.Length; v++ {
		want = min(want, MapValue(p, v))
	}
	got, ok := ScanRange(p, r)
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestScanRangeTopOfDomain(t *testing.T) {
	r := SeedRange{Start: math.MaxUint64 - 2, Length: 3}
	got, ok := ScanRange(Pipeline{}, r)
	require.True(t, ok)
	require.Equal(t, uint64(math.MaxUint64-2), got)
}

func TestScanRangeContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok, err := ScanRangeContext(ctx, canonicalPipeline(), SeedRange{Start: 0, Length: 4 * pollEvery})
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, ok)
}

func TestMinImageCanonical(t *testing.T) {
	p := canonicalPipeline()
	a, ok := MinImage(p, SeedRange{Start: 79, Length: 14})
	require.True(t, ok)
	b, ok := MinImage(p, SeedRange{Start: 55, Length: 13})
	require.True(t, ok)
	require.Equal(t, uint64(46), min(a, b))

	_, ok = MinImage(p, SeedRange{})
	require.False(t, ok)
}

func TestMinImageMatchesScan(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 2023))
	for i := 0; i < 200; i++ {
		p := randomPipeline(rng)
		r := SeedRange{Start: rng.Uint64N(200), Length: 1 + rng.Uint64N(120)}

		want, ok := ScanRange(p, r)
		require.True(t, ok)
		got, ok := MinImage(p, r)
		require.True(t, ok)
		require.Equal(t, want, got, "iteration %d range %+v", i, r)
	}
}

func TestMinImageWrappingRule(t *testing.T) {
	// Destination runs past MaxUint64 and wraps like MapValue does.
	p := Pipeline{Stages: []Stage{{Rules: []Rule{{SourceStart: 0, DestStart: math.MaxUint64 - 1, Length: 4}}}}}
	r := SeedRange{Start: 0, Length: 4}

	want, _ := ScanRange(p, r)
	got, ok := MinImage(p, r)
	require.True(t, ok)
	require.Equal(t, want, got)
	require.Equal(t, uint64(0), got)
}

// randomPipeline builds small stages whose rules may overlap, to exercise
// first-match ordering as well as gaps.
func randomPipeline(rng *rand.Rand) Pipeline {
	var p Pipeline
	for s := 0; s < 1+rng.IntN(5); s++ {
		var st Stage
		for r := 0; r < rng.IntN(6); r++ {
			st.Rules = append(st.Rules, Rule{
				SourceStart: rng.Uint64N(300),
				DestStart:   rng.Uint64N(300),
				Length:      rng.Uint64N(60),
			})
		}
		p.Stages = append(p.Stages, st)
	}
	return p
}
