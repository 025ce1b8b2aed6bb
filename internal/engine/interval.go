package engine

import "math"

// span is an inclusive interval [lo, hi].
type span struct{ lo, hi uint64 }

// sourceSpan returns the rule's source interval. A rule whose end would pass
// MaxUint64 covers everything from SourceStart up, matching Contains.
func (r Rule) sourceSpan() (span, bool) {
	if r.Length == 0 {
		return span{}, false
	}
	if r.Length-1 > math.MaxUint64-r.SourceStart {
		return span{r.SourceStart, math.MaxUint64}, true
	}
	return span{r.SourceStart, r.SourceStart + (r.Length - 1)}, true
}

// appendImage appends the image of [lo, hi] under r. Apply wraps modulo 2^64
// like MapValue, so a wrapped image is split in two.
func appendImage(out []span, r Rule, lo, hi uint64) []span {
	a, b := r.Apply(lo), r.Apply(hi)
	if a <= b {
		return append(out, span{a, b})
	}
	return append(out, span{a, math.MaxUint64}, span{0, b})
}

// mapSpans pushes every span through the stage. Each rule, in order, claims
// the parts of the still-unclaimed spans it covers; whatever no rule claims
// passes through unchanged.
func (s Stage) mapSpans(in []span) []span {
	pending := in
	var out []span
	for _, r := range s.Rules {
		rs, ok := r.sourceSpan()
		if !ok {
			continue
		}
		var rest []span
		for _, sp := range pending {
			lo, hi := max(sp.lo, rs.lo), min(sp.hi, rs.hi)
			if lo > hi {
				rest = append(rest, sp)
				continue
			}
			out = appendImage(out, r, lo, hi)
			if sp.lo < lo {
				rest = append(rest, span{sp.lo, lo - 1})
			}
			if hi < sp.hi {
				rest = append(rest, span{hi + 1, sp.hi})
			}
		}
		pending = rest
		if len(pending) == 0 {
			break
		}
	}
	return append(out, pending...)
}

// MinImage returns the same minimum as ScanRange but splits intervals at rule
// boundaries instead of visiting every value, so its cost depends on the
// number of rules rather than r.Length.
func MinImage(p Pipeline, r SeedRange) (uint64, bool) {
	if r.Empty() {
		return 0, false
	}
	spans := []span{{r.Start, r.Last()}}
	for _, st := range p.Stages {
		spans = st.mapSpans(spans)
	}
	best := spans[0].lo
	for _, sp := range spans[1:] {
		if sp.lo < best {
			best = sp.lo
		}
	}
	return best, true
}
