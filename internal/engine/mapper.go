package engine

// MapValue runs v through every stage of p in order. Values no rule covers
// pass through unchanged, so every uint64 is accepted.
func MapValue(p Pipeline, v uint64) uint64 {
	for _, st := range p.Stages {
		v, _ = st.Lookup(v)
	}
	return v
}

// Trace returns v followed by the value produced after each stage.
// The last element always equals MapValue(p, v).
func Trace(p Pipeline, v uint64) []uint64 {
	path := make([]uint64, 0, len(p.Stages)+1)
	path = append(path, v)
	for _, st := range p.Stages {
		v, _ = st.Lookup(v)
		path = append(path, v)
	}
	return path
}

// MinValue maps every seed and returns the smallest result.
// ok is false when seeds is empty.
func MinValue(p Pipeline, seeds []uint64) (best uint64, ok bool) {
	for i, s := range seeds {
		v := MapValue(p, s)
		if i == 0 || v < best {
			best = v
		}
	}
	return best, len(seeds) > 0
}
