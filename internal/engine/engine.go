// internal/engine/engine.go
package engine

// Rule maps the half-open source interval [SourceStart, SourceStart+Length)
// onto [DestStart, DestStart+Length) by a constant offset.
type Rule struct {
	SourceStart uint64
	DestStart   uint64
	Length      uint64
}

// Contains reports whether v falls inside the rule's source interval.
// Written without computing SourceStart+Length so it cannot overflow.
func (r Rule) Contains(v uint64) bool {
	return v >= r.SourceStart && v-r.SourceStart < r.Length
}

// Apply translates v, which must be contained in r.
func (r Rule) Apply(v uint64) uint64 {
	return r.DestStart + (v - r.SourceStart)
}

// Stage is one translation table. Rules keep input order; the first rule
// containing a value wins.
type Stage struct {
	Name  string
	Rules []Rule
}

// Lookup returns the translated value and true if a rule matched,
// otherwise v and false.
func (s Stage) Lookup(v uint64) (uint64, bool) {
	for _, r := range s.Rules {
		if r.Contains(v) {
			return r.Apply(v), true
		}
	}
	return v, false
}

// Pipeline is the ordered list of stages a value passes through.
// It is never mutated after construction and is safe to share between
// goroutines.
type Pipeline struct {
	Stages []Stage
}

// Len returns the number of stages.
func (p Pipeline) Len() int { return len(p.Stages) }

// SeedRange is the half-open interval [Start, Start+Length).
type SeedRange struct {
	Start  uint64
	Length uint64
}

// Empty reports whether the range holds no values.
func (r SeedRange) Empty() bool { return r.Length == 0 }

// Last returns the inclusive upper bound. Only valid for non-empty ranges.
func (r SeedRange) Last() uint64 { return r.Start + (r.Length - 1) }
