// internal/almanac/almanac.go
package almanac

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"seedmap/internal/engine"
)

const seedsPrefix = "seeds:"

// ErrMalformed is wrapped by every ParseError.
var ErrMalformed = errors.New("malformed almanac")

// ParseError reports the first bad line of a document. Line is 1-based;
// 0 means the problem is not tied to one line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%v: %s", ErrMalformed, e.Msg)
	}
	return fmt.Sprintf("%v: line %d: %s", ErrMalformed, e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrMalformed }

func errAt(line int, format string, a ...any) error {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, a...)}
}

// Almanac is a parsed input document.
type Almanac struct {
	Seeds    []uint64
	Pipeline engine.Pipeline
}

// SeedValues returns the seed list read as individual values.
func (a *Almanac) SeedValues() []uint64 { return a.Seeds }

// SeedRanges reads the seed list as consecutive (start, length) pairs.
func (a *Almanac) SeedRanges() ([]engine.SeedRange, error) {
	if len(a.Seeds)%2 != 0 {
		return nil, &ParseError{Msg: fmt.Sprintf("seed ranges need (start, length) pairs, got %d numbers", len(a.Seeds))}
	}
	out := make([]engine.SeedRange, 0, len(a.Seeds)/2)
	for i := 0; i < len(a.Seeds); i += 2 {
		r := engine.SeedRange{Start: a.Seeds[i], Length: a.Seeds[i+1]}
		if !fits(r.Start, r.Length) {
			return nil, &ParseError{Msg: fmt.Sprintf("seed range %d+%d runs past %d", r.Start, r.Length, uint64(math.MaxUint64))}
		}
		out = append(out, r)
	}
	return out, nil
}

// fits reports whether [start, start+length) stays inside uint64.
func fits(start, length uint64) bool {
	return length == 0 || length-1 <= math.MaxUint64-start
}

// ParseString parses a whole document held in memory.
func ParseString(text string) (*Almanac, error) {
	return Parse(strings.NewReader(text))
}

// BuildPipeline parses text and returns only its pipeline.
func BuildPipeline(text string) (engine.Pipeline, error) {
	a, err := ParseString(text)
	if err != nil {
		return engine.Pipeline{}, err
	}
	return a.Pipeline, nil
}

// Parse reads the seeds line followed by blank-line separated map blocks.
// Each block starts with a title line ending in ':' and continues with
// "dest source length" rows. Block order is stage order; row order is rule
// order.
func Parse(r io.Reader) (*Almanac, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var (
		a       Almanac
		ln      int
		sawSeed bool
		inBlock bool // between a title (or the seeds line) and the next blank line
		cur     *engine.Stage
	)
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			inBlock = false
			cur = nil
			continue
		}

		switch {
		case !sawSeed:
			seeds, err := parseSeeds(ln, line)
			if err != nil {
				return nil, err
			}
			a.Seeds = seeds
			sawSeed, inBlock = true, true

		case inBlock && cur == nil:
			// Still on the seeds block: only a blank line may follow it.
			return nil, errAt(ln, "expected a blank line after the seeds line, got %q", line)

		case !inBlock:
			if !strings.HasSuffix(line, ":") {
				return nil, errAt(ln, "expected a map title ending in ':', got %q", line)
			}
			a.Pipeline.Stages = append(a.Pipeline.Stages, engine.Stage{Name: stageName(line)})
			cur = &a.Pipeline.Stages[len(a.Pipeline.Stages)-1]
			inBlock = true

		default:
			rule, err := parseRule(ln, line)
			if err != nil {
				return nil, err
			}
			cur.Rules = append(cur.Rules, rule)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !sawSeed {
		return nil, &ParseError{Msg: "missing seeds line"}
	}
	return &a, nil
}

func stageName(title string) string {
	name := strings.TrimSpace(strings.TrimSuffix(title, ":"))
	return strings.TrimSpace(strings.TrimSuffix(name, " map"))
}

func parseSeeds(ln int, line string) ([]uint64, error) {
	rest, ok := strings.CutPrefix(line, seedsPrefix)
	if !ok {
		return nil, errAt(ln, "expected %q line, got %q", seedsPrefix, line)
	}
	f := strings.Fields(rest)
	if len(f) == 0 {
		return nil, errAt(ln, "seeds line lists no values")
	}
	seeds := make([]uint64, len(f))
	for i, tok := range f {
		v, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return nil, errAt(ln, "seed %d: %v", i+1, numErr(tok, err))
		}
		seeds[i] = v
	}
	return seeds, nil
}

func parseRule(ln int, line string) (engine.Rule, error) {
	f := strings.Fields(line)
	if len(f) != 3 {
		return engine.Rule{}, errAt(ln, "want 3 fields (dest source length), got %d", len(f))
	}
	var n [3]uint64
	for i, tok := range f {
		v, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return engine.Rule{}, errAt(ln, "field %d: %v", i+1, numErr(tok, err))
		}
		n[i] = v
	}
	r := engine.Rule{DestStart: n[0], SourceStart: n[1], Length: n[2]}
	if !fits(r.SourceStart, r.Length) || !fits(r.DestStart, r.Length) {
		return engine.Rule{}, errAt(ln, "rule interval runs past %d", uint64(math.MaxUint64))
	}
	return r, nil
}

func numErr(tok string, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("%q overflows uint64", tok)
	}
	return fmt.Errorf("%q is not an unsigned integer", tok)
}
