// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"seedmap/pkg/api"
)

// Options are presentation switches shared by every format.
type Options struct {
	Header bool // TSV header line (text only)
}

// ResultWriterFunc consumes results until in is closed and encodes them to w.
type ResultWriterFunc func(w io.Writer, in <-chan api.ResultV1, opt Options) error

// ResultWriters maps format name to handler. Register in init() blocks of
// the format files.
var ResultWriters = map[string]ResultWriterFunc{}

// RegisterResult adds or replaces a format (last wins).
func RegisterResult(format string, fn ResultWriterFunc) { ResultWriters[format] = fn }

// Formats lists the registered format names in sorted order.
func Formats() []string {
	out := make([]string, 0, len(ResultWriters))
	for f := range ResultWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// StartResultWriter spins up a writer goroutine for format. The returned error
// channel yields exactly one value after the input channel is closed. An
// unknown format still drains the input so senders never block.
func StartResultWriter(out io.Writer, format string, opt Options, bufSize int) (chan<- api.ResultV1, <-chan error) {
	if bufSize <= 0 {
		bufSize = 16
	}
	in := make(chan api.ResultV1, bufSize)
	errCh := make(chan error, 1)

	go func() {
		fn, ok := ResultWriters[format]
		if !ok {
			for range in {
			}
			errCh <- fmt.Errorf("unknown result format %q (no writer registered)", format)
			return
		}
		err := fn(out, in, opt)
		// Keep draining after a write failure so the producer can finish.
		for range in {
		}
		errCh <- err
	}()
	return in, errCh
}

func collect(in <-chan api.ResultV1) []api.ResultV1 {
	out := []api.ResultV1{}
	for r := range in {
		out = append(out, r)
	}
	return out
}
