package writers

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"seedmap/pkg/api"
)

const FormatText = "text"

// TextHeader is the TSV header line (without trailing newline).
const TextHeader = "source\tmode\tstrategy\tminimum\tseeds\tvalues\tstages\ttasks"

func init() { RegisterResult(FormatText, StreamText) }

// StreamText writes one TSV row per result as it arrives. Traces follow their
// row as indented "seed: a -> b -> c" lines.
func StreamText(w io.Writer, in <-chan api.ResultV1, opt Options) error {
	if opt.Header {
		if _, err := fmt.Fprintln(w, TextHeader); err != nil {
			return err
		}
	}
	for r := range in {
		if err := writeTextRow(w, r); err != nil {
			return err
		}
	}
	return nil
}

func writeTextRow(w io.Writer, r api.ResultV1) error {
	strategy := r.Strategy
	if strategy == "" {
		strategy = "-"
	}
	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
		r.Source, r.Mode, strategy, r.Minimum, r.Seeds, r.Values, r.Stages, r.Tasks,
	); err != nil {
		return err
	}
	for _, tr := range r.Trace {
		if _, err := fmt.Fprintf(w, "  %d: %s\n", tr.Seed, joinPath(tr.Path)); err != nil {
			return err
		}
	}
	return nil
}

func joinPath(path []uint64) string {
	parts := make([]string, len(path))
	for i, v := range path {
		parts[i] = strconv.FormatUint(v, 10)
	}
	return strings.Join(parts, " -> ")
}
