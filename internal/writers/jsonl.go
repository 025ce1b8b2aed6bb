package writers

import (
	"encoding/json"
	"io"

	"seedmap/pkg/api"
)

const FormatJSONL = "jsonl"

func init() { RegisterResult(FormatJSONL, StreamJSONL) }

// StreamJSONL writes one compact JSON object per line as results arrive.
func StreamJSONL(w io.Writer, in <-chan api.ResultV1, _ Options) error {
	enc := json.NewEncoder(w)
	for r := range in {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
