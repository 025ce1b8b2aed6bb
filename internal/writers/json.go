package writers

import (
	"encoding/json"
	"io"

	"seedmap/pkg/api"
)

const FormatJSON = "json"

func init() { RegisterResult(FormatJSON, WriteJSON) }

// WriteJSON buffers every result and writes them as one indented JSON array.
func WriteJSON(w io.Writer, in <-chan api.ResultV1, _ Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(collect(in))
}
