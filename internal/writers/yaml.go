package writers

import (
	"io"

	"gopkg.in/yaml.v3"

	"seedmap/pkg/api"
)

const FormatYAML = "yaml"

func init() { RegisterResult(FormatYAML, WriteYAML) }

// WriteYAML buffers every result and writes them as one YAML sequence.
func WriteYAML(w io.Writer, in <-chan api.ResultV1, _ Options) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(collect(in)); err != nil {
		return err
	}
	return enc.Close()
}
