// pkg/api/result_v1.go
package api

// ResultV1 is the stable JSON/YAML schema for one solved almanac.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ResultV1 struct {
	Source   string        `json:"source" yaml:"source"`
	Mode     string        `json:"mode" yaml:"mode"`                             // "values" | "ranges"
	Strategy string        `json:"strategy,omitempty" yaml:"strategy,omitempty"` // ranges mode only
	Minimum  uint64        `json:"minimum" yaml:"minimum"`
	Seeds    int           `json:"seeds" yaml:"seeds"`   // numbers on the seeds line
	Values   uint64        `json:"values" yaml:"values"` // seed values evaluated
	Stages   int           `json:"stages" yaml:"stages"`
	Tasks    int           `json:"tasks,omitempty" yaml:"tasks,omitempty"`
	Trace    []SeedTraceV1 `json:"trace,omitempty" yaml:"trace,omitempty"`
}

// SeedTraceV1 is a seed and its value after each stage, seed first.
type SeedTraceV1 struct {
	Seed uint64   `json:"seed" yaml:"seed"`
	Path []uint64 `json:"path" yaml:"path,flow"`
}
