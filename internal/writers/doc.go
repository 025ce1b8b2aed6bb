// Package writers turns solved almanacs into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (TSV text, JSON, YAML).
//   - Engine stays domain-only; reducer stays orchestration-only.
//   - JSON/YAML go through pkg/api (v1) for a stable wire format.
package writers
