// Package engine contains the remapping core: rules, stages, pipelines and the
// scans over them. It never imports app, writers, cli, or reducer; keep it
// domain-only.
//
// External outputs must not depend on the internal shape here — use pkg/api
// for stable wire types (JSON/YAML v1).
package engine
