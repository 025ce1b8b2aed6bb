// Package almanac reads the seed/map text format into an engine.Pipeline and
// its seed list. Parsing is strict: a malformed line fails the whole document,
// since a silently skipped rule changes every result downstream.
package almanac
