package cliutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpandPositionals(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("seeds: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("seeds: 2\n"), 0o644))

	got, err := ExpandPositionals([]string{filepath.Join(dir, "*.txt"), "-", "plain.txt"})
	require.NoError(t, err)
	require.Equal(t, []string{a, b, "-", "plain.txt"}, got)
}

func TestExpandPositionalsErrors(t *testing.T) {
	_, err := ExpandPositionals([]string{filepath.Join(t.TempDir(), "*.none")})
	require.ErrorContains(t, err, "no input matched")

	_, err = ExpandPositionals([]string{"-", "-"})
	require.ErrorContains(t, err, "more than once")

	_, err = ExpandPositionals([]string{"[bad"})
	require.ErrorContains(t, err, "bad glob")
}
