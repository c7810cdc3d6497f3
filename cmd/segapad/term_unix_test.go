//go:build linux || darwin

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRawModeNeedsTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "stdin"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	restore, err := rawMode(f)
	if err == nil {
		restore()
		t.Fatalf("rawMode succeeded on a regular file")
	}
}
