package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsTTY(t *testing.T) {
	if IsTTY(&strings.Builder{}) {
		t.Error("non-file writer reported as TTY")
	}

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	if IsTTY(f) {
		t.Error("regular file reported as TTY")
	}

	// A closed file makes Stat fail; that must read as "not a TTY", not
	// panic.
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if IsTTY(f) {
		t.Error("closed file reported as TTY")
	}
}
