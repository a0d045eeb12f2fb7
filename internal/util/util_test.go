// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"shorter than max", "chai", 10, "chai"},
		{"exact length", "chai", 4, "chai"},
		{"truncated with ellipsis", "chai peene chale", 10, "chai pe..."},
		{"tiny max skips ellipsis", "hello", 2, "he"},
		{"zero max", "hello", 0, ""},
		{"devanagari safe", "नमस्ते दुनिया", 6, "नमस..."},
		{"emoji safe", "😀😁😂🤣😃😄", 4, "😀..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateRunes(tt.in, tt.max); got != tt.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestTruncateRunesNoEllipsis(t *testing.T) {
	if got := TruncateRunesNoEllipsis("namaste", 4); got != "nama" {
		t.Errorf("got %q", got)
	}
	if got := TruncateRunesNoEllipsis("नमस्ते", 3); got != "नमस" {
		t.Errorf("devanagari truncation wrong: %q", got)
	}
	if got := TruncateRunesNoEllipsis("hi", 10); got != "hi" {
		t.Errorf("short string must pass through: %q", got)
	}
}

func TestRuneLen(t *testing.T) {
	if got := RuneLen("नमस्ते"); got != 6 {
		t.Errorf("RuneLen = %d, want 6", got)
	}
	if got := RuneLen(""); got != 0 {
		t.Errorf("RuneLen(\"\") = %d", got)
	}
}

func TestAtomicWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.txt")

	if err := AtomicWriteFile(path, []byte("pehla"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "pehla" {
		t.Errorf("content = %q", data)
	}

	// Overwrite replaces the whole file.
	if err := AtomicWriteFile(path, []byte("doosra"), 0644); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "doosra" {
		t.Errorf("overwrite failed: %q", data)
	}

	// No temp droppings left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("leftover temp files: %v", entries)
	}
}
