// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff reports differences between expected and actual
// command output in tests.
package diff

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Lines returns a human-readable description of the differences
// between want and got, or "" if they are equal. It uses a unified
// diff from the diff command when one is available and falls back to
// a line-by-line cmp.Diff.
func Lines(want, got string) string {
	if want == got {
		return ""
	}
	if out, ok := unified(want, got); ok {
		return out
	}
	return cmp.Diff(strings.SplitAfter(want, "\n"), strings.SplitAfter(got, "\n"))
}

func unified(want, got string) (string, bool) {
	if _, err := exec.LookPath("diff"); err != nil {
		return "", false
	}
	dir, err := os.MkdirTemp("", "sortviz-diff")
	if err != nil {
		return "", false
	}
	defer os.RemoveAll(dir)
	if err := os.WriteFile(filepath.Join(dir, "want"), []byte(want), 0666); err != nil {
		return "", false
	}
	if err := os.WriteFile(filepath.Join(dir, "got"), []byte(got), 0666); err != nil {
		return "", false
	}

	cmd := exec.Command("diff", "-Nu", "want", "got")
	cmd.Dir = dir
	// diff exits 1 when the files differ; only the output matters.
	data, _ := cmd.CombinedOutput()
	if len(data) == 0 {
		return "", false
	}
	return string(data), true
}
