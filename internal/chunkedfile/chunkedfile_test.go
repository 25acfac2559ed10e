// Copyright 2025 The Loon Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunkedfile

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

type testReporter struct {
	reported []string
}

func (r *testReporter) Errorf(format string, args ...interface{}) {
	r.reported = append(r.reported, fmt.Sprintf(format, args...))
}

func (r *testReporter) assert(t *testing.T, want ...string) {
	t.Helper()
	if len(r.reported) != len(want) {
		t.Fatalf("reporter got %d errors %q, want %d", len(r.reported), r.reported, len(want))
	}
	for i := range want {
		if r.reported[i] != want[i] {
			t.Errorf("reporter got %q, want %q", r.reported[i], want[i])
		}
	}
	r.reported = nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chunks.loon")
	if err := os.WriteFile(path, []byte(content), 0o666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestChunkedFile(t *testing.T) {
	path := writeFile(t, `x = y ### "undefined: y"
---
x = 1
print x
`)

	reporter := &testReporter{}
	chunks := Read(path, reporter)
	reporter.assert(t)

	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}

	// The first chunk expects one error on line 1.
	chunk := chunks[0]
	if want := `x = y ### "undefined: y"`; chunk.Source != want {
		t.Fatalf("source = %q, want %q", chunk.Source, want)
	}
	chunk.GotError(1, "undefined: y")
	reporter.assert(t)

	// A second report of the same error is unexpected.
	chunk.GotError(1, "undefined: y")
	reporter.assert(t, fmt.Sprintf("\n%s:1: unexpected error: undefined: y", path))

	// The second chunk's source is padded to preserve line numbers.
	chunk = chunks[1]
	if want := "\n\nx = 1\nprint x\n"; chunk.Source != want {
		t.Fatalf("source = %q, want %q", chunk.Source, want)
	}
	chunk.GotError(3, "boom")
	reporter.assert(t, fmt.Sprintf("\n%s:3: unexpected error: boom", path))
	chunk.Done()
	reporter.assert(t)
}

func TestUnmatchedExpectation(t *testing.T) {
	path := writeFile(t, `f(x) = x ### "does not happen"`)

	reporter := &testReporter{}
	chunks := Read(path, reporter)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	chunks[0].Done()
	reporter.assert(t,
		fmt.Sprintf("\n%s:1: expected error matching %q", path, "does not happen"))
}

func TestBadPattern(t *testing.T) {
	path := writeFile(t, `x = y ### unquoted`)

	reporter := &testReporter{}
	Read(path, reporter)
	reporter.assert(t,
		fmt.Sprintf("\n%s:1: not a quoted regexp: unquoted", path))
}
