// Copyright 2025 The Loon Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syntax provides a Loon scanner and concrete syntax tree.
//
// The parser produces a tree of rule-tagged nodes (see Tree); it performs
// no name resolution or lifetime analysis. Those are the business of the
// build and resolve packages, which consume the tree purely through its
// rule tags, children, spans, and raw text.
package syntax // import "github.com/loon-lang/loon/syntax"

import "fmt"

// A Position describes the location of a rune of input.
type Position struct {
	file *string // filename (indirect for compactness)
	Off  int32   // byte offset, starting at 0
	Line int32   // 1-based line number; 0 if not known
	Col  int32   // 1-based column number (in runes); 0 if not known
}

// MakePosition returns a position with the specified components.
func MakePosition(file *string, off, line, col int32) Position {
	return Position{file, off, line, col}
}

// IsValid reports whether the position is valid.
func (p Position) IsValid() bool { return p.Line >= 1 }

// Filename returns the name of the file containing this position.
func (p Position) Filename() string {
	if p.file != nil {
		return *p.file
	}
	return "<invalid>"
}

func (p Position) String() string {
	file := p.Filename()
	if p.IsValid() {
		if p.Col > 0 {
			return fmt.Sprintf("%s:%d:%d", file, p.Line, p.Col)
		}
		return fmt.Sprintf("%s:%d", file, p.Line)
	}
	return file
}

// Add returns the position at the end of s, assuming it contains no newlines.
func (p Position) Add(s string) Position {
	p.Off += int32(len(s))
	p.Col += int32(len([]rune(s)))
	return p
}

// A Span is a contiguous extent of source, from Start up to but not
// including End.
type Span struct {
	Start, End Position
}

func (s Span) String() string { return s.Start.String() }

// An Error describes a failure to scan or parse a source unit.
type Error struct {
	Pos Position
	Msg string

	// Incomplete reports that the input ended where more tokens were
	// required, so the caller (e.g. a REPL) may extend it and retry.
	Incomplete bool
}

func (e Error) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Msg) }
