// Copyright 2025 The Loon Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import (
	"fmt"
	"strings"

	"github.com/loon-lang/loon/syntax"
)

// An ErrorKind classifies a diagnostic. The taxonomy is closed: every
// defect the analysis passes can report is one of these.
type ErrorKind uint8

const (
	UnknownDef              ErrorKind = iota // name has no visible binding
	UnknownType                              // type expression names an unregistered type
	InvalidLiteral                           // literal text cannot be decoded
	UnderscoreTerminus                       // bindable name starts or ends with '_'
	FunctionNamedUnderscore                  // a function is named the discard identifier
	ReturnReferencesLocal                    // tail expression depends on a dying scope
	ForbiddenRedefinition                    // binding of nil, true, or false
	LastItemNotExpression                    // nested block ends in a definition
	TooDeep                                  // nesting exceeded the analysis limit
)

// An Error is a single diagnostic, bound to the source extent it is about.
// Name carries the offending identifier for the kinds concerning one.
type Error struct {
	Kind ErrorKind
	Span syntax.Span
	Name string
}

// Msg returns the message without position information.
func (e Error) Msg() string {
	switch e.Kind {
	case UnknownDef:
		return fmt.Sprintf("undefined: %s", e.Name)
	case UnknownType:
		return fmt.Sprintf("unknown type: %s", e.Name)
	case InvalidLiteral:
		return "invalid literal"
	case UnderscoreTerminus:
		return fmt.Sprintf("%s may not start or end with '_'", e.Name)
	case FunctionNamedUnderscore:
		return "a function cannot be named '_'"
	case ReturnReferencesLocal:
		return "return value references a local value"
	case ForbiddenRedefinition:
		return fmt.Sprintf("%s cannot be redefined", e.Name)
	case LastItemNotExpression:
		return "the last item in a block must be an expression"
	case TooDeep:
		return "program is nested too deeply"
	}
	return "invalid program"
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Span.Start, e.Msg())
}

// An ErrorList is a non-empty list of errors in source order.
type ErrorList []Error

// ErrorList implements the error interface.
func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// ANSI sequences used by Render when color is enabled.
const (
	ansiRed   = "\x1b[31m"
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// Render formats the error against its source text, underlining the
// offending span in context:
//
//	test.loon:2:5: undefined: foo
//	2 |     foo 1
//	  |     ^^^
//
// src must be the text the error's positions were produced from.
func (e Error) Render(src string, color bool) string {
	var buf strings.Builder
	if color {
		buf.WriteString(ansiBold)
	}
	fmt.Fprintf(&buf, "%s: %s\n", e.Span.Start, e.Msg())
	if color {
		buf.WriteString(ansiReset)
	}

	start := e.Span.Start
	if !start.IsValid() {
		return buf.String()
	}
	lines := strings.Split(src, "\n")
	if int(start.Line) > len(lines) {
		return buf.String()
	}
	line := lines[start.Line-1]

	// The caret run covers the span, clipped to the first line.
	from := int(start.Col) - 1
	to := len([]rune(line))
	if e.Span.End.Line == start.Line && int(e.Span.End.Col)-1 < to {
		to = int(e.Span.End.Col) - 1
	}
	if to <= from {
		to = from + 1
	}

	gutter := fmt.Sprintf("%d", start.Line)
	fmt.Fprintf(&buf, "%s | %s\n", gutter, line)
	fmt.Fprintf(&buf, "%s | %s", strings.Repeat(" ", len(gutter)), strings.Repeat(" ", from))
	if color {
		buf.WriteString(ansiRed)
	}
	buf.WriteString(strings.Repeat("^", to-from))
	if color {
		buf.WriteString(ansiReset)
	}
	buf.WriteString("\n")
	return buf.String()
}

// Render formats every error in the list against src.
func (l ErrorList) Render(src string, color bool) string {
	var buf strings.Builder
	for _, e := range l {
		buf.WriteString(e.Render(src, color))
	}
	return buf.String()
}
