// Copyright 2025 The Loon Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/loon-lang/loon/ast"
	"github.com/loon-lang/loon/build"
	"github.com/loon-lang/loon/internal/chunkedfile"
	"github.com/loon-lang/loon/syntax"
)

var universe = map[string]bool{
	"nil":   true,
	"true":  true,
	"false": true,
	"print": true,
	"len":   true,
	"sqrt":  true,
}

func isUniversal(name string) bool { return universe[name] }

func buildFile(t *testing.T, src string) (ast.Items, error) {
	t.Helper()
	tree, err := syntax.Parse("test.loon", src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return build.File(tree, isUniversal)
}

// TestLifetimes checks the computed lifetime of the last top-level
// expression of each program, in refs/depth notation.
func TestLifetimes(t *testing.T) {
	for _, test := range []struct {
		src, want string
	}{
		// literals
		{`5`, "0/1"},
		{`1.5`, "0/1"},
		{`"hi"`, "0/0"}, // strings are static
		{`nil`, "0/0"},  // builtins are static

		// arithmetic and logic produce fresh values
		{`1 + 2`, "0/1"},
		{`true and false`, "0/1"},
		{`not true`, "0/1"},

		// structure links reference the frame they are built in
		{`1 : nil`, "0/1"},
		{`[]`, "0/0"},
		{`[1, 2]`, "1/1"},
		{`{1, 2, 3}`, "1/1"},

		// bindings and references
		{"x = 5\nx", "0/1"},
		{"x = (y = 5, y)\nx", "0/1"},
		{"f(x) = x\nf", "1/1"},

		// a call's lifetime comes from its arguments
		{"double(x) = x + x\ndouble 5", "0/1"},
		{"double(x) = x + x\n5.double", "0/1"},
		{"double(x) = x + x\n5.double.double", "0/1"},

		// a closure carries the refs of its result and captures
		{`|x| x`, "1/1"},
		{"y = 5\n|x| y", "1/1"},
	} {
		items, err := buildFile(t, test.src)
		if err != nil {
			t.Errorf("build `%s` failed: %v", test.src, err)
			continue
		}
		node, ok := items[len(items)-1].(*ast.Node)
		if !ok {
			t.Errorf("build `%s`: last item is %T, want expression", test.src, items[len(items)-1])
			continue
		}
		if got := node.Life.String(); got != test.want {
			t.Errorf("build `%s` = %s, want %s", test.src, got, test.want)
		}
	}
}

// TestAccepted checks programs that exercise the edge of the escape rules
// but are valid.
func TestAccepted(t *testing.T) {
	for _, src := range []string{
		// params outlive the body frame
		`f(x) = x`,
		`f(x) = x : x`,
		// recursion through the placeholder binding
		`f(x) = f x`,
		// a closure over an enclosing parameter survives that parameter's
		// function
		`g(a) = |z| a`,
		// block values that reference nothing block-local
		`f(x) = (y = x + 1, y)`,
		// shadowing a builtin function (but not a value constant)
		`len(x) = 1`,
	} {
		if _, err := buildFile(t, src); err != nil {
			t.Errorf("build `%s` failed: %v", src, err)
		}
	}
}

func TestErrors(t *testing.T) {
	for _, chunk := range chunkedfile.Read("testdata/errors.loon", t) {
		tree, err := syntax.Parse("errors.loon", chunk.Source)
		if err != nil {
			t.Errorf("parse: %v", err)
			continue
		}
		if _, err := build.File(tree, isUniversal); err != nil {
			for _, e := range err.(ast.ErrorList) {
				chunk.GotError(int(e.Span.Start.Line), e.Msg())
			}
		}
		chunk.Done()
	}
}

// TestErrorRecovery checks that a failed build still yields a complete
// item tree, so later diagnostics have something to point at.
func TestErrorRecovery(t *testing.T) {
	items, err := buildFile(t, "x = y\nx + 1")
	if err == nil {
		t.Fatal("build unexpectedly succeeded")
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if _, ok := items[1].(*ast.Node); !ok {
		t.Errorf("last item is %T, want expression", items[1])
	}
}

// nested returns a valid program of n nested block scopes, each binding
// a fresh name the next level references.
func nested(n int) string {
	src := "1"
	for i := 0; i < n; i++ {
		src = fmt.Sprintf("(v%d = %s, v%d + 1)", i, src, i)
	}
	return src
}

// TestDepthInvariant walks every node of a valid corpus and checks that
// refs never exceeds depth.
func TestDepthInvariant(t *testing.T) {
	srcs := []string{
		`f(a, b) = (c = a : b : nil, 1 + len c)`,
		"double(x) = x + x\ndouble 5 . double",
		`g(a) = (h = |z| a, h)`,
		`t = {1, {2, 3, 4}, 5}`,
		`apply(f, x) = f x`,
	}
	for n := 1; n <= 50; n += 7 {
		srcs = append(srcs, nested(n))
	}
	for _, src := range srcs {
		items, err := buildFile(t, src)
		if err != nil {
			t.Errorf("build `%s` failed: %v", src, err)
			continue
		}
		ast.Walk(items, func(n *ast.Node) {
			if n.Life.Refs > n.Life.Depth {
				t.Errorf("build `%s`: node at %s has lifetime %s (refs > depth)",
					src, n.Span().Start, n.Life)
			}
		})
	}
}

func TestTooDeep(t *testing.T) {
	src := strings.Repeat("(", 220) + "1" + strings.Repeat(")", 220)
	_, err := buildFile(t, src)
	if err == nil {
		t.Fatal("build unexpectedly succeeded")
	}
	list := err.(ast.ErrorList)
	if len(list) != 1 || list[0].Kind != ast.TooDeep {
		t.Errorf("got %v, want a single nesting error", err)
	}
}
