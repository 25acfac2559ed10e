// Copyright 2025 The Loon Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax_test

import (
	"strings"
	"testing"

	"github.com/loon-lang/loon/syntax"
)

// treeString renders a concrete syntax tree compactly: leaf tokens print
// their raw text, every other node prints as (Rule children...).
func treeString(t *syntax.Tree) string {
	switch t.Rule {
	case syntax.IntRule, syntax.RealRule, syntax.StringRule,
		syntax.IdentRule, syntax.OpRule:
		return t.Raw
	}
	var buf strings.Builder
	buf.WriteByte('(')
	buf.WriteString(t.Rule.String())
	for _, c := range t.Children {
		buf.WriteByte(' ')
		buf.WriteString(treeString(c))
	}
	buf.WriteByte(')')
	return buf.String()
}

func TestParseTree(t *testing.T) {
	for _, test := range []struct {
		input, want string
	}{
		// definitions
		{`x = 1`, `(Items (Def x 1))`},
		{`double(x) = x + x`, `(Items (Def double (Param x) (AddSub x + x)))`},
		{`f(x: int|nil): real = x`, `(Items (Def f (Param x (TypeExpr int nil)) (TypeExpr real) x))`},
		{`type t = int|text`, `(Items (TypeDef t (TypeExpr int text)))`},
		{"f(a, b) = (c = a\nc + b)",
			`(Items (Def f (Param a) (Param b) (Items (Def c a) (AddSub c + b))))`},
		{"a = 1\na + 1", `(Items (Def a 1) (AddSub a + 1))`},

		// calls
		{`double 5`, `(Items (CallSingle double 5))`},
		{`5.double.double`, `(Items (Call 5 double double))`},
		{`a.f x`, `(Items (Call a (CallSingle f x)))`},
		{`f 1 : nil`, `(Items (CallSingle f (Cons 1 : nil)))`},

		// operator tiers
		{`1 + 2 * 3`, `(Items (AddSub 1 + (MulDiv 2 * 3)))`},
		{`not a and b or c`, `(Items (Or (And (Neg not a) and b) or c))`},
		{`-x * y`, `(Items (MulDiv (Neg - x) * y))`},
		{`!xs + 1`, `(Items (AddSub (Head ! xs) + 1))`},
		{`1 : 2 : nil`, `(Items (Cons 1 : 2 : nil))`},
		{`xs :: 4`, `(Items (Snoc xs :: 4))`},
		{`x : xs :: y`, `(Items (Snoc (Cons x : xs) :: y))`},
		{`a == b`, `(Items (Cmp a == b))`},

		// terms
		{`[1 + 2, 3]`, `(Items (List (AddSub 1 + 2) 3))`},
		{`[]`, `(Items (List))`},
		{`{1, 2, 3}`, `(Items (Tree 1 2 3))`},
		{`|x, y| x + y`, `(Items (Closure (Param x) (Param y) (AddSub x + y)))`},
		{`|| 1`, `(Items (Closure 1))`},
		{`(x = 1, x * 2)`, `(Items (Paren (Items (Def x 1) (MulDiv x * 2))))`},
	} {
		tree, err := syntax.Parse("foo.loon", test.input)
		if err != nil {
			t.Errorf("parse `%s` failed: %v", test.input, err)
			continue
		}
		if got := treeString(tree.Children[0]); got != test.want {
			t.Errorf("parse `%s` = %s, want %s", test.input, got, test.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, test := range []struct {
		input, want    string
		wantIncomplete bool
	}{
		{`{1, 2}`, "a tree literal requires exactly three children", false},
		{`()`, "a block requires at least one item", false},
		{`x = )`, "want expression", false},
		{`x =`, "want expression", true},
		{`(a`, "got end of file, want )", true},
		{`|x| (`, "a block requires at least one item", true},
	} {
		_, err := syntax.Parse("foo.loon", test.input)
		if err == nil {
			t.Errorf("parse `%s` unexpectedly succeeded", test.input)
			continue
		}
		perr, ok := err.(syntax.Error)
		if !ok {
			t.Errorf("parse `%s` returned a %T, want syntax.Error", test.input, err)
			continue
		}
		if !strings.Contains(perr.Msg, test.want) {
			t.Errorf("parse `%s` = %q, want it to contain %q", test.input, perr.Msg, test.want)
		}
		if perr.Incomplete != test.wantIncomplete {
			t.Errorf("parse `%s`: Incomplete = %v, want %v", test.input, perr.Incomplete, test.wantIncomplete)
		}
	}
}

func TestParseSpan(t *testing.T) {
	tree, err := syntax.Parse("foo.loon", "x + y")
	if err != nil {
		t.Fatal(err)
	}
	span := tree.Span()
	if got, want := span.Start.String(), "foo.loon:1:1"; got != want {
		t.Errorf("start = %s, want %s", got, want)
	}
	if got, want := span.End.String(), "foo.loon:1:6"; got != want {
		t.Errorf("end = %s, want %s", got, want)
	}
}
