// Copyright 2025 The Loon Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"testing"

	"github.com/loon-lang/loon/ast"
)

func TestScopeShadowing(t *testing.T) {
	s := newScopes()
	s.bind("x", Binding{Kind: BindDef, Life: ast.Lifetime{Depth: 1, Refs: 0}})

	s.enterBlock()
	s.bind("x", Binding{Kind: BindDef, Life: ast.Lifetime{Depth: 1, Refs: 1}})
	if b, ok := s.lookup("x"); !ok || b.Life.Refs != 1 {
		t.Errorf("inner lookup = %+v, %v; want the shadowing binding", b, ok)
	}
	s.exitBlock()

	if b, ok := s.lookup("x"); !ok || b.Life.Refs != 0 {
		t.Errorf("outer lookup = %+v, %v; want the original binding restored", b, ok)
	}
	if _, ok := s.lookup("y"); ok {
		t.Error("lookup of unbound name succeeded")
	}
}

func TestScopeAcrossFunctions(t *testing.T) {
	s := newScopes()
	s.bind("outer", Binding{Kind: BindDef})
	s.enterFunction()
	s.bind("p", Binding{Kind: BindParam, Depth: 1})

	// names of enclosing function scopes stay visible
	if _, ok := s.lookup("outer"); !ok {
		t.Error("enclosing binding not visible inside function")
	}
	if got := s.depth(); got != 2 {
		t.Errorf("depth = %d, want 2", got)
	}

	s.exitFunction()
	if _, ok := s.lookup("p"); ok {
		t.Error("parameter visible after its function scope exited")
	}
}

// TestRecordCapture checks that a reference to an outer binding marks
// every function scope strictly inside the binding's own.
func TestRecordCapture(t *testing.T) {
	s := newScopes()   // depth 1
	s.enterFunction()  // depth 2
	s.enterFunction()  // depth 3

	s.recordCapture(1)
	if got := s.exitFunction(); got != 1 {
		t.Errorf("innermost minRefs = %d, want 1", got)
	}
	if got := s.exitFunction(); got != 1 {
		t.Errorf("middle minRefs = %d, want 1", got)
	}

	// the binding's own scope is not marked
	if got := s.current().minRefs; got != 0 {
		t.Errorf("outermost minRefs = %d, want 0", got)
	}
}

func TestBindingLifetime(t *testing.T) {
	for _, test := range []struct {
		b    Binding
		want ast.Lifetime
	}{
		{Binding{Kind: BindDef, Life: ast.Lifetime{Depth: 2, Refs: 1}}, ast.Lifetime{Depth: 2, Refs: 1}},
		{Binding{Kind: BindParam, Depth: 1}, ast.Lifetime{Depth: 1, Refs: 1}},
		{Binding{Kind: BindUnfinished, Depth: 2}, ast.Lifetime{Depth: 2, Refs: 2}},
		{Binding{Kind: BindBuiltin}, ast.Static},
	} {
		if got := test.b.Lifetime(); got != test.want {
			t.Errorf("%v.Lifetime() = %s, want %s", test.b.Kind, got, test.want)
		}
	}
}
