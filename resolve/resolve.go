// Copyright 2025 The Loon Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resolve checks the names and declared types of an item tree.
//
// The pass re-walks the tree the build package produced, maintaining a
// lexical environment of definitions, parameters, and registered type
// names. Type expressions are flattened into their canonical variant sets
// in place: resolving twice is a no-op, and two spellings of the same
// union compare equal afterwards.
//
// The pass assumes a well-formed tree and is skipped entirely when the
// build pass reported errors.
package resolve // import "github.com/loon-lang/loon/resolve"

import "github.com/loon-lang/loon/ast"

// File resolves an item tree in place.
//
// isBuiltin reports whether a name is pre-bound by the host; it may be
// nil. If any diagnostics were produced the error is an ast.ErrorList.
func File(items ast.Items, isBuiltin func(string) bool) error {
	if isBuiltin == nil {
		isBuiltin = func(string) bool { return false }
	}
	r := &resolver{env: rootEnv(), isBuiltin: isBuiltin}
	r.items(items)
	if len(r.errors) > 0 {
		return r.errors
	}
	return nil
}

// Primitive type names, registered in the root environment.
var primitives = map[string]ast.VariantSet{
	"nil":  ast.Of(ast.Nil),
	"bool": ast.Of(ast.Bool),
	"nat":  ast.Of(ast.Nat),
	"int":  ast.Of(ast.Int),
	"real": ast.Of(ast.Real),
	"text": ast.Of(ast.Text),
}

// An env is one lexical scope level. Bindings shadow outward: lookups
// walk the parent chain, so popping a level restores what it shadowed.
type env struct {
	parent *env
	types  map[string]ast.VariantSet
	names  map[string]bool
}

func rootEnv() *env {
	e := &env{types: make(map[string]ast.VariantSet, len(primitives)), names: map[string]bool{}}
	for name, set := range primitives {
		e.types[name] = set
	}
	return e
}

func (e *env) lookupType(name string) (ast.VariantSet, bool) {
	for ; e != nil; e = e.parent {
		if set, ok := e.types[name]; ok {
			return set, true
		}
	}
	return 0, false
}

func (e *env) lookupName(name string) bool {
	for ; e != nil; e = e.parent {
		if e.names[name] {
			return true
		}
	}
	return false
}

type resolver struct {
	env       *env
	isBuiltin func(string) bool
	errors    ast.ErrorList
}

func (r *resolver) push() {
	r.env = &env{parent: r.env, types: map[string]ast.VariantSet{}, names: map[string]bool{}}
}

func (r *resolver) pop() { r.env = r.env.parent }

func (r *resolver) errorAt(kind ast.ErrorKind, id ast.Ident) {
	r.errors = append(r.errors, ast.Error{Kind: kind, Span: id.Span(), Name: id.Name})
}

func (r *resolver) items(items ast.Items) {
	for _, it := range items {
		switch it := it.(type) {
		case *ast.Def:
			r.def(it)
		case *ast.TypeDef:
			r.typeDef(it)
		case *ast.Node:
			r.expr(it)
		}
	}
}

// typeDef registers an alias; later items see it, earlier ones do not.
func (r *resolver) typeDef(d *ast.TypeDef) {
	r.typeExpr(d.Type)
	r.env.types[d.Name.Name] = d.Type.Set
}

// typeExpr flattens a type expression into its variant set. An unknown
// alternative marks the whole expression Invalid but the rest is still
// checked.
func (r *resolver) typeExpr(t *ast.Type) {
	if t == nil || t.State != ast.Unresolved {
		return
	}
	t.State = ast.Resolved
	for _, alt := range t.Alts {
		if alt.Nil {
			t.Set = t.Set.Union(ast.Of(ast.Nil))
			continue
		}
		set, ok := r.env.lookupType(alt.Ident.Name)
		if !ok {
			r.errorAt(ast.UnknownType, alt.Ident)
			t.State = ast.Invalid
			continue
		}
		t.Set = t.Set.Union(set)
	}
	if t.State == ast.Invalid {
		t.Set = 0
	}
}

func (r *resolver) def(d *ast.Def) {
	r.typeExpr(d.Ret)
	for i := range d.Params {
		r.typeExpr(d.Params[i].Type)
	}
	if d.IsFunction() {
		// Bound before the body so the body may call it recursively.
		r.env.names[d.Name.Name] = true
		r.push()
		for _, p := range d.Params {
			r.env.names[p.Name.Name] = true
		}
		r.items(d.Body)
		r.pop()
		return
	}
	r.items(d.Body)
	r.env.names[d.Name.Name] = true
}

func (r *resolver) expr(n *ast.Node) {
	switch e := n.Expr.(type) {
	case *ast.IdentRef:
		if !r.env.lookupName(e.Name) && !r.isBuiltin(e.Name) {
			r.errorAt(ast.UnknownDef, e.Ident)
		}
	case *ast.BinExpr:
		r.expr(e.X)
		r.expr(e.Y)
	case *ast.UnExpr:
		r.expr(e.X)
	case *ast.CallExpr:
		r.expr(e.Callee)
		for _, arg := range e.Args {
			r.expr(arg)
		}
	case *ast.Block:
		r.push()
		r.items(e.Items)
		r.pop()
	case *ast.Closure:
		for i := range e.Params {
			r.typeExpr(e.Params[i].Type)
		}
		r.push()
		for _, p := range e.Params {
			r.env.names[p.Name.Name] = true
		}
		r.items(e.Body)
		r.pop()
	case *ast.TreeLit:
		for _, kid := range e.Kids {
			r.expr(kid)
		}
	}
}
