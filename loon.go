// Copyright 2025 The Loon Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package loon provides the frontend of the Loon language: parsing,
// lifetime analysis, and name/type resolution.
//
// Most clients need only Check, which runs the whole pipeline:
//
//	items, err := loon.Check("hello.loon", nil)
//
// The stages are also available separately. Parse produces the concrete
// syntax tree, build.File turns it into a lifetime-annotated item tree,
// and resolve.File checks names and flattens declared types. The resolve
// stage assumes a well-formed tree, so Check skips it when the build
// stage reported errors.
package loon // import "github.com/loon-lang/loon"

import (
	"github.com/loon-lang/loon/ast"
	"github.com/loon-lang/loon/build"
	"github.com/loon-lang/loon/resolve"
	"github.com/loon-lang/loon/syntax"
)

// Universe holds the names pre-bound in every Loon program.
// The three value constants cannot be rebound; the functions can be
// shadowed like any other definition.
var Universe = map[string]bool{
	"nil":   true,
	"true":  true,
	"false": true,

	"print":   true,
	"println": true,
	"len":     true,
	"tail":    true,
	"range":   true,
	"min":     true,
	"max":     true,
	"abs":     true,
	"floor":   true,
	"ceil":    true,
	"round":   true,
	"sqrt":    true,
	"error":   true,
	"assert":  true,
}

// IsUniversal reports whether name is pre-bound in every program.
func IsUniversal(name string) bool { return Universe[name] }

// Parse parses a source unit into its concrete syntax tree.
// The filename is used only in diagnostics; src is a string, a []byte,
// or nil to read the named file. See syntax.Parse.
func Parse(filename string, src interface{}) (*syntax.Tree, error) {
	return syntax.Parse(filename, src)
}

// Resolve runs both analysis passes over a parsed tree against the
// universe. If the first pass reports errors the second is skipped and
// the best-effort tree is returned alongside the ast.ErrorList.
func Resolve(tree *syntax.Tree) (ast.Items, error) {
	items, err := build.File(tree, IsUniversal)
	if err != nil {
		return items, err
	}
	if err := resolve.File(items, IsUniversal); err != nil {
		return items, err
	}
	return items, nil
}

// Check runs the full frontend over one source unit and returns its
// analyzed item tree.
//
// Parse errors are returned as syntax.Error; analysis errors as
// ast.ErrorList, alongside the best-effort tree the failed pass produced.
func Check(filename string, src interface{}) (ast.Items, error) {
	tree, err := Parse(filename, src)
	if err != nil {
		return nil, err
	}
	return Resolve(tree)
}
