// Copyright 2025 The Loon Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import "github.com/loon-lang/loon/ast"

// A BindKind says what sort of entity a name is bound to.
type BindKind uint8

const (
	BindDef        BindKind = iota // a finished definition
	BindParam                      // a function parameter
	BindBuiltin                    // a host-provided name
	BindUnfinished                 // a definition whose body is still being analyzed
)

// A Binding associates a name with an entity while its scope is live.
// An Unfinished binding is placed for a named function before its body is
// analyzed, so the body may refer to it recursively; it is replaced by a
// Def binding once the body's lifetime is known.
type Binding struct {
	Kind  BindKind
	Depth uint8        // scope depth, for Param and Unfinished
	Def   *ast.Def     // for Def
	Life  ast.Lifetime // for Def
}

// Lifetime returns the lifetime a reference to this binding takes on.
func (b Binding) Lifetime() ast.Lifetime {
	switch b.Kind {
	case BindDef:
		return b.Life
	case BindParam, BindUnfinished:
		return ast.Lifetime{Depth: b.Depth, Refs: b.Depth}
	}
	return ast.Static // builtins escape nothing
}

// A blockScope is one name table; shadowing across blocks is by stack
// order, so within a single block the last write wins.
type blockScope map[string]Binding

// A funcScope is the stack of block scopes of one function body, plus the
// deepest enclosing scope its nested closures have been seen to capture.
type funcScope struct {
	blocks  []blockScope
	minRefs uint8
}

// scopes is the full scope stack of one analysis pass: a stack of function
// scopes, the outermost being the source unit itself.
type scopes struct {
	funcs []*funcScope
}

func newScopes() *scopes {
	s := &scopes{}
	s.enterFunction()
	return s
}

func (s *scopes) enterFunction() {
	s.funcs = append(s.funcs, &funcScope{blocks: []blockScope{{}}})
}

// exitFunction pops the innermost function scope and returns its
// accumulated minRefs.
func (s *scopes) exitFunction() uint8 {
	last := len(s.funcs) - 1
	minRefs := s.funcs[last].minRefs
	s.funcs = s.funcs[:last]
	return minRefs
}

func (s *scopes) enterBlock() {
	fs := s.current()
	fs.blocks = append(fs.blocks, blockScope{})
}

func (s *scopes) exitBlock() {
	fs := s.current()
	fs.blocks = fs.blocks[:len(fs.blocks)-1]
}

func (s *scopes) current() *funcScope { return s.funcs[len(s.funcs)-1] }

// depth is the number of live function scopes; the top level is 1.
func (s *scopes) depth() uint8 { return uint8(len(s.funcs)) }

// bind inserts into the innermost block scope of the innermost function
// scope, replacing any same-name binding already there.
func (s *scopes) bind(name string, b Binding) {
	fs := s.current()
	fs.blocks[len(fs.blocks)-1][name] = b
}

// lookup searches block scopes innermost to outermost within each function
// scope, innermost function scope first.
func (s *scopes) lookup(name string) (Binding, bool) {
	for fi := len(s.funcs) - 1; fi >= 0; fi-- {
		blocks := s.funcs[fi].blocks
		for bi := len(blocks) - 1; bi >= 0; bi-- {
			if b, ok := blocks[bi][name]; ok {
				return b, true
			}
		}
	}
	return Binding{}, false
}

// recordCapture notes that a binding at bindDepth has been referenced from
// the current depth: every function scope strictly inside the binding's
// scope now depends on it, so each must report refs at least that deep
// when it is finalized, even if its own body never mentions the name.
func (s *scopes) recordCapture(bindDepth uint8) {
	for fi := len(s.funcs) - 1; fi >= int(bindDepth); fi-- {
		fs := s.funcs[fi]
		if fs.minRefs < bindDepth {
			fs.minRefs = bindDepth
		}
	}
}
