// Copyright 2025 The Loon Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// A Rule identifies the grammar production that matched a Tree.
type Rule uint8

const (
	FileRule Rule = iota
	ItemsRule
	DefRule
	TypeDefRule
	ParamRule
	TypeExprRule

	// expression tiers, loosest first
	OrRule
	AndRule
	CmpRule
	AddSubRule
	MulDivRule
	NegRule
	CallRule       // chain of singles joined by '.'
	CallSingleRule // callee followed by juxtaposed arguments
	SnocRule
	ConsRule
	HeadRule

	// terms
	IntRule
	RealRule
	StringRule
	IdentRule
	ParenRule
	ClosureRule
	ListRule
	TreeRule

	OpRule // operator leaf inside a tier
)

var ruleNames = [...]string{
	FileRule:       "File",
	ItemsRule:      "Items",
	DefRule:        "Def",
	TypeDefRule:    "TypeDef",
	ParamRule:      "Param",
	TypeExprRule:   "TypeExpr",
	OrRule:         "Or",
	AndRule:        "And",
	CmpRule:        "Cmp",
	AddSubRule:     "AddSub",
	MulDivRule:     "MulDiv",
	NegRule:        "Neg",
	CallRule:       "Call",
	CallSingleRule: "CallSingle",
	SnocRule:       "Snoc",
	ConsRule:       "Cons",
	HeadRule:       "Head",
	IntRule:        "Int",
	RealRule:       "Real",
	StringRule:     "String",
	IdentRule:      "Ident",
	ParenRule:      "Paren",
	ClosureRule:    "Closure",
	ListRule:       "List",
	TreeRule:       "Tree",
	OpRule:         "Op",
}

func (r Rule) String() string { return ruleNames[r] }

// A Tree is a node of the concrete syntax tree: the rule that produced it,
// the exact source text it matched, and its sub-trees in source order.
//
// The analysis passes depend on nothing else about the parse; a different
// parser may be substituted as long as it produces the same shapes.
type Tree struct {
	Rule     Rule
	Raw      string // the matched source text
	Children []*Tree

	start, end Position
}

// Span returns the start and end position of the matched text.
func (t *Tree) Span() Span { return Span{t.start, t.end} }
