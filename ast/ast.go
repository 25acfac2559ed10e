// Copyright 2025 The Loon Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ast defines the lifetime-annotated syntax tree of a Loon source
// unit, and the diagnostics the analysis passes report against it.
//
// The tree is produced once by the build package and thereafter only
// annotated: the resolve package rewrites Type values in place but never
// restructures nodes.
package ast // import "github.com/loon-lang/loon/ast"

import (
	"fmt"

	"github.com/loon-lang/loon/syntax"
)

// An Ident is a name together with the source extent it was written at.
// Two idents are the same name iff their Names are equal; the position is
// provenance, not identity.
type Ident struct {
	Name    string
	NamePos syntax.Position
}

func (x Ident) Span() syntax.Span {
	return syntax.Span{Start: x.NamePos, End: x.NamePos.Add(x.Name)}
}

// A Lifetime locates an expression's value relative to the function scopes
// enclosing it. Depth is how many function scopes enclose the expression;
// Refs is the deepest function scope the value's computation depends on,
// or zero if it depends on nothing scope-bound. Refs never exceeds Depth.
type Lifetime struct {
	Depth uint8
	Refs  uint8
}

// Static is the lifetime of values that depend on no scope at all:
// string literals, builtins, and recovery values.
var Static = Lifetime{}

func (l Lifetime) String() string { return fmt.Sprintf("%d/%d", l.Refs, l.Depth) }

// An Item is one entry of a source unit or block:
// an expression (*Node), a definition (*Def), or a type alias (*TypeDef).
type Item interface {
	Span() syntax.Span
	item()
}

func (*Node) item()    {}
func (*Def) item()     {}
func (*TypeDef) item() {}

// Items is an ordered item sequence; the value of a block is the value of
// its last item.
type Items []Item

// A Node is an expression together with its computed lifetime.
type Node struct {
	Expr Expr
	Life Lifetime
}

func (n *Node) Span() syntax.Span { return n.Expr.Span() }

// A Def is a named definition: constant if Params is empty, function
// otherwise. Ret, if non-nil, is the declared result type.
type Def struct {
	Name   Ident
	Params []Param
	Ret    *Type
	Body   Items
}

// IsFunction reports whether the definition takes parameters.
func (d *Def) IsFunction() bool { return len(d.Params) > 0 }

func (d *Def) Span() syntax.Span {
	span := d.Name.Span()
	if n := len(d.Body); n > 0 {
		span.End = d.Body[n-1].Span().End
	}
	return span
}

// A Param is one formal parameter, with an optional declared type.
type Param struct {
	Name Ident
	Type *Type
}

// A TypeDef is a type alias item: type name = alt|alt|...
type TypeDef struct {
	TypePos syntax.Position // position of the "type" keyword
	Name    Ident
	Type    *Type
}

func (d *TypeDef) Span() syntax.Span {
	return syntax.Span{Start: d.TypePos, End: d.Type.Span().End}
}

// An Expr is one of the expression forms below.
type Expr interface {
	Span() syntax.Span
	expr()
}

func (*BinExpr) expr()  {}
func (*UnExpr) expr()   {}
func (*CallExpr) expr() {}
func (*IntLit) expr()   {}
func (*RealLit) expr()  {}
func (*StrLit) expr()   {}
func (*IdentRef) expr() {}
func (*Block) expr()    {}
func (*Closure) expr()  {}
func (*TreeLit) expr()  {}

// A BinOp is a binary operator.
type BinOp uint8

const (
	OrOp BinOp = iota
	AndOp
	EqOp
	NeOp
	LtOp
	LeOp
	GtOp
	GeOp
	AddOp
	SubOp
	MulOp
	DivOp
	RemOp
	ConsOp // x : list, prepend
	SnocOp // list :: x, append
)

var binOpNames = [...]string{
	OrOp:   "or",
	AndOp:  "and",
	EqOp:   "==",
	NeOp:   "!=",
	LtOp:   "<",
	LeOp:   "<=",
	GtOp:   ">",
	GeOp:   ">=",
	AddOp:  "+",
	SubOp:  "-",
	MulOp:  "*",
	DivOp:  "/",
	RemOp:  "%",
	ConsOp: ":",
	SnocOp: "::",
}

func (op BinOp) String() string { return binOpNames[op] }

// A UnOp is a unary operator.
type UnOp uint8

const (
	NegOp  UnOp = iota // -x
	NotOp              // not x
	HeadOp             // !list, first element
)

var unOpNames = [...]string{
	NegOp:  "-",
	NotOp:  "not",
	HeadOp: "!",
}

func (op UnOp) String() string { return unOpNames[op] }

// A BinExpr is X Op Y.
type BinExpr struct {
	X, Y  *Node
	Op    BinOp
	OpPos syntax.Position
}

func (x *BinExpr) Span() syntax.Span {
	return syntax.Span{Start: x.X.Span().Start, End: x.Y.Span().End}
}

// A UnExpr is Op X.
type UnExpr struct {
	Op    UnOp
	OpPos syntax.Position
	X     *Node
}

func (x *UnExpr) Span() syntax.Span {
	return syntax.Span{Start: x.OpPos, End: x.X.Span().End}
}

// A CallExpr applies Callee to Args. A chained call "x.f y" threads the
// previous result in as the first argument, so Args[0] may begin before
// Callee in the source.
type CallExpr struct {
	Callee *Node
	Args   []*Node
}

func (x *CallExpr) Span() syntax.Span {
	span := x.Callee.Span()
	if len(x.Args) > 0 {
		if first := x.Args[0].Span(); first.Start.Off < span.Start.Off {
			span.Start = first.Start
		}
		if last := x.Args[len(x.Args)-1].Span(); last.End.Off > span.End.Off {
			span.End = last.End
		}
	}
	return span
}

// An IntLit is an integer literal.
type IntLit struct {
	TokenPos syntax.Position
	Raw      string
	Value    int64
}

func (x *IntLit) Span() syntax.Span {
	return syntax.Span{Start: x.TokenPos, End: x.TokenPos.Add(x.Raw)}
}

// A RealLit is a real-number literal.
type RealLit struct {
	TokenPos syntax.Position
	Raw      string
	Value    float64
}

func (x *RealLit) Span() syntax.Span {
	return syntax.Span{Start: x.TokenPos, End: x.TokenPos.Add(x.Raw)}
}

// A StrLit is a string literal; Value has its escapes decoded.
type StrLit struct {
	TokenPos syntax.Position
	Raw      string
	Value    string
}

func (x *StrLit) Span() syntax.Span {
	return syntax.Span{Start: x.TokenPos, End: x.TokenPos.Add(x.Raw)}
}

// An IdentRef is a use of a name.
type IdentRef struct {
	Ident
}

// A Block is a parenthesized item sequence; its value is the last item's.
// Rparen is the position just past the closing paren.
type Block struct {
	Lparen, Rparen syntax.Position
	Items          Items
}

func (x *Block) Span() syntax.Span {
	return syntax.Span{Start: x.Lparen, End: x.Rparen}
}

// A Closure is an anonymous function term.
type Closure struct {
	Pipe   syntax.Position // position of the opening '|'
	Params []Param
	Body   Items
}

func (x *Closure) Span() syntax.Span {
	span := syntax.Span{Start: x.Pipe, End: x.Pipe.Add("|")}
	if n := len(x.Body); n > 0 {
		span.End = x.Body[n-1].Span().End
	}
	return span
}

// A TreeLit is a three-child structural literal: {left, value, right}.
// Rbrace is the position just past the closing brace.
type TreeLit struct {
	Lbrace, Rbrace syntax.Position
	Kids           [3]*Node
}

func (x *TreeLit) Span() syntax.Span {
	return syntax.Span{Start: x.Lbrace, End: x.Rbrace}
}
