// Copyright 2025 The Loon Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package build turns a concrete syntax tree into a lifetime-annotated
// item tree.
//
// The pass walks the tree bottom-up, tracking function and block scopes as
// it goes and computing, for every expression node, how deep into the
// enclosing function scopes the node's value reaches (see ast.Lifetime).
// An expression whose value still depends on a scope about to be discarded
// is reported as an error at the point it would be handed outward, which
// is what lets the language manage structure lifetimes without a garbage
// collector.
//
// Every defect is recorded and recovered from, so one pass reports all the
// defects of a source unit.
package build // import "github.com/loon-lang/loon/build"

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/loon-lang/loon/ast"
	"github.com/loon-lang/loon/syntax"
)

// Names bound by the language itself; binding them is an error.
var reservedNames = map[string]bool{"nil": true, "true": true, "false": true}

// maxNesting bounds how deeply the pass will recurse before reporting
// TooDeep and abandoning the subtree, keeping pathological input from
// exhausting the goroutine stack.
const maxNesting = 200

// File analyzes a parsed source unit and returns its item tree.
//
// isBuiltin reports whether a name is pre-bound by the host; it may be nil.
// If any diagnostics were produced the error is an ast.ErrorList and the
// returned items are a best-effort tree.
func File(tree *syntax.Tree, isBuiltin func(string) bool) (ast.Items, error) {
	if tree.Rule == syntax.FileRule {
		tree = tree.Children[0]
	}
	if isBuiltin == nil {
		isBuiltin = func(string) bool { return false }
	}
	b := &builder{scopes: newScopes(), isBuiltin: isBuiltin}
	items := b.items(tree, false)
	if len(b.errors) > 0 {
		return items, b.errors
	}
	return items, nil
}

type builder struct {
	scopes    *scopes
	isBuiltin func(string) bool
	errors    ast.ErrorList
	nesting   int
	tooDeep   bool
}

func (b *builder) depth() uint8 { return b.scopes.depth() }

func (b *builder) errorAt(kind ast.ErrorKind, span syntax.Span, name string) {
	b.errors = append(b.errors, ast.Error{Kind: kind, Span: span, Name: name})
}

// items processes an item sequence. checkRef is set for sequences that are
// the tail position of a function scope: there, a final expression whose
// refs reach the current depth would hand out a value about to die.
func (b *builder) items(t *syntax.Tree, checkRef bool) ast.Items {
	items := make(ast.Items, 0, len(t.Children))
	for _, c := range t.Children {
		switch c.Rule {
		case syntax.DefRule:
			items = append(items, b.def(c))
		case syntax.TypeDefRule:
			items = append(items, b.typeDef(c))
		default:
			items = append(items, b.expr(c))
		}
	}
	if n := len(items); n > 0 {
		last := items[n-1]
		node, isExpr := last.(*ast.Node)
		if checkRef && isExpr &&
			node.Life.Refs == b.depth() && len(b.scopes.current().blocks) == 1 {
			b.errorAt(ast.ReturnReferencesLocal, node.Span(), "")
		}
		if b.depth() > 1 && !isExpr {
			b.errorAt(ast.LastItemNotExpression, last.Span(), "")
		}
	}
	return items
}

// ident validates and converts an identifier leaf.
func (b *builder) ident(t *syntax.Tree) ast.Ident {
	name := t.Raw
	if (strings.HasPrefix(name, "_") || strings.HasSuffix(name, "_")) && name != "_" {
		b.errorAt(ast.UnderscoreTerminus, t.Span(), name)
	}
	return ast.Ident{Name: name, NamePos: t.Span().Start}
}

// boundIdent is ident for name positions that create a binding.
func (b *builder) boundIdent(t *syntax.Tree) ast.Ident {
	id := b.ident(t)
	if reservedNames[id.Name] {
		b.errorAt(ast.ForbiddenRedefinition, t.Span(), id.Name)
	}
	return id
}

func (b *builder) param(t *syntax.Tree) ast.Param {
	p := ast.Param{Name: b.boundIdent(t.Children[0])}
	if len(t.Children) > 1 {
		p.Type = b.typeExpr(t.Children[1])
	}
	return p
}

// typeExpr converts a type expression; resolution happens in a later pass.
func (b *builder) typeExpr(t *syntax.Tree) *ast.Type {
	alts := make([]ast.Alt, 0, len(t.Children))
	for _, c := range t.Children {
		alt := ast.Alt{Ident: ast.Ident{Name: c.Raw, NamePos: c.Span().Start}}
		alt.Nil = alt.Ident.Name == "nil"
		alts = append(alts, alt)
	}
	return &ast.Type{Alts: alts}
}

func (b *builder) typeDef(t *syntax.Tree) ast.Item {
	name := b.boundIdent(t.Children[0])
	return &ast.TypeDef{
		TypePos: t.Span().Start,
		Name:    name,
		Type:    b.typeExpr(t.Children[1]),
	}
}

func (b *builder) def(t *syntax.Tree) ast.Item {
	name := b.boundIdent(t.Children[0])
	var params []ast.Param
	var ret *ast.Type
	rest := t.Children[1 : len(t.Children)-1]
	for _, c := range rest {
		switch c.Rule {
		case syntax.ParamRule:
			params = append(params, b.param(c))
		case syntax.TypeExprRule:
			ret = b.typeExpr(c)
		}
	}
	bodyTree := t.Children[len(t.Children)-1]

	isFunction := len(params) > 0
	if isFunction {
		if name.Name == "_" {
			b.errorAt(ast.FunctionNamedUnderscore, name.Span(), "")
		}
		// The placeholder lets the body call the function recursively;
		// bindDef replaces it once the body's lifetime is known.
		b.scopes.bind(name.Name, Binding{Kind: BindUnfinished, Depth: b.depth()})
		b.scopes.enterFunction()
		for _, p := range params {
			b.bindParam(p.Name.Name)
		}
	}

	body := b.functionBody(bodyTree, isFunction)

	var minRefs uint8
	if isFunction {
		minRefs = b.scopes.exitFunction()
	} else if name.Name == "_" {
		// An underscore def binds nothing: it is an anonymous block
		// evaluated for its value.
		span := bodyTree.Span()
		return &ast.Node{
			Expr: &ast.Block{Lparen: span.Start, Rparen: span.End, Items: body},
			Life: ast.Lifetime{Depth: b.depth(), Refs: lastRefs(body)},
		}
	}

	def := &ast.Def{Name: name, Params: params, Ret: ret, Body: body}
	b.bindDef(def, minRefs)
	return def
}

// functionBody processes the right-hand side of a definition or closure:
// either an item block or a single expression.
func (b *builder) functionBody(t *syntax.Tree, checkRef bool) ast.Items {
	if t.Rule == syntax.ItemsRule {
		return b.items(t, checkRef)
	}
	node := b.expr(t)
	if checkRef && node.Life.Refs >= b.depth() {
		b.errorAt(ast.ReturnReferencesLocal, node.Span(), "")
	}
	return ast.Items{node}
}

func (b *builder) bindParam(name string) {
	// Parameters live at the depth of the function scope they belong to,
	// which has already been entered.
	b.scopes.bind(name, Binding{Kind: BindParam, Depth: b.depth() - 1})
}

func (b *builder) bindDef(def *ast.Def, minRefs uint8) {
	refs := lastRefs(def.Body)
	if refs < minRefs {
		refs = minRefs
	}
	b.scopes.bind(def.Name.Name, Binding{
		Kind: BindDef,
		Def:  def,
		Life: ast.Lifetime{Depth: b.depth(), Refs: refs},
	})
}

// lastRefs is the refs of an item sequence's value, that of its last item.
func lastRefs(items ast.Items) uint8 {
	if len(items) == 0 {
		return 0
	}
	switch it := items[len(items)-1].(type) {
	case *ast.Node:
		return it.Life.Refs
	case *ast.Def:
		return lastRefs(it.Body)
	}
	return 0
}

var binOps = map[string]ast.BinOp{
	"or":  ast.OrOp,
	"and": ast.AndOp,
	"==":  ast.EqOp,
	"!=":  ast.NeOp,
	"<":   ast.LtOp,
	"<=":  ast.LeOp,
	">":   ast.GtOp,
	">=":  ast.GeOp,
	"+":   ast.AddOp,
	"-":   ast.SubOp,
	"*":   ast.MulOp,
	"/":   ast.DivOp,
	"%":   ast.RemOp,
}

var unOps = map[string]ast.UnOp{
	"-":   ast.NegOp,
	"not": ast.NotOp,
	"!":   ast.HeadOp,
}

// expr builds one expression node, dispatching on the tier that actually
// matched (the parser collapses tiers without an operator).
func (b *builder) expr(t *syntax.Tree) *ast.Node {
	if b.nesting++; b.nesting > maxNesting {
		b.nesting--
		if !b.tooDeep {
			b.tooDeep = true
			b.errorAt(ast.TooDeep, t.Span(), "")
		}
		return b.recovery(t)
	}
	defer func() { b.nesting-- }()

	switch t.Rule {
	case syntax.OrRule, syntax.AndRule:
		return b.binChain(t, true)
	case syntax.CmpRule, syntax.AddSubRule, syntax.MulDivRule:
		return b.binChain(t, false)
	case syntax.NegRule, syntax.HeadRule:
		return b.unary(t)
	case syntax.CallRule:
		return b.callChain(t)
	case syntax.CallSingleRule:
		callee, args := b.callSingle(t)
		refs := callee.Life.Refs
		if len(args) > 0 {
			refs = maxRefs(args)
		}
		return &ast.Node{
			Expr: &ast.CallExpr{Callee: callee, Args: args},
			Life: ast.Lifetime{Depth: b.depth(), Refs: refs},
		}
	case syntax.SnocRule, syntax.ConsRule:
		return b.linkChain(t)
	}
	return b.term(t)
}

// recovery is the node substituted for a subtree the pass abandoned.
func (b *builder) recovery(t *syntax.Tree) *ast.Node {
	return &ast.Node{
		Expr: &ast.IntLit{TokenPos: t.Span().Start, Raw: "0"},
		Life: ast.Static,
	}
}

// binChain folds a left-associative operator tier. Logical operators pass
// an operand through unchanged, so they propagate the larger refs;
// comparison and arithmetic always produce fresh values, so they reset it.
func (b *builder) binChain(t *syntax.Tree, propagate bool) *ast.Node {
	left := b.expr(t.Children[0])
	for i := 1; i < len(t.Children); i += 2 {
		op := t.Children[i]
		right := b.expr(t.Children[i+1])
		var refs uint8
		if propagate {
			refs = max8(left.Life.Refs, right.Life.Refs)
		}
		left = &ast.Node{
			Expr: &ast.BinExpr{X: left, Y: right, Op: binOps[op.Raw], OpPos: op.Span().Start},
			Life: ast.Lifetime{Depth: b.depth(), Refs: refs},
		}
	}
	return left
}

// linkChain folds a cons (right-associative) or snoc (left-associative)
// tier. A structure link holds a reference to the structure it extends,
// so its refs is that operand's depth.
func (b *builder) linkChain(t *syntax.Tree) *ast.Node {
	ch := t.Children
	if t.Rule == syntax.ConsRule {
		tail := b.expr(ch[len(ch)-1])
		for i := len(ch) - 3; i >= 0; i -= 2 {
			head := b.expr(ch[i])
			refs := tail.Life.Depth
			tail = &ast.Node{
				Expr: &ast.BinExpr{X: head, Y: tail, Op: ast.ConsOp, OpPos: ch[i+1].Span().Start},
				Life: ast.Lifetime{Depth: b.depth(), Refs: refs},
			}
		}
		return tail
	}
	list := b.expr(ch[0])
	for i := 1; i < len(ch); i += 2 {
		elem := b.expr(ch[i+1])
		refs := list.Life.Depth
		list = &ast.Node{
			Expr: &ast.BinExpr{X: list, Y: elem, Op: ast.SnocOp, OpPos: ch[i].Span().Start},
			Life: ast.Lifetime{Depth: b.depth(), Refs: refs},
		}
	}
	return list
}

func (b *builder) unary(t *syntax.Tree) *ast.Node {
	op := t.Children[0]
	inner := b.expr(t.Children[1])
	return &ast.Node{
		Expr: &ast.UnExpr{Op: unOps[op.Raw], OpPos: op.Span().Start, X: inner},
		Life: ast.Lifetime{Depth: b.depth(), Refs: 0},
	}
}

// callSingle builds the callee and juxtaposed arguments of one call.
func (b *builder) callSingle(t *syntax.Tree) (callee *ast.Node, args []*ast.Node) {
	callee = b.expr(t.Children[0])
	args = make([]*ast.Node, 0, len(t.Children)-1)
	for _, c := range t.Children[1:] {
		args = append(args, b.expr(c))
	}
	return callee, args
}

// splitSingle handles chain links that are bare terms (argless singles
// collapse in the parse tree).
func (b *builder) splitSingle(t *syntax.Tree) (callee *ast.Node, args []*ast.Node) {
	if t.Rule == syntax.CallSingleRule {
		return b.callSingle(t)
	}
	return b.expr(t), nil
}

// callChain threads each single's result in as the first argument of the
// next: "a.f x.g y" is g(f(a, x), y). A link's refs is the max over its
// own arguments, or the refs threaded in when it has none.
func (b *builder) callChain(t *syntax.Tree) *ast.Node {
	callee, args := b.splitSingle(t.Children[0])
	refs := callee.Life.Refs
	if len(args) > 0 {
		refs = maxRefs(args)
	}
	node := callee
	if len(args) > 0 {
		node = &ast.Node{
			Expr: &ast.CallExpr{Callee: callee, Args: args},
			Life: ast.Lifetime{Depth: b.depth(), Refs: refs},
		}
	}
	for _, link := range t.Children[1:] {
		callee, args := b.splitSingle(link)
		if len(args) > 0 {
			refs = maxRefs(args)
		}
		args = append([]*ast.Node{node}, args...)
		node = &ast.Node{
			Expr: &ast.CallExpr{Callee: callee, Args: args},
			Life: ast.Lifetime{Depth: b.depth(), Refs: refs},
		}
	}
	return node
}

func (b *builder) term(t *syntax.Tree) *ast.Node {
	depth := b.depth()
	switch t.Rule {
	case syntax.IntRule:
		value, err := strconv.ParseInt(t.Raw, 10, 64)
		if err != nil {
			b.errorAt(ast.InvalidLiteral, t.Span(), "")
			value = 0
		}
		return &ast.Node{
			Expr: &ast.IntLit{TokenPos: t.Span().Start, Raw: t.Raw, Value: value},
			Life: ast.Lifetime{Depth: depth},
		}

	case syntax.RealRule:
		value, err := strconv.ParseFloat(t.Raw, 64)
		if err != nil {
			b.errorAt(ast.InvalidLiteral, t.Span(), "")
			value = 0
		}
		return &ast.Node{
			Expr: &ast.RealLit{TokenPos: t.Span().Start, Raw: t.Raw, Value: value},
			Life: ast.Lifetime{Depth: depth},
		}

	case syntax.StringRule:
		value, err := syntax.Unquote(t.Raw)
		if err != nil {
			b.errorAt(ast.InvalidLiteral, t.Span(), "")
			value = strings.Trim(t.Raw, `"`)
		}
		return &ast.Node{
			Expr: &ast.StrLit{TokenPos: t.Span().Start, Raw: t.Raw, Value: value},
			Life: ast.Static,
		}

	case syntax.IdentRule:
		return b.identTerm(t)

	case syntax.ParenRule:
		b.scopes.enterBlock()
		items := b.items(t.Children[0], true)
		b.scopes.exitBlock()
		span := t.Span()
		return &ast.Node{
			Expr: &ast.Block{Lparen: span.Start, Rparen: span.End, Items: items},
			Life: ast.Lifetime{Depth: depth, Refs: lastRefs(items)},
		}

	case syntax.ClosureRule:
		return b.closure(t)

	case syntax.ListRule:
		return b.list(t)

	case syntax.TreeRule:
		kids := [3]*ast.Node{b.expr(t.Children[0]), b.expr(t.Children[1]), b.expr(t.Children[2])}
		refs := max8(kids[0].Life.Depth, max8(kids[1].Life.Depth, kids[2].Life.Depth))
		span := t.Span()
		return &ast.Node{
			Expr: &ast.TreeLit{Lbrace: span.Start, Rbrace: span.End, Kids: kids},
			Life: ast.Lifetime{Depth: depth, Refs: refs},
		}
	}
	panic(fmt.Sprintf("unexpected rule %s", t.Rule))
}

// identTerm resolves a name use. A reference takes on the binding's whole
// lifetime; referencing a binding from a deeper function scope records the
// capture on every scope in between.
func (b *builder) identTerm(t *syntax.Tree) *ast.Node {
	id := b.ident(t)
	var life ast.Lifetime
	if binding, ok := b.scopes.lookup(id.Name); ok {
		life = binding.Lifetime()
	} else if b.isBuiltin(id.Name) {
		life = ast.Static
	} else {
		b.errorAt(ast.UnknownDef, t.Span(), id.Name)
		life = ast.Static
	}
	if life.Depth > 0 && life.Depth < b.depth() {
		b.scopes.recordCapture(life.Depth)
	}
	return &ast.Node{Expr: &ast.IdentRef{Ident: id}, Life: life}
}

func (b *builder) closure(t *syntax.Tree) *ast.Node {
	var params []ast.Param
	for _, c := range t.Children[:len(t.Children)-1] {
		params = append(params, b.param(c))
	}
	b.scopes.enterFunction()
	for _, p := range params {
		b.bindParam(p.Name.Name)
	}
	body := b.functionBody(t.Children[len(t.Children)-1], true)
	minRefs := b.scopes.exitFunction()
	return &ast.Node{
		Expr: &ast.Closure{Pipe: t.Span().Start, Params: params, Body: body},
		Life: ast.Lifetime{Depth: b.depth(), Refs: max8(lastRefs(body), minRefs)},
	}
}

// list desugars a list literal into a right-nested cons chain; the empty
// list is the nil identifier.
func (b *builder) list(t *syntax.Tree) *ast.Node {
	span := t.Span()
	if len(t.Children) == 0 {
		return &ast.Node{
			Expr: &ast.IdentRef{Ident: ast.Ident{Name: "nil", NamePos: span.Start}},
			Life: ast.Static,
		}
	}
	elems := make([]*ast.Node, len(t.Children))
	for i, c := range t.Children {
		elems[i] = b.expr(c)
	}
	tail := elems[len(elems)-1]
	for i := len(elems) - 2; i >= 0; i-- {
		refs := tail.Life.Depth
		tail = &ast.Node{
			Expr: &ast.BinExpr{X: elems[i], Y: tail, Op: ast.ConsOp, OpPos: span.Start},
			Life: ast.Lifetime{Depth: b.depth(), Refs: refs},
		}
	}
	return tail
}

func max8(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}

func maxRefs(nodes []*ast.Node) uint8 {
	var refs uint8
	for _, n := range nodes {
		refs = max8(refs, n.Life.Refs)
	}
	return refs
}
