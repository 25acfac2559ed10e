// Copyright 2025 The Loon Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import "fmt"

// Nesting deeper than this is reported as an error rather than being
// allowed to exhaust the goroutine stack.
const maxParseDepth = 500

// Parse parses the input data and returns the corresponding concrete
// syntax tree, a FileRule node holding one ItemsRule child.
//
// If src != nil, Parse parses the source from src and the filename is
// only used when recording position information. The type of the argument
// for the src parameter must be string, []byte, or nil.
func Parse(filename string, src interface{}) (t *Tree, err error) {
	text, err := readSource(filename, src)
	if err != nil {
		return nil, err
	}
	tokens, err := scanTokens(filename, text)
	if err != nil {
		return nil, err
	}
	p := &parser{src: text, tokens: tokens}
	defer p.recoverError(&err)
	items := p.items(EOF)
	p.expect(EOF)
	start := tokens[0].pos
	end := tokens[len(tokens)-1].end
	return p.tree(FileRule, start, end, items), nil
}

type parser struct {
	src    string
	tokens []token
	pos    int
	depth  int
}

// recoverError converts a panicking Error into an ordinary return.
func (p *parser) recoverError(err *error) {
	switch e := recover().(type) {
	case nil:
	case Error:
		*err = e
	default:
		panic(e)
	}
}

func (p *parser) tok() token { return p.tokens[p.pos] }

func (p *parser) at(kind Token) bool { return p.tok().kind == kind }

func (p *parser) atAny(kinds ...Token) bool {
	for _, kind := range kinds {
		if p.at(kind) {
			return true
		}
	}
	return false
}

func (p *parser) advance() token {
	t := p.tok()
	if t.kind != EOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind Token) token {
	if !p.at(kind) {
		p.errorf("got %s, want %s", p.tok().kind, kind)
	}
	return p.advance()
}

func (p *parser) errorf(format string, args ...interface{}) {
	panic(Error{
		Pos:        p.tok().pos,
		Msg:        fmt.Sprintf(format, args...),
		Incomplete: p.at(EOF),
	})
}

// tree assembles an internal node whose raw text is the source between
// start and end.
func (p *parser) tree(rule Rule, start, end Position, children ...*Tree) *Tree {
	return &Tree{
		Rule:     rule,
		Raw:      p.src[start.Off:end.Off],
		Children: children,
		start:    start,
		end:      end,
	}
}

// span wraps children, of which there is at least one, spanning them all.
func (p *parser) span(rule Rule, children []*Tree) *Tree {
	return p.tree(rule, children[0].start, children[len(children)-1].end, children...)
}

func (p *parser) leaf(rule Rule, t token) *Tree {
	return &Tree{Rule: rule, Raw: t.raw, start: t.pos, end: t.end}
}

func (p *parser) skipSeparators() {
	for p.at(NEWLINE) || p.at(COMMA) {
		p.advance()
	}
}

// items parses a sequence of items up to (not through) the terminator.
func (p *parser) items(term Token) *Tree {
	at := p.tok().pos
	var children []*Tree
	for {
		p.skipSeparators()
		if p.at(term) || p.at(EOF) {
			break
		}
		children = append(children, p.item())
	}
	if len(children) == 0 {
		return p.tree(ItemsRule, at, at)
	}
	return p.span(ItemsRule, children)
}

func (p *parser) item() *Tree {
	switch {
	case p.at(TYPE):
		return p.typeDef()
	case p.at(IDENT) && p.defAhead():
		return p.def()
	default:
		return p.expr()
	}
}

// defAhead reports whether the tokens at the current position begin a
// definition: an identifier, an optional parenthesized parameter list, an
// optional declared type, and then a single '='. The parser backtracks
// over the pre-scanned token slice, so the lookahead is cheap.
func (p *parser) defAhead() bool {
	i := p.pos + 1
	kind := func() Token { return p.tokens[i].kind }
	if kind() == LPAREN {
	params:
		for {
			i++
			switch kind() {
			case IDENT, COMMA, COLON, PIPE, NEWLINE:
				// still inside the parameter list
			case RPAREN:
				i++
				break params
			default:
				return false
			}
		}
	}
	if kind() == COLON {
		i++
		for kind() == IDENT {
			i++
			if kind() != PIPE {
				break
			}
			i++
		}
	}
	return kind() == EQ
}

func (p *parser) typeDef() *Tree {
	at := p.expect(TYPE).pos
	name := p.leaf(IdentRule, p.expect(IDENT))
	p.expect(EQ)
	ty := p.typeExpr()
	return p.tree(TypeDefRule, at, ty.end, name, ty)
}

func (p *parser) def() *Tree {
	name := p.leaf(IdentRule, p.expect(IDENT))
	children := []*Tree{name}
	if p.at(LPAREN) {
		p.advance()
		p.skipSeparators()
		for p.at(IDENT) {
			children = append(children, p.param())
			p.skipSeparators()
		}
		p.expect(RPAREN)
	}
	if p.at(COLON) {
		p.advance()
		children = append(children, p.typeExpr())
	}
	p.expect(EQ)
	children = append(children, p.body())
	return p.span(DefRule, children)
}

func (p *parser) param() *Tree {
	name := p.leaf(IdentRule, p.expect(IDENT))
	children := []*Tree{name}
	if p.at(COLON) {
		p.advance()
		children = append(children, p.typeExpr())
	}
	return p.span(ParamRule, children)
}

func (p *parser) typeExpr() *Tree {
	children := []*Tree{p.leaf(IdentRule, p.expect(IDENT))}
	for p.at(PIPE) {
		p.advance()
		children = append(children, p.leaf(IdentRule, p.expect(IDENT)))
	}
	return p.span(TypeExprRule, children)
}

// body parses the right-hand side of a definition or closure: either a
// parenthesized item block or a single expression. Block bodies are
// ItemsRule trees, not paren terms, so the analysis pass can tell a
// function body block from an expression block.
func (p *parser) body() *Tree {
	if p.at(LPAREN) {
		p.advance()
		items := p.items(RPAREN)
		if len(items.Children) == 0 {
			p.errorf("a block requires at least one item")
		}
		p.expect(RPAREN)
		return items
	}
	return p.expr()
}

func (p *parser) expr() *Tree {
	if p.depth++; p.depth > maxParseDepth {
		p.errorf("expression nested too deeply")
	}
	defer func() { p.depth-- }()
	return p.or()
}

// binary parses one left-associative tier: next (op next)*.
// A tier with no operator does not produce a node of its own.
func (p *parser) binary(rule Rule, next func() *Tree, ops ...Token) *Tree {
	x := next()
	if !p.atAny(ops...) {
		return x
	}
	children := []*Tree{x}
	for p.atAny(ops...) {
		children = append(children, p.leaf(OpRule, p.advance()), next())
	}
	return p.span(rule, children)
}

func (p *parser) or() *Tree  { return p.binary(OrRule, p.and, OR) }
func (p *parser) and() *Tree { return p.binary(AndRule, p.cmp, AND) }

func (p *parser) cmp() *Tree {
	return p.binary(CmpRule, p.addSub, EQEQ, NEQ, LE, GE, LT, GT)
}

func (p *parser) addSub() *Tree {
	return p.binary(AddSubRule, p.mulDiv, PLUS, MINUS)
}

func (p *parser) mulDiv() *Tree {
	return p.binary(MulDivRule, p.neg, STAR, SLASH, PERCENT)
}

func (p *parser) neg() *Tree {
	if p.at(MINUS) || p.at(NOT) {
		op := p.leaf(OpRule, p.advance())
		return p.span(NegRule, []*Tree{op, p.call()})
	}
	return p.call()
}

// call parses a chain of call singles joined by '.': each single's result
// becomes the first argument of the next.
func (p *parser) call() *Tree {
	singles := []*Tree{p.callSingle()}
	for p.at(DOT) {
		p.advance()
		singles = append(singles, p.callSingle())
	}
	if len(singles) == 1 {
		return singles[0]
	}
	return p.span(CallRule, singles)
}

// callSingle parses a callee followed by juxtaposed arguments: "double 5".
func (p *parser) callSingle() *Tree {
	callee := p.snoc()
	if !p.atArgStart() {
		return callee
	}
	children := []*Tree{callee}
	for p.atArgStart() {
		children = append(children, p.snoc())
	}
	return p.span(CallSingleRule, children)
}

// atArgStart reports whether the current token can begin a call argument.
func (p *parser) atArgStart() bool {
	return p.atAny(IDENT, INT, REAL, STRING, LPAREN, LBRACK, LBRACE, PIPE, BANG)
}

func (p *parser) snoc() *Tree { return p.binary(SnocRule, p.cons, COLONCOLON) }
func (p *parser) cons() *Tree { return p.binary(ConsRule, p.head, COLON) }

func (p *parser) head() *Tree {
	if p.at(BANG) {
		op := p.leaf(OpRule, p.advance())
		return p.span(HeadRule, []*Tree{op, p.term()})
	}
	return p.term()
}

func (p *parser) term() *Tree {
	switch p.tok().kind {
	case INT:
		return p.leaf(IntRule, p.advance())
	case REAL:
		return p.leaf(RealRule, p.advance())
	case STRING:
		return p.leaf(StringRule, p.advance())
	case IDENT:
		return p.leaf(IdentRule, p.advance())

	case LPAREN:
		lparen := p.advance()
		items := p.items(RPAREN)
		if len(items.Children) == 0 {
			p.errorf("a block requires at least one item")
		}
		rparen := p.expect(RPAREN)
		return p.tree(ParenRule, lparen.pos, rparen.end, items)

	case PIPE:
		lpipe := p.advance()
		var children []*Tree
		p.skipSeparators()
		for p.at(IDENT) {
			children = append(children, p.param())
			p.skipSeparators()
		}
		p.expect(PIPE)
		body := p.body()
		children = append(children, body)
		return p.tree(ClosureRule, lpipe.pos, body.end, children...)

	case LBRACK:
		lbrack := p.advance()
		var children []*Tree
		for {
			p.skipSeparators()
			if p.at(RBRACK) || p.at(EOF) {
				break
			}
			children = append(children, p.expr())
		}
		rbrack := p.expect(RBRACK)
		return p.tree(ListRule, lbrack.pos, rbrack.end, children...)

	case LBRACE:
		lbrace := p.advance()
		var children []*Tree
		for {
			p.skipSeparators()
			if p.at(RBRACE) || p.at(EOF) {
				break
			}
			children = append(children, p.expr())
		}
		rbrace := p.expect(RBRACE)
		if len(children) != 3 {
			panic(Error{Pos: lbrace.pos, Msg: "a tree literal requires exactly three children"})
		}
		return p.tree(TreeRule, lbrace.pos, rbrace.end, children...)
	}
	p.errorf("got %s, want expression", p.tok().kind)
	panic("unreachable")
}
