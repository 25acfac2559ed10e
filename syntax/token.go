// Copyright 2025 The Loon Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// A Token represents a Loon lexical token.
type Token uint8

const (
	ILLEGAL Token = iota
	EOF
	NEWLINE

	// Tokens with values
	IDENT  // x
	INT    // 123
	REAL   // 1.23
	STRING // "foo"

	// Punctuation
	LPAREN     // (
	RPAREN     // )
	LBRACK     // [
	RBRACK     // ]
	LBRACE     // {
	RBRACE     // }
	PIPE       // |
	COMMA      // ,
	DOT        // .
	BANG       // !
	EQ         // =
	EQEQ       // ==
	NEQ        // !=
	LT         // <
	GT         // >
	LE         // <=
	GE         // >=
	PLUS       // +
	MINUS      // -
	STAR       // *
	SLASH      // /
	PERCENT    // %
	COLON      // :
	COLONCOLON // ::

	// Keywords
	AND  // and
	OR   // or
	NOT  // not
	TYPE // type

	maxToken
)

var tokenNames = [...]string{
	ILLEGAL:    "illegal token",
	EOF:        "end of file",
	NEWLINE:    "newline",
	IDENT:      "identifier",
	INT:        "int literal",
	REAL:       "real literal",
	STRING:     "string literal",
	LPAREN:     "(",
	RPAREN:     ")",
	LBRACK:     "[",
	RBRACK:     "]",
	LBRACE:     "{",
	RBRACE:     "}",
	PIPE:       "|",
	COMMA:      ",",
	DOT:        ".",
	BANG:       "!",
	EQ:         "=",
	EQEQ:       "==",
	NEQ:        "!=",
	LT:         "<",
	GT:         ">",
	LE:         "<=",
	GE:         ">=",
	PLUS:       "+",
	MINUS:      "-",
	STAR:       "*",
	SLASH:      "/",
	PERCENT:    "%",
	COLON:      ":",
	COLONCOLON: "::",
	AND:        "and",
	OR:         "or",
	NOT:        "not",
	TYPE:       "type",
}

func (tok Token) String() string { return tokenNames[tok] }

var keywordToken = map[string]Token{
	"and":  AND,
	"or":   OR,
	"not":  NOT,
	"type": TYPE,
}
