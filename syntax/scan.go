// Copyright 2025 The Loon Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"fmt"
	"os"
	"unicode"
	"unicode/utf8"
)

// A token is one lexical element of the input, with its matched text and
// source extent.
type token struct {
	kind Token
	raw  string
	pos  Position // start of raw
	end  Position // position just past raw
}

type scanner struct {
	src  string
	file *string
	off  int   // byte offset of next rune
	line int32 // 1-based line of next rune
	col  int32 // 1-based rune column of next rune
	last Token // last significant token, for newline insertion
}

func newScanner(filename, src string) *scanner {
	return &scanner{src: src, file: &filename, line: 1, col: 1, last: NEWLINE}
}

func (sc *scanner) pos() Position {
	return Position{sc.file, int32(sc.off), sc.line, sc.col}
}

// peek returns the next rune without consuming it, or -1 at end of input.
func (sc *scanner) peek() rune {
	if sc.off >= len(sc.src) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(sc.src[sc.off:])
	return r
}

func (sc *scanner) next() rune {
	r, size := utf8.DecodeRuneInString(sc.src[sc.off:])
	sc.off += size
	if r == '\n' {
		sc.line++
		sc.col = 1
	} else {
		sc.col++
	}
	return r
}

func (sc *scanner) errorf(pos Position, format string, args ...interface{}) error {
	return Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// endsExpr reports whether tok may be the final token of an expression,
// which is what makes a following newline an item separator.
func endsExpr(tok Token) bool {
	switch tok {
	case IDENT, INT, REAL, STRING, RPAREN, RBRACK, RBRACE:
		return true
	}
	return false
}

// scanTokens tokenizes the entire input. The resulting slice always ends
// with an EOF token carrying the end-of-input position.
func scanTokens(filename, src string) ([]token, error) {
	sc := newScanner(filename, src)
	var tokens []token
	emit := func(kind Token, pos Position) {
		tokens = append(tokens, token{kind, sc.src[pos.Off:sc.off], pos, sc.pos()})
		sc.last = kind
	}
	for {
		pos := sc.pos()
		c := sc.peek()
		switch {
		case c < 0:
			tokens = append(tokens, token{EOF, "", pos, pos})
			return tokens, nil

		case c == '\n':
			sc.next()
			if endsExpr(sc.last) {
				emit(NEWLINE, pos)
			}

		case c == ' ' || c == '\t' || c == '\r':
			sc.next()

		case c == '#':
			for sc.peek() >= 0 && sc.peek() != '\n' {
				sc.next()
			}

		case c == '"':
			sc.next()
			for {
				r := sc.peek()
				if r < 0 || r == '\n' {
					return nil, sc.errorf(pos, "unterminated string literal")
				}
				sc.next()
				if r == '\\' {
					if sc.peek() < 0 {
						return nil, sc.errorf(pos, "unterminated string literal")
					}
					sc.next()
				} else if r == '"' {
					break
				}
			}
			emit(STRING, pos)

		case isDigit(c):
			kind := INT
			for isDigit(sc.peek()) {
				sc.next()
			}
			// A '.' continues the number only when a digit follows;
			// otherwise it is a call-chain dot (e.g. 5.double).
			if sc.peek() == '.' && sc.off+1 < len(sc.src) && isDigit(rune(sc.src[sc.off+1])) {
				kind = REAL
				sc.next()
				for isDigit(sc.peek()) {
					sc.next()
				}
			}
			emit(kind, pos)

		case isIdentStart(c):
			for isIdentPart(sc.peek()) {
				sc.next()
			}
			raw := sc.src[pos.Off:sc.off]
			if kw, ok := keywordToken[raw]; ok {
				emit(kw, pos)
			} else {
				emit(IDENT, pos)
			}

		default:
			sc.next()
			kind := ILLEGAL
			switch c {
			case '(':
				kind = LPAREN
			case ')':
				kind = RPAREN
			case '[':
				kind = LBRACK
			case ']':
				kind = RBRACK
			case '{':
				kind = LBRACE
			case '}':
				kind = RBRACE
			case '|':
				kind = PIPE
			case ',':
				kind = COMMA
			case '.':
				kind = DOT
			case '+':
				kind = PLUS
			case '-':
				kind = MINUS
			case '*':
				kind = STAR
			case '/':
				kind = SLASH
			case '%':
				kind = PERCENT
			case '!':
				kind = BANG
				if sc.peek() == '=' {
					sc.next()
					kind = NEQ
				}
			case '=':
				kind = EQ
				if sc.peek() == '=' {
					sc.next()
					kind = EQEQ
				}
			case '<':
				kind = LT
				if sc.peek() == '=' {
					sc.next()
					kind = LE
				}
			case '>':
				kind = GT
				if sc.peek() == '=' {
					sc.next()
					kind = GE
				}
			case ':':
				kind = COLON
				if sc.peek() == ':' {
					sc.next()
					kind = COLONCOLON
				}
			default:
				return nil, sc.errorf(pos, "unexpected character %q", c)
			}
			emit(kind, pos)
		}
	}
}

func isDigit(c rune) bool { return '0' <= c && c <= '9' }

func isIdentStart(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_' ||
		c >= utf8.RuneSelf && unicode.IsLetter(c)
}

func isIdentPart(c rune) bool { return isIdentStart(c) || isDigit(c) }

// readSource converts the src argument of Parse to a string.
// src may be a string, a []byte, or nil, meaning read the file.
func readSource(filename string, src interface{}) (string, error) {
	switch src := src.(type) {
	case string:
		return src, nil
	case []byte:
		return string(src), nil
	case nil:
		data, err := os.ReadFile(filename)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("invalid source: %T", src)
	}
}
