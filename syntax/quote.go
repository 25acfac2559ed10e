// Copyright 2025 The Loon Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// Loon string literals. The scanner validates only the outer shape of a
// literal; decoding the escapes happens here, when the analysis pass asks
// for the value.

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Unquote decodes a string literal, raw text including its quotes.
//
// The recognized escapes are \0 \r \t \n \\ \' \" , a byte escape \xHH,
// and a code point escape \u{H...} with one to six hex digits.
func Unquote(raw string) (string, error) {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", fmt.Errorf("not a string literal: %s", raw)
	}
	s := raw[1 : len(raw)-1]
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var buf strings.Builder
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' {
			buf.WriteByte(c)
			i++
			continue
		}
		if i+1 == len(s) {
			return "", fmt.Errorf("trailing backslash in string literal")
		}
		i += 2
		switch e := s[i-1]; e {
		case '0':
			buf.WriteByte(0)
		case 'r':
			buf.WriteByte('\r')
		case 't':
			buf.WriteByte('\t')
		case 'n':
			buf.WriteByte('\n')
		case '\\', '\'', '"':
			buf.WriteByte(e)
		case 'x':
			if i+2 > len(s) {
				return "", fmt.Errorf(`truncated \x escape`)
			}
			b, ok := hexByte(s[i], s[i+1])
			if !ok {
				return "", fmt.Errorf(`invalid \x escape`)
			}
			buf.WriteByte(b)
			i += 2
		case 'u':
			if i == len(s) || s[i] != '{' {
				return "", fmt.Errorf(`expected '{' after \u`)
			}
			brace := strings.IndexByte(s[i:], '}')
			if brace < 0 {
				return "", fmt.Errorf(`unclosed \u escape`)
			}
			digits := s[i+1 : i+brace]
			if len(digits) == 0 || len(digits) > 6 {
				return "", fmt.Errorf(`\u escape requires 1 to 6 hex digits`)
			}
			var r rune
			for j := 0; j < len(digits); j++ {
				d, ok := hexDigit(digits[j])
				if !ok {
					return "", fmt.Errorf(`invalid \u escape`)
				}
				r = r<<4 | rune(d)
			}
			if !utf8.ValidRune(r) {
				return "", fmt.Errorf(`\u escape is not a valid code point`)
			}
			buf.WriteRune(r)
			i += brace + 1
		default:
			return "", fmt.Errorf(`invalid escape \%c`, e)
		}
	}
	return buf.String(), nil
}

// Quote returns a Loon string literal denoting s.
func Quote(s string) string {
	var buf strings.Builder
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case 0:
			buf.WriteString(`\0`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\n':
			buf.WriteString(`\n`)
		case '\\':
			buf.WriteString(`\\`)
		case '"':
			buf.WriteString(`\"`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&buf, `\x%02x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
	return buf.String()
}

func hexByte(hi, lo byte) (byte, bool) {
	h, ok1 := hexDigit(hi)
	l, ok2 := hexDigit(lo)
	return h<<4 | l, ok1 && ok2
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
