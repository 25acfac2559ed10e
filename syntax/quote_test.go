// Copyright 2025 The Loon Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import "testing"

func TestUnquote(t *testing.T) {
	for _, test := range []struct {
		raw, want string
	}{
		{`"hello"`, "hello"},
		{`""`, ""},
		{`"a\nb"`, "a\nb"},
		{`"tab\there"`, "tab\there"},
		{`"\r\0"`, "\r\x00"},
		{`"quote \" slash \\ tick \'"`, `quote " slash \ tick '`},
		{`"\x41\x62"`, "Ab"},
		{`"\u{41}"`, "A"},
		{`"\u{1F600}"`, "\U0001F600"},
	} {
		got, err := Unquote(test.raw)
		if err != nil {
			t.Errorf("Unquote(%s) failed: %v", test.raw, err)
			continue
		}
		if got != test.want {
			t.Errorf("Unquote(%s) = %q, want %q", test.raw, got, test.want)
		}
	}
}

func TestUnquoteErrors(t *testing.T) {
	for _, test := range []struct {
		raw, want string
	}{
		{`"bad \q escape"`, `invalid escape \q`},
		{`"\x4"`, `truncated \x escape`},
		{`"\xzz"`, `invalid \x escape`},
		{`"\u41"`, `expected '{' after \u`},
		{`"\u{}"`, `\u escape requires 1 to 6 hex digits`},
		{`"\u{1234567}"`, `\u escape requires 1 to 6 hex digits`},
		{`"\u{dead}"`, `\u escape is not a valid code point`},
		{`not quoted`, `not a string literal: not quoted`},
	} {
		_, err := Unquote(test.raw)
		if err == nil {
			t.Errorf("Unquote(%s) unexpectedly succeeded", test.raw)
			continue
		}
		if err.Error() != test.want {
			t.Errorf("Unquote(%s) = %q, want %q", test.raw, err, test.want)
		}
	}
}

func TestQuote(t *testing.T) {
	for _, test := range []struct {
		s, want string
	}{
		{"hello", `"hello"`},
		{"a\nb", `"a\nb"`},
		{`say "hi"`, `"say \"hi\""`},
		{"\x01", `"\x01"`},
	} {
		if got := Quote(test.s); got != test.want {
			t.Errorf("Quote(%q) = %s, want %s", test.s, got, test.want)
		}
		back, err := Unquote(Quote(test.s))
		if err != nil || back != test.s {
			t.Errorf("Unquote(Quote(%q)) = %q, %v", test.s, back, err)
		}
	}
}
