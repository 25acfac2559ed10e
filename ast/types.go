// Copyright 2025 The Loon Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import (
	"strings"

	"github.com/loon-lang/loon/syntax"
)

// A Variant is one primitive alternative a type may admit.
type Variant uint8

const (
	Nil Variant = iota
	Bool
	Nat
	Int
	Real
	Text

	NumVariants
)

var variantNames = [...]string{
	Nil:  "nil",
	Bool: "bool",
	Nat:  "nat",
	Int:  "int",
	Real: "real",
	Text: "text",
}

func (v Variant) String() string { return variantNames[v] }

// A VariantSet is a set of variants: the canonical form of a resolved
// type. The representation is a bitset, so equal sets are equal values
// regardless of the order their variants were added in.
type VariantSet uint16

// Of returns the set containing exactly the given variants.
func Of(variants ...Variant) VariantSet {
	var s VariantSet
	for _, v := range variants {
		s |= 1 << v
	}
	return s
}

// Has reports whether the set contains v.
func (s VariantSet) Has(v Variant) bool { return s&(1<<v) != 0 }

// Union returns the set of variants in either s or t.
func (s VariantSet) Union(t VariantSet) VariantSet { return s | t }

func (s VariantSet) String() string {
	if s == 0 {
		return "<empty>"
	}
	var names []string
	for v := Variant(0); v < NumVariants; v++ {
		if s.Has(v) {
			names = append(names, v.String())
		}
	}
	return strings.Join(names, "|")
}

// A TypeState records how far a Type has come through resolution.
type TypeState uint8

const (
	Unresolved TypeState = iota
	Resolved             // Set holds the concrete variants
	Invalid              // an alternative did not resolve
)

// A Type is a declared type expression: an ordered list of alternatives,
// each a named type reference or the literal nil. The resolve pass
// flattens the alternatives into Set, moving State from Unresolved to
// Resolved or Invalid in place.
type Type struct {
	Alts  []Alt
	State TypeState
	Set   VariantSet
}

// An Alt is one alternative of a type expression.
// Nil marks the literal nil alternative rather than a named reference.
type Alt struct {
	Ident Ident
	Nil   bool
}

func (t *Type) Span() syntax.Span {
	span := t.Alts[0].Ident.Span()
	span.End = t.Alts[len(t.Alts)-1].Ident.Span().End
	return span
}

func (t *Type) String() string {
	if t.State == Resolved {
		return t.Set.String()
	}
	var names []string
	for _, alt := range t.Alts {
		names = append(names, alt.Ident.Name)
	}
	return strings.Join(names, "|")
}
