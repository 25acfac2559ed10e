// Copyright 2025 The Loon Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import (
	"bytes"
	"fmt"
)

// String returns a compact s-expression rendering of an item, for
// debugging, the -ast flag, and tests. Idents and literals print as their
// source text; composite nodes print as (Form Field=value ...).
func String(it Item) string {
	var buf bytes.Buffer
	writeItem(&buf, it)
	return buf.String()
}

func writeItem(buf *bytes.Buffer, it Item) {
	switch it := it.(type) {
	case *Node:
		writeExpr(buf, it.Expr)
	case *Def:
		fmt.Fprintf(buf, "(Def Name=%s", it.Name.Name)
		if len(it.Params) > 0 {
			buf.WriteString(" Params=")
			writeParams(buf, it.Params)
		}
		if it.Ret != nil {
			fmt.Fprintf(buf, " Ret=%s", it.Ret)
		}
		buf.WriteString(" Body=")
		writeItems(buf, it.Body)
		buf.WriteByte(')')
	case *TypeDef:
		fmt.Fprintf(buf, "(TypeDef Name=%s Type=%s)", it.Name.Name, it.Type)
	}
}

func writeItems(buf *bytes.Buffer, items Items) {
	buf.WriteByte('(')
	for i, it := range items {
		if i > 0 {
			buf.WriteByte(' ')
		}
		writeItem(buf, it)
	}
	buf.WriteByte(')')
}

func writeParams(buf *bytes.Buffer, params []Param) {
	buf.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(p.Name.Name)
		if p.Type != nil {
			fmt.Fprintf(buf, ":%s", p.Type)
		}
	}
	buf.WriteByte(')')
}

func writeExpr(buf *bytes.Buffer, e Expr) {
	switch e := e.(type) {
	case *IdentRef:
		buf.WriteString(e.Name)
	case *IntLit:
		buf.WriteString(e.Raw)
	case *RealLit:
		buf.WriteString(e.Raw)
	case *StrLit:
		buf.WriteString(e.Raw)
	case *BinExpr:
		fmt.Fprintf(buf, "(BinExpr X=%s Op=%s Y=%s)", String(e.X), e.Op, String(e.Y))
	case *UnExpr:
		fmt.Fprintf(buf, "(UnExpr Op=%s X=%s)", e.Op, String(e.X))
	case *CallExpr:
		fmt.Fprintf(buf, "(CallExpr Callee=%s Args=(", String(e.Callee))
		for i, arg := range e.Args {
			if i > 0 {
				buf.WriteByte(' ')
			}
			writeItem(buf, arg)
		}
		buf.WriteString("))")
	case *Block:
		buf.WriteString("(Block Items=")
		writeItems(buf, e.Items)
		buf.WriteByte(')')
	case *Closure:
		buf.WriteString("(Closure")
		if len(e.Params) > 0 {
			buf.WriteString(" Params=")
			writeParams(buf, e.Params)
		}
		buf.WriteString(" Body=")
		writeItems(buf, e.Body)
		buf.WriteByte(')')
	case *TreeLit:
		fmt.Fprintf(buf, "(TreeLit %s %s %s)", String(e.Kids[0]), String(e.Kids[1]), String(e.Kids[2]))
	default:
		fmt.Fprintf(buf, "(?%T)", e)
	}
}
