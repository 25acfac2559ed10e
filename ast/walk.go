// Copyright 2025 The Loon Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

// Walk traverses an item sequence in lexical order, calling f once for
// every expression node, outermost first.
func Walk(items Items, f func(n *Node)) {
	for _, it := range items {
		switch it := it.(type) {
		case *Node:
			walkNode(it, f)
		case *Def:
			Walk(it.Body, f)
		}
	}
}

func walkNode(n *Node, f func(n *Node)) {
	f(n)
	switch e := n.Expr.(type) {
	case *BinExpr:
		walkNode(e.X, f)
		walkNode(e.Y, f)
	case *UnExpr:
		walkNode(e.X, f)
	case *CallExpr:
		walkNode(e.Callee, f)
		for _, arg := range e.Args {
			walkNode(arg, f)
		}
	case *Block:
		Walk(e.Items, f)
	case *Closure:
		Walk(e.Body, f)
	case *TreeLit:
		for _, kid := range e.Kids {
			walkNode(kid, f)
		}
	}
}
