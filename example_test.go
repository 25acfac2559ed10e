// Copyright 2025 The Loon Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loon_test

import (
	"fmt"
	"log"

	"github.com/loon-lang/loon"
	"github.com/loon-lang/loon/ast"
)

func ExampleCheck() {
	items, err := loon.Check("example.loon", "double(x) = x + x\ndouble 5")
	if err != nil {
		log.Fatal(err)
	}
	for _, it := range items {
		fmt.Println(ast.String(it))
	}
	// Output:
	// (Def Name=double Params=(x) Body=((BinExpr X=x Op=+ Y=x)))
	// (CallExpr Callee=double Args=(5))
}

func ExampleCheck_diagnostics() {
	src := "x = y"
	_, err := loon.Check("example.loon", src)
	fmt.Print(err.(ast.ErrorList).Render(src, false))
	// Output:
	// example.loon:1:5: undefined: y
	// 1 | x = y
	//   |     ^
}
