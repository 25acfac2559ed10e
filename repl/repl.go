// Copyright 2025 The Loon Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package repl provides a read/analyze/print loop for Loon.
//
// It supports readline-style command editing and interrupts through
// Control-C.
//
// Each round reads one item. If the input ends where the grammar demands
// more, for example after an opening paren or a closure header, the REPL
// keeps reading continuation lines and retries until the item completes
// or a real syntax error appears. The analyzed item is printed in the
// compact tree notation of ast.String, followed by its lifetime if it is
// an expression.
package repl // import "github.com/loon-lang/loon/repl"

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/loon-lang/loon/ast"
	"github.com/loon-lang/loon/build"
	"github.com/loon-lang/loon/resolve"
	"github.com/loon-lang/loon/syntax"
)

// REPL executes a read, analyze, print loop.
//
// isBuiltin reports whether a name is pre-bound by the host; it may be
// nil. Color enables ANSI styling of diagnostics.
// Control-C discards the line being edited; Control-D exits.
func REPL(isBuiltin func(string) bool, color bool) {
	rl, err := readline.New(">>> ")
	if err != nil {
		PrintError(err)
		return
	}
	defer rl.Close()
	for {
		if err := rap(rl, isBuiltin, color); err != nil {
			if err == readline.ErrInterrupt {
				fmt.Println(err)
				continue
			}
			break
		}
	}
	fmt.Println()
}

// rap reads, analyzes, and prints one item.
//
// It returns an error (possibly readline.ErrInterrupt) only if readline
// failed. Loon diagnostics are printed.
func rap(rl *readline.Instance, isBuiltin func(string) bool, color bool) error {
	rl.SetPrompt(">>> ")
	defer rl.SetPrompt(">>> ")

	var src string
	var tree *syntax.Tree
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF && src != "" {
				// Unfinished item abandoned at EOF.
				fmt.Println()
			}
			return err
		}
		src += line + "\n"

		tree, err = syntax.Parse("<stdin>", src)
		if err == nil {
			break
		}
		if perr, ok := err.(syntax.Error); ok && perr.Incomplete {
			rl.SetPrompt("... ")
			continue
		}
		printDiag(err, src, color)
		return nil
	}

	items, err := build.File(tree, isBuiltin)
	if err == nil {
		err = resolve.File(items, isBuiltin)
	}
	if err != nil {
		printDiag(err, src, color)
		return nil
	}

	for _, it := range items {
		if n, ok := it.(*ast.Node); ok {
			fmt.Printf("%s %s\n", ast.String(it), n.Life)
		} else {
			fmt.Println(ast.String(it))
		}
	}
	return nil
}

func printDiag(err error, src string, color bool) {
	if list, ok := err.(ast.ErrorList); ok {
		fmt.Fprint(os.Stderr, list.Render(src, color))
		return
	}
	PrintError(err)
}

// PrintError prints the error to stderr.
func PrintError(err error) {
	fmt.Fprintln(os.Stderr, err)
}
