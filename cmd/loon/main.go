// Copyright 2025 The Loon Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The loon command checks a Loon source file.
// With no arguments, it starts a read-analyze-print loop (REPL).
package main // import "github.com/loon-lang/loon/cmd/loon"

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/term"

	"github.com/loon-lang/loon"
	"github.com/loon-lang/loon/ast"
	"github.com/loon-lang/loon/repl"
)

// flags
var (
	execprog = flag.String("c", "", "check program `prog` instead of a file")
	showAST  = flag.Bool("ast", false, "on success, print the analyzed item tree")
	watch    = flag.Bool("watch", false, "keep running, re-checking the file whenever it changes")
)

func main() {
	os.Exit(doMain())
}

func doMain() int {
	log.SetPrefix("loon: ")
	log.SetFlags(0)
	flag.Parse()

	color := term.IsTerminal(int(os.Stderr.Fd()))

	switch {
	case *execprog != "":
		if flag.NArg() > 0 || *watch {
			log.Print("-c does not take a file name")
			return 1
		}
		return check("cmdline", *execprog, color)

	case flag.NArg() == 1:
		filename := flag.Arg(0)
		data, err := os.ReadFile(filename)
		if err != nil {
			log.Print(err)
			return 1
		}
		code := check(filename, string(data), color)
		if *watch {
			return watchLoop(filename, color)
		}
		return code

	case flag.NArg() == 0:
		fmt.Println("Welcome to Loon (github.com/loon-lang/loon)")
		repl.REPL(loon.IsUniversal, color)
		return 0
	}

	log.Print("want at most one Loon file name")
	return 1
}

// check runs the frontend over one source unit and reports its
// diagnostics, returning a process exit code.
func check(filename, src string, color bool) int {
	items, err := loon.Check(filename, src)
	if err != nil {
		if list, ok := err.(ast.ErrorList); ok {
			fmt.Fprint(os.Stderr, list.Render(src, color))
		} else {
			repl.PrintError(err)
		}
		return 1
	}
	if *showAST {
		for _, it := range items {
			fmt.Println(ast.String(it))
		}
	}
	return 0
}

// watchLoop re-checks filename whenever it changes, until interrupted.
// Editors often replace a file rather than write it in place, so the
// watch is on the directory and filtered by name.
func watchLoop(filename string, color bool) int {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		log.Print(err)
		return 1
	}
	defer w.Close()

	dir := filepath.Dir(filename)
	if err := w.Add(dir); err != nil {
		log.Print(err)
		return 1
	}
	base := filepath.Base(filename)

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return 0
			}
			if filepath.Base(ev.Name) != base ||
				!ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			data, err := os.ReadFile(filename)
			if err != nil {
				log.Print(err)
				continue
			}
			fmt.Fprintf(os.Stderr, "-- %s --\n", filename)
			if check(filename, string(data), color) == 0 {
				fmt.Fprintln(os.Stderr, "ok")
			}
		case err, ok := <-w.Errors:
			if !ok {
				return 0
			}
			log.Print(err)
		}
	}
}
