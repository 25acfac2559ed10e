// Copyright 2025 The Loon Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chunkedfile provides utilities for testing that source code
// errors are reported in the appropriate places.
//
// A chunked file consists of several chunks of input text separated by
// "---" lines. Each chunk is an independent input to the frontend under
// test. Lines containing "###" are interpreted as expectations of
// failure: the following text is a Go string literal denoting a regular
// expression that should match the failure message reported on that line.
//
// Example:
//
//	f(_) = 1 ### "cannot be named"
//	---
//	x = y ### "undefined: y"
//
// A client test feeds each chunk's Source into the frontend, calls
// chunk.GotError for every diagnostic that actually occurred, then
// chunk.Done. Any discrepancy between actual and expected errors is
// reported through the chunk's reporter, typically a *testing.T.
package chunkedfile // import "github.com/loon-lang/loon/internal/chunkedfile"

import (
	"os"
	"regexp"
	"strconv"
	"strings"
)

// A Chunk is one input of a chunked file, with its expected errors.
type Chunk struct {
	Source   string
	filename string
	report   Reporter
	wantErrs map[int]*regexp.Regexp
}

// Reporter is implemented by *testing.T.
type Reporter interface {
	Errorf(format string, args ...interface{})
}

// Read parses a chunked file and returns its chunks.
// It reports failures using the reporter.
//
// Each chunk's Source is padded with leading newlines so that positions
// reported against it match line numbers in the chunked file itself.
// The reported messages are prefixed with a newline so the file:line the
// testing package prepends lands on its own line.
func Read(filename string, report Reporter) (chunks []Chunk) {
	data, err := os.ReadFile(filename)
	if err != nil {
		report.Errorf("%s", err)
		return
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	linenum := 1
	for _, chunk := range strings.Split(text, "\n---\n") {
		// Pad so line numbers match the original file.
		src := strings.Repeat("\n", linenum-1) + chunk

		wantErrs := make(map[int]*regexp.Regexp)
		for _, line := range strings.Split(chunk, "\n") {
			hashes := strings.Index(line, "###")
			if hashes >= 0 {
				rest := strings.TrimSpace(line[hashes+len("###"):])
				pattern, err := strconv.Unquote(rest)
				if err != nil {
					report.Errorf("\n%s:%d: not a quoted regexp: %s", filename, linenum, rest)
				} else if rx, err := regexp.Compile(pattern); err != nil {
					report.Errorf("\n%s:%d: %v", filename, linenum, err)
				} else {
					wantErrs[linenum] = rx
				}
			}
			linenum++
		}
		linenum++ // the --- separator

		chunks = append(chunks, Chunk{src, filename, report, wantErrs})
	}
	return chunks
}

// GotError should be called by the client to report an error at a
// particular line. GotError reports unexpected errors to the chunk's
// reporter.
func (chunk *Chunk) GotError(linenum int, msg string) {
	if rx, ok := chunk.wantErrs[linenum]; ok {
		delete(chunk.wantErrs, linenum)
		if !rx.MatchString(msg) {
			chunk.report.Errorf("\n%s:%d: error %q does not match pattern %q", chunk.filename, linenum, msg, rx)
		}
	} else {
		chunk.report.Errorf("\n%s:%d: unexpected error: %v", chunk.filename, linenum, msg)
	}
}

// Done should be called by the client once no more errors are expected.
// Done reports expected errors that did not occur to the chunk's reporter.
func (chunk *Chunk) Done() {
	for linenum, rx := range chunk.wantErrs {
		chunk.report.Errorf("\n%s:%d: expected error matching %q", chunk.filename, linenum, rx)
	}
}
