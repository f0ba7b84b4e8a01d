// Copyright 2023-2026 The Prim Language Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package format renders Prim syntax trees in canonical form.
//
// Canonical form writes each property as "name = value" with single
// spaces, keeps the original spelling of values, starts every line in
// the first column, drops trailing whitespace, and ends the file with
// exactly one line break. Comments keep their text; a comment trailing
// a property stays on the property's line, one space after the value.
// Blank lines between items are preserved, while blank lines at the
// start and end of the file are dropped.
//
// Formatting never destroys input: lines the parser could not fully
// make sense of pass through verbatim, so formatting a file with
// errors is safe. The result of formatting is stable; formatting it
// again changes nothing.
package format

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/primlang/primcompile/ast"
	"github.com/primlang/primcompile/parser"
	"github.com/primlang/primcompile/reporter"
)

// Source parses src and returns it in canonical form. Parse errors do
// not fail formatting; the affected lines are passed through as they
// were. An error is returned only when reading the source fails.
func Source(src []byte) ([]byte, error) {
	handler := reporter.NewHandler(reporter.NewReporter(
		func(reporter.ErrorWithPos) error { return nil }, nil))
	root, err := parser.Parse("", bytes.NewReader(src), handler)
	if err != nil && !errors.Is(err, reporter.ErrInvalidSource) {
		return nil, err
	}
	var buf bytes.Buffer
	if err := File(&buf, root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// File writes the canonical form of the given file to w.
func File(w io.Writer, file *ast.FileNode) error {
	lines := splitLines(file.Items)

	// drop blank lines at the edges
	for len(lines) > 0 && len(lines[0]) == 0 {
		lines = lines[1:]
	}
	for len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}

	for _, line := range lines {
		if canonicalLine(line) {
			for i, item := range line {
				if i > 0 {
					if _, err := io.WriteString(w, " "); err != nil {
						return err
					}
				}
				if err := Node(w, file, item); err != nil {
					return err
				}
			}
		} else if _, err := io.WriteString(w, verbatimLine(file, line)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}

	// A lexing failure, such as text that is not UTF-8, leaves the
	// unscanned remainder of the file attached to the EOF token. It
	// must not be silently dropped.
	tail := file.NodeInfo(file.EOF).LeadingWhitespace()
	if trimmed := strings.Trim(tail, " \t\r\n"); trimmed != "" {
		if _, err := io.WriteString(w, trimmed); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Node writes the canonical form of a single item to w, without a
// trailing line break. Properties the parser recovered from errors,
// and invalid items, are written as they appeared in the source.
func Node(w io.Writer, file *ast.FileNode, item ast.ItemNode) error {
	var text string
	switch n := item.(type) {
	case *ast.PropertyNode:
		if n.IsComplete() {
			text = n.Name.Val + " = " + file.NodeInfo(n.Value).RawText()
		} else {
			text = verbatim(file, n)
		}
	case *ast.CommentNode:
		text = strings.TrimRight(n.Text, " \t\r")
	case *ast.NewlineNode:
		// line structure is the caller's concern
		return nil
	case *ast.InvalidNode:
		text = verbatim(file, n)
	default:
		return nil
	}
	_, err := io.WriteString(w, text)
	return err
}

// canonicalLine reports whether every item on the line can be written
// in canonical form. Lines holding invalid items, or properties the
// parser only partially recovered, are instead reproduced verbatim so
// that formatting never loses source text.
func canonicalLine(items []ast.ItemNode) bool {
	for _, item := range items {
		switch n := item.(type) {
		case *ast.CommentNode:
		case *ast.PropertyNode:
			if !n.IsComplete() {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// verbatimLine reproduces a line as it appeared in the source,
// keeping the spacing between its items but dropping indentation and
// trailing whitespace.
func verbatimLine(file *ast.FileNode, items []ast.ItemNode) string {
	var sb strings.Builder
	for i, item := range items {
		info := file.NodeInfo(item)
		if i > 0 {
			sb.WriteString(info.LeadingWhitespace())
		}
		sb.WriteString(info.RawText())
	}
	return strings.TrimRight(sb.String(), " \t\r")
}

// splitLines groups items into lines. The line-break items themselves
// are dropped; an empty group is a blank line.
func splitLines(items []ast.ItemNode) [][]ast.ItemNode {
	var lines [][]ast.ItemNode
	var cur []ast.ItemNode
	for _, item := range items {
		if _, ok := item.(*ast.NewlineNode); ok {
			lines = append(lines, cur)
			cur = nil
			continue
		}
		cur = append(cur, item)
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

func verbatim(file *ast.FileNode, n ast.Node) string {
	return strings.TrimRight(file.NodeInfo(n).RawText(), " \t\r")
}
