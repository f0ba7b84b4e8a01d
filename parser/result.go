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

package parser

import (
	"strings"

	"github.com/primlang/primcompile/ast"
	"github.com/primlang/primcompile/document"
	"github.com/primlang/primcompile/reporter"
)

type result struct {
	file *ast.FileNode
	doc  *document.Document

	// properties maps a document entry to the AST node it came from.
	// It is nil if the result was created without an AST.
	properties map[*document.Entry]*ast.PropertyNode
}

// ResultWithoutAST returns a result that has no AST. Methods that
// return AST nodes will return a placeholder node that contains only
// the document's path in position information.
func ResultWithoutAST(doc *document.Document) Result {
	return &result{doc: doc}
}

// ResultFromAST constructs a document from the given AST. The returned
// result includes the document and an index for looking up the AST
// nodes that document entries came from.
//
// Properties the parser could not complete, the ones with no value,
// produce no entries; the parser already reported them. If validate is
// true, the document is also checked for semantic problems, such as a
// name being defined twice, and those are reported through the given
// handler. When the handler chooses to collect errors rather than
// abort, a usable result is still returned along with ErrInvalidSource.
func ResultFromAST(file *ast.FileNode, validate bool, handler *reporter.Handler) (Result, error) {
	r := &result{
		file:       file,
		doc:        &document.Document{Path: file.Name()},
		properties: make(map[*document.Entry]*ast.PropertyNode),
	}
	r.createDocument()
	if validate {
		if err := validateResult(r, handler); err != nil {
			return nil, err
		}
	}
	return r, handler.Error()
}

// createDocument flattens the AST's items into document entries, in
// source order, attributing doc comments as it goes. A property's doc
// is the unbroken run of whole-line comments immediately above it; a
// blank line, invalid text, or a comment trailing other content on its
// line detaches the run.
func (r *result) createDocument() {
	var run []string
	newlines := 0
	lineHasContent := false
	for _, item := range r.file.Items {
		switch n := item.(type) {
		case *ast.CommentNode:
			if lineHasContent {
				// trailing comment; it belongs to the line's item, not
				// to whatever comes next
				run = nil
			} else {
				run = append(run, docText(n.Text))
			}
			newlines = 0
		case *ast.NewlineNode:
			newlines++
			if newlines > 1 {
				run = nil
			}
			lineHasContent = false
		case *ast.PropertyNode:
			var doc string
			if !lineHasContent {
				doc = strings.Join(run, "\n")
			}
			r.addEntry(n, doc)
			run = nil
			newlines = 0
			lineHasContent = true
		case *ast.InvalidNode:
			run = nil
			newlines = 0
			lineHasContent = true
		}
	}
}

func (r *result) addEntry(n *ast.PropertyNode, doc string) {
	if n.Value == nil {
		return
	}
	entry := &document.Entry{
		Name:      n.Name.Val,
		Value:     n.Value.Value(),
		Doc:       doc,
		NameSpan:  r.spanOf(n.Name),
		ValueSpan: r.spanOf(n.Value),
	}
	r.doc.Entries = append(r.doc.Entries, entry)
	r.properties[entry] = n
}

func (r *result) spanOf(n ast.Node) document.Span {
	info := r.file.NodeInfo(n)
	return document.Span{Start: info.Start(), End: info.End()}
}

// docText strips the comment marker and the whitespace around a
// comment's contents.
func docText(text string) string {
	text = strings.TrimPrefix(text, "#")
	text = strings.TrimSuffix(text, "\r")
	return strings.TrimSpace(text)
}

func (r *result) AST() *ast.FileNode {
	return r.file
}

func (r *result) Document() *document.Document {
	return r.doc
}

func (r *result) FileNode() ast.FileDeclNode {
	if r.file == nil {
		return ast.NewNoSourceNode(r.doc.Path)
	}
	return r.file
}

func (r *result) PropertyNode(e *document.Entry) ast.PropertyDeclNode {
	if r.properties == nil {
		return ast.NewNoSourceNode(r.doc.Path)
	}
	if n, ok := r.properties[e]; ok {
		return n
	}
	return nil
}

func (r *result) ValueNode(e *document.Entry) ast.ValueNode {
	if r.properties == nil {
		return ast.NewNoSourceNode(r.doc.Path)
	}
	if n, ok := r.properties[e]; ok {
		return n.Value
	}
	return nil
}
