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

// Package document contains the compiled representation of Prim
// sources: flat lists of named numeric entries, decoupled from the
// syntax trees they were built from. A Document is what most consumers
// of the module want; the AST matters only to tools that care about the
// exact source text.
//
// Use parser.ResultFromAST to build a Document from parsed source, and
// Set to merge several Documents into one cascading view.
package document

import (
	"fmt"

	"github.com/primlang/primcompile/ast"
)

// Span is a contiguous region of a source file. End is the position of
// the region's final character.
type Span struct {
	Start ast.SourcePos
	End   ast.SourcePos
}

// ValueKind identifies the dynamic type of an entry's value.
type ValueKind int

const (
	KindInvalid ValueKind = iota
	KindInt
	KindFloat
)

func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "invalid"
	}
}

// Entry is a single named value in a document.
type Entry struct {
	// Name is the property name the entry was assigned to.
	Name string
	// Value is the entry's value, an int64 or a float64.
	Value any
	// Doc is the entry's documentation: the text of the comment lines
	// immediately above the property, comment markers stripped, joined
	// with newlines. It is empty if the property had no such comments.
	Doc string
	// NameSpan and ValueSpan locate the entry's name and value in the
	// source it was compiled from. They are zero for entries built
	// without source.
	NameSpan  Span
	ValueSpan Span
}

// Kind returns the kind of the entry's value.
func (e *Entry) Kind() ValueKind {
	switch e.Value.(type) {
	case int64:
		return KindInt
	case float64:
		return KindFloat
	default:
		return KindInvalid
	}
}

// AsFloat returns the entry's value as a float64, converting if the
// value is an int64. Integers of very large magnitude lose precision in
// the conversion.
func (e *Entry) AsFloat() float64 {
	switch v := e.Value.(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	default:
		return 0
	}
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s = %v", e.Name, e.Value)
}

// Document is the compiled form of one Prim file: its properties in
// source order, with names resolved and values computed.
type Document struct {
	// Path identifies the source the document was compiled from. It is
	// the path that was given to the compiler, not necessarily an
	// absolute or even existing file path.
	Path string
	// Entries holds the document's entries in source order.
	Entries []*Entry
}

// Lookup returns the entry with the given name, or nil if the document
// has none. Documents hold few entries, so this is a scan of Entries.
func (d *Document) Lookup(name string) *Entry {
	for _, e := range d.Entries {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Len returns the number of entries in the document.
func (d *Document) Len() int {
	return len(d.Entries)
}

// Documents is a list of documents, usually the result of one compiler
// run.
type Documents []*Document

// FindByPath returns the document compiled from the given path, or nil
// if there is none.
func (ds Documents) FindByPath(path string) *Document {
	for _, d := range ds {
		if d.Path == path {
			return d
		}
	}
	return nil
}
