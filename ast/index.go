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

package ast

import (
	"github.com/primlang/primcompile/internal/interval"
)

// Index answers position queries against a file's AST: given a byte
// offset, it reports which nodes contain that offset. Building the index
// walks the whole tree once; queries after that are logarithmic in the
// number of nodes.
type Index struct {
	file  *FileNode
	cover interval.Cover[int, Node]
}

// NewIndex builds an index over the given file. It panics if file is nil.
func NewIndex(file *FileNode) *Index {
	if file == nil {
		panic("file is nil")
	}

	ix := &Index{file: file}

	// The file node covers every byte, including whitespace before the
	// first token and after the last.
	if n := len(file.fileInfo.data); n > 0 {
		ix.cover.Add(0, n-1, Node(file))
	}

	// A preorder walk adds ancestors before descendants, so the value
	// lists accumulated per byte read outermost to innermost.
	Inspect(file, func(n Node) bool {
		if n == Node(file) {
			return true
		}
		start, end, ok := ix.byteSpan(n)
		if ok {
			ix.cover.Add(start, end, n)
		}
		return true
	})

	return ix
}

// File returns the file this index was built from.
func (ix *Index) File() *FileNode {
	return ix.file
}

// NodeAt returns the innermost node whose span contains the given byte
// offset, or nil if the offset is out of range for the file.
//
// Whitespace is not part of any token, so an offset between two tokens
// resolves to the nearest enclosing composite (for the gap inside a
// property, the property; for the gap between items, the file itself).
func (ix *Index) NodeAt(offset int) Node {
	path := ix.PathAt(offset)
	if len(path) == 0 {
		return nil
	}
	return path[len(path)-1]
}

// PathAt returns every node whose span contains the given byte offset,
// outermost first. For any offset inside the file the first element is
// the file node itself; the last is the innermost containing node. The
// result is nil if the offset is out of range.
func (ix *Index) PathAt(offset int) []Node {
	return ix.cover.At(offset).Value
}

// byteSpan reports the inclusive byte range of n's tokens. Zero-length
// tokens (EOF) occupy no bytes and report ok == false.
func (ix *Index) byteSpan(n Node) (start, end int, ok bool) {
	info := ix.file.fileInfo
	startTok := info.tokens[n.Start()]
	endTok := info.tokens[n.End()]
	end = endTok.offset + endTok.length - 1
	if end < startTok.offset {
		return 0, 0, false
	}
	return startTok.offset, end, true
}
