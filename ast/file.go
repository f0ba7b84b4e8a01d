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

// FileDeclNode is a placeholder interface for AST nodes that represent
// files. This allows NoSourceNode to be used in place of *FileNode for
// some usages.
type FileDeclNode interface {
	Node
	Name() string
	NodeInfo(n Node) NodeInfo
}

var _ FileDeclNode = (*FileNode)(nil)
var _ FileDeclNode = NoSourceNode{}

// FileNode is the root of the AST hierarchy. It represents an entire
// Prim source file.
type FileNode struct {
	compositeNode
	fileInfo *FileInfo

	// Items is all of the file's items, in the order they appeared in
	// the source.
	Items []ItemNode
	// EOF is the synthesized zero-length terminal at the end of the
	// file. The whitespace after the last item, if any, is recoverable
	// as this node's leading whitespace.
	EOF *RuneNode
}

// NewFileNode creates a new *FileNode. The info must be the FileInfo
// that was populated while lexing the file, and eof must be the node
// for its zero-length end-of-file token.
func NewFileNode(info *FileInfo, items []ItemNode, eof *RuneNode) *FileNode {
	if info == nil {
		panic("info is nil")
	}
	if eof == nil {
		panic("eof is nil")
	}
	children := make([]Node, 0, len(items)+1)
	for _, item := range items {
		children = append(children, item)
	}
	children = append(children, eof)
	return &FileNode{
		compositeNode: compositeNode{children: children},
		fileInfo:      info,
		Items:         items,
		EOF:           eof,
	}
}

// NewEmptyFileNode returns an empty AST for a file with the given name.
func NewEmptyFileNode(filename string) *FileNode {
	fileInfo := NewFileInfo(filename, []byte{})
	return NewFileNode(fileInfo, nil, NewRuneNode(0, fileInfo.AddToken(0, 0)))
}

func (f *FileNode) Name() string {
	return f.fileInfo.Name()
}

// NodeInfo returns details from the original source for the given node.
//
// If the given n is out of range, this returns an invalid NodeInfo. If
// the given n is not out of range but also from a different file than
// f, then the result is undefined.
func (f *FileNode) NodeInfo(n Node) NodeInfo {
	return f.fileInfo.NodeInfo(n)
}

// TokenInfo returns details from the original source for the given
// token.
func (f *FileNode) TokenInfo(t Token) NodeInfo {
	return f.fileInfo.TokenInfo(t)
}

// FileInfo returns the file info that accumulated the file's tokens and
// line offsets during lexing.
func (f *FileNode) FileInfo() *FileInfo {
	return f.fileInfo
}

// Properties returns the file's property items, in source order. Items
// of other kinds are skipped.
func (f *FileNode) Properties() []*PropertyNode {
	var props []*PropertyNode
	for _, item := range f.Items {
		if prop, ok := item.(*PropertyNode); ok {
			props = append(props, prop)
		}
	}
	return props
}
