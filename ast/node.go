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

// Node is the interface implemented by all nodes in the AST. The
// Start and End tokens bound the node's span in the source file; full
// location details come from the *FileInfo that produced the tokens.
type Node interface {
	Start() Token
	End() Token
}

// TerminalNode represents a leaf in the AST. These represent the items
// produced by the lexer, which are the smallest units of syntax in a
// source file.
type TerminalNode interface {
	Node
	Token() Token
}

// CompositeNode represents any non-leaf node in the AST. These represent
// the productions of the grammar that combine terminals into higher
// structure.
type CompositeNode interface {
	Node
	// Children contains all the child elements of this node, in the order
	// they appeared in the source file.
	Children() []Node
}

// terminalNode contains bookkeeping shared by all TerminalNode
// implementations. It is the index of the node's token in the file's
// token table.
type terminalNode Token

func (n terminalNode) Start() Token {
	return Token(n)
}

func (n terminalNode) End() Token {
	return Token(n)
}

func (n terminalNode) Token() Token {
	return Token(n)
}

// compositeNode contains bookkeeping shared by all CompositeNode
// implementations.
type compositeNode struct {
	children []Node
}

func (n *compositeNode) Children() []Node {
	return n.children
}

func (n *compositeNode) Start() Token {
	return n.children[0].Start()
}

func (n *compositeNode) End() Token {
	return n.children[len(n.children)-1].End()
}

// IdentNode represents an identifier, the name on the left-hand side of
// a property.
type IdentNode struct {
	terminalNode
	Val string
}

// NewIdentNode creates a new *IdentNode. The given val is the identifier
// text.
func NewIdentNode(val string, tok Token) *IdentNode {
	return &IdentNode{
		terminalNode: tok.asTerminalNode(),
		Val:          val,
	}
}

// RuneNode represents a single punctuation or operator character, such
// as the "=" between a property's name and value.
type RuneNode struct {
	terminalNode
	Rune rune
}

// NewRuneNode creates a new *RuneNode for the given rune.
func NewRuneNode(r rune, tok Token) *RuneNode {
	return &RuneNode{
		terminalNode: tok.asTerminalNode(),
		Rune:         r,
	}
}

// UnrecognizedNode represents a run of text that the lexer could not
// classify. Keeping such runs in the tree means a file round-trips
// through parse and print even when it contains errors.
type UnrecognizedNode struct {
	terminalNode
	Val string
}

// NewUnrecognizedNode creates a new *UnrecognizedNode. The given val is
// the raw text of the run.
func NewUnrecognizedNode(val string, tok Token) *UnrecognizedNode {
	return &UnrecognizedNode{
		terminalNode: tok.asTerminalNode(),
		Val:          val,
	}
}
