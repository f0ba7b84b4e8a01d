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

// ValueNode is an AST node that represents a primitive value assigned
// to a property.
//
// This interface is implemented by *IntLiteralNode and
// *FloatLiteralNode, as well as by NoSourceNode for files whose source
// is unavailable.
type ValueNode interface {
	Node
	// Value returns the numeric value. It will be an int64 or a float64.
	Value() any
}

// IntLiteralNode represents an integer literal value. Both decimal and
// hexadecimal forms lex to this node; an optional leading sign is part
// of the literal's token.
type IntLiteralNode struct {
	terminalNode
	Val int64
}

// NewIntLiteralNode creates a new *IntLiteralNode with the given value.
func NewIntLiteralNode(val int64, tok Token) *IntLiteralNode {
	return &IntLiteralNode{
		terminalNode: tok.asTerminalNode(),
		Val:          val,
	}
}

func (n *IntLiteralNode) Value() any {
	return n.Val
}

// FloatLiteralNode represents a floating point literal value. An
// integer literal whose magnitude does not fit in an int64 is also
// represented as a float.
type FloatLiteralNode struct {
	terminalNode
	Val float64
}

// NewFloatLiteralNode creates a new *FloatLiteralNode with the given
// value.
func NewFloatLiteralNode(val float64, tok Token) *FloatLiteralNode {
	return &FloatLiteralNode{
		terminalNode: tok.asTerminalNode(),
		Val:          val,
	}
}

func (n *FloatLiteralNode) Value() any {
	return n.Val
}
