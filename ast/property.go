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

// PropertyDeclNode is a placeholder interface for AST nodes that
// represent property assignments. This allows NoSourceNode to be used
// in place of *PropertyNode for some usages.
type PropertyDeclNode interface {
	Node
	GetName() Node
	GetValue() ValueNode
}

var _ PropertyDeclNode = (*PropertyNode)(nil)
var _ PropertyDeclNode = NoSourceNode{}

// PropertyNode represents a property assignment: an identifier, an "="
// sign, and a primitive value. Example:
//
//	max_retries = 3
type PropertyNode struct {
	compositeNode
	Name   *IdentNode
	Equals *RuneNode
	Value  ValueNode
}

// NewPropertyNode creates a new *PropertyNode. The name is required.
// The equals sign and value may be nil when the parser recovered from a
// partially written property; a node with a nil Value carries no usable
// assignment but still spans the text that was present.
func NewPropertyNode(name *IdentNode, equals *RuneNode, value ValueNode) *PropertyNode {
	if name == nil {
		panic("name is nil")
	}
	children := make([]Node, 0, 3)
	children = append(children, name)
	if equals != nil {
		children = append(children, equals)
	}
	if value != nil {
		children = append(children, value)
	}
	return &PropertyNode{
		compositeNode: compositeNode{children: children},
		Name:          name,
		Equals:        equals,
		Value:         value,
	}
}

func (*PropertyNode) itemNode() {}

func (n *PropertyNode) GetName() Node {
	return n.Name
}

func (n *PropertyNode) GetValue() ValueNode {
	return n.Value
}

// IsComplete reports whether this property has all three of its parts.
// Properties built by the parser's error recovery may be missing the
// equals sign or the value.
func (n *PropertyNode) IsComplete() bool {
	return n.Equals != nil && n.Value != nil
}
