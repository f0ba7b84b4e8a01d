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

import "fmt"

// ItemNode is an element in a file's item list: a property, a comment,
// a line break, or a run of invalid text kept for error tolerance.
type ItemNode interface {
	Node
	itemNode()
}

var _ ItemNode = (*PropertyNode)(nil)
var _ ItemNode = (*CommentNode)(nil)
var _ ItemNode = (*NewlineNode)(nil)
var _ ItemNode = (*InvalidNode)(nil)

// ItemKind identifies the concrete type of an ItemNode.
type ItemKind int

const (
	ItemKindProperty ItemKind = iota + 1
	ItemKindComment
	ItemKindNewline
	ItemKindInvalid
)

func (k ItemKind) String() string {
	switch k {
	case ItemKindProperty:
		return "property"
	case ItemKindComment:
		return "comment"
	case ItemKindNewline:
		return "line break"
	case ItemKindInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// ItemKindOf returns the kind of the given item. It panics if the item
// is a concrete type not defined in this package.
func ItemKindOf(item ItemNode) ItemKind {
	switch item.(type) {
	case *PropertyNode:
		return ItemKindProperty
	case *CommentNode:
		return ItemKindComment
	case *NewlineNode:
		return ItemKindNewline
	case *InvalidNode:
		return ItemKindInvalid
	default:
		panic(fmt.Sprintf("unexpected type of item: %T", item))
	}
}

// NewItem constructs an item node of the given kind from its parts.
// This is the generic counterpart of the typed factory functions, for
// tools that assemble trees from kinds rather than from static types.
//
// The parts for each kind are:
//   - ItemKindProperty: a *IdentNode, optionally followed by a
//     *RuneNode for "=", optionally followed by a ValueNode.
//   - ItemKindComment: a single *CommentNode.
//   - ItemKindNewline: a single *NewlineNode.
//   - ItemKindInvalid: one or more TerminalNodes.
//
// An unrecognized kind, or parts that do not match the kind, result in
// an error.
func NewItem(kind ItemKind, parts ...Node) (ItemNode, error) {
	switch kind {
	case ItemKindProperty:
		if len(parts) == 0 || len(parts) > 3 {
			return nil, fmt.Errorf("%v item requires one to three parts; got %d", kind, len(parts))
		}
		name, ok := parts[0].(*IdentNode)
		if !ok {
			return nil, fmt.Errorf("%v item part 1 must be *IdentNode; got %T", kind, parts[0])
		}
		var equals *RuneNode
		if len(parts) > 1 {
			if equals, ok = parts[1].(*RuneNode); !ok {
				return nil, fmt.Errorf("%v item part 2 must be *RuneNode; got %T", kind, parts[1])
			}
		}
		var value ValueNode
		if len(parts) > 2 {
			if value, ok = parts[2].(ValueNode); !ok {
				return nil, fmt.Errorf("%v item part 3 must be ValueNode; got %T", kind, parts[2])
			}
		}
		return NewPropertyNode(name, equals, value), nil

	case ItemKindComment:
		if len(parts) != 1 {
			return nil, fmt.Errorf("%v item requires exactly one part; got %d", kind, len(parts))
		}
		comment, ok := parts[0].(*CommentNode)
		if !ok {
			return nil, fmt.Errorf("%v item part must be *CommentNode; got %T", kind, parts[0])
		}
		return comment, nil

	case ItemKindNewline:
		if len(parts) != 1 {
			return nil, fmt.Errorf("%v item requires exactly one part; got %d", kind, len(parts))
		}
		newline, ok := parts[0].(*NewlineNode)
		if !ok {
			return nil, fmt.Errorf("%v item part must be *NewlineNode; got %T", kind, parts[0])
		}
		return newline, nil

	case ItemKindInvalid:
		if len(parts) == 0 {
			return nil, fmt.Errorf("%v item requires at least one part", kind)
		}
		terminals := make([]TerminalNode, len(parts))
		for i, part := range parts {
			terminal, ok := part.(TerminalNode)
			if !ok {
				return nil, fmt.Errorf("%v item part %d must be a terminal; got %T", kind, i+1, part)
			}
			terminals[i] = terminal
		}
		return NewInvalidNode(terminals), nil

	default:
		return nil, fmt.Errorf("unrecognized item kind: %v", kind)
	}
}

// CommentNode represents a comment. Comments run from a "#" character
// to the end of the line and are items in the file, not trivia attached
// to other tokens.
type CommentNode struct {
	terminalNode
	// Text is the raw text of the comment, including the leading "#"
	// but not the line break that ends it.
	Text string
}

// NewCommentNode creates a new *CommentNode with the given raw text.
func NewCommentNode(text string, tok Token) *CommentNode {
	return &CommentNode{
		terminalNode: tok.asTerminalNode(),
		Text:         text,
	}
}

func (*CommentNode) itemNode() {}

// NewlineNode represents a line break. Line breaks separate properties
// and reset the lexer to its initial state, so they are structural and
// appear in the tree as their own items.
type NewlineNode struct {
	terminalNode
}

// NewNewlineNode creates a new *NewlineNode.
func NewNewlineNode(tok Token) *NewlineNode {
	return &NewlineNode{terminalNode: tok.asTerminalNode()}
}

func (*NewlineNode) itemNode() {}

// InvalidNode is an item holding terminals that could not be formed
// into a property, comment, or line break. Keeping them in the tree
// preserves the original text of files with errors.
type InvalidNode struct {
	compositeNode
}

// NewInvalidNode creates a new *InvalidNode from the given terminals,
// which must not be empty.
func NewInvalidNode(terminals []TerminalNode) *InvalidNode {
	if len(terminals) == 0 {
		panic("terminals is empty")
	}
	children := make([]Node, len(terminals))
	for i, t := range terminals {
		children[i] = t
	}
	return &InvalidNode{
		compositeNode: compositeNode{children: children},
	}
}

func (*InvalidNode) itemNode() {}
