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
	"fmt"
	"strconv"
)

// NewSyntheticProperty fabricates a property that did not come from any
// real source file, rendering "name = value" into a FileInfo of its
// own. Tools that create or rename properties programmatically use this
// to obtain nodes with working position and print support. The returned
// FileNode owns the property's tokens; printing it reproduces the
// rendered text.
//
// The value must be an int64 or a float64.
func NewSyntheticProperty(name string, value any) (*PropertyNode, *FileNode, error) {
	if !IsValidIdentifier(name) {
		return nil, nil, fmt.Errorf("invalid property name: %q", name)
	}
	var valText string
	switch v := value.(type) {
	case int64:
		valText = strconv.FormatInt(v, 10)
	case float64:
		valText = strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return nil, nil, fmt.Errorf("value must be int64 or float64; got %T", value)
	}

	text := name + " = " + valText
	info := NewFileInfo("<synthetic>", []byte(text))
	ident := NewIdentNode(name, info.AddToken(0, len(name)))
	equals := NewRuneNode('=', info.AddToken(len(name)+1, 1))
	valTok := info.AddToken(len(name)+3, len(valText))
	var valNode ValueNode
	switch v := value.(type) {
	case int64:
		valNode = NewIntLiteralNode(v, valTok)
	case float64:
		valNode = NewFloatLiteralNode(v, valTok)
	}

	prop := NewPropertyNode(ident, equals, valNode)
	eof := NewRuneNode(0, info.AddToken(len(text), 0))
	return prop, NewFileNode(info, []ItemNode{prop}, eof), nil
}

// IsValidIdentifier reports whether the given string is a legal property
// name: a letter or underscore followed by letters, digits, and
// underscores.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
