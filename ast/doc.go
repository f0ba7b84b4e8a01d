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

// Package ast defines types for modeling the AST (Abstract Syntax
// Tree) of the Prim source language.
//
// All nodes of the tree implement the Node interface. Leaf nodes in the
// tree implement TerminalNode and all others implement CompositeNode.
// The root of the tree for a Prim source file is a *FileNode.
//
// Position information is tracked using a *FileInfo, calling its various
// Add* methods as the file is tokenized by the lexer. This allows AST
// nodes to have a compact representation. To extract detailed position
// information, use the NodeInfo method, available on either the
// *FileInfo which produced the node's tokens or the *FileNode root of
// the tree that contains the node.
//
// The tree is full fidelity: comments and line breaks are items in the
// file's item list, not trivia attached to other tokens, and text the
// lexer could not recognize is preserved in InvalidNode items. Printing
// a tree with Print reproduces the original source exactly, even for
// files that contained errors.
//
// Creation of AST nodes should use the factory functions in this
// package instead of struct literals. Some factory functions accept
// optional arguments, which means the arguments can be nil. If nil
// values are provided for other (non-optional) arguments, the resulting
// node may be invalid and cause panics later in the program. Items can
// also be built generically, from an ItemKind and the item's parts, via
// NewItem; construction from an unrecognized kind fails loudly.
//
// This package defines numerous interfaces. However, user code should
// not attempt to implement any of them. Most consumers of an AST will
// not work correctly if they encounter concrete implementations other
// than the ones defined in this package.
package ast
