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

package ast_test

import (
	"github.com/primlang/primcompile/ast"
)

// sampleFile is a hand-built tree for "a = 2\n# done\n", assembled the
// way a lexer and parser would assemble it. Building it by hand keeps
// these tests independent of the parser.
type sampleFile struct {
	src     string
	file    *ast.FileNode
	prop    *ast.PropertyNode
	name    *ast.IdentNode
	equals  *ast.RuneNode
	value   *ast.IntLiteralNode
	nl1     *ast.NewlineNode
	comment *ast.CommentNode
	nl2     *ast.NewlineNode
	eof     *ast.RuneNode
}

func buildSample() sampleFile {
	s := sampleFile{src: "a = 2\n# done\n"}
	info := ast.NewFileInfo("sample.prim", []byte(s.src))

	s.name = ast.NewIdentNode("a", info.AddToken(0, 1))
	s.equals = ast.NewRuneNode('=', info.AddToken(2, 1))
	s.value = ast.NewIntLiteralNode(2, info.AddToken(4, 1))
	s.prop = ast.NewPropertyNode(s.name, s.equals, s.value)

	s.nl1 = ast.NewNewlineNode(info.AddToken(5, 1))
	info.AddLine(6)

	s.comment = ast.NewCommentNode("# done", info.AddToken(6, 6))
	s.nl2 = ast.NewNewlineNode(info.AddToken(12, 1))
	info.AddLine(13)

	s.eof = ast.NewRuneNode(0, info.AddToken(13, 0))
	s.file = ast.NewFileNode(info, []ast.ItemNode{s.prop, s.nl1, s.comment, s.nl2}, s.eof)
	return s
}
