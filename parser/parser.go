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

package parser

import (
	"io"

	"github.com/primlang/primcompile/ast"
	"github.com/primlang/primcompile/document"
	"github.com/primlang/primcompile/reporter"
)

// Parse parses the given source code and returns an AST for it. The
// given filename is used to construct error messages and position
// information. The given reader supplies the source code. The given
// handler is used to report errors and warnings encountered while
// parsing. If any errors are reported, this returns a non-nil error.
//
// The returned AST is non-nil even when an error is returned. If the
// handler chose to abort, the AST covers the file up to the point where
// parsing stopped; otherwise it is a full, error-tolerant tree in which
// text that could not be parsed is preserved as invalid items.
func Parse(filename string, r io.Reader, handler *reporter.Handler) (*ast.FileNode, error) {
	lx, err := NewLexer(filename, r, handler)
	if err != nil {
		return nil, err
	}
	p := &parseState{lexer: lx, handler: handler}
	p.advance()
	return p.parseFile(), handler.Error()
}

// Result is the result of constructing a document from parsed source.
// It contains the document itself along with the AST it came from, and
// can resolve document entries back to the AST nodes that declared
// them.
type Result interface {
	// AST returns the parse tree the document was built from. It
	// returns nil if the result was created without source, in which
	// case the node query methods below return placeholder nodes.
	AST() *ast.FileNode
	// Document returns the document constructed from the AST.
	Document() *document.Document

	// FileNode returns the root of the AST, or a placeholder node that
	// carries just the file's name if the result has no source.
	FileNode() ast.FileDeclNode
	// PropertyNode returns the AST node for the given entry of this
	// result's document.
	PropertyNode(*document.Entry) ast.PropertyDeclNode
	// ValueNode returns the AST node for the given entry's value.
	ValueNode(*document.Entry) ast.ValueNode
}

type parseState struct {
	lexer   *Lexer
	handler *reporter.Handler
	cur     Token
}

func (p *parseState) advance() {
	p.cur = p.lexer.Next()
}

func (p *parseState) parseFile() *ast.FileNode {
	var items []ast.ItemNode
	for p.cur.Kind != TokenEOF {
		switch p.cur.Kind {
		case TokenNewline:
			items = append(items, ast.NewNewlineNode(p.cur.Index))
			p.advance()
		case TokenComment:
			items = append(items, ast.NewCommentNode(p.cur.Value.(string), p.cur.Index))
			p.advance()
		case TokenIdent:
			items = append(items, p.parseProperty())
		default:
			items = append(items, p.parseInvalid())
		}
	}
	eof := ast.NewRuneNode(0, p.cur.Index)
	return ast.NewFileNode(p.lexer.FileInfo(), items, eof)
}

// parseProperty parses one property, starting at its name. When the
// tokens that follow are not the expected "=" and value, it reports
// what is missing, keeps whatever parts were present, and leaves the
// offending token for the caller so parsing resumes at a sensible
// point.
func (p *parseState) parseProperty() *ast.PropertyNode {
	name := ast.NewIdentNode(p.cur.Value.(string), p.cur.Index)
	p.advance()

	var equals *ast.RuneNode
	switch p.cur.Kind {
	case TokenEquals:
		equals = ast.NewRuneNode(p.cur.Value.(rune), p.cur.Index)
		p.advance()
	case TokenNumber:
		// The value is here but the "=" is not. Report it and read the
		// value anyway.
		p.errSpanf(p.cur.Index, p.cur.Index, `missing "=" between property name and value`)
	case TokenUnrecognized:
		// already reported by the lexer; the run becomes an invalid item
		return ast.NewPropertyNode(name, nil, nil)
	default:
		p.errSpanf(p.cur.Index, p.cur.Index, `expected "=" after property name, got %s`, p.cur.Kind)
		return ast.NewPropertyNode(name, nil, nil)
	}

	var value ast.ValueNode
	switch p.cur.Kind {
	case TokenNumber:
		switch v := p.cur.Value.(type) {
		case int64:
			value = ast.NewIntLiteralNode(v, p.cur.Index)
		case float64:
			value = ast.NewFloatLiteralNode(v, p.cur.Index)
		}
		p.advance()
	case TokenUnrecognized:
		// already reported by the lexer; the run becomes an invalid item
	case TokenNewline, TokenComment, TokenEOF:
		end := name.Token()
		if equals != nil {
			end = equals.Token()
		}
		p.errSpanf(name.Token(), end, "property %q is missing a value", name.Val)
	default:
		p.errSpanf(p.cur.Index, p.cur.Index, `expected a number after "=", got %s`, p.cur.Kind)
	}
	return ast.NewPropertyNode(name, equals, value)
}

// parseInvalid consumes a run of tokens that cannot begin an item and
// keeps them in the tree as a single invalid item. The run ends before
// the next token that could begin an item. One error is reported for
// the whole run, unless the lexer already reported it.
func (p *parseState) parseInvalid() *ast.InvalidNode {
	reported := p.cur.Kind == TokenUnrecognized
	firstKind := p.cur.Kind
	first := p.cur.Index
	last := p.cur.Index

	var terminals []ast.TerminalNode
	for {
		switch p.cur.Kind {
		case TokenEquals:
			terminals = append(terminals, ast.NewRuneNode(p.cur.Value.(rune), p.cur.Index))
		case TokenNumber:
			switch v := p.cur.Value.(type) {
			case int64:
				terminals = append(terminals, ast.NewIntLiteralNode(v, p.cur.Index))
			case float64:
				terminals = append(terminals, ast.NewFloatLiteralNode(v, p.cur.Index))
			}
		case TokenUnrecognized:
			terminals = append(terminals, ast.NewUnrecognizedNode(p.cur.Value.(string), p.cur.Index))
		}
		last = p.cur.Index
		p.advance()
		switch p.cur.Kind {
		case TokenNewline, TokenComment, TokenIdent, TokenEOF:
			if !reported {
				p.errSpanf(first, last, "syntax error: unexpected %s", firstKind)
			}
			return ast.NewInvalidNode(terminals)
		}
	}
}

func (p *parseState) errSpanf(start, end ast.Token, format string, args ...any) {
	info := p.lexer.FileInfo()
	_ = p.handler.HandleErrorSpanf(info.TokenInfo(start).Start(), info.TokenInfo(end).End(), format, args...)
}
