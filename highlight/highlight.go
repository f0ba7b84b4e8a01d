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

// Package highlight provides syntax highlighting for Prim source via
// the chroma library. The chroma lexer here is backed by the same
// scanner the compiler uses, so highlighting agrees exactly with what
// the compiler accepts: anything the scanner rejects is colored as an
// error, and numeric spellings are classified the way they will be
// interpreted.
package highlight

import (
	"io"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/primlang/primcompile/parser"
	"github.com/primlang/primcompile/reporter"
)

// Lexer tokenises Prim source for chroma. It implements chroma.Lexer.
type Lexer struct {
	config   chroma.Config
	analyser func(text string) float32
}

// New returns a chroma lexer for Prim source.
func New() *Lexer {
	return &Lexer{
		config: chroma.Config{
			Name:      "Prim",
			Aliases:   []string{"prim"},
			Filenames: []string{"*.prim"},
			MimeTypes: []string{"text/x-prim"},
		},
	}
}

// Register installs the Prim lexer in chroma's global registry, so
// lexers.Get("prim") and filename matching on *.prim find it. It
// returns the registered lexer.
func Register() chroma.Lexer {
	return lexers.Register(New())
}

// Write renders src to w using the named chroma formatter and style,
// for example formatter "terminal256" and style "monokai". Unknown
// names fall back on chroma's plain-text defaults.
func Write(w io.Writer, src, formatter, style string) error {
	it, err := New().Tokenise(nil, src)
	if err != nil {
		return err
	}
	return formatters.Get(formatter).Format(w, styles.Get(style), it)
}

// Config implements chroma.Lexer.
func (l *Lexer) Config() *chroma.Config {
	return &l.config
}

// SetRegistry implements chroma.Lexer. The Prim lexer never delegates
// to other lexers, so the registry is not retained.
func (l *Lexer) SetRegistry(*chroma.LexerRegistry) chroma.Lexer {
	return l
}

// SetAnalyser implements chroma.Lexer.
func (l *Lexer) SetAnalyser(analyser func(text string) float32) chroma.Lexer {
	l.analyser = analyser
	return l
}

var analyseLine = regexp.MustCompile(`^[ \t]*(#|[A-Za-z_][A-Za-z0-9_]*[ \t]*=[ \t]*[-+.0-9])`)

// AnalyseText scores how likely text is to be Prim source, as the
// fraction of non-blank lines that look like a property or comment.
func (l *Lexer) AnalyseText(text string) float32 {
	if l.analyser != nil {
		return l.analyser(text)
	}
	var total, matched int
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		total++
		if analyseLine.MatchString(line) {
			matched++
		}
	}
	if total == 0 {
		return 0
	}
	return float32(matched) / float32(total)
}

const byteOrderMark = "\uFEFF"

// Tokenise implements chroma.Lexer. The returned tokens concatenate
// back to exactly the input text; whitespace between tokens, a leading
// byte order mark, and even bytes the scanner could not decode are all
// carried through.
func (l *Lexer) Tokenise(options *chroma.TokeniseOptions, text string) (chroma.Iterator, error) {
	if options != nil && options.EnsureLF {
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}

	var toks []chroma.Token
	if strings.HasPrefix(text, byteOrderMark) {
		toks = append(toks, chroma.Token{Type: chroma.Text, Value: byteOrderMark})
	}

	handler := reporter.NewHandler(reporter.NewReporter(
		func(reporter.ErrorWithPos) error { return nil }, nil))
	lx, err := parser.NewLexer("", strings.NewReader(text), handler)
	if err != nil {
		return nil, err
	}
	info := lx.FileInfo()
	for {
		tok := lx.Next()
		ni := info.TokenInfo(tok.Index)
		if lead := ni.LeadingWhitespace(); lead != "" {
			typ := chroma.TextWhitespace
			if strings.Trim(lead, " \t\r\n\f\v") != "" {
				// bytes the scanner gave up on, such as invalid UTF-8
				typ = chroma.Error
			}
			toks = append(toks, chroma.Token{Type: typ, Value: lead})
		}
		if tok.Kind == parser.TokenEOF {
			break
		}
		raw := ni.RawText()
		toks = append(toks, chroma.Token{Type: tokenType(tok.Kind, raw, tok.Value), Value: raw})
	}
	return chroma.Literator(toks...), nil
}

func tokenType(kind parser.TokenKind, raw string, value any) chroma.TokenType {
	switch kind {
	case parser.TokenIdent:
		return chroma.NameAttribute
	case parser.TokenEquals:
		return chroma.Operator
	case parser.TokenNumber:
		digits := strings.TrimLeft(raw, "+-")
		if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
			return chroma.LiteralNumberHex
		}
		if _, ok := value.(float64); ok {
			return chroma.LiteralNumberFloat
		}
		return chroma.LiteralNumberInteger
	case parser.TokenComment:
		return chroma.CommentSingle
	case parser.TokenNewline:
		return chroma.TextWhitespace
	default:
		return chroma.Error
	}
}
