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
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/primlang/primcompile/ast"
	"github.com/primlang/primcompile/reporter"
)

// TokenKind identifies the category of a lexed token.
type TokenKind int

const (
	// TokenEOF is the zero-length token at the end of the file. Once
	// the lexer returns it, it returns it forever.
	TokenEOF TokenKind = iota
	// TokenIdent is an identifier: the name on the left-hand side of a
	// property.
	TokenIdent
	// TokenEquals is the "=" between a property's name and value.
	TokenEquals
	// TokenNumber is an integer or floating point literal.
	TokenNumber
	// TokenComment is a comment, running from "#" to the end of the
	// line, exclusive of the line break.
	TokenComment
	// TokenNewline is a line break. Line breaks are structural in Prim,
	// so they are tokens rather than skipped whitespace.
	TokenNewline
	// TokenUnrecognized is a run of text the lexer could not classify.
	// The run is preserved as a token so files with errors still
	// round-trip; a diagnostic is reported for each run.
	TokenUnrecognized
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of file"
	case TokenIdent:
		return "identifier"
	case TokenEquals:
		return `"="`
	case TokenNumber:
		return "number"
	case TokenComment:
		return "comment"
	case TokenNewline:
		return "line break"
	case TokenUnrecognized:
		return "unrecognized text"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Token is a single token produced by the Lexer.
type Token struct {
	Kind TokenKind
	// Index locates the token in the FileInfo that the lexer populates,
	// giving access to its position and raw text.
	Index ast.Token
	// Value is the token's interpreted value: a string for identifiers,
	// comments, and unrecognized runs; an int64 or float64 for numbers;
	// a rune for "=". It is nil for line breaks and for the end of
	// file. A number whose text cannot be interpreted comes back as a
	// TokenUnrecognized token carrying its raw text.
	Value any
}

// The lexer is a small state machine. Which tokens can begin at a given
// point depends only on where the lexer stands within a property: at
// the start of a logical line expecting a name, after the name
// expecting "=", or after "=" expecting a value. A line break returns
// it to the initial state. Signs and leading dots are folded into
// number tokens only in the value state, so that "=" is always followed
// by a single primitive token and a stray "-" elsewhere is flagged
// rather than silently eaten.
type lexState int

const (
	stateKey    lexState = iota // start of a logical line; a name comes next
	stateAssign                 // after the name; "=" comes next
	stateValue                  // after "="; the value comes next
)

type runeReader struct {
	data []byte
	pos  int
	err  error
	mark int
}

func (rr *runeReader) readRune() (r rune, size int, err error) {
	if rr.err != nil {
		return 0, 0, rr.err
	}
	if rr.pos == len(rr.data) {
		rr.err = io.EOF
		return 0, 0, rr.err
	}
	r, sz := utf8.DecodeRune(rr.data[rr.pos:])
	if r == utf8.RuneError && sz == 1 {
		rr.err = fmt.Errorf("invalid UTF-8 at offset %d: %#x", rr.pos, rr.data[rr.pos])
		return 0, 0, rr.err
	}
	rr.pos = rr.pos + sz
	return r, sz, nil
}

func (rr *runeReader) offset() int {
	return rr.pos
}

func (rr *runeReader) unreadRune(sz int) {
	newPos := rr.pos - sz
	if newPos < rr.mark {
		panic("unread past mark")
	}
	rr.pos = newPos
}

func (rr *runeReader) setMark() {
	rr.mark = rr.pos
}

func (rr *runeReader) getMark() string {
	return string(rr.data[rr.mark:rr.pos])
}

// Lexer turns Prim source into a stream of tokens, accumulating
// position details into an ast.FileInfo as it goes. The parser drives
// it one token at a time; it is also usable on its own, for tools that
// want tokens without a tree.
type Lexer struct {
	input   *runeReader
	info    *ast.FileInfo
	handler *reporter.Handler

	state      lexState
	prevOffset int
	eof        *Token
}

var utf8Bom = []byte{0xEF, 0xBB, 0xBF}

// NewLexer creates a lexer for the given file. Errors and warnings
// found while scanning are reported to the given handler. An error is
// returned only if reading from r fails.
func NewLexer(filename string, r io.Reader, handler *reporter.Handler) (*Lexer, error) {
	br := bufio.NewReader(r)

	// if the file has a UTF-8 byte order marker preface, consume it
	marker, err := br.Peek(3)
	if err == nil && bytes.Equal(marker, utf8Bom) {
		_, _ = br.Discard(3)
	}

	contents, err := io.ReadAll(br)
	if err != nil {
		return nil, err
	}
	return &Lexer{
		input:   &runeReader{data: contents},
		info:    ast.NewFileInfo(filename, contents),
		handler: handler,
	}, nil
}

// FileInfo returns the file info the lexer populates as it scans. Its
// token table is complete once Next has returned a TokenEOF token.
func (l *Lexer) FileInfo() *ast.FileInfo {
	return l.info
}

// Next returns the next token in the file. At the end of the file it
// returns a TokenEOF token, and every call after that returns the same
// token. If the handler's reporter has aborted, Next skips the rest of
// the input and goes straight to the end of the file.
func (l *Lexer) Next() Token {
	if l.eof != nil {
		return *l.eof
	}
	if l.handler.ReporterError() != nil {
		return l.makeEOF()
	}

	for {
		l.input.setMark()
		l.prevOffset = l.input.offset()
		c, _, err := l.input.readRune()
		if err == io.EOF {
			return l.makeEOF()
		} else if err != nil {
			l.addSourceError(err)
			return l.makeEOF()
		}

		switch {
		case c == '\n':
			tok := l.newToken()
			l.info.AddLine(l.input.offset())
			l.state = stateKey
			return Token{Kind: TokenNewline, Index: tok}

		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			// Whitespace is not tokenized; it is recovered as the
			// leading whitespace of the token that follows it.
			continue

		case c == '#':
			return l.readComment()

		case c == '=':
			if l.state == stateAssign {
				l.state = stateValue
			}
			return Token{Kind: TokenEquals, Index: l.newToken(), Value: c}

		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			l.readIdentifier()
			if l.state == stateKey {
				l.state = stateAssign
			}
			return Token{Kind: TokenIdent, Index: l.newToken(), Value: l.input.getMark()}

		case c >= '0' && c <= '9':
			return l.readNumberToken()

		case l.state == stateValue && (c == '-' || c == '+' || c == '.'):
			// A sign or leading dot begins a number only if something
			// numeric follows it.
			cn, szn, err := l.input.readRune()
			if err == nil && ((cn >= '0' && cn <= '9') || (c != '.' && cn == '.')) {
				return l.readNumberToken()
			}
			if err == nil {
				l.input.unreadRune(szn)
			}
			fallthrough

		default:
			return l.readUnrecognizedToken()
		}
	}
}

func (l *Lexer) newToken() ast.Token {
	offset := l.input.mark
	length := l.input.pos - l.input.mark
	return l.info.AddToken(offset, length)
}

func (l *Lexer) makeEOF() Token {
	if l.eof == nil {
		tok := Token{Kind: TokenEOF, Index: l.info.AddToken(len(l.input.data), 0)}
		l.eof = &tok
	}
	return *l.eof
}

func (l *Lexer) readComment() Token {
	for {
		c, sz, err := l.input.readRune()
		if err != nil {
			break
		}
		if c == '\n' {
			l.input.unreadRune(sz)
			break
		}
	}
	return Token{Kind: TokenComment, Index: l.newToken(), Value: l.input.getMark()}
}

func (l *Lexer) readIdentifier() {
	for {
		c, sz, err := l.input.readRune()
		if err != nil {
			break
		}
		if c != '_' && (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			l.input.unreadRune(sz)
			break
		}
	}
}

// readNumber consumes the remainder of a number token. The run is kept
// deliberately greedy, letters and stray punctuation included, so that
// malformed literals like "12x" or "1..5" become a single token with a
// single diagnostic instead of a cascade.
func (l *Lexer) readNumber() {
	allowExpSign := false
	for {
		c, sz, err := l.input.readRune()
		if err != nil {
			break
		}
		if (c == '-' || c == '+') && !allowExpSign {
			l.input.unreadRune(sz)
			break
		}
		allowExpSign = false
		if c != '.' && c != '_' && (c < '0' || c > '9') &&
			(c < 'a' || c > 'z') && (c < 'A' || c > 'Z') &&
			c != '-' && c != '+' {
			// no more chars in the number token
			l.input.unreadRune(sz)
			break
		}
		if c == 'e' || c == 'E' {
			// scientific notation char can be followed by
			// an exponent sign
			allowExpSign = true
		}
	}
}

func (l *Lexer) readNumberToken() Token {
	l.readNumber()
	tok := l.newToken()
	text := l.input.getMark()

	digits := text
	negative := false
	if digits[0] == '-' || digits[0] == '+' {
		negative = digits[0] == '-'
		digits = digits[1:]
	}

	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		val, err := parseHexInt(digits[2:], negative)
		if err != nil {
			l.tokenError(tok, numError(err, "hexadecimal integer", text))
			return Token{Kind: TokenUnrecognized, Index: tok, Value: text}
		}
		return Token{Kind: TokenNumber, Index: tok, Value: val}
	}

	if strings.ContainsAny(digits, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			l.tokenError(tok, numError(err, "float", text))
			return Token{Kind: TokenUnrecognized, Index: tok, Value: text}
		}
		return Token{Kind: TokenNumber, Index: tok, Value: f}
	}

	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			// too big for an int64; fall back to a float
			f, ferr := strconv.ParseFloat(text, 64)
			if ferr == nil {
				info := l.info.TokenInfo(tok)
				l.handler.HandleWarning(reporter.ErrorSpan(info.Start(), info.End(), ErrIntOverflow))
				return Token{Kind: TokenNumber, Index: tok, Value: f}
			}
			err = ferr
		}
		l.tokenError(tok, numError(err, "integer", text))
		return Token{Kind: TokenUnrecognized, Index: tok, Value: text}
	}
	return Token{Kind: TokenNumber, Index: tok, Value: i}
}

// parseHexInt interprets hex digits as an int64, applying the sign
// that preceded the "0x" prefix. The magnitude of the most negative
// int64 is one larger than that of the most positive, so the bound
// depends on the sign.
func parseHexInt(digits string, negative bool) (int64, error) {
	u, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return 0, err
	}
	if negative {
		if u > 1<<63 {
			return 0, &strconv.NumError{Func: "ParseInt", Num: digits, Err: strconv.ErrRange}
		}
		if u == 1<<63 {
			return math.MinInt64, nil
		}
		return -int64(u), nil
	}
	if u > math.MaxInt64 {
		return 0, &strconv.NumError{Func: "ParseInt", Num: digits, Err: strconv.ErrRange}
	}
	return int64(u), nil
}

func (l *Lexer) readUnrecognizedToken() Token {
	l.readUnrecognized()
	tok := l.newToken()
	text := l.input.getMark()
	info := l.info.TokenInfo(tok)
	if utf8.RuneCountInString(text) == 1 {
		_ = l.handler.HandleError(reporter.ErrorSpanf(info.Start(), info.End(), "unexpected character %q", text))
	} else {
		_ = l.handler.HandleError(reporter.ErrorSpanf(info.Start(), info.End(), "unexpected characters %q", text))
	}
	return Token{Kind: TokenUnrecognized, Index: tok, Value: text}
}

// readUnrecognized consumes the remainder of an unclassifiable run: everything
// up to the next rune that could begin a token in the current state.
func (l *Lexer) readUnrecognized() {
	for {
		c, sz, err := l.input.readRune()
		if err != nil {
			return
		}
		if c == '\n' || c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v' ||
			c == '#' || c == '=' ||
			c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			(c >= '0' && c <= '9') ||
			(l.state == stateValue && (c == '-' || c == '+' || c == '.')) {
			l.input.unreadRune(sz)
			return
		}
	}
}

func numError(err error, kind, s string) error {
	ne, ok := err.(*strconv.NumError)
	if !ok {
		return err
	}
	if ne.Err == strconv.ErrRange {
		return fmt.Errorf("value out of range for %s: %s", kind, s)
	}
	// syntax error
	return fmt.Errorf("invalid syntax in %s value: %s", kind, s)
}

func (l *Lexer) tokenError(tok ast.Token, err error) {
	info := l.info.TokenInfo(tok)
	_ = l.handler.HandleError(reporter.ErrorSpan(info.Start(), info.End(), err))
}

func (l *Lexer) addSourceError(err error) reporter.ErrorWithPos {
	ewp, ok := err.(reporter.ErrorWithPos)
	if !ok {
		ewp = reporter.Error(l.info.SourcePos(l.prevOffset), err)
	}
	_ = l.handler.HandleError(ewp)
	return ewp
}
