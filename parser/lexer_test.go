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
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primlang/primcompile/reporter"
)

func TestLexerBasicProperty(t *testing.T) {
	t.Parallel()
	handler := reporter.NewHandler(nil)
	l, err := NewLexer("test.prim", strings.NewReader("a = 2"), handler)
	require.NoError(t, err)

	var kinds []TokenKind
	for {
		tok := l.Next()
		if tok.Kind == TokenEOF {
			break
		}
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokenKind{TokenIdent, TokenEquals, TokenNumber}, kinds)
	assert.NoError(t, handler.Error())
}

func TestLexer(t *testing.T) {
	t.Parallel()
	handler := reporter.NewHandler(nil)
	input := "a = 2\n" +
		"_total_2 = 0x7f\n" +
		"ratio = -0.5\n" +
		"big = 6.022e23\n" +
		"tiny = .25\n" +
		"# comment line\n" +
		"count = +10"
	l, err := NewLexer("test.prim", strings.NewReader(input), handler)
	require.NoError(t, err)

	expected := []struct {
		kind      TokenKind
		line, col int
		text      string
		value     any
	}{
		{kind: TokenIdent, line: 1, col: 1, text: "a", value: "a"},
		{kind: TokenEquals, line: 1, col: 3, text: "=", value: '='},
		{kind: TokenNumber, line: 1, col: 5, text: "2", value: int64(2)},
		{kind: TokenNewline, line: 1, col: 6, text: "\n", value: nil},
		{kind: TokenIdent, line: 2, col: 1, text: "_total_2", value: "_total_2"},
		{kind: TokenEquals, line: 2, col: 10, text: "=", value: '='},
		{kind: TokenNumber, line: 2, col: 12, text: "0x7f", value: int64(127)},
		{kind: TokenNewline, line: 2, col: 16, text: "\n", value: nil},
		{kind: TokenIdent, line: 3, col: 1, text: "ratio", value: "ratio"},
		{kind: TokenEquals, line: 3, col: 7, text: "=", value: '='},
		{kind: TokenNumber, line: 3, col: 9, text: "-0.5", value: float64(-0.5)},
		{kind: TokenNewline, line: 3, col: 13, text: "\n", value: nil},
		{kind: TokenIdent, line: 4, col: 1, text: "big", value: "big"},
		{kind: TokenEquals, line: 4, col: 5, text: "=", value: '='},
		{kind: TokenNumber, line: 4, col: 7, text: "6.022e23", value: float64(6.022e23)},
		{kind: TokenNewline, line: 4, col: 15, text: "\n", value: nil},
		{kind: TokenIdent, line: 5, col: 1, text: "tiny", value: "tiny"},
		{kind: TokenEquals, line: 5, col: 6, text: "=", value: '='},
		{kind: TokenNumber, line: 5, col: 8, text: ".25", value: float64(0.25)},
		{kind: TokenNewline, line: 5, col: 11, text: "\n", value: nil},
		{kind: TokenComment, line: 6, col: 1, text: "# comment line", value: "# comment line"},
		{kind: TokenNewline, line: 6, col: 15, text: "\n", value: nil},
		{kind: TokenIdent, line: 7, col: 1, text: "count", value: "count"},
		{kind: TokenEquals, line: 7, col: 7, text: "=", value: '='},
		{kind: TokenNumber, line: 7, col: 9, text: "+10", value: int64(10)},
	}
	for i, exp := range expected {
		tok := l.Next()
		require.NotEqual(t, TokenEOF, tok.Kind, "case %d: ran out of tokens", i)
		assert.Equal(t, exp.kind, tok.Kind, "case %d", i)
		assert.Equal(t, exp.value, tok.Value, "case %d", i)
		info := l.FileInfo().TokenInfo(tok.Index)
		assert.Equal(t, exp.text, info.RawText(), "case %d", i)
		start := info.Start()
		assert.Equal(t, exp.line, start.Line, "case %d: line", i)
		assert.Equal(t, exp.col, start.Col, "case %d: col", i)
	}

	tok := l.Next()
	assert.Equal(t, TokenEOF, tok.Kind)
	assert.Nil(t, tok.Value)
	// EOF repeats forever
	assert.Equal(t, tok, l.Next())
	assert.NoError(t, handler.Error())
}

func TestLexerSignsOnlyInValues(t *testing.T) {
	t.Parallel()
	var errs []reporter.ErrorWithPos
	handler := reporter.NewHandler(reporter.NewReporter(
		func(err reporter.ErrorWithPos) error {
			errs = append(errs, err)
			return nil
		}, nil))
	l, err := NewLexer("test.prim", strings.NewReader("x = -1\n-"), handler)
	require.NoError(t, err)

	var kinds []TokenKind
	for {
		tok := l.Next()
		if tok.Kind == TokenEOF {
			break
		}
		kinds = append(kinds, tok.Kind)
	}
	// the first "-" is folded into the number; the one at the start of
	// a line is not
	assert.Equal(t, []TokenKind{TokenIdent, TokenEquals, TokenNumber, TokenNewline, TokenUnrecognized}, kinds)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), `unexpected character "-"`)
}

func TestLexerExponentSigns(t *testing.T) {
	t.Parallel()
	handler := reporter.NewHandler(nil)
	l, err := NewLexer("test.prim", strings.NewReader("a = 2e-3\nb = 1.5E+2\nc = 4e4"), handler)
	require.NoError(t, err)

	var values []any
	var texts []string
	for {
		tok := l.Next()
		if tok.Kind == TokenEOF {
			break
		}
		if tok.Kind == TokenNumber {
			values = append(values, tok.Value)
			texts = append(texts, l.FileInfo().TokenInfo(tok.Index).RawText())
		}
	}
	// the sign after the exponent marker is part of the number token
	assert.Equal(t, []string{"2e-3", "1.5E+2", "4e4"}, texts)
	assert.Equal(t, []any{2e-3, 1.5e+2, 4e4}, values)
	assert.NoError(t, handler.Error())
}

func TestLexerComments(t *testing.T) {
	t.Parallel()
	handler := reporter.NewHandler(nil)
	l, err := NewLexer("test.prim", strings.NewReader("# a\n#b"), handler)
	require.NoError(t, err)

	tok := l.Next()
	assert.Equal(t, TokenComment, tok.Kind)
	assert.Equal(t, "# a", tok.Value)
	tok = l.Next()
	assert.Equal(t, TokenNewline, tok.Kind)
	tok = l.Next()
	assert.Equal(t, TokenComment, tok.Kind)
	assert.Equal(t, "#b", tok.Value)
	tok = l.Next()
	assert.Equal(t, TokenEOF, tok.Kind)
	assert.NoError(t, handler.Error())
}

func TestLexerCarriageReturns(t *testing.T) {
	t.Parallel()
	handler := reporter.NewHandler(nil)
	l, err := NewLexer("test.prim", strings.NewReader("a = 1\r\n# hi\r\nb = 2\r\n"), handler)
	require.NoError(t, err)

	var kinds []TokenKind
	var comment string
	for {
		tok := l.Next()
		if tok.Kind == TokenEOF {
			break
		}
		if tok.Kind == TokenComment {
			comment = tok.Value.(string)
		}
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokenKind{
		TokenIdent, TokenEquals, TokenNumber, TokenNewline,
		TokenComment, TokenNewline,
		TokenIdent, TokenEquals, TokenNumber, TokenNewline,
	}, kinds)
	// the carriage return before the line break stays in the comment's text
	assert.Equal(t, "# hi\r", comment)
	assert.NoError(t, handler.Error())
}

func TestLexerByteOrderMark(t *testing.T) {
	t.Parallel()
	handler := reporter.NewHandler(nil)
	l, err := NewLexer("test.prim", strings.NewReader("\xEF\xBB\xBFa = 2"), handler)
	require.NoError(t, err)

	tok := l.Next()
	assert.Equal(t, TokenIdent, tok.Kind)
	pos := l.FileInfo().TokenInfo(tok.Index).Start()
	assert.Equal(t, 1, pos.Line)
	assert.Equal(t, 1, pos.Col)
	assert.NoError(t, handler.Error())
}

func TestLexerIntOverflow(t *testing.T) {
	t.Parallel()
	var warnings []reporter.ErrorWithPos
	handler := reporter.NewHandler(reporter.NewReporter(nil,
		func(err reporter.ErrorWithPos) {
			warnings = append(warnings, err)
		}))
	l, err := NewLexer("test.prim", strings.NewReader("x = 9223372036854775808"), handler)
	require.NoError(t, err)

	l.Next() // x
	l.Next() // =
	tok := l.Next()
	assert.Equal(t, TokenNumber, tok.Kind)
	assert.Equal(t, math.Ldexp(1, 63), tok.Value)

	require.Len(t, warnings, 1)
	assert.ErrorIs(t, warnings[0], ErrIntOverflow)
	span, ok := warnings[0].(reporter.ErrorWithSpan)
	require.True(t, ok)
	assert.Equal(t, 5, span.GetPosition().Col)
	assert.Equal(t, 24, span.GetEndPosition().Col)
	assert.NoError(t, handler.Error())
}

func TestLexerHexBounds(t *testing.T) {
	t.Parallel()
	handler := reporter.NewHandler(nil)
	l, err := NewLexer("test.prim", strings.NewReader("min = -0x8000000000000000\nmax = 0x7fffffffffffffff"), handler)
	require.NoError(t, err)

	var values []any
	for {
		tok := l.Next()
		if tok.Kind == TokenEOF {
			break
		}
		if tok.Kind == TokenNumber {
			values = append(values, tok.Value)
		}
	}
	assert.Equal(t, []any{int64(math.MinInt64), int64(math.MaxInt64)}, values)
	assert.NoError(t, handler.Error())
}

func TestLexerErrors(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		str    string
		errMsg string
	}{
		{str: "x = 1.2.3", errMsg: "invalid syntax in float value: 1.2.3"},
		{str: "x = 1.8e309", errMsg: "value out of range for float: 1.8e309"},
		{str: "x = 12abc", errMsg: "invalid syntax in integer value: 12abc"},
		{str: "x = 1_000", errMsg: "invalid syntax in integer value: 1_000"},
		{str: "x = 0x", errMsg: "invalid syntax in hexadecimal integer value: 0x"},
		{str: "x = 0x10z", errMsg: "invalid syntax in hexadecimal integer value: 0x10z"},
		{str: "x = 0xffffffffffffffffff", errMsg: "value out of range for hexadecimal integer: 0xffffffffffffffffff"},
		{str: "x = -0x8000000000000001", errMsg: "value out of range for hexadecimal integer: -0x8000000000000001"},
		{str: "$", errMsg: `unexpected character "$"`},
		{str: "x = @!", errMsg: `unexpected characters "@!"`},
		{str: "x = \xF0\x90", errMsg: "invalid UTF-8 at offset 4"},
	}
	for i, tc := range testCases {
		handler := reporter.NewHandler(nil)
		l, err := NewLexer("test.prim", strings.NewReader(tc.str), handler)
		require.NoError(t, err, "case %d", i)
		for {
			if tok := l.Next(); tok.Kind == TokenEOF {
				break
			}
		}
		err = handler.Error()
		if assert.Error(t, err, "case %d", i) {
			assert.Contains(t, err.Error(), tc.errMsg, "case %d", i)
		}
	}
}

func TestLexerStopsAfterAbort(t *testing.T) {
	t.Parallel()
	handler := reporter.NewHandler(nil)
	l, err := NewLexer("test.prim", strings.NewReader("$ $ $\na = 1"), handler)
	require.NoError(t, err)

	tok := l.Next()
	assert.Equal(t, TokenUnrecognized, tok.Kind)
	tok = l.Next()
	assert.Equal(t, TokenEOF, tok.Kind)
	assert.Error(t, handler.Error())
}

func TestTokenKindString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "end of file", TokenEOF.String())
	assert.Equal(t, "identifier", TokenIdent.String())
	assert.Equal(t, `"="`, TokenEquals.String())
	assert.Equal(t, "number", TokenNumber.String())
	assert.Equal(t, "comment", TokenComment.String())
	assert.Equal(t, "line break", TokenNewline.String())
	assert.Equal(t, "unrecognized text", TokenUnrecognized.String())
	assert.Equal(t, "kind(42)", TokenKind(42).String())
}
