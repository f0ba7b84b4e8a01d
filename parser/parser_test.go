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
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primlang/primcompile/ast"
	"github.com/primlang/primcompile/reporter"
)

func TestEmptyParse(t *testing.T) {
	t.Parallel()
	handler := reporter.NewHandler(nil)
	root, err := Parse("empty.prim", bytes.NewReader(nil), handler)
	require.NoError(t, err)
	require.NotNil(t, root)
	assert.Equal(t, "empty.prim", root.Name())
	assert.Empty(t, root.Items)
	assert.NotNil(t, root.EOF)
}

func TestSimpleParse(t *testing.T) {
	t.Parallel()
	handler := reporter.NewHandler(nil)
	input := "# Service limits.\n" +
		"# Tuned by hand.\n" +
		"max_conns = 512\n" +
		"timeout = 2.5\n" +
		"\n" +
		"# standalone comment\n" +
		"\n" +
		"retries = 3\n"
	root, err := Parse("limits.prim", strings.NewReader(input), handler)
	require.NoError(t, err)

	assert.Equal(t, []ast.ItemKind{
		ast.ItemKindComment, ast.ItemKindNewline,
		ast.ItemKindComment, ast.ItemKindNewline,
		ast.ItemKindProperty, ast.ItemKindNewline,
		ast.ItemKindProperty, ast.ItemKindNewline,
		ast.ItemKindNewline,
		ast.ItemKindComment, ast.ItemKindNewline,
		ast.ItemKindNewline,
		ast.ItemKindProperty, ast.ItemKindNewline,
	}, itemKinds(root))

	props := root.Properties()
	require.Len(t, props, 3)
	assert.Equal(t, "max_conns", props[0].Name.Val)
	assert.Equal(t, int64(512), props[0].Value.Value())
	assert.Equal(t, "timeout", props[1].Name.Val)
	assert.Equal(t, float64(2.5), props[1].Value.Value())
	assert.Equal(t, "retries", props[2].Name.Val)
	assert.Equal(t, int64(3), props[2].Value.Value())
	for _, prop := range props {
		assert.True(t, prop.IsComplete())
	}
}

func TestParseRecovery(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		input   string
		items   []ast.ItemKind
		errMsgs []string
	}{
		{
			name:  "missing value",
			input: "a = \nb = 2\n",
			items: []ast.ItemKind{
				ast.ItemKindProperty, ast.ItemKindNewline,
				ast.ItemKindProperty, ast.ItemKindNewline,
			},
			errMsgs: []string{`property "a" is missing a value`},
		},
		{
			name:  "missing equals",
			input: "a 5\n",
			items: []ast.ItemKind{ast.ItemKindProperty, ast.ItemKindNewline},
			errMsgs: []string{
				`missing "=" between property name and value`,
			},
		},
		{
			name:  "name alone",
			input: "a\n",
			items: []ast.ItemKind{ast.ItemKindProperty, ast.ItemKindNewline},
			errMsgs: []string{
				`expected "=" after property name, got line break`,
			},
		},
		{
			name:  "malformed value",
			input: "a = 12x\n",
			items: []ast.ItemKind{
				ast.ItemKindProperty, ast.ItemKindInvalid, ast.ItemKindNewline,
			},
			errMsgs: []string{`invalid syntax in integer value: 12x`},
		},
		{
			name:    "equals at line start",
			input:   "= 1\n",
			items:   []ast.ItemKind{ast.ItemKindInvalid, ast.ItemKindNewline},
			errMsgs: []string{`syntax error: unexpected "="`},
		},
		{
			name:    "number at line start",
			input:   "5 = 3\n",
			items:   []ast.ItemKind{ast.ItemKindInvalid, ast.ItemKindNewline},
			errMsgs: []string{"syntax error: unexpected number"},
		},
		{
			name:  "double equals",
			input: "a = = 5\n",
			items: []ast.ItemKind{
				ast.ItemKindProperty, ast.ItemKindInvalid, ast.ItemKindNewline,
			},
			errMsgs: []string{
				`expected a number after "=", got "="`,
				`syntax error: unexpected "="`,
			},
		},
		{
			name:  "identifier as value",
			input: "a = b\n",
			items: []ast.ItemKind{
				ast.ItemKindProperty, ast.ItemKindProperty, ast.ItemKindNewline,
			},
			errMsgs: []string{
				`expected a number after "=", got identifier`,
				`expected "=" after property name, got line break`,
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var errs []reporter.ErrorWithPos
			handler := reporter.NewHandler(reporter.NewReporter(
				func(err reporter.ErrorWithPos) error {
					errs = append(errs, err)
					return nil
				}, nil))
			root, err := Parse("test.prim", strings.NewReader(tc.input), handler)
			require.NotNil(t, root)
			assert.True(t, errors.Is(err, reporter.ErrInvalidSource))

			assert.Equal(t, tc.items, itemKinds(root))
			require.Len(t, errs, len(tc.errMsgs))
			for i, want := range tc.errMsgs {
				assert.Contains(t, errs[i].Error(), want, "error %d", i)
			}
		})
	}
}

func TestParseRecoveredPropertyParts(t *testing.T) {
	t.Parallel()

	// value present, "=" missing: the value is still captured
	handler := reporter.NewHandler(reporter.NewReporter(
		func(reporter.ErrorWithPos) error { return nil }, nil))
	root, err := Parse("test.prim", strings.NewReader("a 5\n"), handler)
	assert.True(t, errors.Is(err, reporter.ErrInvalidSource))
	props := root.Properties()
	require.Len(t, props, 1)
	assert.Nil(t, props[0].Equals)
	require.NotNil(t, props[0].Value)
	assert.Equal(t, int64(5), props[0].Value.Value())
	assert.False(t, props[0].IsComplete())

	// "=" present, value missing
	handler = reporter.NewHandler(reporter.NewReporter(
		func(reporter.ErrorWithPos) error { return nil }, nil))
	root, err = Parse("test.prim", strings.NewReader("a = \n"), handler)
	assert.True(t, errors.Is(err, reporter.ErrInvalidSource))
	props = root.Properties()
	require.Len(t, props, 1)
	assert.NotNil(t, props[0].Equals)
	assert.Nil(t, props[0].Value)
	assert.False(t, props[0].IsComplete())
}

func TestParseAbortsOnFirstError(t *testing.T) {
	t.Parallel()
	handler := reporter.NewHandler(nil)
	root, err := Parse("test.prim", strings.NewReader("$$$\na = 1\n"), handler)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unexpected characters "$$$"`)
	// the tree covers only what was parsed before the abort
	require.NotNil(t, root)
	assert.Equal(t, []ast.ItemKind{ast.ItemKindInvalid}, itemKinds(root))
}

func TestJunkParse(t *testing.T) {
	t.Parallel()
	// inputs that must produce errors, never panics
	inputs := map[string]string{
		"dot":            ".",
		"equals":         "=",
		"signs":          "a = +-+",
		"dots":           "a = ..",
		"bare name":      "_\n",
		"truncated utf8": "a = \xF0\x90",
		"nul bytes":      "\x00\x00\x00",
		"deep garbage":   "= = = # x\n5 5 5\n@@@\n",
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			handler := reporter.NewHandler(reporter.NewReporter(
				func(reporter.ErrorWithPos) error { return nil }, nil))
			root, err := Parse("junk.prim", strings.NewReader(input), handler)
			assert.Error(t, err)
			assert.NotNil(t, root)
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("read failed")
}

func TestParseReaderError(t *testing.T) {
	t.Parallel()
	handler := reporter.NewHandler(nil)
	root, err := Parse("test.prim", failingReader{}, handler)
	assert.Nil(t, root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read failed")
}

func itemKinds(root *ast.FileNode) []ast.ItemKind {
	kinds := make([]ast.ItemKind, len(root.Items))
	for i, item := range root.Items {
		kinds[i] = ast.ItemKindOf(item)
	}
	return kinds
}
