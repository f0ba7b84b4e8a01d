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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primlang/primcompile/ast"
)

func TestNewSyntheticProperty(t *testing.T) {
	t.Parallel()

	prop, file, err := ast.NewSyntheticProperty("answer", int64(42))
	require.NoError(t, err)
	require.NotNil(t, prop)
	require.NotNil(t, file)

	assert.True(t, prop.IsComplete())
	assert.Equal(t, "answer", prop.Name.Val)
	assert.Equal(t, int64(42), prop.GetValue().Value())
	assert.Equal(t, "<synthetic>", file.Name())

	// The fabricated nodes have working positions and print support.
	info := file.NodeInfo(prop)
	assert.Equal(t, 1, info.Start().Line)
	assert.Equal(t, 1, info.Start().Col)
	assert.Equal(t, "answer = 42", info.RawText())

	var buf bytes.Buffer
	require.NoError(t, ast.Print(&buf, file))
	assert.Equal(t, "answer = 42", buf.String())
}

func TestNewSyntheticPropertyFloat(t *testing.T) {
	t.Parallel()

	prop, file, err := ast.NewSyntheticProperty("ratio", float64(3.5))
	require.NoError(t, err)
	assert.Equal(t, float64(3.5), prop.GetValue().Value())

	var buf bytes.Buffer
	require.NoError(t, ast.Print(&buf, file))
	assert.Equal(t, "ratio = 3.5", buf.String())
}

func TestNewSyntheticPropertyRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, _, err := ast.NewSyntheticProperty("9lives", int64(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid property name")

	_, _, err = ast.NewSyntheticProperty("x", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be int64 or float64")
}

func TestIsValidIdentifier(t *testing.T) {
	t.Parallel()

	valid := []string{"a", "_", "_x9", "snake_case", "CamelCase", "a1b2"}
	for _, s := range valid {
		assert.True(t, ast.IsValidIdentifier(s), "%q", s)
	}

	invalid := []string{"", "9a", "a-b", "a b", "héllo", "a.b", "="}
	for _, s := range invalid {
		assert.False(t, ast.IsValidIdentifier(s), "%q", s)
	}
}
