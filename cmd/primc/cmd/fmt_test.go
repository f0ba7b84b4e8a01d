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

package cmd

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFmtPrintsFormatted(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, "a.prim", "  a   =  1\t\n# note\n")

	stdout, stderr, err := runCommand(t, "fmt", "a.prim")
	require.NoError(t, err)
	assert.Equal(t, "a = 1\n# note\n", stdout)
	assert.Empty(t, stderr)
}

func TestFmtWriteRewritesInPlace(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "a.prim", "a=1\n")

	stdout, _, err := runCommand(t, "fmt", "-w", "a.prim")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a = 1\n", string(got))

	// A second run has nothing left to change.
	stdout, _, err = runCommand(t, "fmt", "-l", "a.prim")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestFmtListsChangedFiles(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, "clean.prim", "a = 1\n")
	writeFile(t, dir, "messy.prim", "b=2\n")

	stdout, _, err := runCommand(t, "fmt", "-l")
	require.NoError(t, err)
	assert.Equal(t, "messy.prim\n", stdout)
}

func TestFmtDiff(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, "a.prim", "a   =   1\n")

	stdout, _, err := runCommand(t, "fmt", "-d", "a.prim")
	require.NoError(t, err)
	assert.Contains(t, stdout, "--- a.prim.orig")
	assert.Contains(t, stdout, "+++ a.prim")
	assert.Contains(t, stdout, "-a   =   1")
	assert.Contains(t, stdout, "+a = 1")

	// The source file is untouched.
	got, err := os.ReadFile("a.prim")
	require.NoError(t, err)
	assert.Equal(t, "a   =   1\n", string(got))
}

func TestFmtKeepsBrokenLines(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "broken.prim", "a = 12x\nb   =   2\n")

	_, _, err := runCommand(t, "fmt", "-w", "broken.prim")
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a = 12x\nb = 2\n", string(got))
}
