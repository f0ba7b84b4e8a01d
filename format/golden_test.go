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

package format

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/primlang/primcompile/internal/corpora"
	"github.com/primlang/primcompile/parser"
	"github.com/primlang/primcompile/reporter"
)

// To regenerate the golden files, run with PRIMCOMPILE_REFRESH=**.
func TestGoldens(t *testing.T) {
	corpus := corpora.Corpus{
		Root:      filepath.Join("..", "parser", "testdata"),
		Refresh:   "PRIMCOMPILE_REFRESH",
		Extension: "prim",
		Outputs: []corpora.Output{
			{Extension: "fmt"},
			{Extension: "errors"},
		},
		Test: func(t *testing.T, path, text string) []string {
			var diags []string
			rep := reporter.NewReporter(
				func(err reporter.ErrorWithPos) error {
					diags = append(diags, err.Error())
					return nil
				},
				func(err reporter.ErrorWithPos) {
					diags = append(diags, "warning: "+err.Error())
				},
			)
			handler := reporter.NewHandler(rep)

			root, err := parser.Parse(filepath.Base(path), strings.NewReader(text), handler)
			if err != nil {
				require.ErrorIs(t, err, reporter.ErrInvalidSource)
			}
			_, err = parser.ResultFromAST(root, true, handler)
			if err != nil {
				require.ErrorIs(t, err, reporter.ErrInvalidSource)
			}

			var buf bytes.Buffer
			require.NoError(t, File(&buf, root))

			var errOut string
			if len(diags) > 0 {
				errOut = strings.Join(diags, "\n") + "\n"
			}
			return []string{buf.String(), errOut}
		},
	}
	corpus.Run(t)
}
