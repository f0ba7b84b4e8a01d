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
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/primlang/primcompile/document"
)

var (
	exportMerge bool
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export [file ...]",
	Short: "Export compiled Prim files as JSON",
	Long: `Export compiles the given files and writes their properties as JSON.
The output is an object keyed by file path, each value holding that
file's properties. With --merge the documents are combined into a
single flat object instead; when several files define the same
property, the file compiled last wins, matching how a stack of
configuration files is layered at runtime.

Files with errors are reported and nothing is exported.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportMerge, "merge", false, "merge all files into one object, later files win")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write to this file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	files, err := resolveFiles(args)
	if err != nil {
		return err
	}
	docs, errs, _, err := compileFiles(cmd.Context(), cmd, files, diagnosticStyle(false))
	if err != nil {
		return err
	}
	if errs > 0 {
		return errDiagnostics
	}

	var payload any
	if exportMerge {
		set := new(document.Set)
		for _, doc := range docs {
			set.Add(doc)
		}
		payload = set
	} else {
		byPath := make(map[string]json.RawMessage, len(docs))
		for _, doc := range docs {
			raw, err := json.Marshal(doc)
			if err != nil {
				return err
			}
			byPath[doc.Path] = raw
		}
		payload = byPath
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if exportOut == "" || exportOut == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(exportOut, data, 0o644)
}
