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
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/primlang/primcompile/format"
	"github.com/primlang/primcompile/internal/ctxlog"
)

var (
	fmtWrite bool
	fmtList  bool
	fmtDiff  bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [file ...]",
	Short: "Reformat Prim files in canonical style",
	Long: `Fmt reformats Prim files: one property per line as "name = value",
single spaces around "=", comments and blank lines kept, trailing
whitespace removed. Lines the parser could not understand are left as
they were, so running fmt on a file with errors never destroys
anything.

By default the formatted source is written to standard output. With -w
the files are rewritten in place; with -l only the names of files whose
formatting would change are listed; with -d a unified diff is shown.`,
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "rewrite files in place instead of printing them")
	fmtCmd.Flags().BoolVarP(&fmtList, "list", "l", false, "list files whose formatting would change")
	fmtCmd.Flags().BoolVarP(&fmtDiff, "diff", "d", false, "print a unified diff instead of the formatted source")
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	files, err := resolveFiles(args)
	if err != nil {
		return err
	}
	logger := ctxlog.FromContext(cmd.Context())
	stdout := cmd.OutOrStdout()

	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		formatted, err := format.Source(src)
		if err != nil {
			return fmt.Errorf("formatting %s: %w", path, err)
		}
		changed := !bytes.Equal(src, formatted)

		if fmtList && changed {
			fmt.Fprintln(stdout, path)
		}
		if fmtDiff && changed {
			diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
				A:        difflib.SplitLines(string(src)),
				B:        difflib.SplitLines(string(formatted)),
				FromFile: path + ".orig",
				ToFile:   path,
				Context:  3,
			})
			if err != nil {
				return err
			}
			if _, err := io.WriteString(stdout, diff); err != nil {
				return err
			}
		}
		if fmtWrite && changed {
			perm := os.FileMode(0o644)
			if info, err := os.Stat(path); err == nil {
				perm = info.Mode().Perm()
			}
			if err := os.WriteFile(path, formatted, perm); err != nil {
				return err
			}
			logger.Debug("rewrote", "path", path)
		}
		if !fmtWrite && !fmtList && !fmtDiff {
			if _, err := stdout.Write(formatted); err != nil {
				return err
			}
		}
	}
	return nil
}
