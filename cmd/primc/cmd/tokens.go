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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/primlang/primcompile/parser"
	"github.com/primlang/primcompile/reporter"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the token stream of a Prim file",
	Long: `Tokens prints every token the lexer produces for the given file, one
per line, with its position, kind, raw text, and interpreted value.
With "-" or no argument the file is read from standard input.

The stream includes the tokens most tools never surface: line breaks,
comments, and runs of unrecognized text. It is a debugging aid for
anyone changing the lexer or wondering how a file is read.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

// readInput reads the single optional file argument, with "-" or no
// argument meaning standard input.
func readInput(cmd *cobra.Command, args []string) (name string, src []byte, err error) {
	if len(args) == 0 || args[0] == "-" {
		src, err = io.ReadAll(cmd.InOrStdin())
		return "<stdin>", src, err
	}
	src, err = os.ReadFile(args[0])
	return args[0], src, err
}

func runTokens(cmd *cobra.Command, args []string) error {
	name, src, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	errs := 0
	ren := reporter.NewRenderer(reporter.StyleSimple)
	stderr := cmd.ErrOrStderr()
	handler := reporter.NewHandler(reporter.NewReporter(
		func(errWithPos reporter.ErrorWithPos) error {
			errs++
			_ = ren.Render(stderr, reporter.SeverityError, errWithPos, src)
			return nil
		},
		func(errWithPos reporter.ErrorWithPos) {
			_ = ren.Render(stderr, reporter.SeverityWarning, errWithPos, src)
		},
	))

	lexer, err := parser.NewLexer(name, bytes.NewReader(src), handler)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	info := lexer.FileInfo()
	for {
		token := lexer.Next()
		tokenInfo := info.TokenInfo(token.Index)
		start := tokenInfo.Start()
		fmt.Fprintf(w, "%d:%d\t%s\t%q", start.Line, start.Col, token.Kind, tokenInfo.RawText())
		switch v := token.Value.(type) {
		case nil:
			// Line breaks and the end of file carry no value.
		case rune:
			fmt.Fprintf(w, "\t%c", v)
		case string:
			// The raw text already shows the value.
		default:
			fmt.Fprintf(w, "\t%v", v)
		}
		fmt.Fprintln(w)
		if token.Kind == parser.TokenEOF {
			break
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if errs > 0 {
		return errDiagnostics
	}
	return nil
}
