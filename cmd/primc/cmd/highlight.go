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
	"github.com/spf13/cobra"

	"github.com/primlang/primcompile/highlight"
)

var (
	highlightStyle     string
	highlightFormatter string
)

var highlightCmd = &cobra.Command{
	Use:   "highlight [file]",
	Short: "Print a syntax-highlighted rendering of a Prim file",
	Long: `Highlight tokenizes the given file with the compiler's own lexer and
renders it through a Chroma formatter, to the terminal by default.
Because the real lexer does the tokenizing, the colors always agree
with how the compiler reads the file, and text the compiler would
reject is rendered as an error. With "-" or no argument the file is
read from standard input.

The --formatter and --style flags accept any formatter and style
Chroma ships, such as "html" or "svg" formatters and styles like
"monokai" or "github".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHighlight,
}

func init() {
	highlightCmd.Flags().StringVar(&highlightFormatter, "formatter", "", `output formatter (default "terminal256", or "noop" without color)`)
	highlightCmd.Flags().StringVar(&highlightStyle, "style", "monokai", "color style")
	rootCmd.AddCommand(highlightCmd)
}

func runHighlight(cmd *cobra.Command, args []string) error {
	_, src, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	formatter := highlightFormatter
	if formatter == "" {
		formatter = "terminal256"
		if !useColor {
			formatter = "noop"
		}
	}
	return highlight.Write(cmd.OutOrStdout(), string(src), formatter, highlightStyle)
}
