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
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/primlang/primcompile/ast"
	"github.com/primlang/primcompile/parser"
	"github.com/primlang/primcompile/reporter"
)

var treeCmd = &cobra.Command{
	Use:   "tree [file]",
	Short: "Print the syntax tree of a Prim file",
	Long: `Tree parses the given file and prints its syntax tree, one node per
line, indented by depth and annotated with positions. Everything the
parser kept is shown, including comments, line breaks, and invalid
items, so the output is a complete picture of how the file was read.
With "-" or no argument the file is read from standard input.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
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
		nil,
	))

	root, err := parser.Parse(name, bytes.NewReader(src), handler)
	if err != nil && !errors.Is(err, reporter.ErrInvalidSource) {
		return err
	}
	if err := printTree(cmd.OutOrStdout(), root); err != nil {
		return err
	}
	if errs > 0 {
		return errDiagnostics
	}
	return nil
}

func printTree(w io.Writer, file *ast.FileNode) error {
	depth := 0
	return ast.Walk(file,
		func(n ast.Node) error {
			_, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), describeNode(file, n))
			depth++
			return err
		},
		func(ast.Node) error {
			depth--
			return nil
		})
}

// describeNode renders one node as a line of the printed tree.
func describeNode(file *ast.FileNode, n ast.Node) string {
	var desc string
	switch n := n.(type) {
	case *ast.FileNode:
		return fmt.Sprintf("file %s", n.Name())
	case *ast.PropertyNode:
		desc = "property"
		if !n.IsComplete() {
			desc = "property (incomplete)"
		}
	case *ast.IdentNode:
		desc = fmt.Sprintf("identifier %s", n.Val)
	case *ast.RuneNode:
		if n == file.EOF {
			desc = "eof"
		} else {
			desc = fmt.Sprintf("punctuation %q", n.Rune)
		}
	case *ast.IntLiteralNode:
		desc = fmt.Sprintf("int %d", n.Val)
	case *ast.FloatLiteralNode:
		desc = fmt.Sprintf("float %v", n.Val)
	case *ast.UnrecognizedNode:
		desc = fmt.Sprintf("unrecognized %q", n.Val)
	case *ast.CommentNode:
		desc = fmt.Sprintf("comment %q", n.Text)
	case *ast.NewlineNode:
		desc = "newline"
	case *ast.InvalidNode:
		desc = "invalid"
	default:
		desc = fmt.Sprintf("%T", n)
	}
	start := file.NodeInfo(n).Start()
	return fmt.Sprintf("%s [%d:%d]", desc, start.Line, start.Col)
}
