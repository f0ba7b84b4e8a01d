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

package ast

import "io"

// Print writes the file that the given AST represents to w. Since the
// tree preserves every token, including comments, line breaks, and
// invalid runs, along with the whitespace between them, the output is
// byte-for-byte identical to the original source, even for files that
// contained errors.
func Print(w io.Writer, file *FileNode) error {
	var err error
	Inspect(file, func(n Node) bool {
		if err != nil {
			return false
		}
		terminal, ok := n.(TerminalNode)
		if !ok {
			return true
		}
		info := file.NodeInfo(terminal)
		if _, err = io.WriteString(w, info.LeadingWhitespace()); err != nil {
			return false
		}
		_, err = io.WriteString(w, info.RawText())
		return false
	})
	return err
}
