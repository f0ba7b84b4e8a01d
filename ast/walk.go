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

// Walk traverses the AST rooted at the given node, depth first. The
// enter function is called for each node before its children are
// visited; the exit function, if not nil, is called after. If either
// function returns an error, the walk aborts and that error is
// returned.
func Walk(root Node, enter func(Node) error, exit func(Node) error) error {
	if err := enter(root); err != nil {
		return err
	}
	if comp, ok := root.(CompositeNode); ok {
		for _, child := range comp.Children() {
			if err := Walk(child, enter, exit); err != nil {
				return err
			}
		}
	}
	if exit != nil {
		return exit(root)
	}
	return nil
}

// Inspect traverses the AST rooted at the given node, depth first. The
// given function is called for each node; if it returns false, the
// node's children are not visited.
func Inspect(root Node, fn func(Node) bool) {
	if !fn(root) {
		return
	}
	if comp, ok := root.(CompositeNode); ok {
		for _, child := range comp.Children() {
			Inspect(child, fn)
		}
	}
}
