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

package parser

import (
	"math"

	"github.com/primlang/primcompile/document"
	"github.com/primlang/primcompile/reporter"
)

// validateResult checks the built document for semantic problems. A
// name defined more than once keeps its first entry; each later one is
// reported and dropped. Values are also checked for finiteness, which
// can only fail for trees assembled by hand, since the lexer rejects
// literals that overflow a float64.
func validateResult(r *result, handler *reporter.Handler) error {
	seen := make(map[string]*document.Entry, len(r.doc.Entries))
	kept := r.doc.Entries[:0]
	for _, e := range r.doc.Entries {
		if first, ok := seen[e.Name]; ok {
			if err := handler.HandleErrorSpanf(e.NameSpan.Start, e.NameSpan.End,
				"property %q already defined at %v", e.Name, first.NameSpan.Start); err != nil {
				return err
			}
			continue
		}
		seen[e.Name] = e
		kept = append(kept, e)

		if f, ok := e.Value.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
			if err := handler.HandleErrorSpanf(e.ValueSpan.Start, e.ValueSpan.End,
				"property %q value is not a finite number", e.Name); err != nil {
				return err
			}
		}
	}
	r.doc.Entries = kept
	return nil
}
