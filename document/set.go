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

package document

import "github.com/tidwall/btree"

// Set is a merged view over multiple documents. Documents cascade:
// when the same name appears in more than one added document, the
// entry from the document added last wins, and the set records what it
// shadowed. Names iterate in sorted order.
//
// The zero value is an empty set, ready to use. A Set is not safe for
// concurrent mutation.
type Set struct {
	tree btree.Map[string, *Resolution]
}

// Resolution records how a name resolved across the documents added to
// a set.
type Resolution struct {
	// Entry is the winning entry for the name.
	Entry *Entry
	// Path is the path of the document that provided Entry.
	Path string
	// Shadowed holds the entries this name had before later documents
	// overrode them, in the order they were added.
	Shadowed []Shadowed
}

// Shadowed is an entry that lost to a later document.
type Shadowed struct {
	Entry *Entry
	Path  string
}

// Add merges the given document into the set. Entries whose names are
// already present override the current winners and push them onto the
// shadowed lists.
func (s *Set) Add(doc *Document) {
	for _, e := range doc.Entries {
		res := &Resolution{Entry: e, Path: doc.Path}
		if prev, ok := s.tree.Get(e.Name); ok {
			res.Shadowed = append(prev.Shadowed, Shadowed{Entry: prev.Entry, Path: prev.Path})
		}
		s.tree.Set(e.Name, res)
	}
}

// Lookup returns the winning entry for the given name, or nil if no
// added document defines it.
func (s *Set) Lookup(name string) *Entry {
	if res, ok := s.tree.Get(name); ok {
		return res.Entry
	}
	return nil
}

// Resolve returns the full resolution for the given name, including
// provenance, or nil if no added document defines it.
func (s *Set) Resolve(name string) *Resolution {
	if res, ok := s.tree.Get(name); ok {
		return res
	}
	return nil
}

// Names returns the set's names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, s.tree.Len())
	s.tree.Scan(func(name string, _ *Resolution) bool {
		names = append(names, name)
		return true
	})
	return names
}

// Len returns the number of distinct names in the set.
func (s *Set) Len() int {
	return s.tree.Len()
}

// Scan calls fn for each name in sorted order until fn returns false.
func (s *Set) Scan(fn func(name string, res *Resolution) bool) {
	s.tree.Scan(fn)
}
