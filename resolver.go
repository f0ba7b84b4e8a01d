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

package primcompile

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/primlang/primcompile/ast"
	"github.com/primlang/primcompile/document"
)

// ErrNotFound is returned by resolvers when a queried path does not
// correspond to any known file.
var ErrNotFound = errors.New("file not found")

// Resolver resolves path names into source code or intermediate
// representations of Prim files. This is how the compiler loads the
// files to be compiled.
type Resolver interface {
	FindFileByPath(path string) (SearchResult, error)
}

// SearchResult is how a resolver answers a query for a path. Only one
// of the fields needs to be set, based on what the resolver is able to
// find or produce. If multiple are set, the compiler prefers them in
// the opposite order listed: it uses a document if present and only
// falls back to source if nothing else is available.
type SearchResult struct {
	// Source code, to be parsed and compiled.
	Source io.Reader
	// A parsed syntax tree, skipping the parsing step.
	AST *ast.FileNode
	// A finished document, used as-is.
	Document *document.Document
}

// ResolverFunc adapts a function into a Resolver.
type ResolverFunc func(path string) (SearchResult, error)

var _ Resolver = ResolverFunc(nil)

func (f ResolverFunc) FindFileByPath(path string) (SearchResult, error) {
	return f(path)
}

// CompositeResolver queries each of its resolvers in order and returns
// the first successful result. If all fail, it returns the first error
// it observed.
type CompositeResolver []Resolver

var _ Resolver = CompositeResolver(nil)

func (f CompositeResolver) FindFileByPath(path string) (SearchResult, error) {
	if len(f) == 0 {
		return SearchResult{}, ErrNotFound
	}
	var firstErr error
	for _, res := range f {
		r, err := res.FindFileByPath(path)
		if err == nil {
			return r, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return SearchResult{}, firstErr
}

// SourceResolver can resolve file names by returning source code. It
// uses an optional list of import paths to search. By default, it
// searches the file system.
type SourceResolver struct {
	// Optional list of directories to consider when searching for a
	// queried path. If empty, the path is accessed as given.
	ImportPaths []string
	// Optional function for returning a file's contents. If nil, the
	// file system is used.
	Accessor func(path string) (io.ReadCloser, error)
}

var _ Resolver = (*SourceResolver)(nil)

func (r *SourceResolver) FindFileByPath(path string) (SearchResult, error) {
	if len(r.ImportPaths) == 0 {
		reader, err := r.accessFile(path)
		if err != nil {
			return SearchResult{}, err
		}
		return SearchResult{Source: reader}, nil
	}

	var e error
	for _, importPath := range r.ImportPaths {
		reader, err := r.accessFile(filepath.Join(importPath, path))
		if err != nil {
			if os.IsNotExist(err) {
				e = err
				continue
			}
			return SearchResult{}, err
		}
		return SearchResult{Source: reader}, nil
	}
	return SearchResult{}, e
}

func (r *SourceResolver) accessFile(path string) (io.ReadCloser, error) {
	if r.Accessor != nil {
		return r.Accessor(path)
	}
	return os.Open(path)
}

// SourceAccessorFromMap returns a function that can be used as the
// Accessor field of a SourceResolver, using the given map to load
// source. The map keys are file names and the values are the
// corresponding file contents.
func SourceAccessorFromMap(srcs map[string]string) func(string) (io.ReadCloser, error) {
	return func(path string) (io.ReadCloser, error) {
		src, ok := srcs[path]
		if !ok {
			return nil, os.ErrNotExist
		}
		return io.NopCloser(strings.NewReader(src)), nil
	}
}
