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
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/primlang/primcompile/ast"
	"github.com/primlang/primcompile/document"
	"github.com/primlang/primcompile/parser"
	"github.com/primlang/primcompile/reporter"
)

// Compiler handles compilation tasks, to turn Prim source files, or
// other intermediate representations, into documents.
//
// The compilation process involves three steps for each source file:
//  1. Parsing the source into an AST (abstract syntax tree).
//  2. Converting the AST into a document of named values.
//  3. Validating the document.
//
// With the resulting documents, callers can look up values, merge
// configuration across files, or export to other formats (though those
// steps are not a responsibility of this type).
type Compiler struct {
	// Resolves path/file names into source code or intermediate
	// representations for Prim files. This is how the compiler loads
	// the files to be compiled. This field is the only required field.
	Resolver Resolver
	// The maximum parallelism to use when compiling. If unspecified or
	// set to a non-positive value, then min(runtime.NumCPU(),
	// runtime.GOMAXPROCS(-1)) will be used.
	MaxParallelism int
	// A custom error and warning reporter. If unspecified a default
	// reporter is used. A default reporter fails the compilation after
	// encountering any errors and ignores all warnings.
	Reporter reporter.Reporter
}

// Compile compiles the given file names into documents. The compiler's
// resolver is used to locate source code (or intermediate artifacts
// such as parsed ASTs) and then do what is necessary to transform that
// into documents (parsing, validating, etc).
//
// The returned documents are in the same order as the given file
// names. A file named more than once compiles only once and yields the
// same document at each of its positions.
func (c *Compiler) Compile(ctx context.Context, files ...string) (document.Documents, error) {
	if len(files) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	par := c.MaxParallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(-1)
		cpus := runtime.NumCPU()
		if par > cpus {
			par = cpus
		}
	}

	h := reporter.NewHandler(c.Reporter)

	e := executor{
		c:       c,
		h:       h,
		s:       semaphore.NewWeighted(int64(par)),
		results: map[string]*result{},
	}

	results := make([]*result, len(files))
	for i, f := range files {
		results[i] = e.compile(ctx, f)
	}

	docs := make(document.Documents, len(files))
	for i, r := range results {
		select {
		case <-r.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if r.err != nil {
			return nil, r.err
		}
		docs[i] = r.res
	}

	return docs, nil
}

type result struct {
	ready chan struct{}
	res   *document.Document
	err   error
}

func (r *result) fail(err error) {
	r.err = err
	close(r.ready)
}

func (r *result) complete(doc *document.Document) {
	r.res = doc
	close(r.ready)
}

type executor struct {
	c *Compiler
	h *reporter.Handler
	s *semaphore.Weighted

	mu      sync.Mutex
	results map[string]*result
}

func (e *executor) compile(ctx context.Context, file string) *result {
	e.mu.Lock()
	defer e.mu.Unlock()
	r := e.results[file]
	if r != nil {
		return r
	}

	r = &result{
		ready: make(chan struct{}),
	}
	e.results[file] = r
	go func() {
		e.doCompile(ctx, file, r)
	}()
	return r
}

func (e *executor) doCompile(ctx context.Context, file string, r *result) {
	t := task{e: e}
	if err := e.s.Acquire(ctx, 1); err != nil {
		r.fail(err)
		return
	}
	defer t.release()

	sr, err := e.c.Resolver.FindFileByPath(file)
	if err != nil {
		r.fail(err)
		return
	}

	defer func() {
		// if the result included a source reader, don't leave it open
		// if it can be closed
		if sr.Source == nil {
			return
		}
		if c, ok := sr.Source.(io.Closer); ok {
			_ = c.Close()
		}
	}()

	doc, err := t.asDocument(file, sr)
	if err != nil {
		r.fail(err)
		return
	}
	r.complete(doc)
}

// A compilation task. The executor has a semaphore that limits the
// number of concurrent, running tasks.
type task struct {
	e *executor
	// If true, this task has released its semaphore permit.
	released bool
}

func (t *task) release() {
	if !t.released {
		t.e.s.Release(1)
		t.released = true
	}
}

func (t *task) asDocument(name string, r SearchResult) (*document.Document, error) {
	if r.Document != nil {
		if r.Document.Path != name {
			return nil, fmt.Errorf("search result for %q returned document for %q", name, r.Document.Path)
		}
		return r.Document, nil
	}

	parseRes, err := t.asParseResult(name, r)
	if err != nil {
		return nil, err
	}
	return parseRes.Document(), nil
}

func (t *task) asParseResult(name string, r SearchResult) (parser.Result, error) {
	// A parse that reported errors but was not aborted still yields an
	// AST, and conversion and validation still run so they can report
	// more. Any other error aborts the task.
	file, err := t.asAST(name, r)
	if err != nil && !errors.Is(err, reporter.ErrInvalidSource) {
		return nil, err
	}
	return parser.ResultFromAST(file, true, t.e.h)
}

func (t *task) asAST(name string, r SearchResult) (*ast.FileNode, error) {
	if r.AST != nil {
		if r.AST.Name() != name {
			return nil, fmt.Errorf("search result for %q returned AST for %q", name, r.AST.Name())
		}
		return r.AST, nil
	}

	if r.Source == nil {
		return nil, fmt.Errorf("search result for %q contains no source, AST, or document", name)
	}
	return parser.Parse(name, r.Source, t.e.h)
}
