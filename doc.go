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

// Package primcompile provides the entry point for a native Go Prim
// compiler. "Compile" in this case means parsing and validating source
// and producing resolved documents in the end. A document holds the
// named numeric values a Prim file defines, along with the doc
// comments and source positions that belong to them.
//
// The various sub-packages represent the compile phases and contain
// models for the intermediate results. Those phases follow:
//  1. Parse into AST.
//     Also see: parser.Parse
//  2. Convert AST to documents.
//     Also see: parser.ResultFromAST
//
// The ast package models the source down to each token and comment, so
// files can be reproduced exactly; the format and highlight packages
// build on that for canonical formatting and syntax highlighting. The
// document package models the compiled results, including merged views
// over many files.
//
// This package provides an easy-to-use interface that runs the phases
// relevant to the inputs given. It is also capable of taking advantage
// of multiple CPU cores, so a compilation involving thousands of files
// can be done very quickly by compiling things in parallel.
//
// # Resolvers
//
// A Resolver is how the compiler locates the inputs to a compilation.
// A Resolver can provide any of the following in response to a query
// for a path:
//   - Source code: the compiler will parse and compile it.
//   - AST: the parsing step can be skipped, and the remaining steps
//     are applied to the given syntax tree.
//   - Document: nothing further needs to be done. The document is
//     used as-is.
//
// # Compiler
//
// A Compiler accepts a list of file names and produces the list of
// documents. A Compiler has several fields that control how it works
// but only the Resolver field is required. A minimal Compiler, that
// resolves files by loading them from the file system based on the
// current working directory, can be had with the following simple
// snippet:
//
//	compiler := primcompile.Compiler{
//	    Resolver: &primcompile.SourceResolver{},
//	}
//
// This minimal Compiler will use default parallelism, equal to the
// number of CPU cores detected, and it will fail fast at the first
// sign of any error. Both of these aspects can be customized by
// setting other fields.
package primcompile
