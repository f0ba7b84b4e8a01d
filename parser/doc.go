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

// Package parser contains the logic for parsing Prim source code into an
// AST (abstract syntax tree) and also for converting an AST into a
// document, the flat name-to-value view the rest of the module works with.
//
// A document is much simpler than an AST, but the AST is more useful for
// some tools because it contains everything about the source code,
// including details about whitespace and comments that a document does
// not represent. This makes it ideal for things like code formatters,
// which want to preserve whitespace and comment layout.
//
// The parser never gives up on malformed input. Text it cannot make
// sense of is kept in the tree as invalid items, diagnostics for it are
// reported through a reporter.Handler, and parsing carries on with the
// next line. Callers decide through their reporter whether the first
// error aborts or whether every diagnostic in the file is collected.
package parser
