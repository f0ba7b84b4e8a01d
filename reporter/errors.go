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

package reporter

import (
	"errors"
	"fmt"

	"github.com/primlang/primcompile/ast"
)

// ErrInvalidSource is a sentinel error that is returned by operations
// that process Prim source in the event that errors are encountered but
// the configured ErrorReporter always returns nil, so no single error
// aborted processing.
var ErrInvalidSource = errors.New("parse failed: invalid prim source")

// ErrorWithPos is an error about a Prim source file that includes
// information about the location in the file that caused the error.
//
// The value of Error() will contain both the location and the
// underlying error message. The value of Unwrap() will only be the
// underlying error.
type ErrorWithPos interface {
	error
	// GetPosition returns the location in the file that caused the
	// error.
	GetPosition() ast.SourcePos
	Unwrap() error
}

// ErrorWithSpan is an ErrorWithPos whose subject covers a range of the
// file rather than a single point. Renderers underline the whole range.
type ErrorWithSpan interface {
	ErrorWithPos
	// GetEndPosition returns the position of the final character of the
	// offending text. It is never before GetPosition().
	GetEndPosition() ast.SourcePos
}

// Error creates a new ErrorWithPos from the given error and source
// position.
func Error(pos ast.SourcePos, err error) ErrorWithPos {
	return errorWithSourcePos{pos: pos, underlying: err}
}

// Errorf creates a new ErrorWithPos whose underlying error is created
// using the given message format and arguments.
func Errorf(pos ast.SourcePos, format string, args ...any) ErrorWithPos {
	return errorWithSourcePos{pos: pos, underlying: fmt.Errorf(format, args...)}
}

// ErrorSpan creates a new ErrorWithSpan from the given error and the
// positions of the first and last characters it covers.
func ErrorSpan(start, end ast.SourcePos, err error) ErrorWithSpan {
	return errorWithSourceSpan{
		errorWithSourcePos: errorWithSourcePos{pos: start, underlying: err},
		end:                end,
	}
}

// ErrorSpanf creates a new ErrorWithSpan whose underlying error is
// created using the given message format and arguments.
func ErrorSpanf(start, end ast.SourcePos, format string, args ...any) ErrorWithSpan {
	return ErrorSpan(start, end, fmt.Errorf(format, args...))
}

// errorWithSourcePos is the canonical ErrorWithPos implementation.
// Calling code examining errors should look for the ErrorWithPos
// interface rather than this type, so that wrappers with more detail
// (such as spans) are found too.
type errorWithSourcePos struct {
	underlying error
	pos        ast.SourcePos
}

func (e errorWithSourcePos) Error() string {
	return fmt.Sprintf("%s: %v", e.pos, e.underlying)
}

func (e errorWithSourcePos) GetPosition() ast.SourcePos {
	return e.pos
}

func (e errorWithSourcePos) Unwrap() error {
	return e.underlying
}

type errorWithSourceSpan struct {
	errorWithSourcePos
	end ast.SourcePos
}

func (e errorWithSourceSpan) GetEndPosition() ast.SourcePos {
	return e.end
}

var _ ErrorWithPos = errorWithSourcePos{}
var _ ErrorWithSpan = errorWithSourceSpan{}
