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

// Package reporter contains the types for reporting errors and warnings
// found while processing Prim source, and for rendering them in a
// human-readable form.
package reporter

import (
	"sync"

	"github.com/primlang/primcompile/ast"
)

// ErrorReporter is responsible for reporting the given error. If the
// reporter returns a non-nil error, processing will abort with that
// error. If the reporter returns nil, processing will continue, allowing
// the parser to try to report as many errors as it can find.
type ErrorReporter func(err ErrorWithPos) error

// WarningReporter is responsible for reporting the given warning. This
// is used for indicating non-error messages to the calling program for
// things that do not cause processing to fail but are considered bad
// practice. Though they are just warnings, the details are supplied to
// the reporter via an error type.
type WarningReporter func(ErrorWithPos)

// Reporter is a type that handles reporting both errors and warnings.
// A reporter does not need to be thread-safe. Safe concurrent access is
// managed by a Handler.
type Reporter interface {
	// Error is called when the given error is encountered and needs to
	// be reported to the calling program. This signature matches
	// ErrorReporter because it has the same semantics.
	Error(ErrorWithPos) error
	// Warning is called when the given warning is encountered and needs
	// to be reported to the calling program. This signature matches
	// WarningReporter because it has the same semantics.
	Warning(ErrorWithPos)
}

// NewReporter creates a new reporter that invokes the given functions
// on error or warning.
func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return reporterFuncs{errs: errs, warnings: warnings}
}

type reporterFuncs struct {
	errs     ErrorReporter
	warnings WarningReporter
}

func (r reporterFuncs) Error(err ErrorWithPos) error {
	if r.errs == nil {
		return err
	}
	return r.errs(err)
}

func (r reporterFuncs) Warning(err ErrorWithPos) {
	if r.warnings != nil {
		r.warnings(err)
	}
}

// Handler is used by the lexer, parser, and compiler to handle errors
// and warnings. It is thread-safe. It uses a reporter to dispatch
// errors and warnings to callers and tracks the first error reported,
// to know if processing should be aborted.
type Handler struct {
	reporter Reporter

	mu           sync.Mutex
	errsReported bool
	err          error
}

// NewHandler creates a new Handler that reports errors and warnings
// using the given reporter. If rep is nil, the handler aborts on the
// first error reported.
func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	return &Handler{reporter: rep}
}

// HandleErrorf handles an error with the given source position,
// creating the error using the given message format and arguments.
//
// If the handler has already aborted (by returning a non-nil error from
// a previous call), that same error is returned and the given error is
// not reported.
func (h *Handler) HandleErrorf(pos ast.SourcePos, format string, args ...any) error {
	return h.HandleError(Errorf(pos, format, args...))
}

// HandleErrorSpanf is like HandleErrorf for errors that cover a range
// of the source file rather than a single position. Renderers underline
// the whole range.
func (h *Handler) HandleErrorSpanf(start, end ast.SourcePos, format string, args ...any) error {
	return h.HandleError(ErrorSpanf(start, end, format, args...))
}

// HandleError handles the given error. If the given error is an
// ErrorWithPos, it is reported, and this function returns an error only
// if the reporter returns one. If the error is not an ErrorWithPos, no
// reporting is done and the error is returned as is, aborting any
// further processing.
//
// If the handler has already aborted, that same error is returned and
// the given error is not reported.
func (h *Handler) HandleError(err error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	if ewp, ok := err.(ErrorWithPos); ok {
		h.errsReported = true
		err = h.reporter.Error(ewp)
	}
	h.err = err
	return err
}

// HandleWarningf handles a warning with the given source position,
// creating the warning using the given message format and arguments.
func (h *Handler) HandleWarningf(pos ast.SourcePos, format string, args ...any) {
	h.HandleWarning(Errorf(pos, format, args...))
}

// HandleWarningSpanf is like HandleWarningf for warnings that cover a
// range of the source file.
func (h *Handler) HandleWarningSpanf(start, end ast.SourcePos, format string, args ...any) {
	h.HandleWarning(ErrorSpanf(start, end, format, args...))
}

// HandleWarning handles the given warning. Warnings never abort
// processing, so unlike HandleError this has no return value.
func (h *Handler) HandleWarning(err ErrorWithPos) {
	// no need for lock; warnings don't interact with mutable fields
	h.reporter.Warning(err)
}

// Error returns an error that summarizes the handler's state. If the
// handler has aborted, the error that caused the abort is returned. If
// errors were reported but the reporter chose to continue each time,
// ErrInvalidSource is returned. If no errors were reported, this
// returns nil.
func (h *Handler) Error() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.errsReported && h.err == nil {
		return ErrInvalidSource
	}
	return h.err
}

// ReporterError returns the error that aborted the handler, or nil if
// the handler has not aborted.
func (h *Handler) ReporterError() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.err
}
