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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/primlang/primcompile/ast"
	"github.com/primlang/primcompile/reporter"
)

func TestErrorReporting(t *testing.T) {
	tooManyErrors := errors.New("too many errors")
	limitedErrReporter := func(limit int, count *int) reporter.ErrorReporter {
		return func(err reporter.ErrorWithPos) error {
			*count++
			if *count > limit {
				return tooManyErrors
			}
			return nil
		}
	}
	trackingReporter := func(errs *[]reporter.ErrorWithPos, count *int) reporter.ErrorReporter {
		return func(err reporter.ErrorWithPos) error {
			*count++
			*errs = append(*errs, err)
			return nil
		}
	}
	fail := errors.New("failure!")
	failFastReporter := func(count *int) reporter.ErrorReporter {
		return func(err reporter.ErrorWithPos) error {
			*count++
			return fail
		}
	}

	testCases := []struct {
		name         string
		files        map[string]string
		expectedErrs []string
	}{
		{
			name: "multiple parse errors",
			files: map[string]string{
				"test.prim": "a = \nb 5\n$$\nc = = 9\n",
			},
			expectedErrs: []string{
				`test.prim:1:1: property "a" is missing a value`,
				`test.prim:2:3: missing "=" between property name and value`,
				`test.prim:3:1: unexpected characters "$$"`,
				`test.prim:4:5: expected a number after "=", got "="`,
				`test.prim:4:5: syntax error: unexpected "="`,
			},
		},
		{
			name: "malformed numbers",
			files: map[string]string{
				"test.prim": "u = 1..2\nv = 0x\n",
			},
			expectedErrs: []string{
				"test.prim:1:5: invalid syntax in float value: 1..2",
				"test.prim:2:5: invalid syntax in hexadecimal integer value: 0x",
			},
		},
		{
			name: "parse and validation errors",
			files: map[string]string{
				"test.prim": "a = 1\na = 2\nb 3\n",
			},
			expectedErrs: []string{
				`test.prim:3:3: missing "=" between property name and value`,
				`test.prim:2:1: property "a" already defined at test.prim:1:1`,
			},
		},
	}

	ctx := context.Background()
	for _, tc := range testCases {
		compiler := Compiler{
			Resolver: &SourceResolver{Accessor: SourceAccessorFromMap(tc.files)},
		}

		var reported []reporter.ErrorWithPos
		count := 0
		compiler.Reporter = reporter.NewReporter(trackingReporter(&reported, &count), nil)
		_, err := compiler.Compile(ctx, "test.prim")
		reportedMsgs := make([]string, len(reported))
		for j := range reported {
			reportedMsgs[j] = reported[j].Error()
		}
		t.Logf("case %q: got %d errors:\n\t%s", tc.name, len(reported), strings.Join(reportedMsgs, "\n\t"))

		// returns sentinel, but all actual errors in reported
		assert.Equal(t, reporter.ErrInvalidSource, err, "case %q: compile should have failed with invalid source error", tc.name)
		assert.Equal(t, len(tc.expectedErrs), count, "case %q: compile should have called reporter %d times", tc.name, len(tc.expectedErrs))
		if assert.Equal(t, len(tc.expectedErrs), len(reported), "case %q: wrong number of errors reported", tc.name) {
			for j := range tc.expectedErrs {
				if !assert.Equal(t, tc.expectedErrs[j], reported[j].Error(), "case %q: error[%d] mismatch", tc.name, j) {
					continue
				}
				split := strings.SplitN(tc.expectedErrs[j], ":", 4)
				if assert.Equal(t, 4, len(split), "case %q: expected %q [%d] to contain at least 4 elements split by :", tc.name, tc.expectedErrs[j], j) {
					assert.Equal(t, split[3], " "+reported[j].Unwrap().Error(), "case %q: underlying error[%d] mismatch", tc.name, j)
				}
			}
		}

		count = 0
		compiler.Reporter = reporter.NewReporter(failFastReporter(&count), nil)
		_, err = compiler.Compile(ctx, "test.prim")
		assert.Equal(t, fail, err, "case %q: compile should have failed fast", tc.name)
		assert.Equal(t, 1, count, "case %q: compile should have called reporter only once", tc.name)

		count = 0
		compiler.Reporter = reporter.NewReporter(limitedErrReporter(3, &count), nil)
		_, err = compiler.Compile(ctx, "test.prim")
		if len(tc.expectedErrs) > 3 {
			assert.Equal(t, tooManyErrors, err, "case %q: compile should have failed with too many errors", tc.name)
			assert.Equal(t, 4, count, "case %q: compile should have called reporter 4 times", tc.name)
		} else {
			// fewer than the threshold means the reporter always
			// returned nil, so compile returns the sentinel
			assert.Equal(t, reporter.ErrInvalidSource, err, "case %q: compile should have failed with invalid source error", tc.name)
			assert.Equal(t, len(tc.expectedErrs), count, "case %q: compile should have called reporter %d times", tc.name, len(tc.expectedErrs))
		}
	}
}

func TestWarningReporting(t *testing.T) {
	type msg struct {
		pos  ast.SourcePos
		text string
	}
	var msgs []msg
	rep := func(warn reporter.ErrorWithPos) {
		msgs = append(msgs, msg{
			pos: warn.GetPosition(), text: warn.Unwrap().Error(),
		})
	}

	testCases := []struct {
		name            string
		sources         map[string]string
		expectedNotices []string
	}{
		{
			name: "no warnings",
			sources: map[string]string{
				"test.prim": "x = 1\ny = 2.5\n",
			},
		},
		{
			name: "integer overflow",
			sources: map[string]string{
				"test.prim": "huge = 9223372036854775808\n",
			},
			expectedNotices: []string{
				"test.prim:1:8: integer value overflows an int64; it will be read as a float",
			},
		},
		{
			name: "hex values within bounds do not warn",
			sources: map[string]string{
				"test.prim": "mask = 0x7fffffffffffffff\nsign = -0x8000000000000000\n",
			},
		},
	}
	ctx := context.Background()
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			compiler := Compiler{
				Resolver: &SourceResolver{Accessor: SourceAccessorFromMap(testCase.sources)},
				Reporter: reporter.NewReporter(nil, rep),
			}
			msgs = nil
			_, err := compiler.Compile(ctx, "test.prim")
			assert.Nil(t, err)

			var actualNotices []string
			for _, m := range msgs {
				actualNotices = append(actualNotices, fmt.Sprintf("%s: %s", m.pos, m.text))
			}
			assert.Equal(t, testCase.expectedNotices, actualNotices)
		})
	}
}
