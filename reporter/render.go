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
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rivo/uniseg"
)

// Style selects how a Renderer formats diagnostics.
type Style int

const (
	// StyleSimple is a compact one-line format in the manner of the Go
	// compiler: "error: app.prim:3:9: message".
	StyleSimple Style = iota
	// StyleMonochrome draws a window of the offending source under each
	// diagnostic, with the covered text underlined.
	StyleMonochrome
	// StyleColored is StyleMonochrome with ANSI color.
	StyleColored
)

// Severity says whether a rendered diagnostic is an error or a warning.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Tab width used when aligning underlines with rendered source lines.
// Matches the tab stops used for column numbers in ast.SourcePos.
const tabstop = 8

// Renderer formats diagnostics in a form suitable for showing to a
// user. The zero value renders in StyleSimple; NewRenderer selects a
// style.
type Renderer struct {
	style Style
	color color
}

// NewRenderer creates a new Renderer with the given style.
func NewRenderer(style Style) *Renderer {
	r := &Renderer{style: style}
	if style == StyleColored {
		r.color = ansiColor()
	}
	return r
}

// Render writes the given diagnostic to w. The src is the content of
// the file named in the diagnostic's position; it supplies the quoted
// source window and may be nil, in which case only the header lines are
// written. If the diagnostic is an ErrorWithSpan, the whole span is
// underlined; otherwise a single column is.
func (r *Renderer) Render(w io.Writer, severity Severity, err ErrorWithPos, src []byte) error {
	var out strings.Builder
	pos := err.GetPosition()

	// The position is rendered separately, so unwrap to avoid printing
	// it twice.
	text := err.Error()
	if underlying := err.Unwrap(); underlying != nil {
		text = underlying.Error()
	}

	if r.style == StyleSimple {
		fmt.Fprintf(&out, "%s: %s: %s\n", severity, pos, text)
		_, werr := io.WriteString(w, out.String())
		return werr
	}

	// The remaining styles imitate the Rust compiler.
	c := r.color
	fmt.Fprint(&out, c.boldFor(severity), severity, ": ", text, c.reset, "\n")

	gutter := max(2, len(fmt.Sprint(pos.Line)))
	fmt.Fprintf(&out, "%s%*s--> %s%s\n", c.nBlue, gutter, "", pos, c.reset)

	if pos.Line > 0 && pos.Offset <= len(src) {
		r.renderWindow(&out, severity, err, src, gutter)
	}

	_, werr := io.WriteString(w, out.String())
	return werr
}

// renderWindow writes the quoted source line and its underline.
func (r *Renderer) renderWindow(out *strings.Builder, severity Severity, err ErrorWithPos, src []byte, gutter int) {
	c := r.color
	pos := err.GetPosition()

	// Snap the window to the line containing the position.
	lineStart := bytes.LastIndexByte(src[:pos.Offset], '\n') + 1
	lineEnd := len(src)
	if i := bytes.IndexByte(src[pos.Offset:], '\n'); i >= 0 {
		lineEnd = pos.Offset + i
	}
	if lineEnd > lineStart && src[lineEnd-1] == '\r' {
		lineEnd--
	}

	// The underline covers the span's bytes, clamped to this line. A
	// point diagnostic, or one at end of line, underlines one column.
	spanEnd := pos.Offset
	if spanned, ok := err.(ErrorWithSpan); ok {
		spanEnd = spanned.GetEndPosition().Offset
	}
	spanEnd = min(spanEnd+1, lineEnd)

	lead := displayWidth(string(src[lineStart:min(pos.Offset, lineEnd)]), 0)
	carets := 1
	if spanEnd > pos.Offset {
		carets = max(1, displayWidth(string(src[pos.Offset:spanEnd]), lead)-lead)
	}

	fmt.Fprintf(out, "%s%*s |%s\n", c.nBlue, gutter, "", c.reset)
	fmt.Fprintf(out, "%s%*d | %s", c.nBlue, gutter, pos.Line, c.reset)
	expandTabs(out, string(src[lineStart:lineEnd]))
	out.WriteByte('\n')
	fmt.Fprintf(out, "%s%*s | %s%s%s%s\n",
		c.nBlue, gutter, "", c.reset,
		strings.Repeat(" ", lead),
		c.boldFor(severity)+strings.Repeat("^", carets), c.reset)
}

// RenderSummary writes the closing "encountered N errors" line that
// follows a run of rendered diagnostics. In StyleSimple, or when there
// is nothing to summarize, it writes nothing.
func (r *Renderer) RenderSummary(w io.Writer, errors, warnings int) error {
	if r.style == StyleSimple || (errors == 0 && warnings == 0) {
		return nil
	}

	pluralize := func(count int, what string) string {
		if count == 1 {
			return "1 " + what
		}
		return fmt.Sprint(count, " ", what, "s")
	}

	var out strings.Builder
	c := r.color
	if errors > 0 {
		fmt.Fprint(&out, c.bRed, "encountered ", pluralize(errors, "error"))
		if warnings > 0 {
			fmt.Fprint(&out, " and ", pluralize(warnings, "warning"))
		}
		fmt.Fprint(&out, c.reset, "\n")
	} else {
		fmt.Fprint(&out, c.bYellow, "encountered ", pluralize(warnings, "warning"), c.reset, "\n")
	}
	_, err := io.WriteString(w, out.String())
	return err
}

// displayWidth returns the column reached by rendering text starting at
// the given column, expanding tabs and accounting for wide characters.
func displayWidth(text string, col int) int {
	for {
		tab := strings.IndexByte(text, '\t')
		if tab < 0 {
			return col + uniseg.StringWidth(text)
		}
		col += uniseg.StringWidth(text[:tab])
		col += tabstop - col%tabstop
		text = text[tab+1:]
	}
}

// expandTabs writes text with tabs replaced by enough spaces to reach
// the next tab stop, so underlines align under the rendered line.
func expandTabs(out *strings.Builder, text string) {
	col := 0
	for {
		tab := strings.IndexByte(text, '\t')
		if tab < 0 {
			out.WriteString(text)
			return
		}
		out.WriteString(text[:tab])
		col += uniseg.StringWidth(text[:tab])
		spaces := tabstop - col%tabstop
		for range spaces {
			out.WriteByte(' ')
		}
		col += spaces
		text = text[tab+1:]
	}
}

// color is the set of escape codes used for pretty-rendering
// diagnostics. The zero value renders no codes at all.
type color struct {
	reset string
	// Normal and bold variants.
	nBlue, bRed, bYellow string
}

func ansiColor() color {
	return color{
		reset:   "\033[0m",
		nBlue:   "\033[0;34m",
		bRed:    "\033[1;31m",
		bYellow: "\033[1;33m",
	}
}

func (c color) boldFor(s Severity) string {
	if s == SeverityWarning {
		return c.bYellow
	}
	return c.bRed
}
