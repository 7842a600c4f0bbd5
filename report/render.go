// Copyright 2020-2025 Buf Technologies, Inc.
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

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/bufbuild/goquote/source"
)

// Renderer configures a diagnostic rendering operation.
type Renderer struct {
	// If set, uses a compact one-line-per-diagnostic format, imitating the Go
	// compiler.
	Compact bool

	// If set, renders using ANSI colors.
	Colorize bool

	// If set, Debug footers are rendered too.
	ShowDebug bool
}

// Render renders a diagnostic report to w.
func (r Renderer) Render(w io.Writer, report *Report) error {
	_, err := io.WriteString(w, r.RenderString(report))
	return err
}

// RenderString is like [Renderer.Render], but returns a string.
func (r Renderer) RenderString(report *Report) string {
	if report == nil {
		return ""
	}

	ss := newStylesheet(r.Colorize)
	var out strings.Builder
	var errors, warnings int
	for i := range report.Diagnostics {
		d := &report.Diagnostics[i]
		switch d.Level {
		case Error:
			errors++
		case Warning:
			warnings++
		}

		if r.Compact {
			if i > 0 {
				out.WriteByte('\n')
			}
			r.compact(&out, ss, d)
			continue
		}

		r.diagnostic(&out, ss, d)
		out.WriteString("\n\n")
	}

	if r.Compact || (errors == 0 && warnings == 0) {
		return out.String()
	}

	pluralize := func(count int, what string) string {
		if count == 1 {
			return "1 " + what
		}
		return fmt.Sprint(count, " ", what, "s")
	}
	if errors > 0 {
		summary := "encountered " + pluralize(errors, "error")
		if warnings > 0 {
			summary += " and " + pluralize(warnings, "warning")
		}
		out.WriteString(ss.level(Error).Sprint(summary))
	} else {
		out.WriteString(ss.level(Warning).Sprint("encountered ", pluralize(warnings, "warning")))
	}
	out.WriteByte('\n')
	return out.String()
}

func (r Renderer) compact(out *strings.Builder, ss *stylesheet, d *Diagnostic) {
	out.WriteString(ss.level(d.Level).Sprint(d.Level.String(), ":"))
	out.WriteByte(' ')

	primary := d.Primary()
	switch {
	case !primary.IsZero():
		start := primary.StartLoc()
		fmt.Fprintf(out, "%s:%d:%d: ", primary.Path(), start.Line, start.Column)
	case d.InFile != "":
		fmt.Fprintf(out, "%s: ", d.InFile)
	}
	out.WriteString(d.Err.Error())
}

func (r Renderer) diagnostic(out *strings.Builder, ss *stylesheet, d *Diagnostic) {
	out.WriteString(ss.level(d.Level).Sprint(d.Level.String(), ": ", d.Err.Error()))

	// The line bar is as wide as the largest line number among the snippets.
	var greatestLine int
	for _, a := range d.Annotations {
		greatestLine = max(greatestLine, a.StartLoc().Line)
	}
	bar := max(2, len(fmt.Sprint(greatestLine)))
	gutter := func(prefix string) {
		out.WriteByte('\n')
		out.WriteString(ss.gutter.Sprint(strings.Repeat(" ", bar), prefix))
	}

	var path string
	for i, a := range d.Annotations {
		start := a.StartLoc()
		if i == 0 || a.Path() != path {
			path = a.Path()
			arrow := "--> "
			if i > 0 {
				arrow = "::: "
			}
			gutter(fmt.Sprintf("%s%s:%d:%d", arrow, path, start.Line, start.Column))
			gutter(" |")
		}

		line := a.File.Line(start.Line)
		out.WriteByte('\n')
		out.WriteString(ss.gutter.Sprintf("%*d | ", bar, start.Line))
		out.WriteString(expandTabs(line))

		col, width := underline(a.Span, start.Line)
		level := noteLevel
		mark := "-"
		if a.Primary {
			level = d.Level
			mark = "^"
		}
		gutter(" | ")
		out.WriteString(strings.Repeat(" ", col))
		text := strings.Repeat(mark, width)
		if a.Message != "" {
			text += " " + a.Message
		}
		out.WriteString(ss.level(level).Sprint(text))
	}

	if len(d.Annotations) == 0 {
		path := d.InFile
		if path == "" {
			path = "<unknown>"
		}
		gutter("--> " + path)
	}

	footer := func(kind, text string) {
		gutter(" = ")
		out.WriteString(ss.footer.Sprint(kind, ": "))
		out.WriteString(text)
	}
	for _, note := range d.Notes {
		footer("note", note)
	}
	for _, help := range d.Help {
		footer("help", help)
	}
	if r.ShowDebug {
		for _, debug := range d.Debug {
			footer("debug", debug)
		}
	}
}

// underline computes the terminal column and width of the part of span that
// lies on the given line.
func underline(span source.Span, line int) (col, width int) {
	start, end := span.File.LineOffsets(line)
	text := strings.TrimSuffix(span.File.Text()[start:end], "\n")

	from := min(span.Start-start, len(text))
	to := min(span.End-start, len(text))
	col = stringWidth(0, text[:from])
	width = stringWidth(col, text[from:to]) - col
	return col, max(1, width)
}
