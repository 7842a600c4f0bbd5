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

package gen

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bufbuild/goquote/quote"
	"github.com/bufbuild/goquote/source"
	quotetemplate "github.com/bufbuild/goquote/template"
)

// emitter writes the Go statements that replay a template's operations.
//
// The output is not indented; the generator formats it afterwards.
type emitter struct {
	strings.Builder
	pos positioner
}

func (e *emitter) ops(ops []quotetemplate.Op) {
	for _, op := range ops {
		switch op.Kind {
		case quotetemplate.OpLiteral:
			fmt.Fprintf(e, "q.AppendLiteral(%s)\n", strconv.Quote(op.Text))
		case quotetemplate.OpVerbatim:
			fmt.Fprintf(e, "q.AppendVerbatim(%s)\n", op.Text)
		case quotetemplate.OpGroup:
			fmt.Fprintf(e, "q.OpenGroup(token.%v, func(q *quote.Quote) {\n", op.Delimiter)
			e.site(op.Span)
			e.ops(op.Body)
			e.WriteString("})\n")
		}
	}
}

// site emits a ReportCallSite for the YAML position of span. The zero span
// stands for the template body as a whole.
func (e *emitter) site(span source.Span) {
	loc := e.pos.locate(span)
	fmt.Fprintf(e, "q.ReportCallSite(quote.Location{File: %q, Line: %d, Column: %d})\n",
		loc.File, loc.Line, loc.Column)
}

// positioner maps spans in a template body back to the YAML file it was
// read from.
type positioner struct {
	path string
	node *yaml.Node

	// For block scalars, the column at which each content line starts,
	// 0-indexed.
	indent int
}

func newPositioner(file *source.File, path string, node *yaml.Node) positioner {
	p := positioner{path: path, node: node}
	if node.Style&(yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
		line := file.Line(node.Line + 1)
		p.indent = len(line) - len(strings.TrimLeft(line, " "))
	}
	return p
}

func (p positioner) locate(span source.Span) quote.Location {
	if span.IsZero() {
		return quote.NewLocation(p.path, p.node.Line, p.node.Column)
	}

	loc := span.StartLoc()
	switch {
	case p.node.Style&yaml.LiteralStyle != 0:
		return quote.NewLocation(p.path, p.node.Line+loc.Line, p.indent+loc.Column)
	case loc.Line != 1:
		// Folded and multi-line flow scalars do not preserve line structure.
		return quote.NewLocation(p.path, p.node.Line, p.node.Column)
	case p.node.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0:
		return quote.NewLocation(p.path, p.node.Line, p.node.Column+loc.Column)
	default:
		return quote.NewLocation(p.path, p.node.Line, p.node.Column+loc.Column-1)
	}
}
