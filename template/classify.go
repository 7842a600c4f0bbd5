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

package template

import (
	"fmt"
	"strings"

	"github.com/bufbuild/goquote/source"
	"github.com/bufbuild/goquote/token"
)

// OpKind is the kind of an [Op].
type OpKind int8

const (
	// OpLiteral appends a token lexed from text.
	OpLiteral OpKind = iota
	// OpVerbatim appends the value of a variable without respanning it.
	OpVerbatim
	// OpGroup builds a delimited group out of nested operations.
	OpGroup
)

// String implements [fmt.Stringer].
func (k OpKind) String() string {
	switch k {
	case OpLiteral:
		return "OpLiteral"
	case OpVerbatim:
		return "OpVerbatim"
	case OpGroup:
		return "OpGroup"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// Op is one step in expanding a template into a quote.
type Op struct {
	Kind OpKind

	// OpLiteral: the text to lex. OpVerbatim: the variable name.
	Text string

	// OpGroup only.
	Delimiter token.Delimiter
	Body      []Op

	// Where in the template this op came from.
	Span source.Span
}

// Classify partitions a template's tokens into the operations that expand
// it, greedily from left to right:
//
//   - A group becomes an [OpGroup] whose body is its classified contents.
//   - An identifier for which isVar returns true becomes an [OpVerbatim].
//   - Any other token becomes an [OpLiteral] of its text.
//
// isVar may be nil, in which case there are no variables.
func Classify(stream token.Stream, isVar func(name string) bool) []Op {
	ops := make([]Op, 0, len(stream))
	for _, tok := range stream {
		op := Op{Text: tok.Text(), Span: tok.Span()}
		switch {
		case tok.Kind() == token.Group:
			op.Kind = OpGroup
			op.Text = ""
			op.Delimiter = tok.Delimiter()
			op.Body = Classify(tok.Children(), isVar)
		case tok.Kind() == token.Ident && isVar != nil && isVar(tok.Text()):
			op.Kind = OpVerbatim
		default:
			op.Kind = OpLiteral
		}
		ops = append(ops, op)
	}
	return ops
}

// Format renders ops one per line, for debugging. Literals print as their
// text, variables as $name, and groups as their delimiters around their
// indented bodies.
func Format(ops []Op) string {
	var b strings.Builder
	format(&b, ops, 0)
	return b.String()
}

func format(b *strings.Builder, ops []Op, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, op := range ops {
		b.WriteString(indent)
		switch op.Kind {
		case OpLiteral:
			b.WriteString(op.Text)
		case OpVerbatim:
			b.WriteString("$" + op.Text)
		case OpGroup:
			b.WriteString(op.Delimiter.Open())
			b.WriteByte('\n')
			format(b, op.Body, depth+1)
			b.WriteString(indent)
			b.WriteString(op.Delimiter.Close())
		}
		b.WriteByte('\n')
	}
}
