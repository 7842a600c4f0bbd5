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

package quote

import (
	"fmt"
	"strings"

	"github.com/bufbuild/goquote/report"
	"github.com/bufbuild/goquote/source"
	"github.com/bufbuild/goquote/token"
)

const dumpHint = "To get code failed to parse,\n please set environment variable `" + DumpEnv + "` and run it again"

// ParseError is returned by [Parse] when a quote's tokens do not parse.
type ParseError struct {
	// The error from go/parser.
	Err error

	// Every location quasi-quoting was invoked from while building the
	// tokens, in no particular order.
	Sites []Location

	// The tokens that failed to parse. They are only included in the error
	// message if ShowTokens is set, which Parse does when [DumpEnv] is set.
	Tokens     token.Stream
	ShowTokens bool

	// The span stamped on the token the parser failed at, if known.
	Span source.Span
}

var _ report.Diagnose = (*ParseError)(nil)

// Error implements [error].
func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("quote: Parse() failed.\n")
	b.WriteString("Note: quasi quoting was invoked from:\n")
	for _, site := range e.Sites {
		fmt.Fprintf(&b, "       %v\n", site)
	}
	fmt.Fprintf(&b, "Error from parser: %v\n", e.Err)
	b.WriteString("    >>>>>\n")
	b.WriteString("        ")
	if e.ShowTokens {
		b.WriteString(e.Tokens.String())
	} else {
		b.WriteString(dumpHint)
	}
	b.WriteString("\n    <<<<<")
	return b.String()
}

// Unwrap implements [errors.Unwrap].
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Diagnose implements [report.Diagnose].
func (e *ParseError) Diagnose(d *report.Diagnostic) {
	d.With(report.Snippetf(e.Span, "quoted token the parser failed at"))
	for _, site := range e.Sites {
		d.With(report.Note("quasi quoting was invoked from %v", site))
	}
	if e.ShowTokens {
		d.With(report.Debug("tokens: %v", e.Tokens))
	} else {
		d.With(report.Help("set %s to include the tokens that failed to parse", DumpEnv))
	}
}

// LiteralError is the panic value of [Quote.AppendLiteral] when given text
// that is not valid Go.
type LiteralError struct {
	Text string
	Err  error
}

// Error implements [error].
func (e *LiteralError) Error() string {
	return fmt.Sprintf("quote: failed to lex %q: %v", e.Text, e.Err)
}

// Unwrap implements [errors.Unwrap].
func (e *LiteralError) Unwrap() error {
	return e.Err
}
