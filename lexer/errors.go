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

package lexer

import (
	"fmt"

	"github.com/bufbuild/goquote/report"
	"github.com/bufbuild/goquote/source"
	"github.com/bufbuild/goquote/token"
)

// ErrScan is an error reported by the Go scanner, such as an illegal
// character or an unterminated string.
type ErrScan struct {
	Span    source.Span
	Message string
}

// Error implements [error].
func (e *ErrScan) Error() string {
	return e.Message
}

// Diagnose implements [report.Diagnose].
func (e *ErrScan) Diagnose(d *report.Diagnostic) {
	d.With(report.Snippet(e.Span))
}

// ErrUnmatched diagnoses a delimiter for which we found one half of a matched
// pair but not the other.
type ErrUnmatched struct {
	Span      source.Span // The offending delimiter.
	Delimiter token.Delimiter
	Closing   bool // Whether Span is a closing delimiter.

	// If present, this is the delimiter that closed an enclosing group
	// while this one was still open.
	Mismatch source.Span

	// If present, this is an open delimiter we think this one was meant to
	// match.
	ShouldMatch source.Span
}

// Error implements [error].
func (e *ErrUnmatched) Error() string {
	text := e.Delimiter.Open()
	if e.Closing {
		text = e.Delimiter.Close()
	}
	return fmt.Sprintf("encountered unmatched `%s` delimiter", text)
}

// Diagnose implements [report.Diagnose].
func (e *ErrUnmatched) Diagnose(d *report.Diagnostic) {
	if e.Closing {
		d.With(
			report.Snippetf(e.Span, "expected an opening `%s`", e.Delimiter.Open()),
			report.Snippetf(e.ShouldMatch, "help: perhaps it was meant to match this?"),
		)
		return
	}

	d.With(
		report.Snippetf(e.Span, "expected a closing `%s`", e.Delimiter.Close()),
		report.Snippetf(e.Mismatch, "enclosing group closed here"),
	)
}
