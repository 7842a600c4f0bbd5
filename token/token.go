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

package token

import (
	"fmt"
	gotoken "go/token"

	"github.com/bufbuild/goquote/source"
)

// Zero is the zero [Token], used to denote the absence of a token.
var Zero Token

// Token is a lexical element of Go source.
//
// A Token is either a leaf (identifier, keyword, punctuation, or literal) or
// a group: a matched pair of delimiters together with the tokens between
// them. Tokens are immutable values; operations that change a token return a
// modified copy.
type Token struct {
	kind  Kind
	text  string
	span  source.Span
	delim Delimiter

	// Only set for groups.
	children Stream
}

// NewLeaf constructs a new leaf token.
//
// Panics if kind is [Group]; use [NewGroup] instead.
func NewLeaf(kind Kind, text string, span source.Span) Token {
	if kind == Group {
		panic("goquote/token: called NewLeaf() with token.Group")
	}
	return Token{kind: kind, text: text, span: span}
}

// NewIdent constructs a new identifier token with the given span.
//
// If name is a Go keyword, the token's kind is [Keyword].
func NewIdent(name string, span source.Span) Token {
	kind := Ident
	if gotoken.IsKeyword(name) {
		kind = Keyword
	}
	return NewLeaf(kind, name, span)
}

// NewPunct constructs a new punctuation token with the given span.
func NewPunct(text string, span source.Span) Token {
	return NewLeaf(Punct, text, span)
}

// NewGroup constructs a new group token.
//
// Panics if delim is [NoDelimiter].
func NewGroup(delim Delimiter, span source.Span, children Stream) Token {
	if delim == NoDelimiter {
		panic("goquote/token: called NewGroup() without a delimiter")
	}
	return Token{
		kind:     Group,
		text:     delim.Open(),
		span:     span,
		delim:    delim,
		children: children,
	}
}

// IsZero returns whether this is the zero token.
func (t Token) IsZero() bool {
	return t.kind == Unrecognized && t.text == ""
}

// Kind returns what kind of token this is.
func (t Token) Kind() Kind {
	return t.kind
}

// IsLeaf returns whether this is a non-zero leaf token.
func (t Token) IsLeaf() bool {
	return !t.IsZero() && t.kind != Group
}

// Text returns the text of this token.
//
// For a group, this is the text of its opening delimiter only.
func (t Token) Text() string {
	return t.text
}

// Span implements [source.Spanner].
func (t Token) Span() source.Span {
	return t.span
}

// Delimiter returns this token's delimiter. Returns [NoDelimiter] for leaves.
func (t Token) Delimiter() Delimiter {
	return t.delim
}

// Children returns the tokens contained in a group. Returns nil for leaves.
func (t Token) Children() Stream {
	return t.children
}

// WithSpan returns a copy of this token with its span replaced. For groups,
// the children are not modified.
func (t Token) WithSpan(span source.Span) Token {
	t.span = span
	return t
}

// Rename returns a copy of an identifier with its name transformed by f. The
// span is kept.
//
// Panics if t is not an identifier.
func (t Token) Rename(f func(name string) string) Token {
	if t.kind != Ident {
		panic(fmt.Sprintf("goquote/token: called Rename() on %v token", t.kind))
	}
	return NewIdent(f(t.text), t.span)
}

// AppendTokens implements [ToTokens].
func (t Token) AppendTokens(dst Stream) Stream {
	if t.IsZero() {
		return dst
	}
	return append(dst, t)
}

// String implements [fmt.Stringer] by rendering this token as Go source.
func (t Token) String() string {
	return Stream{t}.String()
}

// GoString implements [fmt.GoStringer], for use in test failures.
func (t Token) GoString() string {
	if t.kind == Group {
		return fmt.Sprintf("%v%#v@%v", t.delim, t.children, t.span)
	}
	return fmt.Sprintf("%v(%q)@%v", t.kind, t.text, t.span)
}
