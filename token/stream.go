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
	"iter"
	"strings"
)

// Stream is a sequence of token trees.
type Stream []Token

// ToTokens is anything that can be appended to a [Stream] as-is.
//
// [Stream] and [Token] implement it, and so does the quote builder, which
// makes it possible to splice one quotation into another.
type ToTokens interface {
	// AppendTokens appends this value's tokens to dst and returns the
	// extended stream.
	AppendTokens(dst Stream) Stream
}

// Collect returns the tokens of t as a fresh stream.
//
// Returns nil if t is nil.
func Collect(t ToTokens) Stream {
	if t == nil {
		return nil
	}
	return t.AppendTokens(nil)
}

// AppendTokens implements [ToTokens].
func (s Stream) AppendTokens(dst Stream) Stream {
	return append(dst, s...)
}

// Leaves returns an iterator over every leaf token in this stream, depth
// first, in source order.
func (s Stream) Leaves() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		s.leaves(yield)
	}
}

func (s Stream) leaves(yield func(Token) bool) bool {
	for _, tok := range s {
		if tok.kind == Group {
			if !tok.children.leaves(yield) {
				return false
			}
			continue
		}
		if !yield(tok) {
			return false
		}
	}
	return true
}

// First returns the first leaf token in this stream, if there is one.
func (s Stream) First() (Token, bool) {
	for tok := range s.Leaves() {
		return tok, true
	}
	return Zero, false
}

// Last returns the last leaf token in this stream, if there is one.
func (s Stream) Last() (Token, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		tok := s[i]
		if tok.kind != Group {
			return tok, true
		}
		if last, ok := tok.children.Last(); ok {
			return last, true
		}
	}
	return Zero, false
}

// String implements [fmt.Stringer] by rendering this stream as Go source.
func (s Stream) String() string {
	return s.Render(nil)
}

// Render renders this stream as Go source text, with tokens separated by a
// single space.
//
// If visit is not nil, it is called with the byte range that every leaf and
// every group delimiter occupies in the output, in output order.
func (s Stream) Render(visit func(tok Token, start, end int)) string {
	r := renderer{visit: visit}
	r.stream(s)
	return r.out.String()
}

type renderer struct {
	out   strings.Builder
	visit func(Token, int, int)
}

func (r *renderer) stream(s Stream) {
	for _, tok := range s {
		if r.out.Len() > 0 {
			r.out.WriteByte(' ')
		}
		if tok.kind != Group {
			r.emit(tok, tok.text)
			continue
		}

		r.emit(tok, tok.delim.Open())
		r.stream(tok.children)
		if len(tok.children) > 0 {
			r.out.WriteByte(' ')
		}
		r.emit(tok, tok.delim.Close())
	}
}

func (r *renderer) emit(tok Token, text string) {
	start := r.out.Len()
	r.out.WriteString(text)
	if r.visit != nil {
		r.visit(tok, start, r.out.Len())
	}
}
