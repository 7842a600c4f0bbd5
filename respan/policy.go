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

// Package respan provides span-resolution policies: the strategies that
// decide which [source.Span] to stamp on a generated token.
package respan

import (
	"fmt"

	"github.com/bufbuild/goquote/source"
	"github.com/bufbuild/goquote/token"
)

// Policy decides the span for each token a quote generates.
//
// A Policy is a closed set of variants, constructed with [Fixed],
// [FirstLast], or [Borrow]. Some variants are stateful, so a Policy must have
// exactly one owner at a time; it is always passed by pointer and never
// copied.
type Policy struct {
	kind kind

	// Fixed: the span. FirstLast: the span returned after the first call.
	span source.Span

	// FirstLast only.
	first   source.Span
	pending bool

	// Borrowed only.
	inner *Policy
}

type kind int8

const (
	fixed kind = iota
	firstLast
	borrowed
)

// Fixed returns a policy that stamps span on every token.
//
// Passing the zero span produces a policy for call sites that have no
// existing syntax to anchor generated code to.
func Fixed(span source.Span) *Policy {
	return &Policy{kind: fixed, span: span}
}

// FirstLast returns a policy that stamps the span of the first leaf of t on
// the first token, and the span of the last leaf of t on every token after it.
//
// This makes a generated construct that replaces t look like it starts where
// t started and ends where t ended. If t has no leaves, both spans are
// fallback. If t has one leaf, both spans are that leaf's span.
func FirstLast(t token.ToTokens, fallback source.Span) *Policy {
	stream := token.Collect(t)
	first, ok := stream.First()
	if !ok {
		return FirstLastSpans(fallback, fallback)
	}
	last, _ := stream.Last()
	return FirstLastSpans(first.Span(), last.Span())
}

// FirstLastSpans is like [FirstLast], but takes the two spans directly.
func FirstLastSpans(first, last source.Span) *Policy {
	return &Policy{kind: firstLast, first: first, span: last, pending: true}
}

// Borrow returns a policy that forwards to p. State changes made through the
// returned policy are visible through p.
//
// Panics if p is nil.
func Borrow(p *Policy) *Policy {
	if p == nil {
		panic("goquote/respan: called Borrow() with a nil policy")
	}
	return &Policy{kind: borrowed, inner: p}
}

// NextSpan returns the span for the next token, advancing the policy's state.
//
// For a [FirstLast] policy this is not idempotent: the first call after
// construction or [Policy.Reset] returns the first span, and every later call
// returns the last span.
func (p *Policy) NextSpan() source.Span {
	switch p.kind {
	case fixed:
		return p.span
	case firstLast:
		if p.pending {
			p.pending = false
			return p.first
		}
		return p.span
	case borrowed:
		return p.inner.NextSpan()
	default:
		panic(fmt.Sprintf("goquote/respan: invalid policy kind %d", p.kind))
	}
}

// Peek returns the span that [Policy.NextSpan] would return, without
// advancing.
func (p *Policy) Peek() source.Span {
	switch p.kind {
	case firstLast:
		if p.pending {
			return p.first
		}
		return p.span
	case borrowed:
		return p.inner.Peek()
	default:
		return p.span
	}
}

// Reset rearms a [FirstLast] policy so that its next call to
// [Policy.NextSpan] returns the first span again. It has no effect on a
// [Fixed] policy.
func (p *Policy) Reset() {
	switch p.kind {
	case firstLast:
		p.pending = true
	case borrowed:
		p.inner.Reset()
	}
}

// IsFresh returns whether the next call to [Policy.NextSpan] will be the first
// one since construction or the last reset.
//
// This is always true for [Fixed] policies.
func (p *Policy) IsFresh() bool {
	switch p.kind {
	case firstLast:
		return p.pending
	case borrowed:
		return p.inner.IsFresh()
	default:
		return true
	}
}

// String implements [fmt.Stringer].
func (p *Policy) String() string {
	switch p.kind {
	case fixed:
		return fmt.Sprintf("Fixed(%v)", p.span)
	case firstLast:
		if p.pending {
			return fmt.Sprintf("FirstLast(%v, %v)", p.first, p.span)
		}
		return fmt.Sprintf("FirstLast(<taken>, %v)", p.span)
	case borrowed:
		return fmt.Sprintf("Borrow(%v)", p.inner)
	default:
		return fmt.Sprintf("Policy(%d)", p.kind)
	}
}
