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
	"maps"
	"slices"

	"github.com/bufbuild/goquote/lexer"
	"github.com/bufbuild/goquote/respan"
	"github.com/bufbuild/goquote/source"
	"github.com/bufbuild/goquote/token"
)

const invalidState = "quote: span policy is in an invalid state; a function passed to OpenGroup must not panic"

// Func is a function that quotes tokens into a [Quote].
type Func func(q *Quote)

// Quote is a buffer for span-aware quasi-quoting.
//
// A Quote exclusively owns its [respan.Policy]. While a group is being built
// by [Quote.OpenGroup], the policy belongs to the nested quote; if the
// function building the group panics, the policy is never returned and the
// Quote is unusable from then on.
//
// A Quote is not safe for concurrent use.
type Quote struct {
	tokens token.Stream

	// Nil only while OpenGroup is running, or after it panicked.
	policy *respan.Policy

	sites map[Location]struct{}
	done  bool
}

// New returns a new quote that spans tokens using policy.
//
// Panics if policy is nil.
func New(policy *respan.Policy) *Quote {
	if policy == nil {
		panic("goquote/quote: called New() with a nil policy")
	}
	return &Quote{
		policy: policy,
		sites:  make(map[Location]struct{}),
	}
}

// NewCallSite returns a new quote whose tokens all have the zero span.
func NewCallSite() *Quote {
	return New(respan.Fixed(source.Span{}))
}

// FromTokens returns a new quote whose first token is spanned like the first
// leaf of t, and whose remaining tokens are spanned like the last leaf of t.
func FromTokens(t token.ToTokens) *Quote {
	return New(respan.FirstLast(t, source.Span{}))
}

// FromTokensOr is like [FromTokens], but if t has no leaves, every token gets
// fallback instead. This includes a nil t and a nil [token.Stream].
func FromTokensOr(t token.ToTokens, fallback source.Span) *Quote {
	stream := token.Collect(t)
	if _, ok := stream.First(); !ok {
		return New(respan.Fixed(fallback))
	}
	return FromTokens(stream)
}

// Quote calls f on q, and returns q.
func (q *Quote) Quote(f Func) *Quote {
	q.check()
	f(q)
	return q
}

// AppendLiteral lexes text and appends the resulting tokens to q, with every
// leaf respanned by the quote's policy in source order. A group gets the
// span the policy would give the next token when the group is reached.
//
// Panics with a [*LiteralError] if text does not lex; a literal that is not
// valid Go is a bug in the template.
func (q *Quote) AppendLiteral(text string) {
	q.check()
	stream, err := lexer.LexString(text)
	if err != nil {
		panic(&LiteralError{Text: text, Err: err})
	}
	q.tokens = q.respan(q.tokens, stream)
}

// AppendIdent appends an identifier with the given name, respanned by the
// quote's policy.
func (q *Quote) AppendIdent(name string) {
	q.check()
	q.tokens = append(q.tokens, token.NewIdent(name, q.policy.NextSpan()))
}

// AppendRaw appends tok as-is.
func (q *Quote) AppendRaw(tok token.Token) {
	q.check()
	q.tokens = tok.AppendTokens(q.tokens)
}

// AppendVerbatim appends the tokens of t without respanning them. Does
// nothing if t is nil.
func (q *Quote) AppendVerbatim(t token.ToTokens) {
	q.check()
	if t != nil {
		q.tokens = t.AppendTokens(q.tokens)
	}
}

// OpenGroup appends a group with the given delimiter, whose contents are
// built by calling build on a nested quote.
//
// The nested quote takes over q's policy while build runs, so any state the
// policy accumulates carries back over to q. The group's own span is the one
// the policy would have given the next token when the group was opened.
// Call sites reported to the nested quote are added to q.
//
// build must not panic. If it does, q becomes permanently unusable.
func (q *Quote) OpenGroup(delim token.Delimiter, build Func) {
	q.check()

	policy := q.policy
	q.policy = nil

	span := policy.Peek()
	child := New(policy)
	build(child)

	if child.policy == nil {
		// The nested quote was left without a policy, by way of a recovered
		// panic within it. Leave q poisoned too.
		panic(invalidState)
	}

	maps.Copy(q.sites, child.sites)
	q.policy = child.policy
	child.policy = nil
	child.done = true

	q.tokens = append(q.tokens, token.NewGroup(delim, span, child.tokens))
}

// ReportCallSite records loc as a location that quasi-quoting was invoked
// from. Reporting the same location more than once has no effect.
func (q *Quote) ReportCallSite(loc Location) {
	q.check()
	q.sites[loc] = struct{}{}
}

// Finish consumes q and returns its tokens.
func (q *Quote) Finish() token.Stream {
	q.check()
	q.done = true
	return q.tokens
}

// CallSites returns the call sites recorded so far, in no particular order.
func (q *Quote) CallSites() []Location {
	return slices.Collect(maps.Keys(q.sites))
}

// Policy returns the policy q currently owns.
//
// Returns nil while q is building a group, or if it has been poisoned.
func (q *Quote) Policy() *respan.Policy {
	return q.policy
}

// Len returns the number of tokens appended to q so far, counting each group
// once.
func (q *Quote) Len() int {
	return len(q.tokens)
}

// AppendTokens implements [token.ToTokens].
func (q *Quote) AppendTokens(dst token.Stream) token.Stream {
	return append(dst, q.tokens...)
}

// String implements [fmt.Stringer].
func (q *Quote) String() string {
	return q.tokens.String()
}

// check panics if q cannot be used.
func (q *Quote) check() {
	switch {
	case q.done:
		panic("goquote/quote: use of a finished Quote")
	case q.policy == nil:
		panic(invalidState)
	}
}

// respan appends a copy of stream to dst, respanning it with q's policy.
func (q *Quote) respan(dst, stream token.Stream) token.Stream {
	for _, tok := range stream {
		if tok.Kind() != token.Group {
			dst = append(dst, tok.WithSpan(q.policy.NextSpan()))
			continue
		}

		span := q.policy.Peek()
		children := q.respan(nil, tok.Children())
		dst = append(dst, token.NewGroup(tok.Delimiter(), span, children))
	}
	return dst
}
