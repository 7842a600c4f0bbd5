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

package quote_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/goquote/lexer"
	"github.com/bufbuild/goquote/quote"
	"github.com/bufbuild/goquote/respan"
	"github.com/bufbuild/goquote/source"
	"github.com/bufbuild/goquote/token"
)

const invalidState = "quote: span policy is in an invalid state; a function passed to OpenGroup must not panic"

// spans returns a and b, two distinct spans in a generator's source file.
func spans() (a, b source.Span) {
	file := source.NewFile("gen.go", "ab")
	return file.Span(0, 1), file.Span(1, 2)
}

func TestReportCallSite(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	q := quote.NewCallSite()
	loc := quote.NewLocation("gen.go", 10, 4)
	q.ReportCallSite(loc)
	q.ReportCallSite(loc)
	assert.Equal([]quote.Location{loc}, q.CallSites())

	q.ReportCallSite(quote.NewLocation("gen.go", 10, 5))
	assert.Len(q.CallSites(), 2)
}

func TestAppendVerbatim(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	input := source.NewFile("input.go", "a + b")
	existing := lexer.Lex(input, nil)
	gen, _ := spans()

	q := quote.New(respan.Fixed(gen))
	q.AppendVerbatim(existing)
	q.AppendLiteral("a + b")
	q.AppendVerbatim(nil)
	tokens := q.Finish()
	require.Len(t, tokens, 6)

	assert.Equal(existing, tokens[:3])
	for i, tok := range tokens[3:] {
		assert.Equal(existing[i].Text(), tok.Text())
		assert.Equal(gen, tok.Span())
		assert.NotEqual(existing[i].Span(), tok.Span())
	}
}

func TestAppendLiteral(t *testing.T) {
	t.Parallel()

	a, b := spans()
	tests := []struct {
		name, text string
		want       []source.Span // Spans of each token, in rendering order.
	}{
		{name: "leaves", text: "x + y", want: []source.Span{a, b, b}},
		{name: "group-after-leaf", text: "f(x)", want: []source.Span{a, b, b}},
		{name: "group-first", text: "(x)", want: []source.Span{a, a}},
		{name: "nested", text: "[]T{1}", want: []source.Span{a, a, b, b}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q := quote.New(respan.FirstLastSpans(a, b))
			q.AppendLiteral(tt.text)

			var got []source.Span
			var walk func(token.Stream)
			walk = func(s token.Stream) {
				for _, tok := range s {
					got = append(got, tok.Span())
					walk(tok.Children())
				}
			}
			walk(q.Finish())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAppendLiteralError(t *testing.T) {
	t.Parallel()

	q := quote.NewCallSite()
	var r any
	func() {
		defer func() { r = recover() }()
		q.AppendLiteral(`"unterminated`)
	}()

	err, ok := r.(*quote.LiteralError)
	require.True(t, ok, "%#v", r)
	assert.Contains(t, err.Error(), `quote: failed to lex "\"unterminated"`)
	assert.Equal(t, 0, q.Len())
}

func TestAppendIdent(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	a, b := spans()
	q := quote.New(respan.FirstLastSpans(a, b))
	q.AppendIdent("x")
	q.AppendIdent("type")
	q.AppendRaw(token.NewPunct(";", source.Span{}))

	tokens := q.Finish()
	assert.Equal(token.Ident, tokens[0].Kind())
	assert.Equal(a, tokens[0].Span())
	assert.Equal(token.Keyword, tokens[1].Kind())
	assert.Equal(b, tokens[1].Span())
	assert.True(tokens[2].Span().IsZero())
}

func TestOpenGroup(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	outer := quote.NewLocation("gen.go", 1, 1)
	inner := quote.NewLocation("gen.go", 2, 5)

	q := quote.NewCallSite()
	q.ReportCallSite(outer)
	q.OpenGroup(token.Paren, func(q *quote.Quote) {
		q.ReportCallSite(inner)
		q.AppendLiteral("1")
		q.AppendLiteral("2")
	})

	assert.ElementsMatch([]quote.Location{outer, inner}, q.CallSites())
	tokens := q.Finish()
	require.Len(t, tokens, 1)
	group := tokens[0]
	assert.Equal(token.Group, group.Kind())
	assert.Equal(token.Paren, group.Delimiter())

	children := group.Children()
	require.Len(t, children, 2)
	assert.Equal("1", children[0].Text())
	assert.Equal("2", children[1].Text())
	assert.True(children[0].IsLeaf())
	assert.True(children[1].IsLeaf())
}

func TestOpenGroupPolicy(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	a, b := spans()
	policy := respan.FirstLastSpans(a, b)
	q := quote.New(policy)
	q.OpenGroup(token.Brace, func(child *quote.Quote) {
		assert.Same(policy, child.Policy())
		assert.Nil(q.Policy())
		child.AppendLiteral("x")
	})

	assert.Same(policy, q.Policy())
	assert.False(policy.IsFresh())
	q.AppendLiteral("y")

	tokens := q.Finish()
	require.Len(t, tokens, 2)
	assert.Equal(a, tokens[0].Span(), "group")
	assert.Equal(a, tokens[0].Children()[0].Span(), "x")
	assert.Equal(b, tokens[1].Span(), "y")

	// Siblings don't get to see the first span again.
	q = quote.New(respan.FirstLastSpans(a, b))
	q.OpenGroup(token.Paren, func(q *quote.Quote) { q.AppendLiteral("x") })
	q.OpenGroup(token.Paren, func(q *quote.Quote) { q.AppendLiteral("y") })
	tokens = q.Finish()
	assert.Equal(a, tokens[0].Children()[0].Span())
	assert.Equal(b, tokens[1].Span())
	assert.Equal(b, tokens[1].Children()[0].Span())
}

func TestPoisoned(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	q := quote.NewCallSite()
	assert.PanicsWithValue("boom", func() {
		q.OpenGroup(token.Paren, func(*quote.Quote) { panic("boom") })
	})
	assert.Nil(q.Policy())
	assert.PanicsWithValue(invalidState, func() { q.AppendLiteral("x") })
	assert.PanicsWithValue(invalidState, func() { q.ReportCallSite(quote.Location{}) })
	assert.PanicsWithValue(invalidState, func() { q.Finish() })

	// A nested quote that was poisoned inside a group poisons its parent too,
	// even if the panic was recovered.
	q = quote.NewCallSite()
	assert.PanicsWithValue(invalidState, func() {
		q.OpenGroup(token.Paren, func(child *quote.Quote) {
			defer func() { _ = recover() }()
			child.OpenGroup(token.Brace, func(*quote.Quote) { panic("boom") })
		})
	})
	assert.Nil(q.Policy())
}

func TestFinished(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	q := quote.NewCallSite().Quote(func(q *quote.Quote) {
		q.AppendLiteral("a.b")
	})
	assert.Equal(3, q.Len())
	assert.Equal("a . b", q.String())

	// A quote can be spliced into another.
	other := quote.NewCallSite()
	other.AppendVerbatim(q)
	other.AppendLiteral("()")
	assert.Equal("a . b ()", other.String())

	q.Finish()
	assert.Panics(func() { q.Finish() })
	assert.Panics(func() { q.AppendIdent("x") })
	assert.Equal("a . b", q.String())
}

func TestFromTokens(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	input := source.NewFile("input.go", "x.y")
	tokens := lexer.Lex(input, nil)

	q := quote.FromTokens(tokens)
	q.AppendLiteral("a + b")
	out := q.Finish()
	assert.Equal(input.Span(0, 1), out[0].Span())
	assert.Equal(input.Span(2, 3), out[1].Span())
	assert.Equal(input.Span(2, 3), out[2].Span())

	_, fallback := spans()
	for _, empty := range []token.ToTokens{nil, token.Stream(nil), lexer.MustLex("()")} {
		q = quote.FromTokensOr(empty, fallback)
		q.AppendLiteral("a + b")
		for _, tok := range q.Finish() {
			assert.Equal(fallback, tok.Span(), "%#v", empty)
		}
	}

	q = quote.FromTokensOr(tokens, fallback)
	q.AppendLiteral("a")
	assert.Equal(input.Span(0, 1), q.Finish()[0].Span())

	assert.Panics(func() { quote.New(nil) })
}
