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

package template_test

import (
	"go/ast"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/goquote/lexer"
	"github.com/bufbuild/goquote/quote"
	"github.com/bufbuild/goquote/source"
	"github.com/bufbuild/goquote/template"
	"github.com/bufbuild/goquote/token"
)

func TestClassify(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	vars := map[string]bool{"x": true, "z": true, "func": true}
	ops := template.Classify(lexer.MustLex("func f(x, y) + z"), func(name string) bool {
		return vars[name]
	})

	var kinds []template.OpKind
	for _, op := range ops {
		kinds = append(kinds, op.Kind)
	}
	assert.Equal([]template.OpKind{
		template.OpLiteral, // Keywords are never variables.
		template.OpLiteral,
		template.OpGroup,
		template.OpLiteral,
		template.OpVerbatim,
	}, kinds)

	group := ops[2]
	assert.Equal(token.Paren, group.Delimiter)
	require.Len(t, group.Body, 3)
	assert.Equal(template.OpVerbatim, group.Body[0].Kind)
	assert.Equal("x", group.Body[0].Text)
	assert.Equal(template.OpLiteral, group.Body[2].Kind)
	assert.Equal("y", group.Body[2].Text)
	assert.Equal("(x, y)", group.Span.Text())

	assert.Equal("func\nf\n(\n  $x\n  ,\n  y\n)\n+\n$z\n", template.Format(ops))
	assert.Empty(template.Classify(nil, nil))
	assert.Equal(template.OpLiteral, template.Classify(lexer.MustLex("x"), nil)[0].Kind)
}

func TestExpand(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	tmpl := template.Q("x + f(y, [y])")
	assert.Equal("template_test.go", filepath.Base(tmpl.Site().File))

	input := source.NewFile("input.go", "z")
	z := lexer.Lex(input, nil)

	q := quote.NewCallSite().Quote(tmpl.With(template.Vars{"y": z}))
	assert.Equal([]quote.Location{tmpl.Site()}, q.CallSites())

	tokens := q.Finish()
	assert.Equal("x + f ( z , [ z ] )", tokens.String())
	for tok := range tokens.Leaves() {
		if tok.Text() == "z" {
			assert.Equal(input.Span(0, 1), tok.Span())
		} else {
			assert.True(tok.Span().IsZero(), "%#v", tok)
		}
	}
}

func TestBind(t *testing.T) {
	t.Parallel()

	tmpl := template.Q("a")
	x := token.NewIdent("x", source.Span{})
	tests := []struct {
		name string
		vars template.Vars
		err  string
	}{
		{name: "ok", vars: template.Vars{"a": x}},
		{name: "nil", vars: template.Vars{"a": nil}, err: `template: variable "a" is nil`},
		{name: "keyword", vars: template.Vars{"func": x}, err: `template: variable name "func" is not an identifier`},
		{name: "spaces", vars: template.Vars{"a b": x}, err: `template: variable name "a b" is not an identifier`},
		{name: "empty", vars: template.Vars{"": x}, err: `template: variable name "" is not an identifier`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := tmpl.Bind(tt.vars)
			if tt.err == "" {
				require.NoError(t, err)
				assert.Equal(t, "x", quote.NewCallSite().Quote(f).String())
				return
			}
			assert.EqualError(t, err, tt.err)
			assert.Panics(t, func() { tmpl.With(tt.vars) })
		})
	}
}

func TestVarsSet(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var vars template.Vars
	vars.Set("a", token.NewIdent("first", source.Span{}))
	vars.Set("a", token.NewIdent("second", source.Span{}))
	assert.Len(vars, 1)

	q := quote.NewCallSite().Quote(template.Q("a").With(vars))
	assert.Equal("second", q.String())
}

func TestParse(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	_, err := template.Parse("f(")
	var unmatched *lexer.ErrUnmatched
	assert.ErrorAs(err, &unmatched)
	assert.Contains(err.Error(), "template: invalid template at ")
	assert.Panics(func() { template.Q("'unterminated") })

	tmpl, err := template.Parse("")
	require.NoError(t, err)
	assert.Empty(quote.NewCallSite().Quote(tmpl.Func()).Finish())
}

func TestMultilineExpr(t *testing.T) {
	t.Parallel()

	tmpl := template.Q(`
		f(x, 2) // call
	`)
	q := quote.NewCallSite().Quote(tmpl.With(template.Vars{"x": lexer.MustLex("y")}))
	assert.Equal(t, "f ( y , 2 )", q.String())

	p, err := quote.Parse[ast.Expr](q)
	require.NoError(t, err)
	assert.IsType(t, &ast.CallExpr{}, p.Node)
	assert.Equal(t, "f ( y , 2 )", p.Text())
}
