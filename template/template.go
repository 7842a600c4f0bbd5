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

// Package template expands Go-syntax templates into quotes at runtime.
//
// A template is Go source in which some identifiers are placeholders:
//
//	tmpl := template.Q(`func Name() string { return Value }`)
//	q := quote.FromTokens(decl).Quote(tmpl.With(template.Vars{
//		"Name":  token.NewIdent("Output", span),
//		"Value": value,
//	}))
//
// The template is lexed once, when it is created. Each expansion appends the
// template's tokens to a quote: placeholders are replaced by the tokens of
// their values, spliced in verbatim, and every other token is respanned by
// the quote's policy. Expansions report the location that created the
// template as a call site.
package template

import (
	"fmt"

	"github.com/bufbuild/goquote/lexer"
	"github.com/bufbuild/goquote/quote"
	"github.com/bufbuild/goquote/report"
	"github.com/bufbuild/goquote/source"
	"github.com/bufbuild/goquote/token"
)

// Template is a lexed Go-syntax template.
type Template struct {
	site   quote.Location
	tokens token.Stream
}

// Vars are the values bound to a template's placeholders, by name.
type Vars map[string]token.ToTokens

// Set binds name to value, replacing any previous binding.
func (v *Vars) Set(name string, value token.ToTokens) {
	if *v == nil {
		*v = make(Vars)
	}
	(*v)[name] = value
}

// Parse lexes text into a template. The caller of Parse is recorded as the
// template's call site.
func Parse(text string) (*Template, error) {
	return parse(text, quote.Caller(1))
}

// Q is like [Parse], but panics if text does not lex. It is meant for
// templates that are string constants in a generator's source.
func Q(text string) *Template {
	t, err := parse(text, quote.Caller(1))
	if err != nil {
		panic(err)
	}
	return t
}

func parse(text string, site quote.Location) (*Template, error) {
	errs := new(report.Report)
	file := source.NewFile(fmt.Sprintf("template@%v", site), text)
	tokens := lexer.Lex(file, errs)
	if err := errs.AsError(); err != nil {
		return nil, fmt.Errorf("template: invalid template at %v: %w", site, err)
	}
	return &Template{site: site, tokens: tokens}, nil
}

// Site returns the location this template was created at.
func (t *Template) Site() quote.Location {
	return t.site
}

// Tokens returns the template's tokens.
func (t *Template) Tokens() token.Stream {
	return t.tokens
}

// Ops classifies the template's tokens with vars as its variables.
func (t *Template) Ops(vars Vars) []Op {
	return Classify(t.tokens, func(name string) bool {
		_, ok := vars[name]
		return ok
	})
}

// Bind returns a function that expands this template into a quote, with the
// given placeholder values.
//
// Only identifiers can be placeholders: a name in vars that is not a valid
// identifier, or that is a keyword, is an error. So is a nil value.
func (t *Template) Bind(vars Vars) (quote.Func, error) {
	for name, value := range vars {
		if err := checkVar(name, value); err != nil {
			return nil, err
		}
	}

	ops := t.Ops(vars)
	return func(q *quote.Quote) {
		q.ReportCallSite(t.site)
		expand(q, ops, vars, t.site)
	}, nil
}

// With is like [Template.Bind], but panics on error.
func (t *Template) With(vars Vars) quote.Func {
	f, err := t.Bind(vars)
	if err != nil {
		panic(err)
	}
	return f
}

// Func returns a function that expands this template, which has no
// placeholders.
func (t *Template) Func() quote.Func {
	return t.With(nil)
}

func expand(q *quote.Quote, ops []Op, vars Vars, site quote.Location) {
	for _, op := range ops {
		switch op.Kind {
		case OpLiteral:
			q.AppendLiteral(op.Text)
		case OpVerbatim:
			q.AppendVerbatim(vars[op.Text])
		case OpGroup:
			q.OpenGroup(op.Delimiter, func(q *quote.Quote) {
				q.ReportCallSite(site)
				expand(q, op.Body, vars, site)
			})
		}
	}
}

func checkVar(name string, value token.ToTokens) error {
	if value == nil {
		return fmt.Errorf("template: variable %q is nil", name)
	}
	tokens, err := lexer.LexString(name)
	if err != nil || len(tokens) != 1 || tokens[0].Kind() != token.Ident {
		return fmt.Errorf("template: variable name %q is not an identifier", name)
	}
	return nil
}
