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
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	gotoken "go/token"
	"os"
	"reflect"

	"github.com/bufbuild/goquote/internal/interval"
	"github.com/bufbuild/goquote/source"
	"github.com/bufbuild/goquote/token"
)

// DumpEnv is the environment variable that, when set to any value, makes a
// [ParseError] include the tokens that failed to parse.
const DumpEnv = "DBG_DUMP"

// RenderedPath is the file name the parser sees for quoted code.
const RenderedPath = "<quote>"

var (
	fileType = reflect.TypeFor[*ast.File]()
	exprType = reflect.TypeFor[ast.Expr]()
	stmtType = reflect.TypeFor[ast.Stmt]()
	declType = reflect.TypeFor[ast.Decl]()
)

// Parsed is the result of parsing a [Quote].
type Parsed[N ast.Node] struct {
	// The parsed node.
	Node N

	// The file set Node's positions refer to.
	Fset *gotoken.FileSet

	*sourceMap
}

// Parse consumes q and parses its tokens as N.
//
// N must be *[ast.File], or a type implementing [ast.Expr], [ast.Stmt], or
// [ast.Decl]. Statements and declarations must consist of exactly one node.
// If the parsed node is not an N, for example when N is *[ast.CallExpr] but
// the tokens form a binary expression, that is also a parse failure.
//
// Errors are always a [*ParseError].
func Parse[N ast.Node](q *Quote) (*Parsed[N], error) {
	sites := q.CallSites()
	tokens := q.Finish()

	p := &Parsed[N]{
		Fset:      gotoken.NewFileSet(),
		sourceMap: newSourceMap(tokens),
	}

	node, err := p.parse(reflect.TypeFor[N]())
	if err == nil {
		var ok bool
		if p.Node, ok = node.(N); !ok {
			err = fmt.Errorf("expected %v, got %T", reflect.TypeFor[N](), node)
		}
	}

	if err != nil {
		_, dump := os.LookupEnv(DumpEnv)
		return nil, &ParseError{
			Err:        err,
			Sites:      sites,
			Tokens:     tokens,
			ShowTokens: dump,
			Span:       p.errorSpan(err),
		}
	}
	return p, nil
}

// MustParse is like [Parse], but panics with the [*ParseError] on failure.
func MustParse[N ast.Node](q *Quote) N {
	p, err := Parse[N](q)
	if err != nil {
		panic(err)
	}
	return p.Node
}

// Span returns the span of the token at pos, as stamped by the quote that
// produced it.
//
// Returns the zero span if pos does not fall on a token, or if the token had
// no span.
func (p *Parsed[N]) Span(pos gotoken.Pos) source.Span {
	file := p.Fset.File(pos)
	if file == nil {
		return source.Span{}
	}
	return p.lookup(file.Offset(pos))
}

// parse runs the parser appropriate for typ over the rendered tokens.
func (p *Parsed[N]) parse(typ reflect.Type) (ast.Node, error) {
	const mode = parser.SkipObjectResolution

	switch {
	case typ == fileType:
		return parser.ParseFile(p.Fset, RenderedPath, p.text, mode)

	case typ.Implements(exprType):
		return parser.ParseExprFrom(p.Fset, RenderedPath, p.text, mode)

	case typ.Implements(declType):
		f, err := p.parseWrapped(declPrefix, "", mode)
		if err != nil {
			return nil, err
		}
		if len(f.Decls) != 1 {
			return nil, fmt.Errorf("expected exactly one declaration, got %d", len(f.Decls))
		}
		return f.Decls[0], nil

	case typ.Implements(stmtType):
		f, err := p.parseWrapped(stmtPrefix, stmtSuffix, mode)
		if err != nil {
			return nil, err
		}
		body := f.Decls[0].(*ast.FuncDecl).Body.List //nolint:forcetypeassert // Always the wrapper.
		if len(body) != 1 {
			return nil, fmt.Errorf("expected exactly one statement, got %d", len(body))
		}
		return body[0], nil

	default:
		panic(fmt.Sprintf("goquote/quote: cannot parse %v; it must be *ast.File or implement ast.Expr, ast.Stmt, or ast.Decl", typ))
	}
}

// The line directive in each prefix makes positions in parser errors refer
// to the rendered tokens rather than to the wrapper.
const (
	declPrefix = "package _\n//line " + RenderedPath + ":1:1\n"
	stmtPrefix = "package _\nfunc _() {\n//line " + RenderedPath + ":1:1\n"
	stmtSuffix = "\n}\n"
)

func (p *Parsed[N]) parseWrapped(prefix, suffix string, mode parser.Mode) (*ast.File, error) {
	p.prefix = len(prefix)
	return parser.ParseFile(p.Fset, RenderedPath, prefix+p.text+suffix, mode)
}

// sourceMap maps byte offsets in rendered tokens back to the spans of those
// tokens.
type sourceMap struct {
	text   string
	prefix int // Bytes the parser saw before text.
	spans  interval.Map[int, source.Span]
}

func newSourceMap(tokens token.Stream) *sourceMap {
	m := new(sourceMap)
	m.text = tokens.Render(func(tok token.Token, start, end int) {
		m.spans.Insert(start, end-1, tok.Span())
	})
	return m
}

// Text returns the source text that was handed to the parser, excluding any
// wrapping needed to parse a statement or declaration.
func (m *sourceMap) Text() string {
	return m.text
}

// lookup returns the span for the token at the given parser offset.
func (m *sourceMap) lookup(offset int) source.Span {
	found := m.spans.Get(offset - m.prefix)
	if found.Value == nil {
		return source.Span{}
	}
	return *found.Value
}

// errorSpan returns the span of the token the parser failed at, if it can
// be found.
func (m *sourceMap) errorSpan(err error) source.Span {
	var list scanner.ErrorList
	if !errors.As(err, &list) || len(list) == 0 {
		return source.Span{}
	}
	return m.lookup(list[0].Pos.Offset)
}
