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

// Package gen compiles .go.yaml template files into Go functions that build
// quotes.
//
// Each template in a file becomes a function returning a quote.Func. The
// function's body replays the template's classified operations against the
// quote, and reports the template's position in the YAML file as its call
// site, so that a parse failure points at the YAML rather than at generated
// code.
package gen

import (
	"bytes"
	"cmp"
	_ "embed"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	gotoken "go/token"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/goquote/lexer"
	"github.com/bufbuild/goquote/quote"
	"github.com/bufbuild/goquote/report"
	"github.com/bufbuild/goquote/source"
	quotetemplate "github.com/bufbuild/goquote/template"
)

// Extension is the suffix of the files that the generator reads. The output
// path is the input path with the ".yaml" removed.
const Extension = ".go.yaml"

// ErrStale is returned by [Generator.File] in check mode when the generated
// file on disk does not match what would be generated.
var ErrStale = errors.New("generated file is out of date")

//go:embed gen.go.tmpl
var tmplText string

var tmpl = template.Must(template.New("gen.go.tmpl").Funcs(template.FuncMap{
	"makeDocs": makeDocs,
	"join":     strings.Join,
}).Parse(tmplText))

// Generator generates Go code from template files.
//
// The zero value is ready to use.
type Generator struct {
	// The package name used by files that do not specify one.
	Package string

	// If set, [Generator.File] does not write anything, and instead returns
	// [ErrStale] if the output is not up to date.
	Check bool

	// Where to log progress. May be nil.
	Logger *slog.Logger
}

// OutputPath returns the path of the Go file generated for path.
func OutputPath(path string) (string, error) {
	if !strings.HasSuffix(path, Extension) {
		return "", fmt.Errorf("file argument must end in %s", Extension)
	}
	return strings.TrimSuffix(path, ".yaml"), nil
}

// Generate compiles the template file text, read from path, into Go source.
//
// Problems with the templates themselves are returned as a *[report.AsError],
// whose diagnostics point into text.
func (g *Generator) Generate(path string, text []byte) ([]byte, error) {
	errs := new(report.Report)
	yamlFile := source.NewFile(path, string(text))

	var file File
	if err := yaml.Unmarshal(text, &file); err != nil {
		errs.Error(&report.ErrInFile{Err: err, Path: path})
		return nil, errs.AsError()
	}

	data := fileData{
		Source:  filepath.Base(path),
		Package: cmp.Or(file.Package, g.Package),
	}
	if data.Package == "" {
		errs.Errorf("missing package name").With(
			report.InFile(path),
			report.Help("set `package` at the top of the file, or pass a default package"),
		)
	}
	if len(file.Templates) == 0 {
		errs.Errorf("no templates to generate").With(report.InFile(path))
	}

	names := make(map[string]*yaml.Node)
	for i := range file.Templates {
		t := &file.Templates[i]
		c := compiler{file: yamlFile, errs: errs, source: data.Source}
		fn, ok := c.compile(t)
		if !ok {
			continue
		}

		if prev, ok := names[fn.Name]; ok {
			errs.Errorf("template %q is defined more than once", fn.Name).With(
				report.Snippet(nodeSpan(yamlFile, &t.Name)),
				report.Snippetf(nodeSpan(yamlFile, prev), "first defined here"),
			)
			continue
		}
		names[fn.Name] = &t.Name
		data.Funcs = append(data.Funcs, fn)
	}
	if errs.HasErrors() {
		return nil, errs.AsError()
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}

	out, _ := OutputPath(path)
	code, err := imports.Process(out, buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: generated invalid Go: %w", path, err)
	}

	g.logger().Debug("generated templates", "path", path, "package", data.Package, "templates", len(data.Funcs))
	return code, nil
}

// File generates the Go file for the template file at path, and writes it
// next to it. See [OutputPath].
func (g *Generator) File(path string) error {
	out, err := OutputPath(path)
	if err != nil {
		return err
	}
	text, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	code, err := g.Generate(path, text)
	if err != nil {
		return err
	}

	if g.Check {
		have, err := os.ReadFile(out)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if !bytes.Equal(have, code) {
			return fmt.Errorf("%s: %w", out, ErrStale)
		}
		g.logger().Debug("up to date", "path", out)
		return nil
	}

	g.logger().Info("writing", "path", out)
	return os.WriteFile(out, code, 0o644) //nolint:gosec // Generated code is not secret.
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return g.Logger
}

// fileData is the input to gen.go.tmpl.
type fileData struct {
	Source, Package string
	Funcs           []funcData
}

type funcData struct {
	Name, Docs string
	Params     []string
	Locals     []Var
	Body       string
}

// makeDocs converts text into a doc comment.
func makeDocs(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var out strings.Builder
	for _, c := range quote.Comment(text).List {
		out.WriteString(c.Text)
		out.WriteByte('\n')
	}
	return out.String()
}

// compiler compiles a single template.
type compiler struct {
	file   *source.File
	errs   *report.Report
	source string
}

func (c *compiler) compile(t *Template) (funcData, bool) {
	fn := funcData{Name: t.Name.Value, Docs: t.Docs}
	ok := true
	if !gotoken.IsIdentifier(fn.Name) {
		c.errs.Errorf("template name %q is not a valid Go identifier", fn.Name).With(
			report.Snippet(nodeSpan(c.file, &t.Name)),
			report.InFile(c.file.Path()),
		)
		ok = false
	}

	params := make(map[string]bool)
	for i := range t.Params {
		param := &t.Params[i]
		names, err := paramNames(param)
		if err != nil {
			c.errs.Errorf("invalid parameter %q: %v", param.Value, err).With(
				report.Snippet(nodeSpan(c.file, param)),
				report.InFile(c.file.Path()),
			)
			ok = false
			continue
		}
		for _, name := range names {
			if params[name] {
				c.errs.Errorf("parameter %q is declared more than once", name).With(
					report.Snippet(nodeSpan(c.file, param)),
				)
				ok = false
			}
			params[name] = true
		}
		fn.Params = append(fn.Params, param.Value)
	}

	vars := make(map[string]*Var)
	for i := range t.Vars {
		v := &t.Vars[i]
		span := nodeSpan(c.file, v.node)
		switch {
		case !gotoken.IsIdentifier(v.Name):
			c.errs.Errorf("variable name %q is not a valid Go identifier", v.Name).With(report.Snippet(span))
			ok = false
			continue
		case vars[v.Name] != nil:
			c.errs.Errorf("variable %q is declared more than once", v.Name).With(
				report.Snippet(span),
				report.Snippetf(nodeSpan(c.file, vars[v.Name].node), "first declared here"),
			)
			ok = false
			continue
		}
		vars[v.Name] = v

		switch {
		case !v.IsShorthand():
			fn.Locals = append(fn.Locals, *v)
		case !params[v.Name]:
			fn.Params = append(fn.Params, v.Name+" token.ToTokens")
		}
	}

	if t.Body.Kind != yaml.ScalarNode {
		c.errs.Errorf("template %q has no body", fn.Name).With(
			report.Snippet(nodeSpan(c.file, &t.Name)),
			report.InFile(c.file.Path()),
			report.Help("`body` must be a string of Go source"),
		)
		return fn, false
	}

	n := len(c.errs.Diagnostics)
	body := source.NewFile(fmt.Sprintf("%s:%s", c.file.Path(), fn.Name), t.Body.Value)
	tokens := lexer.Lex(body, c.errs)
	if len(c.errs.Diagnostics) > n {
		return fn, false
	}

	ops := quotetemplate.Classify(tokens, func(name string) bool { return vars[name] != nil })
	used := make(map[string]bool)
	markUsed(ops, used)
	for i := range t.Vars {
		v := &t.Vars[i]
		if vars[v.Name] == v && !used[v.Name] {
			c.errs.Errorf("variable %q is never used in the body of %q", v.Name, fn.Name).With(
				report.Snippet(nodeSpan(c.file, v.node)),
			)
			ok = false
		}
	}

	e := emitter{pos: newPositioner(c.file, c.source, &t.Body)}
	e.site(source.Span{})
	e.ops(ops)
	fn.Body = e.String()
	return fn, ok
}

// paramNames returns the names declared by one entry of a template's params,
// which is parsed as the parameter list of a function type.
func paramNames(param *yaml.Node) ([]string, error) {
	if param.Kind != yaml.ScalarNode {
		return nil, errors.New("expected a string")
	}
	expr, err := parser.ParseExpr("func(" + param.Value + ")")
	if err != nil {
		return nil, err
	}
	fn, ok := expr.(*ast.FuncType)
	if !ok || fn.Results != nil {
		return nil, errors.New("expected `name type`")
	}

	var names []string
	for _, field := range fn.Params.List {
		if len(field.Names) == 0 {
			return nil, errors.New("every parameter must be named")
		}
		for _, name := range field.Names {
			names = append(names, name.Name)
		}
	}
	if len(names) == 0 {
		return nil, errors.New("expected `name type`")
	}
	return names, nil
}

func markUsed(ops []quotetemplate.Op, used map[string]bool) {
	for _, op := range ops {
		switch op.Kind {
		case quotetemplate.OpVerbatim:
			used[op.Text] = true
		case quotetemplate.OpGroup:
			markUsed(op.Body, used)
		}
	}
}

// nodeSpan returns the span of a scalar node in the YAML file.
func nodeSpan(file *source.File, node *yaml.Node) source.Span {
	if node == nil || node.Line == 0 {
		return source.Span{}
	}

	start, _ := file.LineOffsets(node.Line)
	end := start + len(file.Line(node.Line))
	offset := min(start+node.Column-1, end)
	return file.Span(offset, min(offset+max(len(node.Value), 1), end))
}
