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

package gen_test

import (
	"bytes"
	"errors"
	"go/ast"
	"go/parser"
	gotoken "go/token"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/goquote/internal/gen"
	"github.com/bufbuild/goquote/report"
)

const outputYAML = `package: example
templates:
  - name: Output
    docs: |
      Output quotes a function named Name that returns value.
    params: ["value token.ToTokens"]
    vars:
      - Name
      - Value: value
    body: |
      func Name() string {
          return Value
      }
  - name: Call
    vars: [F]
    body: "F(1, 2)"
`

func TestGenerate(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	g := gen.Generator{
		Logger: slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
	code, err := g.Generate("testdata/output.go.yaml", []byte(outputYAML))
	require.NoError(t, err)
	text := string(code)

	assert.True(t, strings.HasPrefix(text, "// Code generated by quotegen. DO NOT EDIT.\n"))
	for _, want := range []string{
		"package example\n",
		"// Output quotes a function named Name that returns value.\n",
		"func Output(value token.ToTokens, Name token.ToTokens) quote.Func {",
		"Value := value\n",
		`q.ReportCallSite(quote.Location{File: "output.go.yaml", Line: 10, Column: 11})`,
		`q.AppendLiteral("func")`,
		`q.AppendVerbatim(Name)`,
		"q.OpenGroup(token.Paren, func(q *quote.Quote) {",
		`q.ReportCallSite(quote.Location{File: "output.go.yaml", Line: 11, Column: 16})`,
		"q.OpenGroup(token.Brace, func(q *quote.Quote) {",
		`q.ReportCallSite(quote.Location{File: "output.go.yaml", Line: 11, Column: 26})`,
		`q.AppendVerbatim(Value)`,
		"func Call(F token.ToTokens) quote.Func {",
		`q.ReportCallSite(quote.Location{File: "output.go.yaml", Line: 16, Column: 11})`,
		`q.ReportCallSite(quote.Location{File: "output.go.yaml", Line: 16, Column: 13})`,
		`q.AppendLiteral("1")`,
	} {
		assert.Contains(t, text, want)
	}
	assert.Contains(t, logs.String(), "generated templates")
	assert.Contains(t, logs.String(), "templates=2")

	fset := gotoken.NewFileSet()
	file, err := parser.ParseFile(fset, "output.go", code, parser.ParseComments)
	require.NoError(t, err)

	var funcs, imports []string
	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok {
			funcs = append(funcs, fn.Name.Name)
		}
	}
	for _, imp := range file.Imports {
		imports = append(imports, imp.Path.Value)
	}
	assert.Empty(t, cmp.Diff([]string{"Output", "Call"}, funcs))
	assert.Empty(t, cmp.Diff([]string{
		`"github.com/bufbuild/goquote/quote"`,
		`"github.com/bufbuild/goquote/token"`,
	}, imports))
}

func TestGenerateDefaultPackage(t *testing.T) {
	t.Parallel()

	const input = `templates:
  - name: Zero
    body: "0"
`
	g := gen.Generator{Package: "fallback"}
	code, err := g.Generate("zero.go.yaml", []byte(input))
	require.NoError(t, err)
	assert.Contains(t, string(code), "package fallback\n")
	// Nothing refers to the token package, so the import is dropped.
	assert.NotContains(t, string(code), "goquote/token")
}

func TestGenerateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, input string
		want        []string
	}{
		{
			name:  "no-package",
			input: "templates: [{name: X, body: x}]\n",
			want:  []string{"error: a.go.yaml: missing package name"},
		},
		{
			name:  "no-templates",
			input: "package: p\n",
			want:  []string{"error: a.go.yaml: no templates to generate"},
		},
		{
			name:  "bad-name",
			input: "package: p\ntemplates:\n  - name: 1x\n    body: x\n",
			want:  []string{`error: a.go.yaml:3:11: template name "1x" is not a valid Go identifier`},
		},
		{
			name: "duplicate-template",
			input: "package: p\ntemplates:\n" +
				"  - name: X\n    body: x\n" +
				"  - name: X\n    body: y\n",
			want: []string{`error: a.go.yaml:5:11: template "X" is defined more than once`},
		},
		{
			name: "duplicate-var",
			input: "package: p\ntemplates:\n  - name: X\n" +
				"    vars: [a, a]\n    body: a\n",
			want: []string{`error: a.go.yaml:4:15: variable "a" is declared more than once`},
		},
		{
			name: "unused-var",
			input: "package: p\ntemplates:\n  - name: X\n" +
				"    vars: [a, b]\n    body: a\n",
			want: []string{`error: a.go.yaml:4:15: variable "b" is never used in the body of "X"`},
		},
		{
			name:  "no-body",
			input: "package: p\ntemplates:\n  - name: X\n",
			want:  []string{`error: a.go.yaml:3:11: template "X" has no body`},
		},
		{
			name:  "unmatched",
			input: "package: p\ntemplates:\n  - name: X\n    body: \"f(\"\n",
			want:  []string{"error: a.go.yaml:X:1:2: encountered unmatched `(` delimiter"},
		},
		{
			name: "unnamed-params",
			input: "package: p\ntemplates:\n  - name: X\n" +
				"    params: [\"a, b\"]\n    body: x\n",
			want: []string{`error: a.go.yaml:4:14: invalid parameter "a, b": every parameter must be named`},
		},
		{
			name: "duplicate-param",
			input: "package: p\ntemplates:\n  - name: X\n" +
				"    params: [\"a T\", \"a U\"]\n    body: x\n",
			want: []string{`error: a.go.yaml:4:21: parameter "a" is declared more than once`},
		},
		{
			name:  "bad-var",
			input: "package: p\ntemplates:\n  - name: X\n    vars: [{a: 1, b: 2}]\n    body: a\n",
			want:  []string{"a variable must be written as `name` or `name: expression`"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := new(gen.Generator).Generate("a.go.yaml", []byte(test.input))
			require.Error(t, err)

			var asErr *report.AsError
			require.True(t, errors.As(err, &asErr))
			for _, want := range test.want {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestGenerateGroupedParams(t *testing.T) {
	t.Parallel()

	const input = `package: p
templates:
  - name: Sum
    params: ["a, b token.ToTokens"]
    vars: [a, b]
    body: a + b
`
	code, err := new(gen.Generator).Generate("sum.go.yaml", []byte(input))
	require.NoError(t, err)
	assert.Contains(t, string(code), "func Sum(a, b token.ToTokens) quote.Func {")

	_, err = parser.ParseFile(gotoken.NewFileSet(), "sum.go", code, 0)
	require.NoError(t, err)
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	out, err := gen.OutputPath("a/b/c.go.yaml")
	require.NoError(t, err)
	assert.Equal(t, "a/b/c.go", out)

	_, err = gen.OutputPath("c.yaml")
	assert.Error(t, err)
}

func TestFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "output.go.yaml")
	require.NoError(t, os.WriteFile(path, []byte(outputYAML), 0o600))

	check := gen.Generator{Check: true}
	assert.ErrorIs(t, check.File(path), gen.ErrStale)

	require.NoError(t, new(gen.Generator).File(path))
	code, err := os.ReadFile(filepath.Join(dir, "output.go"))
	require.NoError(t, err)
	assert.Contains(t, string(code), "func Output(")

	assert.NoError(t, check.File(path))
}
