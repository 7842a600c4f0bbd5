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

package report_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/goquote/report"
	"github.com/bufbuild/goquote/source"
)

type unclosed struct {
	span source.Span
}

func (e unclosed) Error() string { return "unclosed `(`" }

func (e unclosed) Diagnose(d *report.Diagnostic) {
	d.With(
		report.Snippetf(e.span, "opened here"),
		report.Help("add a `)`"),
	)
}

func TestRender(t *testing.T) {
	t.Parallel()

	file := source.NewFile("a.go", "x := f(y\n")
	r := new(report.Report)
	r.Error(unclosed{file.Span(6, 7)})

	want := strings.Join([]string{
		"error: unclosed `(`",
		"  --> a.go:1:7",
		"   |",
		" 1 | x := f(y",
		"   |       ^ opened here",
		"   = help: add a `)`",
		"",
		"encountered 1 error",
		"",
	}, "\n")
	assert.Equal(t, want, report.Renderer{}.RenderString(r))
	assert.Equal(t, "error: a.go:1:7: unclosed `(`", report.Renderer{Compact: true}.RenderString(r))
}

func TestRenderTabs(t *testing.T) {
	t.Parallel()

	file := source.NewFile("a.go", "\tfoo bar")
	r := new(report.Report)
	r.Warnf("unused").With(report.Snippet(file.Span(5, 8)))

	out := report.Renderer{}.RenderString(r)
	assert.Contains(t, out, " 1 |     foo bar\n")
	assert.Contains(t, out, "   |         ^^^\n")
	assert.Contains(t, out, "encountered 1 warning")
}

func TestRenderSpanless(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	r := new(report.Report)
	r.Errorf("file too big").With(report.InFile("big.go"), report.Note("limit is %d bytes", 10))
	r.Remarkf("just saying")

	assert.Equal(
		"error: big.go: file too big\nremark: just saying",
		report.Renderer{Compact: true}.RenderString(r),
	)

	out := report.Renderer{}.RenderString(r)
	assert.Contains(out, "error: file too big\n  --> big.go\n   = note: limit is 10 bytes")
	assert.Contains(out, "remark: just saying\n  --> <unknown>")
}

func TestAsError(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var r report.Report
	assert.NoError(r.AsError())
	r.Warnf("only a warning")
	assert.NoError(r.AsError())

	file := source.NewFile("a.go", "x := f(y\n")
	r.Error(unclosed{file.Span(6, 7)})
	err := r.AsError()
	require.Error(t, err)

	var target unclosed
	assert.True(errors.As(err, &target))
	assert.Equal(6, target.span.Start)
	assert.Contains(err.Error(), "error: a.go:1:7: unclosed `(`")
}

func TestNilOptions(t *testing.T) {
	t.Parallel()

	var r report.Report
	d := r.Errorf("no span").With(report.Snippet(source.Span{}), nil)
	assert.Empty(t, d.Annotations)
	assert.True(t, d.Primary().IsZero())
}
