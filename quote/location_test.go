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
	"go/ast"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/goquote/quote"
)

func TestLocation(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	loc := quote.NewLocation("gen.go", 12, 3)
	assert.Equal("gen.go:12:3", loc.String())
	assert.Equal(quote.Location{File: "gen.go", Line: 12, Column: 3}, loc)

	assert.Panics(func() { quote.NewLocation("gen.go", -1, 0) })
	assert.Panics(func() { quote.NewLocation("gen.go", 1, math.MaxUint32+1) })

	here := quote.Caller(0)
	assert.Equal("location_test.go", filepath.Base(here.File))
	assert.NotZero(here.Line)
	assert.Zero(here.Column)
}

func TestComment(t *testing.T) {
	t.Parallel()

	group := quote.Comment("Output returns foo.\n\nIt is generated.\n")
	var lines []string
	for _, c := range group.List {
		lines = append(lines, c.Text)
	}
	assert.Equal(t, []string{"// Output returns foo.", "//", "// It is generated."}, lines)
	assert.Equal(t, "Output returns foo.\n\nIt is generated.\n", group.Text())
	assert.IsType(t, &ast.CommentGroup{}, group)
}
