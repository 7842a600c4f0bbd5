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

package source

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Unit is a unit of measurement for columns.
type Unit int8

const (
	// Bytes measures columns in bytes. This matches go/token.
	Bytes Unit = iota
	// Runes measures columns in Unicode code points.
	Runes
	// TermWidth measures columns in terminal cells, as used when rendering
	// diagnostics.
	TermWidth
)

// File is a source code file that spans refer to.
//
// Files are immutable once created. A nil *File behaves like an empty file
// with the path name "".
type File struct {
	path, text string

	once sync.Once
	// Byte offsets of the start of every line. Given a byte offset, the line
	// containing it is found by binary search.
	lineIndex []int
}

// NewFile constructs a new source file.
func NewFile(path, text string) *File {
	return &File{path: path, text: text}
}

// Path returns this file's path.
//
// It doesn't need to be a real path; it is what diagnostics print.
func (f *File) Path() string {
	if f == nil {
		return ""
	}
	return f.path
}

// Text returns this file's textual contents.
func (f *File) Text() string {
	if f == nil {
		return ""
	}
	return f.text
}

// Span is a shorthand for creating a new Span.
func (f *File) Span(start, end int) Span {
	if f == nil {
		return Span{}
	}
	if start < 0 || start > end || end > len(f.text) {
		panic(fmt.Sprintf("goquote/source: invalid span [%d:%d] in %q (len %d)", start, end, f.path, len(f.text)))
	}
	return Span{f, start, end}
}

// Location computes the 1-indexed line and column of the given byte offset.
//
// This operation is O(log n).
func (f *File) Location(offset int, units Unit) Location {
	if f == nil || offset == 0 {
		return Location{Offset: offset, Line: 1, Column: 1}
	}

	lines := f.lines()
	line, exact := slices.BinarySearch(lines, offset)
	if !exact {
		line--
	}

	chunk := f.text[lines[line]:offset]
	var column int
	switch units {
	case Runes:
		column = utf8.RuneCountInString(chunk)
	case TermWidth:
		column = uniseg.StringWidth(chunk)
	default:
		column = len(chunk)
	}

	return Location{
		Offset: offset,
		Line:   line + 1,
		Column: column + 1,
	}
}

// Line returns the given 1-indexed line, without its trailing newline.
func (f *File) Line(line int) string {
	start, end := f.LineOffsets(line)
	return strings.TrimSuffix(f.Text()[start:end], "\n")
}

// LineOffsets returns the offsets for the given 1-indexed line, including its
// trailing newline.
func (f *File) LineOffsets(line int) (start, end int) {
	lines := f.lines()
	if line < 1 || line > len(lines) {
		return 0, 0
	}
	if len(lines) == line {
		return lines[line-1], len(f.Text())
	}
	return lines[line-1], lines[line]
}

// EOF returns an empty span at the very end of the file.
func (f *File) EOF() Span {
	if f == nil {
		return Span{}
	}
	return f.Span(len(f.text), len(f.text))
}

func (f *File) lines() []int {
	if f == nil {
		return []int{0}
	}

	f.once.Do(func() {
		f.lineIndex = append(f.lineIndex, 0)
		for i := range len(f.text) {
			if f.text[i] == '\n' {
				f.lineIndex = append(f.lineIndex, i+1)
			}
		}
	})
	return f.lineIndex
}
