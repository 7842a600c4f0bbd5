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
	"fmt"
	"runtime"

	"fortio.org/safecast"
)

// Location is a position in a code generator from which quasi-quoting was
// invoked.
//
// Locations are comparable, so duplicate reports of the same call site
// collapse.
type Location struct {
	File         string
	Line, Column uint32
}

// NewLocation returns the location at the given 1-indexed line and column.
//
// Panics if line or column is negative or does not fit in a uint32.
func NewLocation(file string, line, column int) Location {
	l, err := safecast.Conv[uint32](line)
	if err != nil {
		panic(fmt.Errorf("goquote/quote: invalid line: %w", err))
	}
	c, err := safecast.Conv[uint32](column)
	if err != nil {
		panic(fmt.Errorf("goquote/quote: invalid column: %w", err))
	}
	return Location{File: file, Line: l, Column: c}
}

// Caller returns the location of a function call on the calling goroutine's
// stack. An argument of 0 is the caller of Caller.
//
// The Go runtime does not report columns, so the column is always zero.
func Caller(skip int) Location {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{File: "<unknown>"}
	}
	return NewLocation(file, line, 0)
}

// String implements [fmt.Stringer].
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}
