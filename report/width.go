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

package report

import (
	"strings"

	"github.com/rivo/uniseg"
)

// TabstopWidth is the size we render all tabstops as.
const TabstopWidth int = 4

// stringWidth calculates the rendered width of text if placed at the given
// column, accounting for tabstops. Returns the column after text.
func stringWidth(column int, text string) int {
	for text != "" {
		next, rest, haveTab := strings.Cut(text, "\t")
		text = rest
		column += uniseg.StringWidth(next)
		if haveTab {
			column += TabstopWidth - (column % TabstopWidth)
		}
	}
	return column
}

// expandTabs replaces tabs with spaces so that the line lines up with the
// underlines computed by stringWidth.
func expandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}

	var out strings.Builder
	var column int
	for line != "" {
		next, rest, haveTab := strings.Cut(line, "\t")
		line = rest
		out.WriteString(next)
		column += uniseg.StringWidth(next)
		if haveTab {
			tab := TabstopWidth - (column % TabstopWidth)
			out.WriteString(strings.Repeat(" ", tab))
			column += tab
		}
	}
	return out.String()
}
