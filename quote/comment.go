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
	"go/ast"
	"strings"
)

// Comment returns a line comment group for text, suitable for use as the Doc
// of a generated declaration. Each line of text becomes one // comment.
func Comment(text string) *ast.CommentGroup {
	group := new(ast.CommentGroup)
	for line := range strings.Lines(text) {
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			group.List = append(group.List, &ast.Comment{Text: "//"})
			continue
		}
		group.List = append(group.List, &ast.Comment{Text: "// " + line})
	}
	return group
}
