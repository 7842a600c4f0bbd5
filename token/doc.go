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

// Package token provides a token tree representation of Go source.
//
// # Token Trees
//
// Tokens are trees: a token may "contain" a sequence of other tokens. The
// tokens between matched parentheses, braces, or brackets are the children of
// a single group token, accessible via [Token.Children]. This moves the work
// of matching delimiters out of everything that consumes tokens and into the
// lexer.
//
// # Spans
//
// Every token carries a [source.Span]. Tokens produced by lexing a file point
// into that file; tokens produced by code generation carry whatever span the
// generator stamped on them, which may be the zero span.
//
// Automatic semicolons inserted by the Go lexer at line ends are ordinary
// [Punct] tokens with the text ";", so a [Stream] always renders to text that
// parses the same way regardless of layout.
package token
