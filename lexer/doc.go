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

// Package lexer converts Go source text into a [token.Stream].
//
// Lexing is delegated to [go/scanner]; this package is responsible for
// fusing delimiters into groups and for reporting malformed input as rich
// diagnostics. Comments are discarded. Automatic semicolons become explicit
// ";" tokens with an empty span at the end of the line that produced them,
// except when nothing but whitespace and comments follows them.
package lexer
