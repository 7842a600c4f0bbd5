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

/*
Package report provides diagnostics for goquote: construction, collection,
and rendering.

Diagnostics are collected into a [Report], which is a helpful builder over a
slice of [Diagnostic]s. Each [Diagnostic] consists of a Go error plus
metadata for rendering, such as source code spans, notes, and suggestions.

Reports are rendered with a [Renderer], either compactly (one line per
diagnostic, like the Go compiler) or with annotated source snippets.

# Defining Diagnostics

To define a diagnostic, define a new Go error type and make it implement
[Diagnose]. Callers using goquote as a library can then type assert
Diagnostic.Err to find out what went wrong, and every place that emits the
diagnostic gets the same wording. For one-off diagnostics, use
[Report.Errorf] and friends.

# Style

Diagnostic messages do not begin with a capital letter and do not end in
punctuation. The words "error", "warning", "remark", "help", and "note" are
never capitalized. The first span in a diagnostic should be precisely the
code that caused it.
*/
package report
