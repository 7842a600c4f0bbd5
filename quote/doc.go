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

// Package quote provides span-aware quasi-quoting of Go syntax.
//
// A [Quote] accumulates a [token.Stream]. Literal fragments of Go source are
// lexed and then respanned: every leaf is stamped with the span chosen by the
// quote's [respan.Policy]. Token values that already carry meaningful spans,
// such as pieces of the syntax tree a generator is rewriting, are spliced in
// verbatim with their spans untouched. Delimited groups are built by nested
// quotes that borrow the parent's policy for the duration of the group.
//
// A quote remembers every [Location] in the generator that contributed to
// it. When the finished tokens fail to parse with [Parse], the resulting
// [ParseError] lists all of them, so that a failure deep inside nested
// generation helpers can still be traced back to the template at fault.
//
// Most users will not drive a Quote by hand: package template builds the
// calls from a Go-syntax template at runtime, and cmd/quotegen generates them
// ahead of time.
package quote
