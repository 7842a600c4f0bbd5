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

package token

import "fmt"

// Kind identifies what kind of token a particular [Token] is.
type Kind int8

const (
	Unrecognized Kind = iota // Unrecognized garbage in the input file.

	Ident   // An identifier.
	Keyword // A Go keyword, such as func or return.
	Punct   // An operator or separator, including ";".
	Number  // An integer, floating point, or imaginary literal.
	String  // An interpreted or raw string literal.
	Char    // A rune literal.
	Group   // A delimited group; see [Delimiter].
)

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case Unrecognized:
		return "Unrecognized"
	case Ident:
		return "Ident"
	case Keyword:
		return "Keyword"
	case Punct:
		return "Punct"
	case Number:
		return "Number"
	case String:
		return "String"
	case Char:
		return "Char"
	case Group:
		return "Group"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsLiteral returns whether this kind is a literal value.
func (k Kind) IsLiteral() bool {
	return k == Number || k == String || k == Char
}

// Delimiter is the kind of bracket that surrounds a [Group] token.
type Delimiter int8

const (
	NoDelimiter Delimiter = iota
	Paren                 // ( ... )
	Brace                 // { ... }
	Bracket               // [ ... ]
)

// Open returns the text of the opening delimiter.
func (d Delimiter) Open() string {
	switch d {
	case Paren:
		return "("
	case Brace:
		return "{"
	case Bracket:
		return "["
	default:
		return ""
	}
}

// Close returns the text of the closing delimiter.
func (d Delimiter) Close() string {
	switch d {
	case Paren:
		return ")"
	case Brace:
		return "}"
	case Bracket:
		return "]"
	default:
		return ""
	}
}

// String implements [fmt.Stringer].
func (d Delimiter) String() string {
	switch d {
	case NoDelimiter:
		return "NoDelimiter"
	case Paren:
		return "Paren"
	case Brace:
		return "Brace"
	case Bracket:
		return "Bracket"
	default:
		return fmt.Sprintf("Delimiter(%d)", int(d))
	}
}
