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

package lexer

import (
	"go/scanner"
	gotoken "go/token"
	"strings"
	"unicode/utf8"

	"github.com/bufbuild/goquote/report"
	"github.com/bufbuild/goquote/source"
	"github.com/bufbuild/goquote/token"
)

// LiteralPath is the path given to text lexed by [LexString].
const LiteralPath = "<literal>"

// Lex lexes file into a token tree.
//
// Problems are reported to errs. The returned stream is always well-formed:
// unclosed delimiters are closed at end of input and stray closing
// delimiters are dropped. If errs is nil, problems are discarded.
func Lex(file *source.File, errs *report.Report) token.Stream {
	if errs == nil {
		errs = new(report.Report)
	}
	l := &lexer{file: file, errs: errs}
	l.stack = []frame{{}}
	l.run()
	return l.stack[0].tokens
}

// LexString lexes text as if it were the contents of a file named
// [LiteralPath]. Returns the report as an error if lexing produced any
// errors.
func LexString(text string) (token.Stream, error) {
	errs := new(report.Report)
	stream := Lex(source.NewFile(LiteralPath, text), errs)
	return stream, errs.AsError()
}

// MustLex is like [LexString], but panics on error.
func MustLex(text string) token.Stream {
	stream, err := LexString(text)
	if err != nil {
		panic(err)
	}
	return stream
}

type lexer struct {
	file *source.File
	errs *report.Report

	// The bottom of the stack is the top level, which has no delimiter.
	stack []frame

	// An automatic semicolon is only emitted once another token follows it,
	// so that trailing newlines and comments do not end the stream with one.
	semi    source.Span
	hasSemi bool
}

// frame is a group that has been opened but not closed yet.
type frame struct {
	delim  token.Delimiter
	open   source.Span
	tokens token.Stream
}

func (l *lexer) run() {
	text := l.file.Text()
	fset := gotoken.NewFileSet()
	tf := fset.AddFile(l.file.Path(), -1, len(text))

	var sc scanner.Scanner
	sc.Init(tf, []byte(text), func(pos gotoken.Position, msg string) {
		l.errs.Error(&ErrScan{Span: l.spanAt(pos.Offset), Message: msg})
	}, 0)

	for {
		pos, tok, lit := sc.Scan()
		if tok == gotoken.EOF {
			break
		}
		offset := tf.Offset(pos)

		if tok == gotoken.SEMICOLON && lit == "\n" {
			l.semi = l.file.Span(min(offset, len(text)), min(offset, len(text)))
			l.hasSemi = true
			continue
		}
		if l.hasSemi {
			l.hasSemi = false
			l.push(token.NewPunct(";", l.semi))
		}

		switch {
		case tok == gotoken.LPAREN, tok == gotoken.LBRACE, tok == gotoken.LBRACK:
			l.stack = append(l.stack, frame{
				delim: delimiter(tok),
				open:  l.file.Span(offset, offset+1),
			})

		case tok == gotoken.RPAREN, tok == gotoken.RBRACE, tok == gotoken.RBRACK:
			l.close(delimiter(tok), l.file.Span(offset, offset+1))

		default:
			kind, text := classify(tok, lit)
			if text == "" {
				continue
			}
			end := offset + len(text)
			if tok == gotoken.STRING && strings.HasPrefix(text, "`") {
				end = rawStringEnd(l.file.Text(), offset)
			}
			end = min(end, len(l.file.Text()))
			l.push(token.NewLeaf(kind, text, l.file.Span(offset, end)))
		}
	}

	for len(l.stack) > 1 {
		top := l.top()
		l.errs.Error(&ErrUnmatched{Span: top.open, Delimiter: top.delim})
		l.pop(top.open)
	}
}

// rawStringEnd returns the end of the raw string starting at offset. The
// scanner drops carriage returns from raw strings, so the literal's length
// cannot be used.
func rawStringEnd(text string, offset int) int {
	n := strings.IndexByte(text[offset+1:], '`')
	if n < 0 {
		return len(text)
	}
	return offset + n + 2
}

func (l *lexer) top() *frame {
	return &l.stack[len(l.stack)-1]
}

func (l *lexer) push(tok token.Token) {
	top := l.top()
	top.tokens = append(top.tokens, tok)
}

// close closes the innermost group with a delimiter of the given kind.
func (l *lexer) close(delim token.Delimiter, span source.Span) {
	top := l.top()
	if len(l.stack) > 1 && top.delim == delim {
		l.pop(span)
		return
	}

	// Look for an enclosing group this could close. If there is one, every
	// group opened inside it is unclosed.
	for i := len(l.stack) - 1; i > 0; i-- {
		if l.stack[i].delim != delim {
			continue
		}
		for len(l.stack)-1 > i {
			inner := l.top()
			l.errs.Error(&ErrUnmatched{
				Span:      inner.open,
				Delimiter: inner.delim,
				Mismatch:  span,
			})
			l.pop(inner.open)
		}
		l.pop(span)
		return
	}

	err := &ErrUnmatched{Span: span, Delimiter: delim, Closing: true}
	if len(l.stack) > 1 {
		err.ShouldMatch = top.open
	}
	l.errs.Error(err)
}

// pop closes the innermost group, using end as its closing delimiter.
func (l *lexer) pop(end source.Span) {
	top := l.stack[len(l.stack)-1]
	l.stack = l.stack[:len(l.stack)-1]
	l.push(token.NewGroup(top.delim, source.Join(top.open, end), top.tokens))
}

// spanAt returns a span covering the rune at offset, or an empty span at end
// of input.
func (l *lexer) spanAt(offset int) source.Span {
	text := l.file.Text()
	offset = min(max(offset, 0), len(text))
	if offset == len(text) {
		return l.file.Span(offset, offset)
	}
	_, n := utf8.DecodeRuneInString(text[offset:])
	return l.file.Span(offset, offset+n)
}

func delimiter(tok gotoken.Token) token.Delimiter {
	switch tok {
	case gotoken.LPAREN, gotoken.RPAREN:
		return token.Paren
	case gotoken.LBRACE, gotoken.RBRACE:
		return token.Brace
	case gotoken.LBRACK, gotoken.RBRACK:
		return token.Bracket
	default:
		return token.NoDelimiter
	}
}

// classify maps a scanner token onto a leaf kind and its text.
func classify(tok gotoken.Token, lit string) (token.Kind, string) {
	switch {
	case tok == gotoken.IDENT:
		return token.Ident, lit
	case tok.IsKeyword():
		return token.Keyword, tok.String()
	case tok == gotoken.INT, tok == gotoken.FLOAT, tok == gotoken.IMAG:
		return token.Number, lit
	case tok == gotoken.STRING:
		return token.String, lit
	case tok == gotoken.CHAR:
		return token.Char, lit
	case tok == gotoken.ILLEGAL:
		return token.Unrecognized, lit
	case lit != "":
		return token.Punct, lit
	default:
		return token.Punct, tok.String()
	}
}
