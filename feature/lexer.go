// fontmerge - merge supplementary glyphs into TrueType fonts
// Copyright (C) 2026  The fontmerge authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package feature

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TokenType identifies the type of a [Token].
type TokenType int

// These are the token types of the feature file syntax.
const (
	TokenError TokenType = iota
	TokenEOF

	TokenGlyph   // glyph name, possibly escaped with a backslash
	TokenKeyword // reserved word
	TokenLabel   // feature tag, lookup name, script or language tag
	TokenClass   // glyph class name, starting with "@"
	TokenCID     // CID, a backslash followed by digits
	TokenNumber
	TokenString
	TokenComment
	TokenSymbol // punctuation, for example ";" or "["
)

var tokenTypeNames = map[TokenType]string{
	TokenError:   "error",
	TokenEOF:     "EOF",
	TokenGlyph:   "glyph",
	TokenKeyword: "keyword",
	TokenLabel:   "label",
	TokenClass:   "class",
	TokenCID:     "CID",
	TokenNumber:  "number",
	TokenString:  "string",
	TokenComment: "comment",
	TokenSymbol:  "symbol",
}

func (t TokenType) String() string {
	if s, ok := tokenTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a lexical element of a feature file.
type Token struct {
	Type TokenType
	Val  string

	// Offset is the byte offset of the token in the input.
	// Line and Col give the same position, both counting from 1.
	Offset int
	Line   int
	Col    int
}

func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return fmt.Sprintf("error %q", t.Val)
	default:
		return fmt.Sprintf("%s %q", t.Type, t.Val)
	}
}

// GlyphName returns the glyph name of a [TokenGlyph] token, with a leading
// backslash removed.
func (t Token) GlyphName() string {
	return strings.TrimPrefix(t.Val, `\`)
}

// keywords lists the reserved words of the feature file syntax.
// The value gives the number of labels which follow the keyword.
var keywords = map[string]int{
	"anchor":              0,
	"anchorDef":           0,
	"anon":                1,
	"anonymous":           1,
	"by":                  0,
	"contour":             0,
	"cursive":             0,
	"device":              0,
	"enum":                0,
	"enumerate":           0,
	"exclude_dflt":        0,
	"excludeDFLT":         0,
	"feature":             1,
	"from":                0,
	"ignore":              0,
	"IgnoreBaseGlyphs":    0,
	"IgnoreLigatures":     0,
	"IgnoreMarks":         0,
	"include":             0,
	"include_dflt":        0,
	"includeDFLT":         0,
	"language":            1,
	"languagesystem":      2,
	"lookup":              1,
	"lookupflag":          0,
	"mark":                0,
	"MarkAttachmentType":  0,
	"markClass":           0,
	"nameid":              0,
	"NULL":                0,
	"parameters":          0,
	"pos":                 0,
	"position":            0,
	"required":            0,
	"reversesub":          0,
	"RightToLeft":         0,
	"rsub":                0,
	"script":              1,
	"sub":                 0,
	"substitute":          0,
	"subtable":            0,
	"table":               1,
	"useExtension":        0,
	"useMarkFilteringSet": 0,
	"valueRecordDef":      0,
}

// Lex splits a feature file into tokens.  Whitespace is not returned.
// The final [TokenEOF] is omitted from the result.
//
// Lex never fails: characters which cannot start a token are returned as
// [TokenError] tokens.
func Lex(text string) []Token {
	var res []Token
	for tok := range Tokens(text) {
		if tok.Type == TokenEOF {
			break
		}
		res = append(res, tok)
	}
	return res
}

// Tokens returns a channel which delivers the tokens of a feature file.
// The last token sent is a [TokenEOF], after which the channel is closed.
// The caller must read from the channel until it is closed.
func Tokens(text string) <-chan Token {
	l := &lexer{
		input:  text,
		line:   1,
		tokens: make(chan Token),
	}
	go l.run()
	return l.tokens
}

type lexer struct {
	input     string
	start     int
	pos       int
	width     int
	line      int // line of l.start
	lineStart int // offset of the first byte of the line
	labels    int // number of names to be classified as labels
	tokens    chan Token
}

type stateFn func(*lexer) stateFn

func (l *lexer) run() {
	for state := lexAny; state != nil; {
		state = state(l)
	}
	close(l.tokens)
}

const eof = -1

func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += w
	return r
}

func (l *lexer) backup() {
	l.pos -= l.width
}

func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

func (l *lexer) emit(typ TokenType) {
	val := l.input[l.start:l.pos]

	switch typ {
	case TokenGlyph:
		if strings.HasPrefix(val, `\`) {
			break
		}
		if l.labels > 0 {
			typ = TokenLabel
			l.labels--
		} else if n, isKeyword := keywords[val]; isKeyword {
			typ = TokenKeyword
			l.labels = n
		}
	case TokenComment:
		// comments do not interrupt a label sequence
	case TokenSymbol:
		if val == "}" {
			l.labels = 1
		} else {
			l.labels = 0
		}
	default:
		l.labels = 0
	}

	l.tokens <- Token{
		Type:   typ,
		Val:    val,
		Offset: l.start,
		Line:   l.line,
		Col:    l.start - l.lineStart + 1,
	}
	l.skip()
}

// skip discards the pending input.
func (l *lexer) skip() {
	s := l.input[l.start:l.pos]
	if n := strings.Count(s, "\n"); n > 0 {
		l.line += n
		l.lineStart = l.start + strings.LastIndexByte(s, '\n') + 1
	}
	l.start = l.pos
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

func isNameStart(r rune) bool {
	return isLetter(r) || strings.ContainsRune("_.+*:^~!", r)
}

func isNameChar(r rune) bool {
	return isLetter(r) || isDigit(r) || strings.ContainsRune("_.+*:^~!/-", r)
}

func lexAny(l *lexer) stateFn {
	for isSpace(l.peek()) {
		l.next()
	}
	l.skip()

	r := l.next()
	switch {
	case r == eof:
		l.emit(TokenEOF)
		return nil
	case r == '#':
		return lexComment
	case r == '"':
		return lexString
	case r == '@':
		for isNameChar(l.peek()) {
			l.next()
		}
		l.emit(TokenClass)
	case r == '\\':
		switch {
		case isDigit(l.peek()):
			for isDigit(l.peek()) {
				l.next()
			}
			l.emit(TokenCID)
		case isNameStart(l.peek()):
			return lexName
		default:
			l.emit(TokenError)
		}
	case isDigit(r), r == '-' && isDigit(l.peek()):
		return lexNumber
	case isNameStart(r):
		return lexName
	case strings.ContainsRune(";,[]{}()'<>=-|$", r):
		l.emit(TokenSymbol)
	default:
		l.emit(TokenError)
	}
	return lexAny
}

func lexName(l *lexer) stateFn {
	for isNameChar(l.peek()) {
		l.next()
	}
	l.emit(TokenGlyph)
	return lexAny
}

func lexNumber(l *lexer) stateFn {
	if strings.HasPrefix(l.input[l.start:], "0x") {
		l.next()
		for strings.ContainsRune("0123456789abcdefABCDEF", l.peek()) {
			l.next()
		}
		l.emit(TokenNumber)
		return lexAny
	}
	for isDigit(l.peek()) {
		l.next()
	}
	if l.peek() == '.' {
		l.next()
		for isDigit(l.peek()) {
			l.next()
		}
	}
	l.emit(TokenNumber)
	return lexAny
}

func lexString(l *lexer) stateFn {
	for {
		switch l.next() {
		case '"':
			l.emit(TokenString)
			return lexAny
		case eof:
			l.emit(TokenError)
			return lexAny
		}
	}
}

func lexComment(l *lexer) stateFn {
	for {
		r := l.peek()
		if r == '\n' || r == '\r' || r == eof {
			break
		}
		l.next()
	}
	l.emit(TokenComment)
	return lexAny
}
