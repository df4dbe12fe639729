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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLex(t *testing.T) {
	text := `languagesystem DFLT dflt;
@lig = [f_i f_f_i];
feature liga {
    # ligatures
    sub f f i by f_f_i;
    sub \sub' by "x" \123 -12 0x1F;
} liga;
`
	type tok struct {
		Type TokenType
		Val  string
	}
	expected := []tok{
		{TokenKeyword, "languagesystem"},
		{TokenLabel, "DFLT"},
		{TokenLabel, "dflt"},
		{TokenSymbol, ";"},
		{TokenClass, "@lig"},
		{TokenSymbol, "="},
		{TokenSymbol, "["},
		{TokenGlyph, "f_i"},
		{TokenGlyph, "f_f_i"},
		{TokenSymbol, "]"},
		{TokenSymbol, ";"},
		{TokenKeyword, "feature"},
		{TokenLabel, "liga"},
		{TokenSymbol, "{"},
		{TokenComment, "# ligatures"},
		{TokenKeyword, "sub"},
		{TokenGlyph, "f"},
		{TokenGlyph, "f"},
		{TokenGlyph, "i"},
		{TokenKeyword, "by"},
		{TokenGlyph, "f_f_i"},
		{TokenSymbol, ";"},
		{TokenKeyword, "sub"},
		{TokenGlyph, `\sub`},
		{TokenSymbol, "'"},
		{TokenKeyword, "by"},
		{TokenString, `"x"`},
		{TokenCID, `\123`},
		{TokenNumber, "-12"},
		{TokenNumber, "0x1F"},
		{TokenSymbol, ";"},
		{TokenSymbol, "}"},
		{TokenLabel, "liga"},
		{TokenSymbol, ";"},
	}

	var got []tok
	for _, t := range Lex(text) {
		got = append(got, tok{t.Type, t.Val})
	}
	if d := cmp.Diff(expected, got); d != "" {
		t.Error(d)
	}
}

func TestLexPosition(t *testing.T) {
	tokens := Lex("a\n  b c\n\nd")
	expected := [][2]int{{1, 1}, {2, 3}, {2, 5}, {4, 1}}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, tok := range tokens {
		pos := [2]int{tok.Line, tok.Col}
		if pos != expected[i] {
			t.Errorf("token %d: expected %v, got %v", i, expected[i], pos)
		}
	}
}

// A comma is a symbol of its own, so the glyph names on both sides are
// seen by the renamer.
func TestLexComma(t *testing.T) {
	tokens := Lex("sub a,b by c;")
	var glyphs, symbols []string
	for _, tok := range tokens {
		switch tok.Type {
		case TokenGlyph:
			glyphs = append(glyphs, tok.Val)
		case TokenSymbol:
			symbols = append(symbols, tok.Val)
		}
	}
	if d := cmp.Diff([]string{"a", "b", "c"}, glyphs); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff([]string{",", ";"}, symbols); d != "" {
		t.Error(d)
	}
}

func TestLexErrors(t *testing.T) {
	tokens := Lex(`a % "open`)
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	expected := []TokenType{TokenGlyph, TokenError, TokenError}
	if d := cmp.Diff(expected, types); d != "" {
		t.Error(d)
	}
}

func FuzzLex(f *testing.F) {
	f.Add("feature liga { sub f i by f_i; } liga;")
	f.Add(`@a = [\x y-z]; # comment`)
	f.Add("sub a' lookup X b;\n\"str\" 0x10 -5 1.5")
	f.Fuzz(func(t *testing.T, text string) {
		tokens := Lex(text)
		last := 0
		for _, tok := range tokens {
			if tok.Offset < last {
				t.Fatalf("token %s at %d overlaps previous token", tok, tok.Offset)
			}
			if tok.Val == "" {
				t.Fatalf("empty token at %d", tok.Offset)
			}
			if text[tok.Offset:tok.Offset+len(tok.Val)] != tok.Val {
				t.Fatalf("token %s does not match input", tok)
			}
			if strings.TrimSpace(text[last:tok.Offset]) != "" {
				t.Fatalf("input %q skipped", text[last:tok.Offset])
			}
			last = tok.Offset + len(tok.Val)
		}
		if strings.TrimSpace(text[last:]) != "" {
			t.Fatalf("trailing input %q skipped", text[last:])
		}
	})
}
