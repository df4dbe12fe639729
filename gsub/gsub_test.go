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

package gsub

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/opentype/coverage"
	"seehuhn.de/go/sfnt/opentype/gtab"

	"github.com/consolig/fontmerge/font"
)

var testGlyphs = []string{
	".notdef", "f", "i", "f_i", "a", "a.alt", "a.sc", "b", "b.sc",
}

func testFont(t testing.TB, names ...string) *font.Font {
	t.Helper()
	order, err := font.NewGlyphOrder(names...)
	require.NoError(t, err)
	return &font.Font{GlyphOrder: order}
}

func compile(t *testing.T, text string) []byte {
	t.Helper()
	f := testFont(t, testGlyphs...)
	err := Compile(f, text)
	require.NoError(t, err)
	return f.Tables["GSUB"]
}

func u16(data []byte, pos int) int {
	return int(data[pos])<<8 | int(data[pos+1])
}

func decode(t *testing.T, data []byte) *gtab.Info {
	t.Helper()
	info, err := gtab.Read(bytes.NewReader(data), gtab.TypeGsub)
	require.NoError(t, err)
	return info
}

func lookupTypes(info *gtab.Info) []int {
	var res []int
	for _, l := range info.LookupList {
		res = append(res, int(l.Meta.LookupType))
	}
	return res
}

func readFeatures(info *gtab.Info) map[string][]gtab.LookupIndex {
	res := make(map[string][]gtab.LookupIndex)
	for _, f := range info.FeatureList {
		res[f.Tag] = f.Lookups
	}
	return res
}

func TestCompileLigature(t *testing.T) {
	data := compile(t, `languagesystem DFLT dflt;
feature liga {
    sub f i by f_i;
} liga;
`)
	expected := []byte{
		0, 1, 0, 0, 0, 10, 0, 30, 0, 44, // header

		0, 1, 'D', 'F', 'L', 'T', 0, 8, // script list
		0, 4, 0, 0, // script table
		0, 0, 0xFF, 0xFF, 0, 1, 0, 0, // default language system

		0, 1, 'l', 'i', 'g', 'a', 0, 8, // feature list
		0, 0, 0, 1, 0, 0, // feature table

		0, 1, 0, 4, // lookup list
		0, 4, 0, 0, 0, 1, 0, 8, // lookup table
		0, 1, 0, 18, 0, 1, 0, 8, // ligature substitution
		0, 1, 0, 4, // ligature set
		0, 3, 0, 2, 0, 2, // ligature
		0, 1, 0, 1, 0, 1, // coverage
	}
	if d := cmp.Diff(expected, data); d != "" {
		t.Error(d)
	}
}

func TestCompileSingle(t *testing.T) {
	// a=4, b=7, a.sc=6, b.sc=8: no constant delta
	info := decode(t, compile(t, "feature smcp { sub [a b] by [a.sc b.sc]; } smcp;"))
	require.Len(t, info.LookupList, 1)
	expected := []gtab.Subtable{
		&gtab.Gsub1_2{
			Cov:                coverage.Table{4: 0, 7: 1},
			SubstituteGlyphIDs: []glyph.ID{6, 8},
		},
	}
	if d := cmp.Diff(expected, info.LookupList[0].Subtables); d != "" {
		t.Error(d)
	}

	info = decode(t, compile(t, "feature salt { sub a by a.alt; sub a.alt by a.sc; } salt;"))
	require.Len(t, info.LookupList, 1)
	expected = []gtab.Subtable{
		&gtab.Gsub1_1{
			Cov:   coverage.Set{4: true, 5: true},
			Delta: 1,
		},
	}
	if d := cmp.Diff(expected, info.LookupList[0].Subtables); d != "" {
		t.Error(d)
	}
}

// TestDefaultLanguageSystem checks that feature text without languagesystem
// statements registers all features for the DFLT script.
func TestDefaultLanguageSystem(t *testing.T) {
	data := compile(t, `
feature liga { sub f i by f_i; } liga;
feature smcp { sub a by a.alt; } smcp;
feature salt { sub a.sc from [b b.sc]; } salt;
`)
	info := decode(t, data)

	scripts := u16(data, 4)
	require.Equal(t, 1, u16(data, scripts))
	assert.Equal(t, "DFLT", string(data[scripts+2:scripts+6]))
	require.Len(t, info.ScriptList, 1)
	for _, features := range info.ScriptList {
		assert.Equal(t, gtab.FeatureIndex(0xFFFF), features.Required)
		assert.Equal(t, []gtab.FeatureIndex{0, 1, 2}, features.Optional)
	}

	expectedFeatures := map[string][]gtab.LookupIndex{
		"liga": {0},
		"salt": {2},
		"smcp": {1},
	}
	if d := cmp.Diff(expectedFeatures, readFeatures(info)); d != "" {
		t.Error(d)
	}

	expected := []gtab.Subtable{
		&gtab.Gsub4_1{
			Cov:  coverage.Table{1: 0},
			Repl: [][]gtab.Ligature{{{In: []glyph.ID{2}, Out: 3}}},
		},
		&gtab.Gsub1_1{
			Cov:   coverage.Set{4: true},
			Delta: 1,
		},
		&gtab.Gsub3_1{
			Cov:        coverage.Table{6: 0},
			Alternates: [][]glyph.ID{{7, 8}},
		},
	}
	var subtables []gtab.Subtable
	for _, l := range info.LookupList {
		subtables = append(subtables, l.Subtables...)
	}
	if d := cmp.Diff(expected, subtables); d != "" {
		t.Error(d)
	}
}

func TestCompileTypes(t *testing.T) {
	cases := []struct {
		text     string
		expected []int
	}{
		{"feature liga { sub f i by f_i; sub a by a.sc; } liga;", []int{4, 1}},
		{"feature liga { sub f i by f_i; sub a i by f_i; } liga;", []int{4}},
		{"feature ccmp { sub f_i by f i; } ccmp;", []int{2}},
		{"feature salt { sub a from [a.alt a.sc]; } salt;", []int{3}},
		{"feature liga { sub [f a] i by f_i; } liga;", []int{4}},
		{"lookup L1 { sub a by a.sc; } L1;", []int{1}},
		{"feature smcp { sub a by a.sc; lookupflag IgnoreMarks; sub b by b.sc; } smcp;", []int{1, 1}},
		{"feature liga { } liga;", nil},
	}
	for i, c := range cases {
		t.Run(fmt.Sprintf("%02d", i), func(t *testing.T) {
			info := decode(t, compile(t, c.text))
			assert.Equal(t, c.expected, lookupTypes(info))
		})
	}
}

func TestLookupFlags(t *testing.T) {
	data := compile(t, `feature liga {
    lookupflag IgnoreMarks RightToLeft;
    sub f i by f_i;
    lookupflag 0;
    sub a by a.sc;
} liga;`)
	lookups := decode(t, data).LookupList
	require.Len(t, lookups, 2)
	assert.Equal(t, gtab.IgnoreMarks|gtab.RightToLeft, lookups[0].Meta.LookupFlags)
	assert.Equal(t, gtab.LookupFlags(0), lookups[1].Meta.LookupFlags)
}

func TestNamedLookups(t *testing.T) {
	data := compile(t, `
@lower = [a b];
@small = [a.sc b.sc];
lookup SMALL {
    sub @lower by @small;
} SMALL;
feature smcp { lookup SMALL; } smcp;
feature c2sc {
    lookup SMALL;
    lookup LIG useExtension {
        sub f i by f_i;
    } LIG;
} c2sc;
`)
	info := decode(t, data)
	assert.Equal(t, []int{1, 4}, lookupTypes(info))
	expected := map[string][]gtab.LookupIndex{
		"c2sc": {0, 1},
		"smcp": {0},
	}
	if d := cmp.Diff(expected, readFeatures(info)); d != "" {
		t.Error(d)
	}
}

func TestAalt(t *testing.T) {
	data := compile(t, `
feature liga { sub f i by f_i; } liga;
feature salt { sub a from [a.alt a.sc]; } salt;
feature smcp { sub [a b] by [a.sc b.sc]; } smcp;
feature aalt {
    feature salt;
    feature smcp;
    feature liga;
} aalt;
`)
	info := decode(t, data)
	assert.Equal(t, []int{3, 4, 3, 1}, lookupTypes(info))
	expected := map[string][]gtab.LookupIndex{
		"aalt": {0},
		"liga": {1},
		"salt": {2},
		"smcp": {3},
	}
	if d := cmp.Diff(expected, readFeatures(info)); d != "" {
		t.Error(d)
	}

	expectedAalt := []gtab.Subtable{
		&gtab.Gsub3_1{
			Cov:        coverage.Table{4: 0, 7: 1},
			Alternates: [][]glyph.ID{{5, 6}, {8}},
		},
	}
	if d := cmp.Diff(expectedAalt, info.LookupList[0].Subtables); d != "" {
		t.Error(d)
	}
}

func TestAaltWithoutAlternates(t *testing.T) {
	data := compile(t, `
feature liga { sub f i by f_i; } liga;
feature aalt { feature liga; } aalt;
`)
	info := decode(t, data)
	assert.Equal(t, []int{4}, lookupTypes(info))
	assert.NotContains(t, readFeatures(info), "aalt")
}

func TestLanguageSystems(t *testing.T) {
	data := compile(t, `
languagesystem latn TRK;
languagesystem DFLT dflt;
languagesystem latn dflt;
languagesystem latn TRK;
feature liga { sub f i by f_i; } liga;
`)
	scripts := u16(data, 4)
	require.Equal(t, 2, u16(data, scripts))
	assert.Equal(t, "DFLT", string(data[scripts+2:scripts+6]))
	assert.Equal(t, "latn", string(data[scripts+8:scripts+12]))

	latn := scripts + u16(data, scripts+12)
	assert.NotZero(t, u16(data, latn))    // default language system
	assert.Equal(t, 1, u16(data, latn+2)) // other language systems
	assert.Equal(t, "TRK ", string(data[latn+4:latn+8]))
}

func TestCompileErrors(t *testing.T) {
	cases := []struct {
		text string
		msg  string
	}{
		{"feature liga { sub f' i by f_i; } liga;", "contextual"},
		{"feature liga { ignore sub f i; } liga;", "contextual"},
		{"feature kern { pos a b -10; } kern;", `"pos" statements are not supported`},
		{"feature liga { sub f x by f_i; } liga;", `unknown glyph "x"`},
		{"feature liga { sub @x by f_i; } liga;", "unknown glyph class @x"},
		{"feature liga { sub f i by f_i; } ligb;", `expected "liga"`},
		{"feature liga { script latn; } liga;", `"script" statements are not supported`},
		{"feature liga { sub f i by f_i; sub f i by a; } liga;", "conflicting"},
		{"feature smcp { sub [a b f] by [a.sc b.sc]; } smcp;", "different length"},
		{"feature liga { sub f i by f_i } liga;", `expected ";"`},
		{"feature liga {", "unexpected EOF"},
		{"@a = [a b]; @a = [f];", "multiple definitions"},
		{"feature liga { sub f i; } liga;", `missing "by"`},
		{"feature aalt { feature xxxx; } aalt;", "unknown feature"},
		{"feature liga { sub f by NULL; } liga;", "deletion"},
		{"feature liga { sub f % by f_i; } liga;", "invalid input"},
		{"feature ccmp { sub f_i by [f a] i; } ccmp;", "glyph class"},
		{"feature liga { sub f i by f_i a; } liga;", "many-to-many"},
		{"feature liga { sub [] i by f_i; } liga;", "empty glyph class"},
		{"feature liga { lookup X; } liga;", "unknown lookup"},
		{"lookup X { sub a by b; sub f i by f_i; } X;", "mixes"},
		{"lookup X { } X;", "empty"},
		{"feature toolong { } toolong;", "invalid tag"},
		{"feature smcp { sub [b-a] by a.sc; } smcp;", "invalid glyph range"},
		{"feature liga { lookupflag MarkAttachmentType @a; } liga;", "not supported"},
		{"feature liga { sub \\1 by f_i; } liga;", "CIDs"},
		{"languagesystem lao dflt;", "unsupported script tag"},
		{"languagesystem latn T_K;", "unsupported language tag"},
		{"feature liga { lookupflag 16; sub f i by f_i; } liga;", "mark filtering"},
	}
	for i, c := range cases {
		t.Run(fmt.Sprintf("%02d", i), func(t *testing.T) {
			f := testFont(t, testGlyphs...)
			err := Compile(f, c.text)
			var sErr *SyntaxError
			require.True(t, errors.As(err, &sErr), "unexpected error %v", err)
			assert.Contains(t, sErr.Msg, c.msg)
			assert.NotContains(t, f.Tables, "GSUB")
		})
	}
}

func TestErrorPosition(t *testing.T) {
	f := testFont(t, testGlyphs...)
	err := Compile(f, "\nfeature liga {\n  sub f' i by f_i;\n} liga;\n")
	var sErr *SyntaxError
	require.True(t, errors.As(err, &sErr))
	assert.Equal(t, 3, sErr.Line)
	assert.Equal(t, 8, sErr.Col)
	assert.True(t, strings.HasPrefix(err.Error(), "gsub: 3:8: "))
}

func TestGlyphRanges(t *testing.T) {
	f := testFont(t, ".notdef", "a", "b", "c", "d", "a.sc", "b.sc", "c.sc", "d.sc")
	require.NoError(t, Compile(f, `
@lower = [a-c d];
@small = [a.sc - d.sc];
feature smcp { sub @lower by @small; } smcp;
`))
	lookups := decode(t, f.Tables["GSUB"]).LookupList
	require.Len(t, lookups, 1)
	expected := []gtab.Subtable{
		&gtab.Gsub1_1{
			Cov:   coverage.Set{1: true, 2: true, 3: true, 4: true},
			Delta: 4,
		},
	}
	if d := cmp.Diff(expected, lookups[0].Subtables); d != "" {
		t.Error(d)
	}
}

func TestTooLarge(t *testing.T) {
	names := make([]string, 9000)
	names[0] = ".notdef"
	for i := 1; i < len(names); i++ {
		names[i] = fmt.Sprintf("g%d", i)
	}
	f := testFont(t, names...)
	err := Compile(f, "@all = [g1-g8999]; feature liga { sub g1 @all by g2; } liga;")
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.NotContains(t, f.Tables, "GSUB")
}

func TestCompileNoGlyphOrder(t *testing.T) {
	err := Compile(&font.Font{}, "")
	var missing *font.MissingTableError
	assert.True(t, errors.As(err, &missing))
}

func FuzzCompile(f *testing.F) {
	f.Add("feature liga { sub f i by f_i; } liga;")
	f.Add("languagesystem DFLT dflt; @x = [a b]; feature smcp { sub @x by [a.sc b.sc]; } smcp;")
	f.Add("lookup A { sub a from [a.alt a.sc]; } A; feature aalt { feature salt; } aalt; feature salt { lookup A; } salt;")
	f.Fuzz(func(t *testing.T, text string) {
		fnt := testFont(t, testGlyphs...)
		err := Compile(fnt, text)
		if err != nil {
			return
		}
		data := fnt.Tables["GSUB"]
		_, err = gtab.Read(bytes.NewReader(data), gtab.TypeGsub)
		if err != nil {
			t.Fatalf("cannot read GSUB table: %v", err)
		}
	})
}
