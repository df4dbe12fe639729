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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consolig/fontmerge/font"
	"github.com/consolig/fontmerge/merge"
)

// mergedFont returns a font with n glyphs, where the given glyph IDs
// carry the given names.
func mergedFont(t *testing.T, n int, names map[int]string) *font.Font {
	t.Helper()
	all := make([]string, n)
	for i := range all {
		all[i] = fmt.Sprintf("g%d", i)
	}
	for gid, name := range names {
		all[gid] = name
	}
	order, err := font.NewGlyphOrder(all...)
	require.NoError(t, err)
	return &font.Font{GlyphOrder: order}
}

func TestRewriteFeatureText(t *testing.T) {
	merged := mergedFont(t, 510, map[int]string{
		500: "ffi.merged",
		501: "a.alt",
		502: "a.new",
		503: "f_i",
	})
	wl := merge.NewWhitelist("f_f_i", "a", "a.alt", "f_i")
	glyphMap := GlyphMap{"f_f_i": 500, "a": 502, "a.alt": 501, "f_i": 503}

	cases := []struct {
		in, out string
	}{
		{"sub f_f_i by ffi;", "sub ffi.merged by ffi;"},
		{"xf_f_iy", "xf_f_iy"},
		{"sub a by a.alt;", "sub a.new by a.alt;"},
		{"sub [a a.alt] by b;", "sub [a.new a.alt] by b;"},
		{`sub \f_f_i by \a;`, `sub \ffi.merged by \a.new;`},
		{"feature f_f_i { sub f f i by f_f_i; } f_f_i;",
			"feature f_f_i { sub f f i by ffi.merged; } f_f_i;"},
		{"lookup a { sub x by a; } a;", "lookup a { sub x by a.new; } a;"},
		{"# sub f_f_i by a;\nsub b by c;", "# sub f_f_i by a;\nsub b by c;"},
		{`@f_f_i = [f_f_i];`, `@f_f_i = [ffi.merged];`},
		{"f_i-f_f_i", "f_i-f_f_i"},
		{"", ""},
	}
	for i, c := range cases {
		t.Run(fmt.Sprintf("%02d", i), func(t *testing.T) {
			out, err := RewriteFeatureText(c.in, wl, glyphMap, merged)
			require.NoError(t, err)
			assert.Equal(t, c.out, out)
		})
	}
}

func TestRewriteUnresolved(t *testing.T) {
	merged := mergedFont(t, 10, nil)
	wl := merge.NewWhitelist("f_f_i", "f_i")

	cases := []struct {
		glyphMap GlyphMap
		expected *UnresolvedGlyphError
	}{
		{GlyphMap{"f_i": 3}, &UnresolvedGlyphError{Name: "f_f_i", ID: -1}},
		{GlyphMap{"f_f_i": 10, "f_i": 3}, &UnresolvedGlyphError{Name: "f_f_i", ID: 10}},
	}
	for _, c := range cases {
		_, err := RewriteFeatureText("sub f i by f_i; sub f f i by f_f_i;", wl, c.glyphMap, merged)
		var uErr *UnresolvedGlyphError
		require.True(t, errors.As(err, &uErr), "unexpected error %v", err)
		assert.Equal(t, c.expected, uErr)
	}

	// Unused names need no entry.
	out, err := RewriteFeatureText("sub f i by f_i;", wl, GlyphMap{"f_i": 3}, merged)
	require.NoError(t, err)
	assert.Equal(t, "sub f i by g3;", out)
}

func TestRewriteNoGlyphOrder(t *testing.T) {
	_, err := RewriteFeatureText("sub a by b;", merge.NewWhitelist("a"), GlyphMap{}, &font.Font{})
	var missing *font.MissingTableError
	assert.True(t, errors.As(err, &missing))
}

func TestBuilder(t *testing.T) {
	b := NewBuilder()
	b.Classes = "@digits = [zero one];\n"
	b.Prologue = "languagesystem DFLT dflt;"
	b.AddFeature("liga", "sub f i by f_i;\n\nsub f l by f_l;\n")
	b.AddFeature("calt", "")
	b.AddFeature("aalt", "feature liga;")

	expected := `@digits = [zero one];

languagesystem DFLT dflt;

feature calt {
} calt;

feature liga {
    sub f i by f_i;

    sub f l by f_l;
} liga;

feature aalt {
    feature calt;
    feature liga;
} aalt;
`
	if d := cmp.Diff(expected, b.String()); d != "" {
		t.Error(d)
	}
	assert.Equal(t, []string{"calt", "liga"}, b.Features())
}

func TestBuilderEmpty(t *testing.T) {
	assert.Equal(t, "", NewBuilder().String())
}

func TestAddFeatureDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"classes.fea":  "@a = [a b];\n",
		"prologue.fea": "languagesystem latn dflt;\n",
		"liga.fea":     "sub f i by f_i;\n",
		"zero.fea":     "sub zero by zero.slash;\n",
		"README.txt":   "not a feature",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.fea"), 0o755))

	b := NewBuilder()
	require.NoError(t, b.AddFeatureDir(dir))
	assert.Equal(t, []string{"liga", "zero"}, b.Features())
	assert.Equal(t, "@a = [a b];\n", b.Classes)
	assert.Equal(t, "languagesystem latn dflt;\n", b.Prologue)

	text := b.String()
	assert.True(t, strings.HasSuffix(text, "feature aalt {\n    feature liga;\n    feature zero;\n} aalt;\n"))

	assert.Error(t, b.AddFeatureDir(filepath.Join(dir, "missing")))
}

func TestGlyphMap(t *testing.T) {
	m := GlyphMap{"f_f_i": 500, "a.alt": 501}
	buf := &strings.Builder{}
	require.NoError(t, m.Write(buf))
	assert.Equal(t, "{\n  \"a.alt\": 501,\n  \"f_f_i\": 500\n}\n", buf.String())

	m2, err := ReadGlyphMap(strings.NewReader(buf.String()))
	require.NoError(t, err)
	if d := cmp.Diff(m, m2); d != "" {
		t.Error(d)
	}

	fname := filepath.Join(t.TempDir(), "map.json")
	require.NoError(t, os.WriteFile(fname, []byte(buf.String()), 0o644))
	m3, err := ReadGlyphMapFile(fname)
	require.NoError(t, err)
	assert.Equal(t, m, m3)
}

func TestGlyphMapErrors(t *testing.T) {
	for _, in := range []string{
		`{"a": -1}`,
		`{"a": 65536}`,
		`{"a": "x"}`,
		`[1, 2]`,
		``,
	} {
		_, err := ReadGlyphMap(strings.NewReader(in))
		assert.Error(t, err, "input %q", in)
	}
}
