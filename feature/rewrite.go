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
	"slices"
	"strings"

	"github.com/consolig/fontmerge/font"
	"github.com/consolig/fontmerge/merge"
)

// RewriteFeatureText replaces the whitelisted glyph names in a feature
// file by the names the glyphs have in the merged font.  The glyph map
// gives the glyph ID in the merged font for each whitelisted name.
//
// Only tokens which denote glyph names are rewritten.  Feature tags,
// lookup names, script and language tags, class names, strings and
// comments are left unchanged, as are glyph names which occur only as
// part of a longer name.  A backslash in front of a glyph name is kept.
//
// An [*UnresolvedGlyphError] is returned if a whitelisted glyph occurs in
// the text but the glyph map has no entry for it, or if the entry is
// outside the glyph range of the merged font.
func RewriteFeatureText(text string, wl merge.Whitelist, glyphMap GlyphMap, merged *font.Font) (string, error) {
	order, err := merged.GetGlyphOrder()
	if err != nil {
		return "", err
	}

	tokens := Lex(text)
	uses := make(map[string][]int)
	for i, tok := range tokens {
		if tok.Type != TokenGlyph {
			continue
		}
		name := tok.GlyphName()
		if wl.Has(name) {
			uses[name] = append(uses[name], i)
		}
	}

	// process names in descending order
	names := wl.Names()
	slices.Reverse(names)

	replacement := make(map[int]string)
	for _, name := range names {
		pos := uses[name]
		if len(pos) == 0 {
			continue
		}
		gid, ok := glyphMap[name]
		if !ok {
			return "", &UnresolvedGlyphError{Name: name, ID: -1}
		}
		newName := order.Name(gid)
		if newName == "" {
			return "", unresolved(name, gid)
		}
		for _, i := range pos {
			if _, done := replacement[i]; done {
				continue
			}
			replacement[i] = newName
		}
		tracer().Debugf("%q -> %q (%d times)", name, newName, len(pos))
	}
	if len(replacement) == 0 {
		return text, nil
	}

	w := &strings.Builder{}
	last := 0
	for i, tok := range tokens {
		newName, ok := replacement[i]
		if !ok {
			continue
		}
		start := tok.Offset
		if strings.HasPrefix(tok.Val, `\`) {
			start++
		}
		w.WriteString(text[last:start])
		w.WriteString(newName)
		last = tok.Offset + len(tok.Val)
	}
	w.WriteString(text[last:])
	return w.String(), nil
}
