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

package merge

import (
	"maps"
	"slices"
	"strconv"

	"github.com/consolig/fontmerge/font"
)

// Whitelist is the set of glyph names which are copied from the source
// font into the target font.
type Whitelist map[string]bool

// NewWhitelist returns a whitelist containing the given names.
func NewWhitelist(names ...string) Whitelist {
	wl := make(Whitelist, len(names))
	for _, name := range names {
		wl[name] = true
	}
	return wl
}

// Has reports whether the glyph name is in the whitelist.
func (wl Whitelist) Has(name string) bool {
	return wl[name]
}

// Names returns the names in the whitelist in lexicographic order.
func (wl Whitelist) Names() []string {
	return slices.Sorted(maps.Keys(wl))
}

// ExtractWhitelist returns the extra glyph names of the "post" table of
// the source font.  These are the glyphs which the source font adds
// beyond the standard Macintosh glyph set.
//
// A [font.MissingTableError] is returned if the source font has no "post"
// table, if the table has no extra names list, or if one of the names does
// not occur in the glyph order of the source font.  An extra names list
// which is present but empty gives an empty whitelist.
func ExtractWhitelist(source *font.Font) (Whitelist, error) {
	post, err := source.GetPost()
	if err != nil {
		return nil, err
	}
	if !post.HasExtraNames() {
		return nil, &font.MissingTableError{Table: font.TagPost, Field: "extra names"}
	}
	order, err := source.GetGlyphOrder()
	if err != nil {
		return nil, err
	}

	wl := make(Whitelist, len(post.ExtraNames))
	for _, name := range post.ExtraNames {
		if !order.Has(name) {
			return nil, &font.MissingTableError{
				Table: font.TagGlyphOrder,
				Field: "glyph " + strconv.Quote(name),
			}
		}
		wl[name] = true
	}

	tracer().Debugf("whitelist: %d glyphs", len(wl))
	return wl, nil
}
