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

package ttfio

import (
	"strconv"

	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"

	"github.com/consolig/fontmerge/font"
)

// https://docs.microsoft.com/en-us/typography/opentype/spec/glyf
func decodeGlyf(enc *glyf.Encoded, order *font.GlyphOrder) (*font.OutlineTable, error) {
	glyphs, err := glyf.Decode(enc)
	if err != nil {
		return nil, malformed("glyf", "%w", err)
	}
	if len(glyphs) < order.Len() {
		return nil, malformed("loca", "%d entries for %d glyphs", len(glyphs), order.Len())
	}

	outlines := &font.OutlineTable{
		Glyphs: make([]*font.Outline, order.Len()),
	}
	for gid, name := range order.All() {
		g := glyphs[gid]
		o := &font.Outline{Name: name, Glyph: g}
		for _, c := range g.Components() {
			cName := order.Name(c)
			if cName == "" {
				return nil, &MalformedFileError{
					Table: "glyf",
					Err:   glyphError(name, &componentError{gid: c}),
				}
			}
			o.Components = append(o.Components, cName)
		}
		outlines.Glyphs[gid] = o
	}
	return outlines, nil
}

// encodeGlyf arranges the outlines in glyph order and converts the
// component references of composite glyphs into glyph IDs.  The bounding
// boxes of the glyphs are returned, indexed by glyph ID.
func encodeGlyf(outlines *font.OutlineTable, order *font.GlyphOrder) (*glyf.Encoded, []funit.Rect16, error) {
	idx, err := outlines.Index()
	if err != nil {
		return nil, nil, err
	}

	glyphs := make(glyf.Glyphs, order.Len())
	extents := make([]funit.Rect16, order.Len())
	for gid, name := range order.All() {
		i, ok := idx[name]
		if !ok || outlines.Glyphs[i].Glyph == nil {
			continue
		}
		o := outlines.Glyphs[i]

		g := o.Glyph
		old := g.Components()
		if len(old) != len(o.Components) {
			return nil, nil, malformed("glyf", "glyph %q: %d component names for %d components",
				name, len(o.Components), len(old))
		}
		if len(old) > 0 {
			newGid := make(map[glyph.ID]glyph.ID, len(old))
			for k, cName := range o.Components {
				cGid, ok := order.ID(cName)
				if !ok {
					return nil, nil, &font.MissingTableError{
						Table: font.TagGlyphOrder,
						Field: "component " + strconv.Quote(cName) + " of " + strconv.Quote(name),
					}
				}
				if prev, seen := newGid[old[k]]; seen && prev != cGid {
					return nil, nil, malformed("glyf", "glyph %q: inconsistent component names", name)
				}
				newGid[old[k]] = cGid
			}
			g = g.FixComponents(newGid)
		}
		glyphs[gid] = g
		extents[gid] = g.Rect16
	}
	return glyphs.Encode(), extents, nil
}
