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

package font

import (
	"slices"

	"seehuhn.de/go/sfnt/glyf"
)

// Outline is the "glyf" record of a single glyph.
//
// Glyph is nil for glyphs without an outline, for example the space glyph.
// The glyph IDs stored inside a composite glyph are only meaningful in the
// font the outline was read from.  Components gives the names of the
// referenced glyphs, in the order of the glyph's components, and the codec
// rewrites the numeric references when the font is written.
type Outline struct {
	Name       string
	Glyph      *glyf.Glyph
	Components []string
}

// IsComposite reports whether the outline is a composite glyph.
func (o *Outline) IsComposite() bool {
	if o.Glyph == nil {
		return false
	}
	_, ok := o.Glyph.Data.(glyf.CompositeGlyph)
	return ok
}

// Clone returns a deep copy of the outline.
func (o *Outline) Clone() *Outline {
	res := &Outline{
		Name:       o.Name,
		Components: slices.Clone(o.Components),
	}
	if o.Glyph == nil {
		return res
	}
	g := *o.Glyph
	switch d := g.Data.(type) {
	case glyf.SimpleGlyph:
		d.Encoded = slices.Clone(d.Encoded)
		g.Data = d
	case glyf.CompositeGlyph:
		comps := make([]glyf.GlyphComponent, len(d.Components))
		for i, c := range d.Components {
			c.Data = slices.Clone(c.Data)
			comps[i] = c
		}
		d.Components = comps
		d.Instructions = slices.Clone(d.Instructions)
		g.Data = d
	}
	res.Glyph = &g
	return res
}

// OutlineTable holds the glyph outlines of a TrueType font.
type OutlineTable struct {
	Glyphs []*Outline
}

// Index returns a map from glyph names to positions in t.Glyphs.
// An error is returned if an entry has no name, or if a name occurs twice.
func (t *OutlineTable) Index() (map[string]int, error) {
	idx := make(map[string]int, len(t.Glyphs))
	for i, g := range t.Glyphs {
		if g == nil || g.Name == "" {
			return nil, &MalformedEntryError{Table: TagOutlines, Index: i, Attr: "name"}
		}
		if _, dup := idx[g.Name]; dup {
			return nil, &DuplicateGlyphError{Table: TagOutlines, Name: g.Name}
		}
		idx[g.Name] = i
	}
	return idx, nil
}

// HintingProgram is the font program from the "fpgm" table.
type HintingProgram struct {
	Instructions []byte
}
