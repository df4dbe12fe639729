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
	"iter"
	"strconv"

	"seehuhn.de/go/sfnt/glyph"
)

// MaxGlyphs is the largest number of glyphs a TrueType font can hold.
const MaxGlyphs = 0xFFFF

// GlyphOrder is the list of glyph names of a font, indexed by glyph ID.
// Glyph IDs are contiguous, starting at 0, and glyph names are unique.
type GlyphOrder struct {
	names []string
	index map[string]glyph.ID
}

// NewGlyphOrder returns a glyph order containing the given names, in order.
func NewGlyphOrder(names ...string) (*GlyphOrder, error) {
	o := &GlyphOrder{
		names: make([]string, 0, len(names)),
		index: make(map[string]glyph.ID, len(names)),
	}
	for _, name := range names {
		if err := o.Append(glyph.ID(len(o.names)), name); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Len returns the number of glyphs.
func (o *GlyphOrder) Len() int {
	return len(o.names)
}

// Name returns the name of the glyph with the given ID.
// If the ID is out of range, the empty string is returned.
func (o *GlyphOrder) Name(gid glyph.ID) string {
	if int(gid) >= len(o.names) {
		return ""
	}
	return o.names[gid]
}

// ID returns the glyph ID for the given name.
func (o *GlyphOrder) ID(name string) (glyph.ID, bool) {
	gid, ok := o.index[name]
	return gid, ok
}

// Has reports whether a glyph of the given name exists.
func (o *GlyphOrder) Has(name string) bool {
	_, ok := o.index[name]
	return ok
}

// MaxID returns the largest glyph ID in use.
// A [MissingTableError] is returned if the glyph order is empty.
func (o *GlyphOrder) MaxID() (glyph.ID, error) {
	if len(o.names) == 0 {
		return 0, &MissingTableError{Table: TagGlyphOrder, Field: "glyphs"}
	}
	return glyph.ID(len(o.names) - 1), nil
}

// Append adds a glyph to the end of the glyph order.  The glyph ID must be
// the next unused ID, and the name must not yet be used.
func (o *GlyphOrder) Append(gid glyph.ID, name string) error {
	if int(gid) != len(o.names) {
		return &MalformedEntryError{Table: TagGlyphOrder, Index: int(gid),
			Attr: "id " + strconv.Itoa(len(o.names))}
	}
	if len(o.names) >= MaxGlyphs {
		return &MalformedEntryError{Table: TagGlyphOrder, Index: int(gid),
			Attr: "free glyph ID"}
	}
	if name == "" {
		return &MalformedEntryError{Table: TagGlyphOrder, Index: int(gid), Attr: "name"}
	}
	if _, dup := o.index[name]; dup {
		return &DuplicateGlyphError{Table: TagGlyphOrder, Name: name}
	}
	if o.index == nil {
		o.index = make(map[string]glyph.ID)
	}
	o.names = append(o.names, name)
	o.index[name] = gid
	return nil
}

// Names returns a copy of the glyph names, indexed by glyph ID.
func (o *GlyphOrder) Names() []string {
	res := make([]string, len(o.names))
	copy(res, o.names)
	return res
}

// All iterates over all glyphs in order of increasing glyph ID.
func (o *GlyphOrder) All() iter.Seq2[glyph.ID, string] {
	return func(yield func(glyph.ID, string) bool) {
		for i, name := range o.names {
			if !yield(glyph.ID(i), name) {
				return
			}
		}
	}
}
