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
	"fmt"
	"strconv"

	"seehuhn.de/go/sfnt/glyph"

	"github.com/consolig/fontmerge/font"
)

// Entry is a glyph which is appended to the glyph order of the target font.
type Entry struct {
	ID   glyph.ID
	Name string
}

// IdentifierMap maps the glyph IDs of whitelisted source glyphs to the
// glyph IDs they receive in the target font.
//
// New IDs are allocated after the largest glyph ID of the target font, in
// order of increasing source glyph ID, without gaps.  If the name of a
// whitelisted glyph is already used in the target font, the glyph is
// renamed by appending ".merged" to the name, followed by a number if
// needed to make the name unique.
type IdentifierMap struct {
	ids     map[glyph.ID]glyph.ID
	renamed map[string]string
	entries []Entry
}

// Len returns the number of glyphs in the map.
func (m *IdentifierMap) Len() int {
	return len(m.entries)
}

// Get returns the target glyph ID for the given source glyph ID.
func (m *IdentifierMap) Get(srcID glyph.ID) (glyph.ID, bool) {
	gid, ok := m.ids[srcID]
	return gid, ok
}

// TargetName returns the name the source glyph has in the target font.
// If the glyph is not in the map, the empty string is returned.
func (m *IdentifierMap) TargetName(srcID glyph.ID) string {
	gid, ok := m.ids[srcID]
	if !ok {
		return ""
	}
	first := m.entries[0].ID
	return m.entries[gid-first].Name
}

// Rename returns the name a source glyph has in the target font.  Names of
// glyphs which are not copied into the target are returned unchanged.
func (m *IdentifierMap) Rename(srcName string) string {
	if name, ok := m.renamed[srcName]; ok {
		return name
	}
	return srcName
}

// Entries returns the glyphs to be appended to the target glyph order,
// in order of increasing glyph ID.
func (m *IdentifierMap) Entries() []Entry {
	return m.entries
}

// AllocateIdentifiers assigns target glyph IDs to the whitelisted glyphs
// of the source font.
//
// A [font.MissingTableError] is returned if either font has no glyph order,
// if the glyph order of the target font is empty, or if a whitelisted
// name does not occur in the glyph order of the source font.
func AllocateIdentifiers(target, source *font.Font, wl Whitelist) (*IdentifierMap, error) {
	targetOrder, err := target.GetGlyphOrder()
	if err != nil {
		return nil, err
	}
	maxID, err := targetOrder.MaxID()
	if err != nil {
		return nil, err
	}
	sourceOrder, err := source.GetGlyphOrder()
	if err != nil {
		return nil, err
	}
	for _, name := range wl.Names() {
		if wl.Has(name) && !sourceOrder.Has(name) {
			return nil, &font.MissingTableError{
				Table: font.TagGlyphOrder,
				Field: "glyph " + strconv.Quote(name),
			}
		}
	}

	m := &IdentifierMap{
		ids:     make(map[glyph.ID]glyph.ID, len(wl)),
		renamed: make(map[string]string, len(wl)),
	}
	used := make(map[string]bool)
	next := int(maxID) + 1
	for srcID, name := range sourceOrder.All() {
		if !wl.Has(name) {
			continue
		}
		if next >= font.MaxGlyphs {
			return nil, fmt.Errorf("merge: more than %d glyphs", font.MaxGlyphs)
		}

		newName := name
		if targetOrder.Has(newName) || used[newName] {
			newName = name + ".merged"
			for k := 2; targetOrder.Has(newName) || used[newName]; k++ {
				newName = fmt.Sprintf("%s.merged%d", name, k)
			}
			tracer().Debugf("glyph %q is renamed to %q", name, newName)
		}
		used[newName] = true

		m.ids[srcID] = glyph.ID(next)
		m.renamed[name] = newName
		m.entries = append(m.entries, Entry{ID: glyph.ID(next), Name: newName})
		next++
	}

	tracer().Debugf("allocated glyph IDs %d to %d", int(maxID)+1, next-1)
	return m, nil
}
