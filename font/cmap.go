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
	"fmt"
	"maps"
	"slices"
)

// SubtableKey identifies a cmap subtable within a font.
type SubtableKey struct {
	Format     uint16
	Language   uint32
	EncodingID uint16
	PlatformID uint16
}

func (key SubtableKey) String() string {
	return fmt.Sprintf("format %d, language %d, encoding %d, platform %d",
		key.Format, key.Language, key.EncodingID, key.PlatformID)
}

// CMapSubtable maps character codes to glyph names.
type CMapSubtable struct {
	Key SubtableKey
	Map map[uint32]string
}

// Codes returns the character codes of the subtable in increasing order.
func (s *CMapSubtable) Codes() []uint32 {
	return slices.Sorted(maps.Keys(s.Map))
}

// CMapTable holds the character to glyph mappings of a font.
type CMapTable struct {
	Subtables []*CMapSubtable

	// Unparsed holds subtables in formats which cannot be represented as a
	// code to glyph name mapping.  These are written back unchanged.
	Unparsed []RawSubtable
}

// RawSubtable is the binary form of a cmap subtable.
type RawSubtable struct {
	PlatformID uint16
	EncodingID uint16
	Data       []byte
}

// Get returns the subtable with the given key, or nil if there is none.
func (t *CMapTable) Get(key SubtableKey) *CMapSubtable {
	for _, s := range t.Subtables {
		if s.Key == key {
			return s
		}
	}
	return nil
}

// CheckKeys returns a [DuplicateKeyError] if two subtables share a key.
func (t *CMapTable) CheckKeys() error {
	seen := make(map[SubtableKey]bool, len(t.Subtables))
	for _, s := range t.Subtables {
		if seen[s.Key] {
			return &DuplicateKeyError{Key: s.Key}
		}
		seen[s.Key] = true
	}
	return nil
}
