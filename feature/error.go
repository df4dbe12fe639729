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
	"fmt"

	"seehuhn.de/go/sfnt/glyph"
)

// UnresolvedGlyphError is returned by [RewriteFeatureText] if a feature file
// uses a glyph which cannot be found in the merged font.
type UnresolvedGlyphError struct {
	Name string

	// ID is the glyph ID from the glyph map, or -1 if the glyph map has no
	// entry for Name.
	ID int
}

func (err *UnresolvedGlyphError) Error() string {
	if err.ID < 0 {
		return fmt.Sprintf("feature: glyph %q not in glyph map", err.Name)
	}
	return fmt.Sprintf("feature: glyph %q: invalid glyph ID %d", err.Name, err.ID)
}

func unresolved(name string, gid glyph.ID) error {
	return &UnresolvedGlyphError{Name: name, ID: int(gid)}
}
