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

import "seehuhn.de/go/postscript/funit"

// Versions of the "post" table.
const (
	PostVersion1  uint32 = 0x00010000
	PostVersion2  uint32 = 0x00020000
	PostVersion25 uint32 = 0x00025000
	PostVersion3  uint32 = 0x00030000
)

// PostTable holds the information from the "post" table.
//
// For version 2.0 tables, ExtraNames lists the glyph names which are not
// among the standard Macintosh glyph names, in glyph order.  The list may
// be present and empty.
type PostTable struct {
	Version            uint32
	ItalicAngle        float64 // in degrees
	UnderlinePosition  funit.Int16
	UnderlineThickness funit.Int16
	IsFixedPitch       bool

	ExtraNames []string
}

// HasExtraNames reports whether the table carries an extra names list.
func (p *PostTable) HasExtraNames() bool {
	return p.Version == PostVersion2
}
