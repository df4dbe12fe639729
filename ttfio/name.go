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
	"seehuhn.de/go/sfnt/name"

	"github.com/consolig/fontmerge/font"
)

// windowsUnicodeBMP is the Windows encoding ID used for all strings
// written to the "name" table.
const windowsUnicodeBMP = 1

// https://docs.microsoft.com/en-us/typography/opentype/spec/name
func decodeName(data []byte) (*font.NameTable, error) {
	info, err := name.Decode(data)
	if err != nil {
		return nil, malformed("name", "%w", err)
	}
	return &font.NameTable{Info: *info}, nil
}

func encodeName(t *font.NameTable) []byte {
	return t.Encode(windowsUnicodeBMP)
}
