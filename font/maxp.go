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

import "seehuhn.de/go/sfnt/maxp"

// MaxProfile holds the information from the "maxp" table.
// TTF is nil for version 0.5 tables.
type MaxProfile struct {
	maxp.Info
}

// Include raises every limit of m to at least the corresponding limit of
// other.  NumGlyphs is not changed.
func (m *MaxProfile) Include(other *MaxProfile) {
	if other.TTF == nil {
		return
	}
	if m.TTF == nil {
		m.TTF = &maxp.TTFInfo{}
	}
	theirs := limits(other.TTF)
	for i, p := range limits(m.TTF) {
		*p = max(*p, *theirs[i])
	}
}

func limits(ttf *maxp.TTFInfo) []*uint16 {
	return []*uint16{
		&ttf.MaxPoints,
		&ttf.MaxContours,
		&ttf.MaxCompositePoints,
		&ttf.MaxCompositeContours,
		&ttf.MaxZones,
		&ttf.MaxTwilightPoints,
		&ttf.MaxStorage,
		&ttf.MaxFunctionDefs,
		&ttf.MaxInstructionDefs,
		&ttf.MaxStackElements,
		&ttf.MaxSizeOfInstructions,
		&ttf.MaxComponentElements,
		&ttf.MaxComponentDepth,
	}
}
