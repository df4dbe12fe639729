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

// Table names used in error messages and in [Font.Tables].
const (
	TagGlyphOrder = "GlyphOrder"
	TagSpacing    = "hmtx"
	TagCMap       = "cmap"
	TagOutlines   = "glyf"
	TagHinting    = "fpgm"
	TagPost       = "post"
	TagNames      = "name"
	TagMaxProfile = "maxp"
)

// Font is a decoded TrueType font.
//
// A nil field means that the corresponding table is not present in the
// font.  Tables which are not represented by a field are stored verbatim in
// Tables, indexed by their four-letter tag.  Tables which depend on the
// number of glyphs ("head", "hhea") are kept in Tables as well and
// are updated when the font is written.
type Font struct {
	GlyphOrder *GlyphOrder
	Spacing    *SpacingTable
	CMap       *CMapTable
	Outlines   *OutlineTable
	Hinting    *HintingProgram
	Post       *PostTable
	Names      *NameTable
	MaxProfile *MaxProfile

	Tables map[string][]byte
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	if f.GlyphOrder == nil {
		return 0
	}
	return f.GlyphOrder.Len()
}

// GetGlyphOrder returns the glyph order of the font.
func (f *Font) GetGlyphOrder() (*GlyphOrder, error) {
	if f.GlyphOrder == nil {
		return nil, &MissingTableError{Table: TagGlyphOrder}
	}
	return f.GlyphOrder, nil
}

// GetSpacing returns the "hmtx" table of the font.
func (f *Font) GetSpacing() (*SpacingTable, error) {
	if f.Spacing == nil {
		return nil, &MissingTableError{Table: TagSpacing}
	}
	return f.Spacing, nil
}

// GetCMap returns the "cmap" table of the font.
func (f *Font) GetCMap() (*CMapTable, error) {
	if f.CMap == nil {
		return nil, &MissingTableError{Table: TagCMap}
	}
	return f.CMap, nil
}

// GetOutlines returns the "glyf" table of the font.
func (f *Font) GetOutlines() (*OutlineTable, error) {
	if f.Outlines == nil {
		return nil, &MissingTableError{Table: TagOutlines}
	}
	return f.Outlines, nil
}

// GetHinting returns the "fpgm" table of the font.
func (f *Font) GetHinting() (*HintingProgram, error) {
	if f.Hinting == nil {
		return nil, &MissingTableError{Table: TagHinting}
	}
	return f.Hinting, nil
}

// GetPost returns the "post" table of the font.
func (f *Font) GetPost() (*PostTable, error) {
	if f.Post == nil {
		return nil, &MissingTableError{Table: TagPost}
	}
	return f.Post, nil
}

// GetNames returns the "name" table of the font.
func (f *Font) GetNames() (*NameTable, error) {
	if f.Names == nil {
		return nil, &MissingTableError{Table: TagNames}
	}
	return f.Names, nil
}

// GetMaxProfile returns the "maxp" table of the font.
func (f *Font) GetMaxProfile() (*MaxProfile, error) {
	if f.MaxProfile == nil {
		return nil, &MissingTableError{Table: TagMaxProfile}
	}
	return f.MaxProfile, nil
}
