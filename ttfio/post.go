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
	"bytes"
	"slices"

	"seehuhn.de/go/sfnt/post"

	"github.com/consolig/fontmerge/font"
)

// decodePost decodes a "post" table.  The second return value lists the
// glyph names stored in the table, indexed by glyph ID.
//
// Version 2.5 tables are read as version 3.0 tables, so the glyph names
// are regenerated from the glyph order.
func decodePost(data []byte, numGlyphs int) (*font.PostTable, []string, error) {
	if len(data) < 4 {
		return nil, nil, malformed("post", "table too short")
	}
	version := uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
	if version == font.PostVersion25 {
		data = slices.Clone(data)
		data[0], data[1], data[2], data[3] = 0, 3, 0, 0
		version = font.PostVersion3
	}

	info, err := post.Read(bytes.NewReader(data))
	if err != nil {
		return nil, nil, malformed("post", "%w", err)
	}
	res := &font.PostTable{
		Version:            version,
		ItalicAngle:        info.ItalicAngle,
		UnderlinePosition:  info.UnderlinePosition,
		UnderlineThickness: info.UnderlineThickness,
		IsFixedPitch:       info.IsFixedPitch,
	}

	names := info.Names
	if len(names) > numGlyphs {
		names = names[:numGlyphs]
	}
	names = slices.Clone(names)

	if version == font.PostVersion2 {
		res.ExtraNames = []string{}
		seen := make(map[string]bool)
		for _, name := range names {
			if _, isStandard := font.MacGlyphIndex(name); isStandard || seen[name] {
				continue
			}
			seen[name] = true
			res.ExtraNames = append(res.ExtraNames, name)
		}
	}
	return res, names, nil
}

// encodePost encodes the "post" table for a font with the given glyph
// names.  Version 3.0 tables carry no names.  All other tables are written
// as version 1.0 if the names are the standard Macintosh names, and as
// version 2.0 otherwise.
func encodePost(p *font.PostTable, names []string) ([]byte, error) {
	info := &post.Info{
		ItalicAngle:        p.ItalicAngle,
		UnderlinePosition:  p.UnderlinePosition,
		UnderlineThickness: p.UnderlineThickness,
		IsFixedPitch:       p.IsFixedPitch,
	}
	if p.Version != font.PostVersion3 {
		for _, name := range names {
			if len(name) > 255 {
				return nil, malformed("post", "glyph name %q too long", name)
			}
		}
		info.Names = slices.Clone(names)
		if info.Names == nil {
			info.Names = []string{}
		}
	}
	return info.Encode(), nil
}
