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
	"io"
	"maps"
	"os"

	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/head"
	"seehuhn.de/go/sfnt/header"

	"github.com/consolig/fontmerge/font"
)

// WriteFile writes the font to the named file.
func WriteFile(fname string, f *font.Font) error {
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	_, err = Write(fd, f)
	if err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}

// Write writes the font in TrueType format to w.
// The number of bytes written is returned.
func Write(w io.Writer, f *font.Font) (int64, error) {
	tables, err := Encode(f)
	if err != nil {
		return 0, err
	}
	for tag, data := range tables {
		if len(tag) != 4 {
			return 0, malformed("", "invalid table tag %q", tag)
		}
		if data == nil {
			delete(tables, tag)
		}
	}
	return header.Write(w, header.ScalerTypeTrueType, tables)
}

// Encode converts a [font.Font] into binary tables, indexed by table tag.
// This is the inverse of [Decode].
func Encode(f *font.Font) (map[string][]byte, error) {
	order, err := f.GetGlyphOrder()
	if err != nil {
		return nil, err
	}
	maxProfile, err := f.GetMaxProfile()
	if err != nil {
		return nil, err
	}

	tables := maps.Clone(f.Tables)
	if tables == nil {
		tables = make(map[string][]byte)
	}

	numGlyphs := order.Len()
	if numGlyphs < 1 || numGlyphs > 0xFFFF {
		return nil, malformed("maxp", "invalid number of glyphs %d", numGlyphs)
	}
	maxpInfo := maxProfile.Info
	maxpInfo.NumGlyphs = numGlyphs
	tables["maxp"] = maxpInfo.Encode()

	if f.Post != nil {
		tables["post"], err = encodePost(f.Post, order.Names())
		if err != nil {
			return nil, err
		}
	}

	var headInfo *head.Info
	if data, ok := tables["head"]; ok {
		headInfo, err = head.Read(bytes.NewReader(data))
		if err != nil {
			return nil, malformed("head", "%w", err)
		}
	}

	var extents []funit.Rect16
	if f.Outlines != nil {
		if headInfo == nil {
			return nil, &font.MissingTableError{Table: "head"}
		}
		var enc *glyf.Encoded
		enc, extents, err = encodeGlyf(f.Outlines, order)
		if err != nil {
			return nil, err
		}
		tables["glyf"] = enc.GlyfData
		tables["loca"] = enc.LocaData
		headInfo.LocaFormat = enc.LocaFormat

		var bbox funit.Rect16
		for _, ext := range extents {
			bbox.Extend(ext)
		}
		headInfo.FontBBox = bbox
	}
	if headInfo != nil {
		tables["head"] = headInfo.Encode()
	}

	if f.Spacing != nil {
		hheaData, ok := tables["hhea"]
		if !ok {
			return nil, &font.MissingTableError{Table: "hhea"}
		}
		tables["hhea"], tables["hmtx"], err = encodeHmtx(f.Spacing, order, hheaData, extents)
		if err != nil {
			return nil, err
		}
	}

	if f.Hinting != nil {
		tables["fpgm"] = f.Hinting.Instructions
	}

	if f.Names != nil {
		tables["name"] = encodeName(f.Names)
	}

	if f.CMap != nil {
		tables["cmap"], err = encodeCMap(f.CMap, order)
		if err != nil {
			return nil, err
		}
	}

	return tables, nil
}
