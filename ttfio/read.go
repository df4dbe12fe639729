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

// Package ttfio reads and writes TrueType font files.
//
// [Read] decodes the tables which take part in a glyph merge into the typed
// fields of a [font.Font] and keeps all other tables verbatim.  [Write]
// encodes a font again.  Tables whose contents depend on the number of
// glyphs ("maxp", "hhea", "hmtx", "loca", "glyf", "post", "head") are
// regenerated from the glyph order when the font is written.
//
// The binary formats of the individual tables are handled by the packages
// of seehuhn.de/go/sfnt; this package maps between glyph IDs and the glyph
// names used by [font.Font].
package ttfio

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/head"
	"seehuhn.de/go/sfnt/header"
	"seehuhn.de/go/sfnt/maxp"

	"github.com/consolig/fontmerge/font"
)

// ReadFile reads a TrueType font from the named file.
func ReadFile(fname string) (*font.Font, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	f, err := Read(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return f, nil
}

// Read reads a TrueType font.
func Read(r io.ReaderAt) (*font.Font, error) {
	info, err := header.Read(r)
	if err != nil {
		return nil, err
	}
	if info.ScalerType != header.ScalerTypeTrueType &&
		info.ScalerType != header.ScalerTypeApple {
		return nil, malformed("", "unsupported scaler type 0x%08x", info.ScalerType)
	}

	tables := make(map[string][]byte, len(info.Toc))
	for tag := range info.Toc {
		data, err := info.ReadTableBytes(r, tag)
		if err != nil {
			return nil, err
		}
		tables[tag] = data
	}
	return Decode(tables)
}

// Decode converts the binary tables of a TrueType font into a [font.Font].
// The map is indexed by table tag.  The "maxp" table is required.
func Decode(tables map[string][]byte) (*font.Font, error) {
	f := &font.Font{
		Tables: make(map[string][]byte),
	}

	maxpData, ok := tables["maxp"]
	if !ok {
		return nil, &font.MissingTableError{Table: font.TagMaxProfile}
	}
	maxpInfo, err := maxp.Read(bytes.NewReader(maxpData))
	if err != nil {
		return nil, malformed("maxp", "%w", err)
	}
	f.MaxProfile = &font.MaxProfile{Info: *maxpInfo}
	numGlyphs := maxpInfo.NumGlyphs

	var names []string
	if data, ok := tables["post"]; ok {
		f.Post, names, err = decodePost(data, numGlyphs)
		if err != nil {
			return nil, err
		}
	}
	f.GlyphOrder, err = makeGlyphOrder(names, numGlyphs)
	if err != nil {
		return nil, err
	}

	if hmtxData, ok := tables["hmtx"]; ok {
		hheaData, ok := tables["hhea"]
		if !ok {
			return nil, &font.MissingTableError{Table: "hhea"}
		}
		f.Spacing, err = decodeHmtx(hheaData, hmtxData, f.GlyphOrder)
		if err != nil {
			return nil, err
		}
	}

	if glyfData, ok := tables["glyf"]; ok {
		locaData, ok := tables["loca"]
		if !ok {
			return nil, &font.MissingTableError{Table: "loca"}
		}
		headData, ok := tables["head"]
		if !ok {
			return nil, &font.MissingTableError{Table: "head"}
		}
		headInfo, err := head.Read(bytes.NewReader(headData))
		if err != nil {
			return nil, malformed("head", "%w", err)
		}
		f.Outlines, err = decodeGlyf(&glyf.Encoded{
			GlyfData:   glyfData,
			LocaData:   locaData,
			LocaFormat: headInfo.LocaFormat,
		}, f.GlyphOrder)
		if err != nil {
			return nil, err
		}
	}

	if data, ok := tables["fpgm"]; ok {
		f.Hinting = &font.HintingProgram{
			Instructions: append([]byte(nil), data...),
		}
	}

	if data, ok := tables["name"]; ok {
		f.Names, err = decodeName(data)
		if err != nil {
			return nil, err
		}
	}

	if data, ok := tables["cmap"]; ok {
		f.CMap, err = decodeCMap(data, f.GlyphOrder)
		if err != nil {
			return nil, err
		}
	}

	for tag, data := range tables {
		if isDecoded[tag] {
			continue
		}
		f.Tables[tag] = data
	}

	return f, nil
}

// isDecoded lists the tables which are represented by a field of font.Font,
// or which are regenerated when the font is written.
var isDecoded = map[string]bool{
	"maxp": true,
	"post": true,
	"hmtx": true,
	"glyf": true,
	"loca": true,
	"fpgm": true,
	"name": true,
	"cmap": true,
}

func makeGlyphOrder(names []string, numGlyphs int) (*font.GlyphOrder, error) {
	all := make([]string, numGlyphs)
	used := make(map[string]bool, numGlyphs)
	for gid := range all {
		var name string
		if gid < len(names) {
			name = names[gid]
		}
		if name == "" {
			if gid == 0 {
				name = ".notdef"
			} else {
				name = fmt.Sprintf("glyph%05d", gid)
			}
		}
		if used[name] {
			base := name
			for k := 1; used[name]; k++ {
				name = fmt.Sprintf("%s#%d", base, k)
			}
		}
		used[name] = true
		all[gid] = name
	}
	return font.NewGlyphOrder(all...)
}
