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
	"encoding/json"
	"fmt"
	"io"
	"os"

	"seehuhn.de/go/sfnt/glyph"
)

// GlyphMap maps glyph names to glyph IDs in a merged font.
type GlyphMap map[string]glyph.ID

// ReadGlyphMap reads a glyph map in JSON format.  The input must be an
// object which maps glyph names to glyph IDs.
func ReadGlyphMap(r io.Reader) (GlyphMap, error) {
	var raw map[string]int
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("glyph map: %w", err)
	}

	res := make(GlyphMap, len(raw))
	for name, gid := range raw {
		if gid < 0 || gid > 0xFFFF {
			return nil, fmt.Errorf("glyph map: invalid glyph ID %d for %q", gid, name)
		}
		res[name] = glyph.ID(gid)
	}
	return res, nil
}

// ReadGlyphMapFile reads a glyph map from the named file.
func ReadGlyphMapFile(fname string) (GlyphMap, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return ReadGlyphMap(fd)
}

// Write writes the glyph map in JSON format, with keys sorted.
func (m GlyphMap) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]glyph.ID(m))
}
