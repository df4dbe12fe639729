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
	"strconv"

	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt/hmtx"

	"github.com/consolig/fontmerge/font"
)

func decodeHmtx(hheaData, hmtxData []byte, order *font.GlyphOrder) (*font.SpacingTable, error) {
	info, err := hmtx.Decode(hheaData, hmtxData)
	if err != nil {
		return nil, malformed("hmtx", "%w", err)
	}

	numGlyphs := order.Len()
	if len(info.Widths) < numGlyphs {
		return nil, malformed("hmtx", "%d metrics for %d glyphs", len(info.Widths), numGlyphs)
	}

	spacing := &font.SpacingTable{
		Metrics: make([]font.Metric, numGlyphs),
	}
	for gid, name := range order.All() {
		spacing.Metrics[gid] = font.Metric{
			Name:    name,
			Advance: info.Widths[gid],
			LSB:     info.LSB[gid],
		}
	}
	return spacing, nil
}

// encodeHmtx arranges the metrics in glyph order.  The "hhea" table is
// regenerated to match.  If extents is non-nil, it gives the glyph
// bounding boxes, indexed by glyph ID, and is used for the side bearing
// fields of "hhea".
func encodeHmtx(spacing *font.SpacingTable, order *font.GlyphOrder, hheaData []byte, extents []funit.Rect16) (hhea, hmtxData []byte, err error) {
	idx, err := spacing.Index()
	if err != nil {
		return nil, nil, err
	}

	info, err := hmtx.Decode(hheaData, nil)
	if err != nil {
		return nil, nil, malformed("hhea", "%w", err)
	}

	numGlyphs := order.Len()
	info.Widths = make([]funit.Int16, numGlyphs)
	info.LSB = make([]funit.Int16, numGlyphs)
	for gid, name := range order.All() {
		i, ok := idx[name]
		if !ok {
			return nil, nil, &font.MissingTableError{
				Table: font.TagSpacing,
				Field: "metrics for glyph " + strconv.Quote(name),
			}
		}
		info.Widths[gid] = spacing.Metrics[i].Advance
		info.LSB[gid] = spacing.Metrics[i].LSB
	}
	if len(extents) == numGlyphs {
		info.GlyphExtents = extents
	}

	hhea, hmtxData = info.Encode()
	return hhea, hmtxData, nil
}
