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

// Metric is the horizontal metric of one glyph.
type Metric struct {
	Name    string
	Advance funit.Int16
	LSB     funit.Int16
}

// SpacingTable holds the glyph metrics from the "hmtx" table.
// Entries are identified by glyph name.  The order of entries is
// irrelevant, when the font is written the metrics are arranged
// according to the glyph order.
type SpacingTable struct {
	Metrics []Metric
}

// Index returns a map from glyph names to positions in t.Metrics.
// An error is returned if an entry has no name, or if a name occurs twice.
func (t *SpacingTable) Index() (map[string]int, error) {
	idx := make(map[string]int, len(t.Metrics))
	for i, m := range t.Metrics {
		if m.Name == "" {
			return nil, &MalformedEntryError{Table: TagSpacing, Index: i, Attr: "name"}
		}
		if _, dup := idx[m.Name]; dup {
			return nil, &DuplicateGlyphError{Table: TagSpacing, Name: m.Name}
		}
		idx[m.Name] = i
	}
	return idx, nil
}
