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

// Package merge copies supplementary glyphs from a source font into a
// target font.
//
// A merge runs in three stages, each of which produces a typed artifact
// used by the next one:
//
//   - [ExtractWhitelist] determines which glyphs of the source font are
//     new.  These are the glyphs listed among the extra names of the
//     source "post" table.
//   - [AllocateIdentifiers] assigns glyph IDs in the target font to the
//     new glyphs.  New glyphs are appended after the last glyph of the
//     target, in the order in which they appear in the source font.
//   - [MergeTables] copies glyph order, metrics, character mappings,
//     outlines and the font program into the target, and replaces the
//     naming tables of the target by the ones from the source.
//
// [Merge] runs all three stages.  If any stage fails, the target font is
// left in an unspecified state and must be discarded.
package merge

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'fontmerge.merge'.
func tracer() tracing.Trace {
	return tracing.Select("fontmerge.merge")
}
