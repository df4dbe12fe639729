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

// Package font holds the in-memory representation of a TrueType font used
// while merging glyphs from one font into another.
//
// A [Font] has one typed field per table the merge engine needs to look
// into.  All other tables are carried as raw bytes in [Font.Tables].  Glyphs
// are referred to by name throughout, so that per-glyph data stays valid
// when new glyphs are appended to the glyph order.  Reading and writing the
// binary representation is done by the ttfio package.
//
// # Tables
//
//   - [GlyphOrder]: glyph IDs and glyph names
//   - [SpacingTable]: the "hmtx" table
//   - [CMapTable]: the "cmap" table
//   - [OutlineTable]: the "glyf" and "loca" tables
//   - [HintingProgram]: the "fpgm" table
//   - [PostTable]: the "post" table
//   - [NameTable]: the "name" table
//   - [MaxProfile]: the "maxp" table
package font
