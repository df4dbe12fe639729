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

// Package build runs the complete font build for a list of font styles.
//
// For every style, the base font from the input directory is merged with
// the compiled ligature font from the sources directory.  The feature
// file is rewritten to use the glyph names of the merged font and compiled
// into a "GSUB" table.  Finally the name records are updated from the UFO
// design source, if present, and the font is written to the build
// directory.
package build

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'fontmerge.build'.
func tracer() tracing.Trace {
	return tracing.Select("fontmerge.build")
}
