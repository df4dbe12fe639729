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

// Package gsub compiles substitution rules in OpenType feature file syntax
// into a "GSUB" table.
//
// The following subset of the feature file syntax is supported:
//
//   - languagesystem statements,
//   - named glyph classes and inline classes, including glyph ranges,
//   - feature blocks, and named lookup blocks with lookup references,
//   - lookupflag statements without mark filtering,
//   - single, multiple, alternate and ligature substitutions,
//   - an "aalt" feature which refers to other features.
//
// Contextual rules, positioning rules, and script and language statements
// inside features are rejected with a [*SyntaxError].
package gsub
