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

// Package feature assembles and rewrites OpenType feature files.
//
// Feature files describe glyph substitutions in the feature file syntax
// of the Adobe Font Development Kit.  [Builder] assembles a feature file
// from glyph classes, a prologue and a set of named features.
// [RewriteFeatureText] replaces glyph names in a feature file by the names
// the glyphs have in a merged font.  Both the rewriter and the rule compiler
// in package gsub use the tokenizer [Lex].
package feature

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'fontmerge.feature'.
func tracer() tracing.Trace {
	return tracing.Select("fontmerge.feature")
}
