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

import (
	"fmt"
	"strconv"
)

// MissingTableError indicates that a table, or a required part of a table,
// is absent from a font.
type MissingTableError struct {
	Table string
	Field string
}

func (err *MissingTableError) Error() string {
	if err.Field == "" {
		return "font: missing " + err.Table + " table"
	}
	return "font: " + err.Table + ": missing " + err.Field
}

// MalformedEntryError indicates that an entry of a table lacks a required
// attribute.
type MalformedEntryError struct {
	Table string
	Index int
	Attr  string
}

func (err *MalformedEntryError) Error() string {
	return "font: " + err.Table + " entry " + strconv.Itoa(err.Index) +
		": missing " + err.Attr
}

// DuplicateKeyError indicates that a font contains two cmap subtables with
// the same key.
type DuplicateKeyError struct {
	Key SubtableKey
}

func (err *DuplicateKeyError) Error() string {
	return fmt.Sprintf("font: cmap: duplicate subtable %s", err.Key)
}

// DuplicateGlyphError indicates that a glyph name occurs twice in a table
// where glyph names must be unique.
type DuplicateGlyphError struct {
	Table string
	Name  string
}

func (err *DuplicateGlyphError) Error() string {
	return "font: " + err.Table + ": duplicate glyph name " + strconv.Quote(err.Name)
}
