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

	"seehuhn.de/go/sfnt/glyph"
)

type componentError struct {
	gid glyph.ID
}

func (err *componentError) Error() string {
	return "component references missing glyph " + strconv.Itoa(int(err.gid))
}

type namedGlyphError struct {
	name string
	err  error
}

func (err *namedGlyphError) Error() string {
	return "glyph " + strconv.Quote(err.name) + ": " + err.err.Error()
}

func (err *namedGlyphError) Unwrap() error {
	return err.err
}

func glyphError(name string, err error) error {
	return &namedGlyphError{name: name, err: err}
}
