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

package merge

import "strconv"

// AlreadyMergedError is returned when the target font of a merge already
// lists extra glyph names in its "post" table.  This indicates that the
// font is the result of a previous merge.
type AlreadyMergedError struct {
	ExtraNames int
}

func (err *AlreadyMergedError) Error() string {
	return "merge: target font already has " + strconv.Itoa(err.ExtraNames) +
		" extra glyph names"
}
