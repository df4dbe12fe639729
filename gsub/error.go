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

package gsub

import (
	"errors"
	"fmt"
)

// SyntaxError is returned by [Compile] if the feature text cannot be
// parsed or uses unsupported constructs.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("gsub: %d:%d: %s", err.Line, err.Col, err.Msg)
}

// ErrTooLarge is returned by [Compile] if the generated table cannot be
// represented with 16-bit offsets.
var ErrTooLarge = errors.New("gsub: table too large")
