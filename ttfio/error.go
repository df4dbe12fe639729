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

import "fmt"

// MalformedFileError indicates that a font file could not be decoded or
// encoded.
type MalformedFileError struct {
	Table string
	Err   error
}

func (err *MalformedFileError) Error() string {
	if err.Table == "" {
		return "ttfio: " + err.Err.Error()
	}
	return "ttfio: " + err.Table + ": " + err.Err.Error()
}

func (err *MalformedFileError) Unwrap() error {
	return err.Err
}

func malformed(table string, format string, args ...any) error {
	return &MalformedFileError{
		Table: table,
		Err:   fmt.Errorf(format, args...),
	}
}
