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

// Package fontinfo reads font naming information from the fontinfo.plist
// file of a UFO design source and applies it to the "name" table of a
// font.
package fontinfo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/antchfx/xpath"
	"seehuhn.de/go/sfnt/name"

	"github.com/consolig/fontmerge/font"
)

// Info holds the scalar entries of the top-level dictionary of a property
// list.  Integers and reals are stored in their textual form, booleans as
// "true" or "false".  Arrays, dictionaries and data entries are skipped.
type Info map[string]string

var topLevel = xpath.MustCompile("/plist/dict/*")

// ReadPlist reads an XML property list.
func ReadPlist(r io.Reader) (Info, error) {
	root, err := parseXML(r)
	if err != nil {
		return nil, fmt.Errorf("fontinfo: %w", err)
	}

	info := make(Info)
	key := ""
	hasKey := false
	iter := topLevel.Select(newNavigator(root))
	for iter.MoveNext() {
		nav := iter.Current()
		elem := nav.LocalName()

		if elem == "key" {
			if hasKey {
				return nil, fmt.Errorf("fontinfo: no value for key %q", key)
			}
			key = strings.TrimSpace(nav.Value())
			hasKey = true
			continue
		}
		if !hasKey {
			return nil, fmt.Errorf("fontinfo: unexpected <%s> without key", elem)
		}
		hasKey = false

		switch elem {
		case "string":
			info[key] = nav.Value()
		case "integer", "real", "date":
			info[key] = strings.TrimSpace(nav.Value())
		case "true", "false":
			info[key] = elem
		}
	}
	if hasKey {
		return nil, fmt.Errorf("fontinfo: no value for key %q", key)
	}
	return info, nil
}

// ReadPlistFile reads an XML property list from the named file.
func ReadPlistFile(fname string) (Info, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return ReadPlist(fd)
}

// ReadUFO reads the font info of the UFO design source in dir.
func ReadUFO(dir string) (Info, error) {
	return ReadPlistFile(filepath.Join(dir, "fontinfo.plist"))
}

// NameIDs maps name IDs of the "name" table to the font info attributes
// which provide their values.
var NameIDs = map[name.ID]string{
	0:  "copyright",
	1:  "familyName",
	2:  "styleName",
	3:  "postscriptUniqueID",
	4:  "postscriptFullName",
	5:  "openTypeNameVersion",
	6:  "postscriptFontName",
	7:  "trademark",
	8:  "openTypeNameManufacturer",
	9:  "openTypeNameDesigner",
	10: "openTypeNameDescription",
	11: "openTypeNameManufacturerURL",
	12: "openTypeNameDesignerURL",
	13: "openTypeNameLicense",
	14: "openTypeNameLicenseURL",
	16: "openTypeNameWWSFamilyName",
	17: "openTypeNamePreferredSubfamilyName",
	18: "openTypeNamePreferredFamilyName",
	19: "openTypeNameSampleText",
	21: "openTypeNameWWSFamilyName",
	22: "openTypeNameWWSSubfamilyName",
}

// ApplyNames replaces the names for which info provides a value.  Names
// are only updated, never added.  The number of updated strings is
// returned.
func ApplyNames(names *font.NameTable, info Info) (int, error) {
	ids := make([]name.ID, 0, len(NameIDs))
	for id := range NameIDs {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	total := 0
	for _, id := range ids {
		value, ok := info[NameIDs[id]]
		if !ok {
			continue
		}
		n, err := names.Set(id, value)
		if err != nil {
			return total, fmt.Errorf("fontinfo: %w", err)
		}
		total += n
	}
	return total, nil
}
