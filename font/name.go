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
	"maps"
	"slices"

	"seehuhn.de/go/sfnt/mac"
	"seehuhn.de/go/sfnt/name"
)

// Platform IDs used in the "cmap" table.
const (
	PlatformUnicode   uint16 = 0
	PlatformMacintosh uint16 = 1
	PlatformWindows   uint16 = 3
)

// NameTable holds the strings of the "name" table, one [name.Table] per
// platform and language.  Windows tables are keyed "en-US" and so on,
// Macintosh tables "en" and so on.
type NameTable struct {
	name.Info
}

// NewNameTable returns an empty name table.
func NewNameTable() *NameTable {
	return &NameTable{
		Info: name.Info{
			Mac:     name.Tables{},
			Windows: name.Tables{},
		},
	}
}

// Clone returns a deep copy of the table.
func (t *NameTable) Clone() *NameTable {
	return &NameTable{
		Info: name.Info{
			Mac:     cloneTables(t.Mac),
			Windows: cloneTables(t.Windows),
		},
	}
}

func cloneTables(tt name.Tables) name.Tables {
	if tt == nil {
		return nil
	}
	res := make(name.Tables, len(tt))
	for key, table := range tt {
		c := *table
		c.Extra = maps.Clone(table.Extra)
		res[key] = &c
	}
	return res
}

// Get returns the string for the given name ID.  English Windows strings
// are preferred over other Windows strings, and Windows strings over
// Macintosh strings.  If the name is not set, the empty string is returned.
func (t *NameTable) Get(nameID name.ID) string {
	if s := getName(t.Windows["en-US"], nameID); s != "" {
		return s
	}
	for _, tt := range []name.Tables{t.Windows, t.Mac} {
		for _, key := range slices.Sorted(maps.Keys(tt)) {
			if s := getName(tt[key], nameID); s != "" {
				return s
			}
		}
	}
	return ""
}

// Set replaces the string for the given name ID in every table where the
// name is present.  The number of strings changed is returned.
func (t *NameTable) Set(nameID name.ID, value string) (int, error) {
	count := 0
	for _, key := range slices.Sorted(maps.Keys(t.Mac)) {
		table := t.Mac[key]
		if getName(table, nameID) == "" {
			continue
		}
		if mac.Decode(mac.Encode(value)) != value {
			return count, fmt.Errorf("name %d: %q cannot be represented in Mac Roman", nameID, value)
		}
		setName(table, nameID, value)
		count++
	}
	for _, table := range t.Windows {
		if getName(table, nameID) == "" {
			continue
		}
		setName(table, nameID, value)
		count++
	}
	return count, nil
}

func getName(table *name.Table, nameID name.ID) string {
	if table == nil {
		return ""
	}
	if p := nameField(table, nameID); p != nil {
		return *p
	}
	return table.Extra[nameID]
}

func setName(table *name.Table, nameID name.ID, value string) {
	if p := nameField(table, nameID); p != nil {
		*p = value
		return
	}
	if table.Extra == nil {
		table.Extra = make(map[name.ID]string)
	}
	table.Extra[nameID] = value
}

// nameField returns the field of table which holds the given name ID,
// or nil if the name is kept in table.Extra.
func nameField(table *name.Table, nameID name.ID) *string {
	switch nameID {
	case 0:
		return &table.Copyright
	case 1:
		return &table.Family
	case 2:
		return &table.Subfamily
	case 3:
		return &table.Identifier
	case 4:
		return &table.FullName
	case 5:
		return &table.Version
	case 6:
		return &table.PostScriptName
	case 7:
		return &table.Trademark
	case 8:
		return &table.Manufacturer
	case 9:
		return &table.Designer
	case 10:
		return &table.Description
	case 11:
		return &table.VendorURL
	case 12:
		return &table.DesignerURL
	case 13:
		return &table.License
	case 14:
		return &table.LicenseURL
	case 16:
		return &table.TypographicFamily
	case 17:
		return &table.TypographicSubfamily
	case 18:
		return &table.MacFullName
	case 19:
		return &table.SampleText
	case 20:
		return &table.CIDFontName
	case 21:
		return &table.WWSFamily
	case 22:
		return &table.WWSSubfamily
	case 23:
		return &table.LightBackgroundPalette
	case 24:
		return &table.DarkBackgroundPalette
	case 25:
		return &table.VariationsPostScriptName
	default:
		return nil
	}
}
