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
	"slices"

	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/opentype/gtab"
)

// GSUB lookup types
const (
	typeSingle    uint16 = 1
	typeMultiple  uint16 = 2
	typeAlternate uint16 = 3
	typeLigature  uint16 = 4
)

// Lookup flags, as used in the lookupflag statement.
var lookupFlagNames = map[string]gtab.LookupFlags{
	"RightToLeft":      gtab.RightToLeft,
	"IgnoreBaseGlyphs": gtab.IgnoreBaseGlyphs,
	"IgnoreLigatures":  gtab.IgnoreLigatures,
	"IgnoreMarks":      gtab.IgnoreMarks,
}

// lookup collects the substitution rules of one GSUB lookup.
// All lookups consist of a single subtable.
type lookup struct {
	name  string // empty for anonymous lookups
	typ   uint16
	flags gtab.LookupFlags

	// subst is used for single, multiple and alternate substitutions.
	subst map[glyph.ID][]glyph.ID

	// ligs is used for ligature substitutions, indexed by the first
	// component.
	ligs map[glyph.ID][]ligature
}

type ligature struct {
	in  []glyph.ID // components after the first one
	out glyph.ID
}

// rule is a single substitution rule, after expansion of glyph classes.
type rule struct {
	first glyph.ID
	rest  []glyph.ID // only used for ligatures
	out   []glyph.ID
}

func newLookup(name string, typ uint16, flags gtab.LookupFlags) *lookup {
	l := &lookup{
		name:  name,
		typ:   typ,
		flags: flags,
	}
	if typ == typeLigature {
		l.ligs = make(map[glyph.ID][]ligature)
	} else {
		l.subst = make(map[glyph.ID][]glyph.ID)
	}
	return l
}

// add adds a rule to the lookup.  Rules which repeat an existing rule are
// ignored.  If the rule conflicts with an existing rule, add returns false.
func (l *lookup) add(r rule) bool {
	if l.typ == typeLigature {
		for _, lig := range l.ligs[r.first] {
			if slices.Equal(lig.in, r.rest) {
				return lig.out == r.out[0]
			}
		}
		l.ligs[r.first] = append(l.ligs[r.first], ligature{in: r.rest, out: r.out[0]})
		return true
	}

	if prev, ok := l.subst[r.first]; ok {
		return slices.Equal(prev, r.out)
	}
	l.subst[r.first] = r.out
	return true
}

// keys returns the glyphs covered by the lookup, in increasing order.
func (l *lookup) keys() []glyph.ID {
	var res []glyph.ID
	if l.typ == typeLigature {
		for gid := range l.ligs {
			res = append(res, gid)
		}
	} else {
		for gid := range l.subst {
			res = append(res, gid)
		}
	}
	slices.Sort(res)
	return res
}

// alternates collects the single and alternate substitutions of the given
// lookups into one alternate substitution lookup.  If the lookups contain
// no such substitutions, nil is returned.
func alternates(lookups []*lookup) *lookup {
	res := newLookup("", typeAlternate, 0)
	for _, l := range lookups {
		if l.typ != typeSingle && l.typ != typeAlternate {
			continue
		}
		for _, gid := range l.keys() {
			alt := res.subst[gid]
			for _, out := range l.subst[gid] {
				if !slices.Contains(alt, out) {
					alt = append(alt, out)
				}
			}
			res.subst[gid] = alt
		}
	}
	if len(res.subst) == 0 {
		return nil
	}
	return res
}
