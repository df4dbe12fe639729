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

	"golang.org/x/text/language"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/opentype/coverage"
	"seehuhn.de/go/sfnt/opentype/gtab"
)

// maxSubtableSize is the largest subtable which can be addressed with
// 16-bit offsets.
const maxSubtableSize = 0xFFFF

// defaultLangSys is used if the feature text has no languagesystem
// statements.
var defaultLangSys = langSys{script: "DFLT", lang: "dflt"}

// info returns the contents of the "GSUB" table.
func (p *parser) info() *gtab.Info {
	lookupIndex := make(map[*lookup]gtab.LookupIndex, len(p.lookups))
	for i, l := range p.lookups {
		lookupIndex[l] = gtab.LookupIndex(i)
	}

	tags := make([]string, 0, len(p.features))
	for tag := range p.features {
		tags = append(tags, tag)
	}
	slices.Sort(tags)

	features := make(gtab.FeatureListInfo, len(tags))
	all := make([]gtab.FeatureIndex, len(tags))
	for i, tag := range tags {
		var idx []gtab.LookupIndex
		for _, l := range p.features[tag] {
			if k := lookupIndex[l]; !slices.Contains(idx, k) {
				idx = append(idx, k)
			}
		}
		slices.Sort(idx)
		features[i] = &gtab.Feature{Tag: tag4(tag), Lookups: idx}
		all[i] = gtab.FeatureIndex(i)
	}

	systems := p.langSys
	if len(systems) == 0 {
		systems = []langSys{defaultLangSys}
	}
	scripts := make(gtab.ScriptListInfo, len(systems))
	for _, ls := range systems {
		scripts[ls.tag()] = &gtab.Features{
			Required: 0xFFFF,
			Optional: all,
		}
	}

	lookups := make(gtab.LookupList, len(p.lookups))
	for i, l := range p.lookups {
		lookups[i] = l.table()
	}

	return &gtab.Info{
		ScriptList:  scripts,
		FeatureList: features,
		LookupList:  lookups,
	}
}

// tag returns the BCP 47 tag which represents the language system in
// a [gtab.ScriptListInfo].
func (ls langSys) tag() language.Tag {
	s := "und-x-" + ls.script
	if ls.lang != "dflt" {
		s += "-" + ls.lang
	}
	return language.MustParse(s)
}

func (l *lookup) table() *gtab.LookupTable {
	var subtable gtab.Subtable
	switch l.typ {
	case typeSingle:
		subtable = l.single()
	case typeMultiple:
		subtable = &gtab.Gsub2_1{Cov: l.coverage(), Repl: l.sequences()}
	case typeAlternate:
		subtable = &gtab.Gsub3_1{Cov: l.coverage(), Alternates: l.sequences()}
	case typeLigature:
		subtable = l.ligatures()
	}
	return &gtab.LookupTable{
		Meta: &gtab.LookupMetaInfo{
			LookupType:  l.typ,
			LookupFlags: l.flags,
		},
		Subtables: []gtab.Subtable{subtable},
	}
}

// single returns a single substitution subtable.  Format 1 is used if
// all glyphs are shifted by the same amount.
func (l *lookup) single() gtab.Subtable {
	keys := l.keys()

	delta := l.subst[keys[0]][0] - keys[0]
	for _, gid := range keys[1:] {
		if l.subst[gid][0]-gid != delta {
			out := make([]glyph.ID, len(keys))
			for i, gid := range keys {
				out[i] = l.subst[gid][0]
			}
			return &gtab.Gsub1_2{Cov: l.coverage(), SubstituteGlyphIDs: out}
		}
	}

	cov := make(coverage.Set, len(keys))
	for _, gid := range keys {
		cov[gid] = true
	}
	return &gtab.Gsub1_1{Cov: cov, Delta: delta}
}

// sequences returns the output glyphs of a multiple or alternate
// substitution, in coverage order.
func (l *lookup) sequences() [][]glyph.ID {
	keys := l.keys()
	res := make([][]glyph.ID, len(keys))
	for i, gid := range keys {
		res[i] = l.subst[gid]
	}
	return res
}

func (l *lookup) ligatures() *gtab.Gsub4_1 {
	keys := l.keys()
	repl := make([][]gtab.Ligature, len(keys))
	for i, gid := range keys {
		ligs := slices.Clone(l.ligs[gid])
		// longer ligatures take precedence
		slices.SortStableFunc(ligs, func(a, b ligature) int {
			return len(b.in) - len(a.in)
		})
		repl[i] = make([]gtab.Ligature, len(ligs))
		for j, lig := range ligs {
			repl[i][j] = gtab.Ligature{In: lig.in, Out: lig.out}
		}
	}
	return &gtab.Gsub4_1{Cov: l.coverage(), Repl: repl}
}

func (l *lookup) coverage() coverage.Table {
	keys := l.keys()
	cov := make(coverage.Table, len(keys))
	for i, gid := range keys {
		cov[gid] = i
	}
	return cov
}

// size returns an upper bound for the encoded size of the lookup's
// subtable.
func (l *lookup) size() int {
	keys := l.keys()
	n := len(keys)
	total := 6 + 4 + 2*n // header and format 1 coverage
	switch l.typ {
	case typeSingle:
		total += 2 * n
	case typeLigature:
		for _, gid := range keys {
			total += 2 + 2 + 2*len(l.ligs[gid])
			for _, lig := range l.ligs[gid] {
				total += 4 + 2*len(lig.in)
			}
		}
	default:
		for _, gid := range keys {
			total += 2 + 2 + 2*len(l.subst[gid])
		}
	}
	return total
}

// encode returns the binary "GSUB" table.
func (p *parser) encode() []byte {
	for _, l := range p.lookups {
		if l.size() > maxSubtableSize {
			panic(ErrTooLarge)
		}
	}
	return p.info().Encode()
}

// tag4 pads a tag to four characters.
func tag4(tag string) string {
	return (tag + "    ")[:4]
}
