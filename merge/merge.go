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

import (
	"fmt"
	"slices"
	"strconv"

	"seehuhn.de/go/sfnt/glyph"

	"github.com/consolig/fontmerge/font"
)

// staleTables lists tables which contain per-glyph data but are not
// merged.  These are removed from the target font.
var staleTables = []string{"hdmx", "LTSH", "DSIG"}

// MergeTables copies the whitelisted glyphs of the source font into the
// target font, using the glyph IDs allocated in ids.  The target font is
// modified in place.
//
// The following steps are performed, in order:
//
//  1. The new glyphs are appended to the glyph order.
//  2. The metrics of the new glyphs are appended to the "hmtx" table.
//  3. The character mappings of the new glyphs are added to the "cmap"
//     subtables of the target.  Subtables which only exist in the source
//     are added if they map at least one code to a new glyph.
//  4. The outlines of the new glyphs are appended to the "glyf" table.
//  5. The source font program is appended to the target font program.
//  6. The "name" table of the target is replaced by the source "name"
//     table.
//  7. The extra glyph names of the source "post" table are attached to
//     the target "post" table.
//  8. The "maxp" limits of the target are raised to cover the source.
//
// If the target font already carries extra glyph names, an
// [*AlreadyMergedError] is returned before the font is modified.
func MergeTables(target, source *font.Font, wl Whitelist, ids *IdentifierMap) error {
	if err := checkNotMerged(target); err != nil {
		return err
	}

	steps := []struct {
		name string
		run  func(target, source *font.Font, wl Whitelist, ids *IdentifierMap) error
	}{
		{"glyph order", mergeGlyphOrder},
		{"hmtx", mergeSpacing},
		{"cmap", mergeCMap},
		{"glyf", mergeOutlines},
		{"fpgm", mergeHinting},
		{"name", replaceNames},
		{"post", replacePost},
		{"maxp", mergeMaxProfile},
	}
	for _, step := range steps {
		if err := step.run(target, source, wl, ids); err != nil {
			return err
		}
		tracer().Debugf("merged %s", step.name)
	}

	for _, tag := range staleTables {
		if _, ok := target.Tables[tag]; ok {
			delete(target.Tables, tag)
			tracer().Debugf("removed %q table", tag)
		}
	}
	return nil
}

func checkNotMerged(target *font.Font) error {
	post, err := target.GetPost()
	if err != nil {
		return err
	}
	if n := len(post.ExtraNames); n > 0 {
		return &AlreadyMergedError{ExtraNames: n}
	}
	return nil
}

func mergeGlyphOrder(target, _ *font.Font, _ Whitelist, ids *IdentifierMap) error {
	order, err := target.GetGlyphOrder()
	if err != nil {
		return err
	}

	entries := ids.Entries()
	if len(entries) > 0 && int(entries[0].ID) != order.Len() {
		return fmt.Errorf("merge: first new glyph ID is %d, expected %d",
			entries[0].ID, order.Len())
	}
	for _, e := range entries {
		if err := order.Append(e.ID, e.Name); err != nil {
			return err
		}
	}
	return nil
}

func mergeSpacing(target, source *font.Font, wl Whitelist, ids *IdentifierMap) error {
	targetSpacing, err := target.GetSpacing()
	if err != nil {
		return err
	}
	sourceSpacing, err := source.GetSpacing()
	if err != nil {
		return err
	}

	for i, m := range sourceSpacing.Metrics {
		if m.Name == "" {
			return &font.MalformedEntryError{Table: font.TagSpacing, Index: i, Attr: "name"}
		}
		if !wl.Has(m.Name) {
			continue
		}
		m.Name = ids.Rename(m.Name)
		targetSpacing.Metrics = append(targetSpacing.Metrics, m)
	}
	return nil
}

func mergeCMap(target, source *font.Font, wl Whitelist, ids *IdentifierMap) error {
	if source.CMap == nil {
		return nil
	}
	if err := source.CMap.CheckKeys(); err != nil {
		return err
	}
	if target.CMap == nil {
		target.CMap = &font.CMapTable{}
	}

	for _, sub := range source.CMap.Subtables {
		dest := target.CMap.Get(sub.Key)
		isNew := dest == nil
		if isNew {
			dest = &font.CMapSubtable{
				Key: sub.Key,
				Map: make(map[uint32]string),
			}
		}

		count := 0
		for _, code := range sub.Codes() {
			name := sub.Map[code]
			if !wl.Has(name) {
				continue
			}
			dest.Map[code] = ids.Rename(name)
			count++
		}

		if isNew && count > 0 {
			target.CMap.Subtables = append(target.CMap.Subtables, dest)
		}
		tracer().Debugf("cmap %s: %d new codes", sub.Key, count)
	}
	return nil
}

func mergeOutlines(target, source *font.Font, wl Whitelist, ids *IdentifierMap) error {
	targetOutlines, err := target.GetOutlines()
	if err != nil {
		return err
	}
	sourceOutlines, err := source.GetOutlines()
	if err != nil {
		return err
	}
	order, err := target.GetGlyphOrder()
	if err != nil {
		return err
	}

	for i, g := range sourceOutlines.Glyphs {
		if g == nil || g.Name == "" {
			return &font.MalformedEntryError{Table: font.TagOutlines, Index: i, Attr: "name"}
		}
		if !wl.Has(g.Name) {
			continue
		}

		g = g.Clone()
		g.Name = ids.Rename(g.Name)
		for j, c := range g.Components {
			c = ids.Rename(c)
			if !order.Has(c) {
				return &font.MissingTableError{
					Table: font.TagOutlines,
					Field: "component " + strconv.Quote(c) + " of " + strconv.Quote(g.Name),
				}
			}
			g.Components[j] = c
		}
		targetOutlines.Glyphs = append(targetOutlines.Glyphs, g)
	}
	return nil
}

func mergeHinting(target, source *font.Font, _ Whitelist, _ *IdentifierMap) error {
	if source.Hinting == nil {
		return nil
	}
	if target.Hinting == nil {
		target.Hinting = &font.HintingProgram{}
	}
	target.Hinting.Instructions = append(target.Hinting.Instructions,
		source.Hinting.Instructions...)
	return nil
}

func replaceNames(target, source *font.Font, _ Whitelist, _ *IdentifierMap) error {
	names, err := source.GetNames()
	if err != nil {
		return err
	}
	target.Names = names.Clone()
	return nil
}

func replacePost(target, source *font.Font, _ Whitelist, _ *IdentifierMap) error {
	targetPost, err := target.GetPost()
	if err != nil {
		return err
	}
	sourcePost, err := source.GetPost()
	if err != nil {
		return err
	}
	if n := len(targetPost.ExtraNames); n > 0 {
		return &AlreadyMergedError{ExtraNames: n}
	}

	targetPost.Version = font.PostVersion2
	targetPost.ExtraNames = slices.Clone(sourcePost.ExtraNames)
	if targetPost.ExtraNames == nil {
		targetPost.ExtraNames = []string{}
	}
	return nil
}

func mergeMaxProfile(target, source *font.Font, _ Whitelist, _ *IdentifierMap) error {
	if target.MaxProfile == nil {
		return nil
	}
	if source.MaxProfile != nil {
		target.MaxProfile.Include(source.MaxProfile)
	}
	target.MaxProfile.NumGlyphs = target.NumGlyphs()
	return nil
}

// Result is the outcome of a merge.
type Result struct {
	// Font is the merged font.  This is the target font passed to [Merge].
	Font *font.Font

	Whitelist Whitelist
	IDs       *IdentifierMap
}

// GlyphMap returns the glyph IDs of the whitelisted glyphs in the merged
// font, indexed by their names in the source font.
func (r *Result) GlyphMap() map[string]glyph.ID {
	res := make(map[string]glyph.ID, len(r.Whitelist))
	order := r.Font.GlyphOrder
	for name := range r.Whitelist {
		if gid, ok := order.ID(r.IDs.Rename(name)); ok {
			res[name] = gid
		}
	}
	return res
}

// Merge copies the whitelisted glyphs of source into target.
// The target font is modified in place.
func Merge(target, source *font.Font) (*Result, error) {
	wl, err := ExtractWhitelist(source)
	if err != nil {
		return nil, err
	}
	ids, err := AllocateIdentifiers(target, source, wl)
	if err != nil {
		return nil, err
	}
	err = MergeTables(target, source, wl, ids)
	if err != nil {
		return nil, err
	}

	tracer().Infof("merged %d glyphs, the font now has %d glyphs",
		ids.Len(), target.NumGlyphs())
	res := &Result{
		Font:      target,
		Whitelist: wl,
		IDs:       ids,
	}
	return res, nil
}
