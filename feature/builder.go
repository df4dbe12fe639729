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

package feature

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
)

const indent = "    "

// Builder assembles a feature file.
//
// The generated text consists of the glyph classes, the prologue, one
// block for every feature in order of increasing feature tag, and finally
// an "aalt" feature which includes all other features.
type Builder struct {
	Classes  string
	Prologue string

	features *treemap.Map
}

// NewBuilder returns an empty feature file builder.
func NewBuilder() *Builder {
	return &Builder{
		features: treemap.NewWithStringComparator(),
	}
}

// AddFeature sets the body of the feature with the given tag.
// The "aalt" feature cannot be set, since it is generated by the builder.
func (b *Builder) AddFeature(tag, body string) {
	if tag == "aalt" {
		tracer().Infof("ignoring explicit aalt feature")
		return
	}
	b.features.Put(tag, body)
}

// Features returns the feature tags in increasing order.
func (b *Builder) Features() []string {
	keys := b.features.Keys()
	res := make([]string, len(keys))
	for i, key := range keys {
		res[i] = key.(string)
	}
	return res
}

// AddFeatureDir reads feature definitions from the files in dir.
// A file "<tag>.fea" provides the body of the feature <tag>.  The files
// "classes.fea" and "prologue.fea" are used for the glyph classes and the
// prologue, respectively.  Other files are ignored.
func (b *Builder) AddFeatureDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		fname := entry.Name()
		if entry.IsDir() || filepath.Ext(fname) != ".fea" {
			continue
		}
		body, err := os.ReadFile(filepath.Join(dir, fname))
		if err != nil {
			return err
		}

		switch tag := strings.TrimSuffix(fname, ".fea"); tag {
		case "classes":
			b.Classes = string(body)
		case "prologue":
			b.Prologue = string(body)
		default:
			b.AddFeature(tag, string(body))
		}
	}
	tracer().Debugf("read %d features from %s", b.features.Size(), dir)
	return nil
}

// String returns the text of the feature file.
func (b *Builder) String() string {
	w := &strings.Builder{}
	for _, part := range []string{b.Classes, b.Prologue} {
		part = strings.TrimRight(part, "\n")
		if part != "" {
			w.WriteString(part)
			w.WriteString("\n\n")
		}
	}

	it := b.features.Iterator()
	for it.Next() {
		writeBlock(w, it.Key().(string), it.Value().(string))
		w.WriteString("\n")
	}

	if b.features.Size() > 0 {
		aalt := &strings.Builder{}
		for _, tag := range b.Features() {
			aalt.WriteString("feature " + tag + ";\n")
		}
		writeBlock(w, "aalt", aalt.String())
	}
	return w.String()
}

func writeBlock(w *strings.Builder, tag, body string) {
	w.WriteString("feature " + tag + " {\n")
	body = strings.TrimRight(body, "\n")
	if body != "" {
		for _, line := range strings.Split(body, "\n") {
			if strings.TrimSpace(line) != "" {
				w.WriteString(indent)
				w.WriteString(line)
			}
			w.WriteString("\n")
		}
	}
	w.WriteString("} " + tag + ";\n")
}
