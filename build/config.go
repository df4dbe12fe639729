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

package build

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Style describes how one font of the family is built.
// File names are relative to the input and sources directories.
type Style struct {
	// FileName is the base name of the output file, without extension.
	FileName string `yaml:"fileName"`

	// InputFile is the base font, in the input directory.
	InputFile string `yaml:"inputFile"`

	// LigatureFile is the compiled ligature font, in the sources
	// directory.  The default is FileName with extension ".ttf".
	LigatureFile string `yaml:"ligatureFile,omitempty"`

	// FeatureFile is the feature file, in the sources directory.
	// If FeatureDir is set, the feature file is assembled from the files
	// in this directory instead.
	FeatureFile string `yaml:"featureFile,omitempty"`
	FeatureDir  string `yaml:"featureDir,omitempty"`

	// UFO is the design source which provides the font names, in the
	// sources directory.  The default is FileName with extension ".ufo".
	UFO string `yaml:"ufo,omitempty"`

	// GlyphMap optionally names a JSON file, in the sources directory,
	// which maps glyph names of the ligature font to glyph IDs in the
	// merged font.  If this is empty, the map is taken from the merge.
	GlyphMap string `yaml:"glyphMap,omitempty"`
}

// Config lists the styles of a font family.
type Config struct {
	Styles []Style `yaml:"styles"`
}

// DefaultConfig returns the configuration for the four Consolig styles.
func DefaultConfig() *Config {
	return &Config{
		Styles: []Style{
			{FileName: "Consolig-Regular", InputFile: "consola.ttf", FeatureFile: "features.fea"},
			{FileName: "Consolig-Bold", InputFile: "consolab.ttf", FeatureFile: "features.fea"},
			{FileName: "Consolig-Italic", InputFile: "consolai.ttf", FeatureFile: "features.fea"},
			{FileName: "Consolig-BoldItalic", InputFile: "consolaz.ttf", FeatureFile: "features.fea"},
		},
	}
}

// ReadConfig reads a configuration file in YAML format.
func ReadConfig(fname string) (*Config, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	for i, style := range cfg.Styles {
		if style.FileName == "" || style.InputFile == "" {
			return nil, fmt.Errorf("%s: style %d: fileName and inputFile are required", fname, i+1)
		}
		if style.FeatureFile == "" && style.FeatureDir == "" {
			return nil, fmt.Errorf("%s: style %q: no features given", fname, style.FileName)
		}
	}
	return cfg, nil
}

func (s *Style) ligatureFile() string {
	if s.LigatureFile != "" {
		return s.LigatureFile
	}
	return s.FileName + ".ttf"
}

func (s *Style) ufo() string {
	if s.UFO != "" {
		return s.UFO
	}
	return s.FileName + ".ufo"
}
