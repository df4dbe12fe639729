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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/consolig/fontmerge/feature"
	"github.com/consolig/fontmerge/font"
	"github.com/consolig/fontmerge/fontinfo"
	"github.com/consolig/fontmerge/gsub"
	"github.com/consolig/fontmerge/merge"
	"github.com/consolig/fontmerge/ttfio"
)

// Dirs gives the directories used by a build.
type Dirs struct {
	Input   string // base fonts
	Sources string // ligature fonts, feature files and design sources
	Build   string // output fonts
	Temp    string // removed at the end of the build
}

// NewDirs returns the standard directory layout below root.
func NewDirs(root string) Dirs {
	return Dirs{
		Input:   filepath.Join(root, "input"),
		Sources: filepath.Join(root, "sources"),
		Build:   filepath.Join(root, "build"),
		Temp:    filepath.Join(root, "temp"),
	}
}

// Summary reports the outcome of a build.
type Summary struct {
	Built   []string // output files
	Skipped []string // styles without input file
	Failed  map[string]error
}

// Run builds all styles of cfg.  Styles are processed one after another.
// A style whose input file does not exist is skipped.  If building a style
// fails, the error is recorded in the summary and no output is written for
// this style.  Run itself only fails if the directories cannot be set up.
func Run(dirs Dirs, cfg *Config) (*Summary, error) {
	tracer().Debugf("setting up directories")
	for _, dir := range []string{dirs.Build, dirs.Temp} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	sum := &Summary{Failed: make(map[string]error)}
	for i := range cfg.Styles {
		style := &cfg.Styles[i]
		inputPath := filepath.Join(dirs.Input, style.InputFile)
		if _, err := os.Stat(inputPath); errors.Is(err, fs.ErrNotExist) {
			tracer().Infof("could not find input file %q, skipping %s", inputPath, style.FileName)
			sum.Skipped = append(sum.Skipped, style.FileName)
			continue
		}

		tracer().Infof("building %s", style.FileName)
		outPath, err := buildStyle(dirs, style, inputPath)
		if err != nil {
			tracer().Errorf("%s: %v", style.FileName, err)
			sum.Failed[style.FileName] = err
			continue
		}
		tracer().Infof("completed %q", outPath)
		sum.Built = append(sum.Built, outPath)
	}

	tracer().Debugf("cleaning up directories")
	if err := os.RemoveAll(dirs.Temp); err != nil {
		tracer().Errorf("%v", err)
	}
	return sum, nil
}

func buildStyle(dirs Dirs, style *Style, inputPath string) (string, error) {
	target, err := ttfio.ReadFile(inputPath)
	if err != nil {
		return "", fmt.Errorf("%s: %w", inputPath, err)
	}
	ligPath := filepath.Join(dirs.Sources, style.ligatureFile())
	source, err := ttfio.ReadFile(ligPath)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ligPath, err)
	}

	tracer().Debugf("merging TrueType data")
	res, err := merge.Merge(target, source)
	if err != nil {
		return "", err
	}
	tracer().Infof("added %d glyphs", len(res.Whitelist))

	tracer().Debugf("writing TrueType features")
	text, err := readFeatures(dirs.Sources, style)
	if err != nil {
		return "", err
	}
	glyphMap := feature.GlyphMap(res.GlyphMap())
	if style.GlyphMap != "" {
		glyphMap, err = feature.ReadGlyphMapFile(filepath.Join(dirs.Sources, style.GlyphMap))
		if err != nil {
			return "", err
		}
	}
	text, err = feature.RewriteFeatureText(text, res.Whitelist, glyphMap, res.Font)
	if err != nil {
		return "", err
	}
	if err := gsub.Compile(res.Font, text); err != nil {
		return "", err
	}

	if err := updateNames(res.Font, filepath.Join(dirs.Sources, style.ufo())); err != nil {
		return "", err
	}

	// write to temp/, then move into place
	tmpPath := filepath.Join(dirs.Temp, style.FileName+".ttf")
	if err := ttfio.WriteFile(tmpPath, res.Font); err != nil {
		return "", err
	}
	outPath := filepath.Join(dirs.Build, style.FileName+".ttf")
	if err := os.Rename(tmpPath, outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

func readFeatures(sources string, style *Style) (string, error) {
	if style.FeatureDir != "" {
		b := feature.NewBuilder()
		if err := b.AddFeatureDir(filepath.Join(sources, style.FeatureDir)); err != nil {
			return "", err
		}
		return b.String(), nil
	}
	data, err := os.ReadFile(filepath.Join(sources, style.FeatureFile))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func updateNames(f *font.Font, ufoDir string) error {
	info, err := fontinfo.ReadUFO(ufoDir)
	if errors.Is(err, fs.ErrNotExist) {
		tracer().Infof("no design source at %q, keeping font names", ufoDir)
		return nil
	} else if err != nil {
		return err
	}

	names, err := f.GetNames()
	if err != nil {
		return err
	}
	n, err := fontinfo.ApplyNames(names, info)
	if err != nil {
		return err
	}
	tracer().Debugf("updated %d name records", n)
	return nil
}
