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
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/consolig/fontmerge/font"
	"github.com/consolig/fontmerge/ttfio"
)

func TestRunSkipsMissingInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmerge.build")
	defer teardown()

	root := t.TempDir()
	dirs := NewDirs(root)
	sum, err := Run(dirs, DefaultConfig())
	require.NoError(t, err)

	expected := []string{"Consolig-Regular", "Consolig-Bold", "Consolig-Italic", "Consolig-BoldItalic"}
	assert.Equal(t, expected, sum.Skipped)
	assert.Empty(t, sum.Built)
	assert.Empty(t, sum.Failed)

	assert.DirExists(t, dirs.Build)
	assert.NoDirExists(t, dirs.Temp)
}

func TestRunFailedStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmerge.build")
	defer teardown()

	root := t.TempDir()
	dirs := NewDirs(root)
	require.NoError(t, os.MkdirAll(dirs.Input, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dirs.Input, "consolab.ttf"), []byte("not a font"), 0o644))

	sum, err := Run(dirs, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"Consolig-Regular", "Consolig-Italic", "Consolig-BoldItalic"}, sum.Skipped)
	assert.Empty(t, sum.Built)
	require.Contains(t, sum.Failed, "Consolig-Bold")
	assert.NoFileExists(t, filepath.Join(dirs.Build, "Consolig-Bold.ttf"))
}

var safeName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

func TestRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmerge.build")
	defer teardown()

	root := t.TempDir()
	dirs := NewDirs(root)
	require.NoError(t, os.MkdirAll(dirs.Input, 0o755))
	require.NoError(t, os.MkdirAll(dirs.Sources, 0o755))

	// The base font has no glyph names, the ligature font lists its
	// glyph names in the "post" table.
	target, err := ttfio.Read(bytes.NewReader(goregular.TTF))
	require.NoError(t, err)
	target.Post.Version = font.PostVersion3
	target.Post.ExtraNames = nil
	require.NoError(t, ttfio.WriteFile(filepath.Join(dirs.Input, "consola.ttf"), target))

	source, err := ttfio.Read(bytes.NewReader(goregular.TTF))
	require.NoError(t, err)
	if source.Post == nil || !source.Post.HasExtraNames() {
		t.Skip("test font has no extra glyph names")
	}
	var extra []string
	for _, name := range source.Post.ExtraNames {
		if source.GlyphOrder.Has(name) {
			extra = append(extra, name)
		}
	}
	source.Post.ExtraNames = extra
	// components outside the whitelist would not resolve in the base font
	for _, g := range source.Outlines.Glyphs {
		if g.IsComposite() {
			g.Glyph = nil
			g.Components = nil
		}
	}
	ligPath := filepath.Join(dirs.Sources, "Consolig-Regular.ttf")
	require.NoError(t, ttfio.WriteFile(ligPath, source))

	source, err = ttfio.ReadFile(ligPath)
	require.NoError(t, err)
	lig := ""
	for _, name := range source.Post.ExtraNames {
		if safeName.MatchString(name) {
			lig = name
			break
		}
	}
	if lig == "" {
		t.Skip("no suitable glyph name")
	}

	fea := "languagesystem DFLT dflt;\nfeature liga {\n    sub glyph00001 glyph00002 by " + lig + ";\n} liga;\n"
	require.NoError(t, os.WriteFile(filepath.Join(dirs.Sources, "features.fea"), []byte(fea), 0o644))

	ufo := filepath.Join(dirs.Sources, "Consolig-Regular.ufo")
	require.NoError(t, os.MkdirAll(ufo, 0o755))
	plist := `<plist version="1.0"><dict><key>familyName</key><string>Consolig</string></dict></plist>`
	require.NoError(t, os.WriteFile(filepath.Join(ufo, "fontinfo.plist"), []byte(plist), 0o644))

	cfg := &Config{Styles: DefaultConfig().Styles[:1]}
	sum, err := Run(dirs, cfg)
	require.NoError(t, err)
	require.Empty(t, sum.Failed)
	outPath := filepath.Join(dirs.Build, "Consolig-Regular.ttf")
	require.Equal(t, []string{outPath}, sum.Built)
	assert.NoDirExists(t, dirs.Temp)

	merged, err := ttfio.ReadFile(outPath)
	require.NoError(t, err)
	added := make(map[string]bool)
	for _, name := range source.Post.ExtraNames {
		added[name] = true
	}
	assert.Equal(t, target.NumGlyphs()+len(added), merged.NumGlyphs())
	assert.NotEmpty(t, merged.Tables["GSUB"])
	assert.True(t, merged.GlyphOrder.Has(lig))
	assert.Equal(t, "Consolig", merged.Names.Get(1))
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "fontmerge.yaml")
	data := `styles:
  - fileName: Consolig-Regular
    inputFile: consola.ttf
    featureDir: features
    glyphMap: regular.json
  - fileName: Consolig-Bold
    inputFile: consolab.ttf
    featureFile: features.fea
    ligatureFile: bold-ligatures.ttf
    ufo: Bold.ufo
`
	require.NoError(t, os.WriteFile(fname, []byte(data), 0o644))

	cfg, err := ReadConfig(fname)
	require.NoError(t, err)
	expected := []Style{
		{FileName: "Consolig-Regular", InputFile: "consola.ttf", FeatureDir: "features", GlyphMap: "regular.json"},
		{FileName: "Consolig-Bold", InputFile: "consolab.ttf", FeatureFile: "features.fea",
			LigatureFile: "bold-ligatures.ttf", UFO: "Bold.ufo"},
	}
	assert.Equal(t, expected, cfg.Styles)

	assert.Equal(t, "Consolig-Regular.ttf", cfg.Styles[0].ligatureFile())
	assert.Equal(t, "Consolig-Regular.ufo", cfg.Styles[0].ufo())
	assert.Equal(t, "bold-ligatures.ttf", cfg.Styles[1].ligatureFile())
	assert.Equal(t, "Bold.ufo", cfg.Styles[1].ufo())
}

func TestReadConfigErrors(t *testing.T) {
	cases := []string{
		"styles: [",
		"styles:\n  - fileName: X\n    featureFile: f.fea\n",
		"styles:\n  - fileName: X\n    inputFile: x.ttf\n",
	}
	dir := t.TempDir()
	for i, data := range cases {
		fname := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(fname, []byte(data), 0o644))
		_, err := ReadConfig(fname)
		assert.Error(t, err, "case %d", i)
	}

	_, err := ReadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
