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

// Fontmerge builds the Consolig fonts.
//
// For every configured style, the base font from input/ is merged with the
// ligature font from sources/, the OpenType features are compiled into a
// GSUB table and the font names are taken from the UFO design source.
// The results are written to build/.
package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/tdewolff/argp"
	"golang.org/x/term"

	"github.com/consolig/fontmerge/build"
	"github.com/consolig/fontmerge/internal/buildinfo"
	"github.com/consolig/fontmerge/internal/profile"
)

var traceKeys = []string{"fontmerge.build", "fontmerge.merge", "fontmerge.feature"}

// Build is the fontmerge command.
type Build struct {
	Root       string `short:"r" default:"." desc:"Project directory containing input/ and sources/"`
	Config     string `short:"c" default:"" desc:"YAML file with the style configurations"`
	Trace      string `short:"t" default:"Info" desc:"Trace level [Debug|Info|Error]"`
	CPUProfile string `default:"" desc:"Write a CPU profile to this file"`
	MemProfile string `default:"" desc:"Write a memory profile to this file"`
	Version    bool   `short:"v" desc:"Print the version and exit"`
}

func main() {
	root := argp.NewCmd(&Build{}, "Merge the Consolig ligatures into TrueType fonts")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Build) Run() error {
	if cmd.Version {
		fmt.Println(buildinfo.Read().Short("fontmerge"))
		return nil
	}
	initDisplay()
	if err := initTracing(cmd.Trace); err != nil {
		return err
	}

	stop, err := profile.Start(cmd.CPUProfile, cmd.MemProfile)
	if err != nil {
		return err
	}
	defer func() {
		if err := stop(); err != nil {
			pterm.Error.Println(err)
		}
	}()

	cfg := build.DefaultConfig()
	if cmd.Config != "" {
		cfg, err = build.ReadConfig(cmd.Config)
		if err != nil {
			return err
		}
	}

	sum, err := build.Run(build.NewDirs(cmd.Root), cfg)
	if err != nil {
		return err
	}
	report(sum)
	if len(sum.Failed) > 0 {
		return fmt.Errorf("%d of %d styles failed", len(sum.Failed), len(cfg.Styles))
	}
	return nil
}

func initDisplay() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		pterm.DisableColor()
	}
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " INFO ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func initTracing(level string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("configuring tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

func report(sum *build.Summary) {
	for _, fname := range sum.Built {
		pterm.Success.Println(fname)
	}
	for _, name := range sum.Skipped {
		pterm.Warning.Printfln("%s: no input file, skipped", name)
	}
	failed := make([]string, 0, len(sum.Failed))
	for name := range sum.Failed {
		failed = append(failed, name)
	}
	slices.Sort(failed)
	for _, name := range failed {
		pterm.Error.Printfln("%s: %v", name, sum.Failed[name])
	}
}
