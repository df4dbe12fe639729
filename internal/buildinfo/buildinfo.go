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

// Package buildinfo reports the version of the running binary.
package buildinfo

import (
	"runtime/debug"
)

// Info describes the module a binary was built from.
type Info struct {
	Path     string
	Version  string // module version, empty for development builds
	Revision string // VCS revision, shortened to 8 characters
	Dirty    bool
}

// Read returns the build information embedded in the running binary.
func Read() Info {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Info{}
	}
	return fromBuildInfo(info)
}

func fromBuildInfo(info *debug.BuildInfo) Info {
	res := Info{Path: info.Main.Path}
	if v := info.Main.Version; v != "(devel)" {
		res.Version = v
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			res.Revision = s.Value
		case "vcs.modified":
			res.Dirty = s.Value == "true"
		}
	}
	if len(res.Revision) > 8 {
		res.Revision = res.Revision[:8]
	}
	return res
}

// Label returns the version, or the VCS revision if no version is known.
// The result is empty if neither is available.
func (i Info) Label() string {
	if i.Version != "" {
		return i.Version
	}
	if i.Revision == "" {
		return ""
	}
	if i.Dirty {
		return i.Revision + "+dirty"
	}
	return i.Revision
}

// Short returns a version string for a command line tool, for example
// "fontmerge (github.com/consolig/fontmerge v0.1.0)".
func (i Info) Short(toolName string) string {
	label := i.Label()
	if label == "" {
		return toolName
	}
	return toolName + " (" + i.Path + " " + label + ")"
}
