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

package buildinfo

import (
	"runtime/debug"
	"testing"
)

func TestShort(t *testing.T) {
	const path = "github.com/consolig/fontmerge"
	cases := []struct {
		info *debug.BuildInfo
		want string
	}{
		{
			info: &debug.BuildInfo{Main: debug.Module{Path: path, Version: "v0.1.0"}},
			want: "fontmerge (" + path + " v0.1.0)",
		},
		{
			info: &debug.BuildInfo{Main: debug.Module{Path: path, Version: "(devel)"}},
			want: "fontmerge",
		},
		{
			info: &debug.BuildInfo{
				Main: debug.Module{Path: path, Version: "(devel)"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "0123456789abcdef"},
					{Key: "vcs.modified", Value: "false"},
				},
			},
			want: "fontmerge (" + path + " 01234567)",
		},
		{
			info: &debug.BuildInfo{
				Main: debug.Module{Path: path},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			want: "fontmerge (" + path + " abc+dirty)",
		},
	}
	for i, c := range cases {
		got := fromBuildInfo(c.info).Short("fontmerge")
		if got != c.want {
			t.Errorf("%d: got %q, want %q", i, got, c.want)
		}
	}
}

func TestShortEmpty(t *testing.T) {
	if got := (Info{}).Short("x"); got != "x" {
		t.Errorf("got %q", got)
	}
}
