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

package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.prof")
	mem := filepath.Join(dir, "mem.prof")

	stop, err := Start(cpu, mem)
	require.NoError(t, err)
	require.NoError(t, stop())

	for _, fname := range []string{cpu, mem} {
		fi, err := os.Stat(fname)
		require.NoError(t, err)
		assert.NotZero(t, fi.Size(), fname)
	}
}

func TestStartDisabled(t *testing.T) {
	stop, err := Start("", "")
	require.NoError(t, err)
	assert.NoError(t, stop())
}

func TestStartError(t *testing.T) {
	dir := t.TempDir()
	_, err := Start(filepath.Join(dir, "missing", "cpu.prof"), "")
	assert.Error(t, err)
}
