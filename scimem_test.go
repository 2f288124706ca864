// This file is part of scimem.
//
// scimem is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// scimem is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with scimem.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scummvm/scummvm-sub239/test"
)

// writeGame creates a game file and a resource directory with one script
// defining one class
func writeGame(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string][]byte{
		"game.toml": []byte("game = \"test\"\ngeneration = \"sci0\"\nresources = \"res\"\n"),

		// class 0 is defined by script 10
		"res/vocab.996": {0, 0, 10, 0},

		// class block with the name "Base" followed by a terminator
		"res/script.010": {
			0x06, 0x00, 0x14, 0x00,
			0x34, 0x12, 0x00, 0x00, 0x00, 0x00, 0x04, 0x00,
			0x00, 0x00, 0xff, 0xff, 0x00, 0x00, 0x00, 0x00,
			0x05, 0x00, 0x0a, 0x00, 'B', 'a', 's', 'e', 0x00, 0x00,
			0x00, 0x00,
		},
	}

	for name, data := range files {
		fn := filepath.Join(dir, name)
		test.DemandSuccess(t, os.MkdirAll(filepath.Dir(fn), 0o755))
		test.DemandSuccess(t, os.WriteFile(fn, data, 0o644))
	}

	return filepath.Join(dir, "game.toml")
}

func TestSegmentTableMode(t *testing.T) {
	game := writeGame(t)

	w := &test.CompareWriter{}
	test.ExpectEquality(t, launch(w, []string{"segtable", "-scripts", "10", game}), 0)
	test.ExpectSuccess(t, w.Compare("Segment table:\n [0001] S  script.010 l:1\n"), w.String())

	// the default mode
	w.Clear()
	test.ExpectEquality(t, launch(w, []string{game}), 0)
	test.ExpectSuccess(t, w.Compare("Segment table:\n"), w.String())
}

func TestClassTableMode(t *testing.T) {
	game := writeGame(t)

	w := &test.CompareWriter{}
	test.ExpectEquality(t, launch(w, []string{"classtable", game}), 0)
	test.ExpectSuccess(t, w.Compare("Available classes:\n Class 0x0 (not loaded) (script 10)\n"), w.String())

	w.Clear()
	test.ExpectEquality(t, launch(w, []string{"classtable", "-scripts", "10", game}), 0)
	test.ExpectSuccess(t, strings.HasPrefix(w.String(), "Available classes:\n Class 0x0 ("), w.String())
	test.ExpectSuccess(t, strings.HasSuffix(w.String(), " at 0001:000c (script 10)\n"), w.String())
}

func TestSegmentInfoMode(t *testing.T) {
	game := writeGame(t)

	w := &test.CompareWriter{}
	test.ExpectEquality(t, launch(w, []string{"seginfo", "-scripts", "10", "-segment", "1", game}), 0)
	test.ExpectSuccess(t, strings.HasPrefix(w.String(), "[0001] script.010 locked by 1, bufsize=32 (20)\n"), w.String())
	test.ExpectSuccess(t, strings.Contains(w.String(), "  Objects:    1\n"), w.String())

	w.Clear()
	test.ExpectEquality(t, launch(w, []string{"seginfo", "-segment", "1", game}), 20)
	test.ExpectSuccess(t, strings.HasPrefix(w.String(), "* error in SEGINFO mode:"), w.String())
}

func TestOffsetsMode(t *testing.T) {
	game := writeGame(t)

	w := &test.CompareWriter{}
	test.ExpectEquality(t, launch(w, []string{"offsets", "-scripts", "10", game}), 0)
	test.ExpectSuccess(t, strings.HasPrefix(w.String(), "script.010\n"), w.String())
	test.ExpectSuccess(t, strings.Contains(w.String(), "object"), w.String())

	// no scripts
	w.Clear()
	test.ExpectEquality(t, launch(w, []string{"offsets", game}), 20)
}

func TestMissingGame(t *testing.T) {
	w := &test.CompareWriter{}
	test.ExpectEquality(t, launch(w, []string{"segtable"}), 20)
	test.ExpectEquality(t, launch(w, []string{"segtable", filepath.Join(t.TempDir(), "none.toml")}), 20)
}

func TestVersionMode(t *testing.T) {
	w := &test.CompareWriter{}
	test.ExpectEquality(t, launch(w, []string{"version"}), 0)
	test.ExpectSuccess(t, strings.HasPrefix(w.String(), "scimem "), w.String())
}
