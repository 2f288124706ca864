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

package environment_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/scummvm/scummvm-sub239/environment"
	"github.com/scummvm/scummvm-sub239/test"
	"github.com/scummvm/scummvm-sub239/workarounds"
)

func TestGeneration(t *testing.T) {
	for _, g := range []environment.Generation{environment.Earliest, environment.Block, environment.Heap, environment.Latest} {
		p, err := environment.ParseGeneration(g.String())
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, p, g)
	}

	g, err := environment.ParseGeneration("sci2.1")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, g, environment.Heap)

	_, err = environment.ParseGeneration("sci4")
	test.ExpectFailure(t, err)

	test.ExpectSuccess(t, environment.Earliest.IsBlockBased())
	test.ExpectFailure(t, environment.Latest.IsBlockBased())
}

func TestNewEnvironment(t *testing.T) {
	env := environment.NewEnvironment("test", "lsl2", environment.Block)
	test.ExpectEquality(t, env.ByteOrder, binary.ByteOrder(binary.LittleEndian))
	test.ExpectSuccess(t, env.IsGame("lsl2"))
	test.ExpectFailure(t, env.IsDemo())

	_, ok := env.Workaround(10, workarounds.ClassOffByOne)
	test.ExpectFailure(t, ok)

	env.Demo = true
	_, ok = env.Workaround(10, workarounds.ClassOffByOne)
	test.ExpectSuccess(t, ok)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "extra.toml"), []byte(`
[[workaround]]
game = "mygame"
script = 3
point = "unterminated-blocks"
action = "stop-scan"
`), 0o644)
	test.DemandSuccess(t, err)

	err = os.WriteFile(filepath.Join(dir, "game.toml"), []byte(`
label = "my game"
game = "mygame"
generation = "sci3"
big-endian = true
resources = "res"
workarounds = "extra.toml"
`), 0o644)
	test.DemandSuccess(t, err)

	env, err := environment.Load(filepath.Join(dir, "game.toml"))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, env.Label, environment.Label("my game"))
	test.ExpectEquality(t, env.Generation, environment.Latest)
	test.ExpectEquality(t, env.ByteOrder, binary.ByteOrder(binary.BigEndian))
	test.ExpectEquality(t, env.ResourceDir, filepath.Join(dir, "res"))
	test.ExpectEquality(t, env.PatchFile, "")
	test.ExpectEquality(t, env.Workarounds.Len(), 1)

	_, ok := env.Workaround(3, workarounds.UnterminatedBlocks)
	test.ExpectSuccess(t, ok)

	_, err = environment.Parse([]byte(`generation = "sci0"`), dir)
	test.ExpectFailure(t, err)
}
