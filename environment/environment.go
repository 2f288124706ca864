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

package environment

import (
	"encoding/binary"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/scummvm/scummvm-sub239/curated"
	"github.com/scummvm/scummvm-sub239/workarounds"
)

// Label is used to name the environment
type Label string

// Environment is used to provide context for a session.
type Environment struct {
	Label Label

	// identifier of the game. used when matching workarounds
	GameID string

	// whether the game is a demo release
	Demo bool

	// script format generation for the whole session
	Generation Generation

	// byte order of 16 and 32 bit values in script resources
	ByteOrder binary.ByteOrder

	// table of corrective actions for known bad data. a nil table is
	// valid and means no workarounds are applied
	Workarounds *workarounds.Table

	// directory of loose resource files. may be empty if resources are
	// supplied some other way
	ResourceDir string

	// TOML patch table. may be empty
	PatchFile string
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type. The byte order is little-endian and the default
// workaround table is used.
func NewEnvironment(label Label, gameID string, gen Generation) *Environment {
	return &Environment{
		Label:       label,
		GameID:      gameID,
		Generation:  gen,
		ByteOrder:   binary.LittleEndian,
		Workarounds: workarounds.Defaults(),
	}
}

// the on-disk form of a game file
type gameFile struct {
	Label       string `toml:"label"`
	Game        string `toml:"game"`
	Demo        bool   `toml:"demo"`
	Generation  string `toml:"generation"`
	BigEndian   bool   `toml:"big-endian"`
	Resources   string `toml:"resources"`
	Patches     string `toml:"patches"`
	Workarounds string `toml:"workarounds"`
}

// Parse creates an Environment from TOML data. Relative paths are resolved
// against dir.
func Parse(data []byte, dir string) (*Environment, error) {
	var f gameFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, curated.Errorf("environment: %v", err)
	}

	if f.Game == "" {
		return nil, curated.Errorf("environment: %v", "game file has no game id")
	}

	gen, err := ParseGeneration(f.Generation)
	if err != nil {
		return nil, curated.Errorf("environment: %v", err)
	}

	env := NewEnvironment(Label(f.Label), f.Game, gen)
	env.Demo = f.Demo
	if f.BigEndian {
		env.ByteOrder = binary.BigEndian
	}

	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}

	env.ResourceDir = resolve(f.Resources)
	env.PatchFile = resolve(f.Patches)

	if f.Workarounds != "" {
		env.Workarounds, err = workarounds.Load(resolve(f.Workarounds))
		if err != nil {
			return nil, curated.Errorf("environment: %v", err)
		}
	}

	return env, nil
}

// Load reads an Environment from a TOML game file.
func Load(filename string) (*Environment, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf("environment: %v", err)
	}
	return Parse(data, filepath.Dir(filename))
}

// IsDemo returns true if the environment is for a demo release of the game.
func (env *Environment) IsDemo() bool {
	return env.Demo
}

// IsGame checks the game id and returns true if it matches.
func (env *Environment) IsGame(id string) bool {
	return env.GameID == id
}

// Workaround looks up the workaround for the script at the specified
// decision point.
func (env *Environment) Workaround(script int, point workarounds.Point) (workarounds.Entry, bool) {
	return env.Workarounds.Lookup(workarounds.Query{
		Game:   env.GameID,
		Demo:   env.Demo,
		Script: script,
		Point:  point,
	})
}
