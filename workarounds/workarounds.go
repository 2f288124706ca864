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

package workarounds

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/scummvm/scummvm-sub239/curated"
)

// Point is a place in the loader where a workaround can be applied.
type Point string

// List of valid Point values.
const (
	ClassOffByOne      Point = "class-off-by-one"
	MissingBaseObject  Point = "missing-base-object"
	UnterminatedBlocks Point = "unterminated-blocks"
)

// Action is the corrective action to take at a Point.
type Action string

// List of valid Action values.
const (
	GrowClassTable Action = "grow-class-table"
	DropObject     Action = "drop-object"
	StopScan       Action = "stop-scan"
)

// the only action that is valid at each point
var validAction = map[Point]Action{
	ClassOffByOne:      GrowClassTable,
	MissingBaseObject:  DropObject,
	UnterminatedBlocks: StopScan,
}

// Release selects between the demo and full versions of a game.
type Release int

// List of valid Release values.
const (
	AnyRelease Release = iota
	DemoRelease
	FullRelease
)

func (r Release) String() string {
	switch r {
	case DemoRelease:
		return "demo"
	case FullRelease:
		return "full"
	}
	return "any"
}

func (r Release) matches(demo bool) bool {
	switch r {
	case DemoRelease:
		return demo
	case FullRelease:
		return !demo
	}
	return true
}

// AnyScript in the Script field of an Entry matches every script.
const AnyScript = -1

// Entry is a single workaround.
type Entry struct {
	Game    string
	Script  int
	Release Release
	Point   Point
	Action  Action
	Notes   string
}

func (e Entry) String() string {
	s := "any script"
	if e.Script != AnyScript {
		s = fmt.Sprintf("script %d", e.Script)
	}
	return fmt.Sprintf("%s (%s) %s: %s: %s", e.Game, e.Release, s, e.Point, e.Action)
}

// Query describes the situation at a decision point.
type Query struct {
	Game   string
	Demo   bool
	Script int
	Point  Point
}

// Table of workarounds. The zero value is an empty table.
type Table struct {
	entries []Entry
}

// NewTable creates a table from a list of entries.
func NewTable(entries ...Entry) *Table {
	return &Table{entries: entries}
}

// Len returns the number of entries in the table.
func (tab *Table) Len() int {
	if tab == nil {
		return 0
	}
	return len(tab.entries)
}

// Entries returns a copy of the table entries.
func (tab *Table) Entries() []Entry {
	if tab == nil {
		return nil
	}
	return append([]Entry{}, tab.entries...)
}

// Lookup returns the first entry that matches the query. A nil table never
// matches.
func (tab *Table) Lookup(q Query) (Entry, bool) {
	if tab == nil {
		return Entry{}, false
	}
	for _, e := range tab.entries {
		if e.Point != q.Point {
			continue
		}
		if !strings.EqualFold(e.Game, q.Game) {
			continue
		}
		if e.Script != AnyScript && e.Script != q.Script {
			continue
		}
		if !e.Release.matches(q.Demo) {
			continue
		}
		return e, true
	}
	return Entry{}, false
}

// the on-disk form of a workaround table
type tableFile struct {
	Workaround []struct {
		Game   string `toml:"game"`
		Script *int   `toml:"script"`
		Demo   string `toml:"demo"`
		Point  string `toml:"point"`
		Action string `toml:"action"`
		Notes  string `toml:"notes"`
	} `toml:"workaround"`
}

// Parse creates a Table from TOML data.
func Parse(data []byte) (*Table, error) {
	var f tableFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, curated.Errorf("workarounds: %v", err)
	}

	tab := &Table{}

	for i, w := range f.Workaround {
		e := Entry{
			Game:   w.Game,
			Script: AnyScript,
			Point:  Point(w.Point),
			Action: Action(w.Action),
			Notes:  w.Notes,
		}

		if e.Game == "" {
			return nil, curated.Errorf("workarounds: entry %d: %v", i, "missing game")
		}

		if w.Script != nil {
			if *w.Script < AnyScript {
				return nil, curated.Errorf("workarounds: entry %d: %v", i, fmt.Sprintf("invalid script number (%d)", *w.Script))
			}
			e.Script = *w.Script
		}

		switch strings.ToLower(w.Demo) {
		case "", "any":
			e.Release = AnyRelease
		case "demo":
			e.Release = DemoRelease
		case "full":
			e.Release = FullRelease
		default:
			return nil, curated.Errorf("workarounds: entry %d: %v", i, fmt.Sprintf("invalid demo value (%s)", w.Demo))
		}

		a, ok := validAction[e.Point]
		if !ok {
			return nil, curated.Errorf("workarounds: entry %d: %v", i, fmt.Sprintf("unknown point (%s)", w.Point))
		}
		if a != e.Action {
			return nil, curated.Errorf("workarounds: entry %d: %v", i, fmt.Sprintf("action %s is not valid for %s", w.Action, w.Point))
		}

		tab.entries = append(tab.entries, e)
	}

	return tab, nil
}

// Load reads a Table from a TOML file.
func Load(filename string) (*Table, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf("workarounds: %v", err)
	}
	return Parse(data)
}

//go:embed defaults.toml
var defaultsData []byte

var defaults *Table

func init() {
	var err error
	defaults, err = Parse(defaultsData)
	if err != nil {
		panic(fmt.Sprintf("workarounds: failed to parse embedded defaults: %v", err))
	}
}

// Defaults returns the table of documented workarounds.
func Defaults() *Table {
	return NewTable(defaults.entries...)
}
