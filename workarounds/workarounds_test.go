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

package workarounds_test

import (
	"testing"

	"github.com/scummvm/scummvm-sub239/test"
	"github.com/scummvm/scummvm-sub239/workarounds"
)

func TestDefaults(t *testing.T) {
	tab := workarounds.Defaults()
	test.ExpectEquality(t, tab.Len(), 6)

	// lsl2 demo applies to any script but only to the demo
	q := workarounds.Query{Game: "lsl2", Demo: true, Script: 123, Point: workarounds.ClassOffByOne}
	e, ok := tab.Lookup(q)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, e.Action, workarounds.GrowClassTable)

	q.Demo = false
	_, ok = tab.Lookup(q)
	test.ExpectFailure(t, ok)

	// sq3 scripts 93 and 99 only
	q = workarounds.Query{Game: "sq3", Script: 93, Point: workarounds.ClassOffByOne}
	_, ok = tab.Lookup(q)
	test.ExpectSuccess(t, ok)
	q.Script = 99
	_, ok = tab.Lookup(q)
	test.ExpectSuccess(t, ok)
	q.Script = 98
	_, ok = tab.Lookup(q)
	test.ExpectFailure(t, ok)

	// the point must match
	q = workarounds.Query{Game: "kq5", Script: 202, Point: workarounds.ClassOffByOne}
	_, ok = tab.Lookup(q)
	test.ExpectFailure(t, ok)
	q.Point = workarounds.MissingBaseObject
	e, ok = tab.Lookup(q)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, e.Action, workarounds.DropObject)

	// no default entry for unterminated blocks
	q = workarounds.Query{Game: "kq5", Script: 202, Point: workarounds.UnterminatedBlocks}
	_, ok = tab.Lookup(q)
	test.ExpectFailure(t, ok)

	// tables returned by Defaults() are independent
	test.ExpectEquality(t, len(tab.Entries()), 6)
}

func TestNilTable(t *testing.T) {
	var tab *workarounds.Table
	test.ExpectEquality(t, tab.Len(), 0)
	_, ok := tab.Lookup(workarounds.Query{Game: "lsl2", Demo: true, Point: workarounds.ClassOffByOne})
	test.ExpectFailure(t, ok)
}

func TestParse(t *testing.T) {
	tab, err := workarounds.Parse([]byte(`
[[workaround]]
game = "test"
script = 10
point = "unterminated-blocks"
action = "stop-scan"
`))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tab.Len(), 1)

	e, ok := tab.Lookup(workarounds.Query{Game: "TEST", Script: 10, Demo: true, Point: workarounds.UnterminatedBlocks})
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, e.Release, workarounds.AnyRelease)

	// missing script number means any script
	tab, err = workarounds.Parse([]byte(`
[[workaround]]
game = "test"
point = "missing-base-object"
action = "drop-object"
`))
	test.DemandSuccess(t, err)
	_, ok = tab.Lookup(workarounds.Query{Game: "test", Script: 500, Point: workarounds.MissingBaseObject})
	test.ExpectSuccess(t, ok)

	// action must suit the point
	_, err = workarounds.Parse([]byte(`
[[workaround]]
game = "test"
point = "missing-base-object"
action = "grow-class-table"
`))
	test.ExpectFailure(t, err)

	_, err = workarounds.Parse([]byte(`
[[workaround]]
game = "test"
point = "class-off-by-one"
action = "grow-class-table"
demo = "sometimes"
`))
	test.ExpectFailure(t, err)
}
