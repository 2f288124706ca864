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

package modalflag_test

import (
	"testing"

	"github.com/scummvm/scummvm-sub239/modalflag"
	"github.com/scummvm/scummvm-sub239/test"
)

func TestNoModesNoFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{})

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectEquality(t, md.Path(), "")
}

func TestNoModes(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-test", "1", "2"})
	testFlag := md.AddBool("test", false, "test flag")
	test.ExpectFailure(t, *testFlag)

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectSuccess(t, *testFlag)
	test.ExpectEquality(t, len(md.RemainingArgs()), 2)
	test.ExpectEquality(t, md.GetArg(1), "2")
}

func TestSubModes(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"seginfo", "-segment", "3", "game.toml"})
	md.AddSubModes("SEGTABLE", "SEGINFO")

	p, err := md.Parse()
	test.DemandEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "SEGINFO")

	md.NewMode()
	seg := md.AddInt("segment", 0, "segment number")
	p, err = md.Parse()
	test.DemandEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *seg, 3)
	test.ExpectEquality(t, md.GetArg(0), "game.toml")
	test.ExpectEquality(t, md.Path(), "SEGINFO")

	// the default sub-mode
	md = modalflag.Modes{}
	md.NewArgs([]string{"game.toml"})
	md.AddSubModes("SEGTABLE", "SEGINFO")
	_, _ = md.Parse()
	test.ExpectEquality(t, md.Mode(), "SEGTABLE")
}

func TestNumbers(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-scripts", "0, 10,0x14", "-scripts", "99"})
	scripts := md.AddNumbers("scripts", "script numbers")

	p, err := md.Parse()
	test.DemandEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.DemandEquality(t, scripts.Len(), 4)
	test.ExpectEquality(t, scripts.String(), "0,10,20,99")

	md.NewArgs([]string{"-scripts", "ten"})
	md.AddNumbers("scripts", "script numbers")
	p, err = md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseError)
	test.ExpectFailure(t, err)
}

func TestNoHelpAvailable(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectSuccess(t, tw.Compare("No help available\n"), tw.String())
}

func TestHelpFlags(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddBool("test", true, "test flag")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  -test\n" +
		"    	test flag (default true)\n"
	test.ExpectSuccess(t, tw.Compare(expectedHelp), tw.String())
}

func TestHelpFlagsAndModes(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddBool("test", true, "test flag")
	md.AddSubModes("A", "B", "C")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  -test\n" +
		"    	test flag (default true)\n" +
		"\n" +
		"  available sub-modes: A, B, C\n" +
		"    default: A\n"
	test.ExpectSuccess(t, tw.Compare(expectedHelp), tw.String())
}
