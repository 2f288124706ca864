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

// Package modalflag wraps the flag package of the standard library. It adds
// program modes (and sub-modes), each of which can have its own flags.
//
// Arguments are given with NewArgs() and each layer of modes is parsed with a
// call to Parse():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("SEGTABLE", "SEGINFO")
//	_, _ = md.Parse()
//
//	switch md.Mode() {
//	case "SEGTABLE":
//		md.NewMode()
//		scripts := md.AddNumbers("scripts", "scripts to instantiate")
//		_, _ = md.Parse()
//	}
//
// The first sub-mode is the default and is selected if the first argument is
// not a sub-mode. Sub-modes are case insensitive. Path() records every mode
// selected so far, which is useful for help messages.
//
// The -help flag prints the flags of the current mode and the list of
// sub-modes, and Parse() returns ParseHelp.
package modalflag
