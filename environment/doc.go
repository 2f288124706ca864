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

// Package environment holds the per-session context of the virtual machine:
// which game is running, which script format generation it uses, the byte
// order of multi-byte values in its resources and the table of workarounds
// for its known bad data.
//
// The format generation is fixed for the lifetime of the Environment and so
// for every script loaded during the session.
//
// An Environment can be created with NewEnvironment() or loaded from a TOML
// game file:
//
//	label = "kq5 floppy"
//	game = "kq5"
//	demo = false
//	generation = "sci1"
//	big-endian = false
//	resources = "kq5/"
//	patches = "kq5-patches.toml"
//	workarounds = "extra-workarounds.toml"
//
// Relative paths in a game file are relative to the directory containing
// the file. If the workarounds field is absent then the default table of the
// workarounds package is used.
package environment
