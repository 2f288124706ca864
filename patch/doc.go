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

// Package patch applies corrective edits to resource data before it is
// parsed. A Patch is a list of Operations that are run in order against the
// source data, with a cursor that moves through the source as bytes are
// consumed. Any source data remaining when the operations end is copied
// unchanged.
//
// The net change in size and the number of source bytes consumed are known
// before a patch is applied, with the SizeDelta() function. A patch that
// would consume more bytes than the source has is rejected with a
// MalformedFormat fault and the source is left untouched.
//
// Patches are supplied to the script loader through the Provider interface.
// The Table type is a Provider that is populated from a TOML file:
//
//	[[patch]]
//	kind = "script"
//	id = 42
//	notes = "fix jump target"
//	ops = [
//		{ op = "skip", count = 16 },
//		{ op = "adjust-number", number = -2 },
//		{ op = "replace-bytes", data = [ 0x12, 0x34 ] },
//		{ op = "end" },
//	]
package patch
