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

// Package workarounds holds the table of corrective actions for known bad
// game data. The script loader consults the table at three points, where
// it would otherwise fail the load:
//
//	class-off-by-one       a class species is equal to the class table size
//	missing-base-object    an object's base class object cannot be found
//	unterminated-blocks    the block list runs off the end of the script
//
// An entry names the game, the script (or -1 for any script), whether the
// entry is for the demo or full version of the game (or both), the decision
// point and the action to take. Nothing else in the loader special-cases a
// game.
//
// The default table is embedded in the package and contains only the cases
// documented for the original engine. Tables can be loaded from TOML files
// in the same format as the embedded defaults.toml file.
package workarounds
