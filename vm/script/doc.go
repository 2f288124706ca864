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

// Package script loads compiled game scripts and parses them into the tables
// and objects used by the virtual machine.
//
// A Script is created empty by the segment manager and then loaded with
// Load(). Loading assembles the raw resource data into a single buffer,
// applies any patch, and discovers the export, synonym and locals tables.
// The remaining initialisation steps must be run in order:
//
//	InitializeLocals()
//	InitializeClasses()
//	InitializeObjects()
//
// InitializeObjects() finishes with the relocation pass, which tags the
// local variables and object variables that are pointers with the script's
// segment.
//
// There are four generations of the script file format. The generation is
// fixed for a session (see the environment package) and the Script chooses
// the parser for its generation once, when it is created.
//
// The initialisation steps need the class table and the locals allocator of
// the segment manager. These are supplied through the Host interface.
package script
