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

// Package segment implements the segment table of the virtual machine. Every
// piece of memory the virtual machine can address lives in a segment and is
// named by a reg.Reference, which is a segment id and an offset into that
// segment.
//
// The Manager owns every segment. Segment ids are small integers allocated
// by a linear scan for the lowest free slot. Slot zero is never allocated so
// that a zero segment id can mean null. Segment ids are reused after a
// segment is deallocated and so must not be held across a deallocation.
//
// Segments are of the following kinds:
//
//	script    a loaded script (see the script package)
//	locals    the local variables of a script
//	clones    pool of cloned objects
//	lists     pool of list headers
//	nodes     pool of list nodes
//	hunks     pool of raw memory blocks
//	dynmem    a single block of raw memory
//	strings   pool of strings
//	arrays    pool of value arrays
//
// The pool segments are tables of entries with a free list. The offset of a
// reference into a pool is the index of an entry.
//
// Access to the content of a segment is through Dereference(), which returns
// a View of either raw bytes or value cells. The typed getters (Script(),
// Locals(), etc.) fail with an InvalidReference fault if the segment is of
// the wrong kind.
//
// The Manager also owns the class table and implements the script.Host
// interface, which the script package uses while a script is instantiated.
package segment
