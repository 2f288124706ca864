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

// Package faults lists the error patterns shared by the segment manager and
// the script loader. Each pattern is used with curated.Errorf() and can be
// detected anywhere in an error chain with curated.Has().
//
// Every fault in this list is fatal to the operation that produced it. The
// only exception is UnterminatedTable, which is logged as a warning by the
// offset lookup scan and never returned.
package faults

// List of fault patterns.
const (
	// the resource provider has no resource for the requested kind and id
	ResourceMissing = "resource missing: %v"

	// block, header or size violations in script data
	MalformedFormat = "malformed format: %v"

	// a block is smaller than its header or runs past the end of the buffer.
	// always wrapped inside a MalformedFormat fault
	MalformedBlock = "malformed block: %v"

	// the combined size of a script exceeds the addressing ceiling of its
	// format generation
	AddressingOverflow = "addressing overflow: %v"

	// a null, out of range or wrongly typed segment was dereferenced
	InvalidReference = "invalid reference: %v"

	// internal bookkeeping disagrees with itself
	InconsistentState = "inconsistent state: %v"

	// a class species is outside of the class table
	InvalidSpecies = "invalid species: %v"

	// a string or said-spec scan reached the end of the buffer without a
	// terminator
	UnterminatedTable = "unterminated table: %v"

	// a read or sub-span request extends beyond the end of a span
	OutOfBounds = "out of bounds: %v"
)

// ResourceNotFound is an alias of ResourceMissing.
const ResourceNotFound = ResourceMissing
