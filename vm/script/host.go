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

package script

import (
	"github.com/scummvm/scummvm-sub239/vm/reg"
)

// LoadPolicy specifies what GetClassAddress() should do if the script
// defining a class is not yet loaded.
type LoadPolicy int

// List of valid LoadPolicy values.
const (
	// return a null reference if the class is not loaded
	DontLoad LoadPolicy = iota

	// load the defining script if necessary
	Load

	// load the defining script if necessary and increase its lockers
	Lock
)

func (p LoadPolicy) String() string {
	switch p {
	case DontLoad:
		return "dont-load"
	case Load:
		return "load"
	case Lock:
		return "lock"
	}
	return "unknown"
}

// NullSpecies is the species value meaning "no class".
const NullSpecies = 0xffff

// Host is implemented by the segment manager. It supplies the services a
// Script needs while it is being initialised.
type Host interface {
	// allocate (or reuse) the locals segment for the script
	AllocateLocals(s *Script) (reg.SegmentID, *Locals, error)

	// current number of entries in the class table
	ClassTableSize() int

	// grow the class table to n entries
	ResizeClassTable(n int)

	// set the address of a class. the species must be in range
	SetClassAddress(species int, ref reg.Reference) error

	// address of a class, loading the defining script according to policy.
	// the caller segment is never locked by a call that it makes
	GetClassAddress(species uint16, policy LoadPolicy, caller reg.SegmentID) (reg.Reference, error)

	// the object at ref or nil if there isn't one
	GetObject(ref reg.Reference) *Object
}
