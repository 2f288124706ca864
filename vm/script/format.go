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
	"fmt"

	"github.com/scummvm/scummvm-sub239/curated"
	"github.com/scummvm/scummvm-sub239/environment"
	"github.com/scummvm/scummvm-sub239/resourceloader"
	"github.com/scummvm/scummvm-sub239/vm/faults"
)

// format is implemented by the parser of each generation of the script file
// format.
type format interface {
	// fetch resource data and build the script buffer
	assemble(s *Script, resources resourceloader.Provider) error

	// find the export, synonym and locals tables and the start of the
	// object records
	discover(s *Script) error

	// the class records of the script
	classes(s *Script) ([]classRecord, error)

	// create the objects of the script
	objects(s *Script, host Host) error

	// the entries of the relocation table
	relocations(s *Script) ([]relocation, error)

	// the offset lookup table. best effort only
	lookup(s *Script) []OffsetEntry
}

func newFormat(gen environment.Generation) (format, error) {
	switch gen {
	case environment.Earliest:
		return earliestFormat{}, nil
	case environment.Block:
		return blockFormat{}, nil
	case environment.Heap:
		return heapFormat{}, nil
	case environment.Latest:
		return latestFormat{}, nil
	}
	return nil, curated.Errorf(faults.InconsistentState, fmt.Sprintf("unsupported generation (%s)", gen))
}

// classRecord is a class found by the classes() function of a format.
type classRecord struct {
	pos     int
	species uint16
}

// relocation is an entry of a relocation table.
type relocation struct {
	// byte position of the value to relocate
	pos int

	// amount added to the value as it is relocated
	delta int

	// if absolute is true the value is replaced by offset
	absolute bool
	offset   uint32
}
