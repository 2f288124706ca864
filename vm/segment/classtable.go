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

package segment

import (
	"encoding/binary"
	"fmt"

	"github.com/scummvm/scummvm-sub239/curated"
	"github.com/scummvm/scummvm-sub239/vm/faults"
	"github.com/scummvm/scummvm-sub239/vm/reg"
	"github.com/scummvm/scummvm-sub239/vm/span"
)

// size of a record in the class vocabulary
const classRecordSize = 4

// ClassEntry is an entry of the class table.
type ClassEntry struct {
	// number of the script that defines the class
	Script int

	// address of the class. null until the script is loaded
	Ref reg.Reference
}

// ClassTable maps a class species to the script that defines it and the
// address of the class once that script is loaded.
type ClassTable struct {
	entries []ClassEntry
}

// NewClassTable creates a class table from the class vocabulary. Each record
// of the vocabulary is an unused 16 bit value followed by the 16 bit script
// number.
func NewClassTable(vocab []byte, order binary.ByteOrder) (*ClassTable, error) {
	if len(vocab)%classRecordSize != 0 {
		return nil, curated.Errorf(faults.MalformedFormat, fmt.Sprintf("class vocabulary of %d bytes", len(vocab)))
	}

	sp := span.New(vocab)
	ct := &ClassTable{
		entries: make([]ClassEntry, len(vocab)/classRecordSize),
	}

	for i := range ct.entries {
		n, err := sp.Uint16(i*classRecordSize+2, order)
		if err != nil {
			return nil, curated.Errorf(faults.MalformedFormat, err)
		}
		ct.entries[i].Script = int(n)
	}

	return ct, nil
}

// Len returns the number of entries in the class table.
func (ct *ClassTable) Len() int {
	return len(ct.entries)
}

// Resize the class table. New entries have no script and no address.
func (ct *ClassTable) Resize(n int) {
	if n <= len(ct.entries) {
		ct.entries = ct.entries[:n]
		return
	}
	for len(ct.entries) < n {
		ct.entries = append(ct.entries, ClassEntry{Script: -1})
	}
}

func (ct *ClassTable) check(species int) error {
	if species < 0 || species >= len(ct.entries) {
		return curated.Errorf(faults.InvalidSpecies, fmt.Sprintf("species %d in class table of %d entries", species, len(ct.entries)))
	}
	return nil
}

// Entry returns the entry for the species.
func (ct *ClassTable) Entry(species int) (ClassEntry, error) {
	if err := ct.check(species); err != nil {
		return ClassEntry{}, err
	}
	return ct.entries[species], nil
}

// SetAddress sets the address of the class.
func (ct *ClassTable) SetAddress(species int, ref reg.Reference) error {
	if err := ct.check(species); err != nil {
		return err
	}
	ct.entries[species].Ref = ref
	return nil
}

// clear the address of every class in the segment
func (ct *ClassTable) clearSegment(id reg.SegmentID) {
	for i := range ct.entries {
		if ct.entries[i].Ref.Segment == id {
			ct.entries[i].Ref = reg.NullReference
		}
	}
}
