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
	"fmt"

	"github.com/scummvm/scummvm-sub239/curated"
	"github.com/scummvm/scummvm-sub239/vm/faults"
	"github.com/scummvm/scummvm-sub239/vm/reg"
)

// poolSegment returns the pool segment of the kind, allocating it the first
// time it is needed.
func (m *Manager) poolSegment(id *reg.SegmentID, kind Kind) (reg.SegmentID, error) {
	if *id != reg.NullSegment {
		return *id, nil
	}
	n, err := m.AllocateSegment(kind)
	if err != nil {
		return reg.NullSegment, err
	}
	*id = n
	return n, nil
}

// CloneObject creates a copy of the object in the clone pool and returns the
// address of the copy.
func (m *Manager) CloneObject(ref reg.Reference) (reg.Reference, error) {
	obj := m.GetObject(ref)
	if obj == nil {
		return reg.NullReference, curated.Errorf(faults.InvalidReference, fmt.Sprintf("no object at %s", ref))
	}

	id, err := m.poolSegment(&m.clones, ClonesSegment)
	if err != nil {
		return reg.NullReference, err
	}
	p, err := m.Clones(id)
	if err != nil {
		return reg.NullReference, err
	}

	idx := p.Allocate(nil)
	clone := reg.NewReference(id, idx)
	_ = p.Set(idx, obj.Clone(clone))

	return clone, nil
}

// FreeClone releases a clone created by CloneObject().
func (m *Manager) FreeClone(ref reg.Reference) error {
	p, err := m.Clones(ref.Segment)
	if err != nil {
		return err
	}
	return p.Free(ref.Offset)
}

// NewList allocates an empty list.
func (m *Manager) NewList() (reg.Reference, error) {
	id, err := m.poolSegment(&m.lists, ListsSegment)
	if err != nil {
		return reg.NullReference, err
	}
	p, err := m.Lists(id)
	if err != nil {
		return reg.NullReference, err
	}
	return reg.NewReference(id, p.Allocate(List{})), nil
}

// FreeList releases a list created by NewList().
func (m *Manager) FreeList(ref reg.Reference) error {
	p, err := m.Lists(ref.Segment)
	if err != nil {
		return err
	}
	return p.Free(ref.Offset)
}

// NewNode allocates an unlinked list node.
func (m *Manager) NewNode(value reg.Value, key reg.Value) (reg.Reference, error) {
	id, err := m.poolSegment(&m.nodes, NodesSegment)
	if err != nil {
		return reg.NullReference, err
	}
	p, err := m.Nodes(id)
	if err != nil {
		return reg.NullReference, err
	}
	return reg.NewReference(id, p.Allocate(Node{Key: key, Value: value})), nil
}

// FreeNode releases a node created by NewNode().
func (m *Manager) FreeNode(ref reg.Reference) error {
	p, err := m.Nodes(ref.Segment)
	if err != nil {
		return err
	}
	return p.Free(ref.Offset)
}

// AllocateHunk allocates a zeroed block of memory in the hunk pool. The type
// is a description used by the debugging listings.
func (m *Manager) AllocateHunk(typ string, size int) (reg.Reference, error) {
	if size < 0 {
		return reg.NullReference, curated.Errorf(faults.OutOfBounds, fmt.Sprintf("hunk of %d bytes", size))
	}
	id, err := m.poolSegment(&m.hunks, HunksSegment)
	if err != nil {
		return reg.NullReference, err
	}
	p, err := m.Hunks(id)
	if err != nil {
		return reg.NullReference, err
	}
	return reg.NewReference(id, p.Allocate(Hunk{Type: typ, Data: make([]byte, size)})), nil
}

// FreeHunk releases a hunk created by AllocateHunk().
func (m *Manager) FreeHunk(ref reg.Reference) error {
	p, err := m.Hunks(ref.Segment)
	if err != nil {
		return err
	}
	return p.Free(ref.Offset)
}

// AllocateDynMem allocates a zeroed block of memory in a segment of its own.
func (m *Manager) AllocateDynMem(size int, description string) (reg.Reference, error) {
	if size < 0 {
		return reg.NullReference, curated.Errorf(faults.OutOfBounds, fmt.Sprintf("dynmem of %d bytes", size))
	}
	id, err := m.AllocateSegment(DynMemSegment)
	if err != nil {
		return reg.NullReference, err
	}
	dm, err := m.DynMem(id)
	if err != nil {
		return reg.NullReference, err
	}
	dm.Description = description
	dm.data = make([]byte, size)
	return reg.NewReference(id, 0), nil
}

// FreeDynMem releases memory created by AllocateDynMem(). The segment is
// deallocated.
func (m *Manager) FreeDynMem(ref reg.Reference) error {
	if _, err := m.DynMem(ref.Segment); err != nil {
		return err
	}
	return m.Deallocate(ref.Segment)
}

// AllocateString allocates a zeroed string of size bytes in the string pool.
func (m *Manager) AllocateString(size int) (reg.Reference, error) {
	if size < 0 {
		return reg.NullReference, curated.Errorf(faults.OutOfBounds, fmt.Sprintf("string of %d bytes", size))
	}
	id, err := m.poolSegment(&m.strings, StringsSegment)
	if err != nil {
		return reg.NullReference, err
	}
	p, err := m.Strings(id)
	if err != nil {
		return reg.NullReference, err
	}
	return reg.NewReference(id, p.Allocate(make([]byte, size))), nil
}

// FreeString releases a string created by AllocateString().
func (m *Manager) FreeString(ref reg.Reference) error {
	p, err := m.Strings(ref.Segment)
	if err != nil {
		return err
	}
	return p.Free(ref.Offset)
}

// AllocateArray allocates an array of n numeric zero values.
func (m *Manager) AllocateArray(n int) (reg.Reference, error) {
	if n < 0 {
		return reg.NullReference, curated.Errorf(faults.OutOfBounds, fmt.Sprintf("array of %d values", n))
	}
	id, err := m.poolSegment(&m.arrays, ArraysSegment)
	if err != nil {
		return reg.NullReference, err
	}
	p, err := m.Arrays(id)
	if err != nil {
		return reg.NullReference, err
	}
	return reg.NewReference(id, p.Allocate(make(Array, n))), nil
}

// FreeArray releases an array created by AllocateArray().
func (m *Manager) FreeArray(ref reg.Reference) error {
	p, err := m.Arrays(ref.Segment)
	if err != nil {
		return err
	}
	return p.Free(ref.Offset)
}
