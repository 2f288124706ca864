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
	"github.com/scummvm/scummvm-sub239/environment"
	"github.com/scummvm/scummvm-sub239/logger"
	"github.com/scummvm/scummvm-sub239/patch"
	"github.com/scummvm/scummvm-sub239/resourceloader"
	"github.com/scummvm/scummvm-sub239/vm/faults"
	"github.com/scummvm/scummvm-sub239/vm/reg"
	"github.com/scummvm/scummvm-sub239/vm/script"
)

// the largest number of segments. segment ids are 16 bit
const maxSegments = 0x10000

// Manager is the segment table.
type Manager struct {
	env       *environment.Environment
	resources resourceloader.Provider
	patches   patch.Provider

	// slot zero is always nil
	segments []Segment

	// script number to segment
	scripts map[int]reg.SegmentID

	classes *ClassTable

	// segments of the pools. NullSegment until first needed
	clones  reg.SegmentID
	lists   reg.SegmentID
	nodes   reg.SegmentID
	hunks   reg.SegmentID
	strings reg.SegmentID
	arrays  reg.SegmentID
}

// NewManager is the preferred method of initialisation for the Manager type.
// The class table is built from the class vocabulary of the resources. The
// patches argument can be nil.
func NewManager(env *environment.Environment, resources resourceloader.Provider, patches patch.Provider) (*Manager, error) {
	vocab, err := resources.Fetch(resourceloader.Vocab, resourceloader.VocabClassTable)
	if err != nil {
		return nil, curated.Errorf("segment: %v", err)
	}

	ct, err := NewClassTable(vocab, env.ByteOrder)
	if err != nil {
		return nil, curated.Errorf("segment: %v", err)
	}

	m := &Manager{
		env:       env,
		resources: resources,
		patches:   patches,
		segments:  make([]Segment, 1),
		scripts:   make(map[int]reg.SegmentID),
		classes:   ct,
	}

	logger.Logf(logger.Allow, "classtable", "%d classes", ct.Len())

	return m, nil
}

// Environment returns the environment of the manager.
func (m *Manager) Environment() *environment.Environment {
	return m.env
}

// ClassTable returns the class table.
func (m *Manager) ClassTable() *ClassTable {
	return m.classes
}

// findFree returns the lowest free slot, growing the table if necessary.
func (m *Manager) findFree() (reg.SegmentID, error) {
	for i := 1; i < len(m.segments); i++ {
		if m.segments[i] == nil {
			return reg.SegmentID(i), nil
		}
	}
	if len(m.segments) >= maxSegments {
		return reg.NullSegment, curated.Errorf(faults.InconsistentState, "segment table is full")
	}
	m.segments = append(m.segments, nil)
	return reg.SegmentID(len(m.segments) - 1), nil
}

// newSegment creates an empty segment of the kind for the slot.
func (m *Manager) newSegment(kind Kind, id reg.SegmentID) (Segment, error) {
	switch kind {
	case ScriptSegment:
		s, err := script.NewScript(m.env, id)
		if err != nil {
			return nil, err
		}
		return scriptSegment{s}, nil
	case LocalsSegment:
		return localsSegment{script.NewLocals(-1, 0)}, nil
	case ClonesSegment:
		return newClonePool(), nil
	case ListsSegment:
		return newListPool(), nil
	case NodesSegment:
		return newNodePool(), nil
	case HunksSegment:
		return newHunkPool(), nil
	case DynMemSegment:
		return &DynMem{}, nil
	case StringsSegment:
		return newStringPool(), nil
	case ArraysSegment:
		return newArrayPool(), nil
	}
	return nil, curated.Errorf(faults.InconsistentState, fmt.Sprintf("cannot allocate segment of kind %s", kind))
}

// AllocateSegment creates a new, empty segment of the kind in the lowest
// free slot and returns its id. The id is never zero.
func (m *Manager) AllocateSegment(kind Kind) (reg.SegmentID, error) {
	id, err := m.findFree()
	if err != nil {
		return reg.NullSegment, err
	}
	seg, err := m.newSegment(kind, id)
	if err != nil {
		return reg.NullSegment, err
	}
	m.segments[id] = seg
	return id, nil
}

// segment returns the segment in the slot.
func (m *Manager) segment(id reg.SegmentID) (Segment, error) {
	if id == reg.NullSegment {
		return nil, curated.Errorf(faults.InvalidReference, "null segment")
	}
	if int(id) >= len(m.segments) || m.segments[id] == nil {
		return nil, curated.Errorf(faults.InvalidReference, fmt.Sprintf("segment %d is not allocated", id))
	}
	return m.segments[id], nil
}

// Kind returns the kind of the segment.
func (m *Manager) Kind(id reg.SegmentID) (Kind, error) {
	seg, err := m.segment(id)
	if err != nil {
		return 0, err
	}
	return seg.Kind(), nil
}

// IsValid returns true if the segment is allocated.
func (m *Manager) IsValid(id reg.SegmentID) bool {
	_, err := m.segment(id)
	return err == nil
}

// Len returns the size of the segment table, including free slots and the
// reserved slot zero.
func (m *Manager) Len() int {
	return len(m.segments)
}

// Dereference returns a view of the memory named by the reference.
func (m *Manager) Dereference(ref reg.Reference) (View, error) {
	seg, err := m.segment(ref.Segment)
	if err != nil {
		return View{}, err
	}
	return seg.Dereference(ref.Offset)
}

func wrongKind(id reg.SegmentID, seg Segment, kind Kind) error {
	return curated.Errorf(faults.InvalidReference, fmt.Sprintf("segment %d is %s not %s", id, seg.Kind(), kind))
}

// Script returns the script in the segment.
func (m *Manager) Script(id reg.SegmentID) (*script.Script, error) {
	seg, err := m.segment(id)
	if err != nil {
		return nil, err
	}
	if s, ok := seg.(scriptSegment); ok {
		return s.Script, nil
	}
	return nil, wrongKind(id, seg, ScriptSegment)
}

// Locals returns the locals in the segment.
func (m *Manager) Locals(id reg.SegmentID) (*script.Locals, error) {
	seg, err := m.segment(id)
	if err != nil {
		return nil, err
	}
	if l, ok := seg.(localsSegment); ok {
		return l.Locals, nil
	}
	return nil, wrongKind(id, seg, LocalsSegment)
}

// DynMem returns the dynamic memory in the segment.
func (m *Manager) DynMem(id reg.SegmentID) (*DynMem, error) {
	seg, err := m.segment(id)
	if err != nil {
		return nil, err
	}
	if dm, ok := seg.(*DynMem); ok {
		return dm, nil
	}
	return nil, wrongKind(id, seg, DynMemSegment)
}

func pool[T any](m *Manager, id reg.SegmentID, kind Kind) (*Pool[T], error) {
	seg, err := m.segment(id)
	if err != nil {
		return nil, err
	}
	if p, ok := seg.(*Pool[T]); ok && p.kind == kind {
		return p, nil
	}
	return nil, wrongKind(id, seg, kind)
}

// Clones returns the clone pool in the segment.
func (m *Manager) Clones(id reg.SegmentID) (*Pool[*script.Object], error) {
	return pool[*script.Object](m, id, ClonesSegment)
}

// Lists returns the list pool in the segment.
func (m *Manager) Lists(id reg.SegmentID) (*Pool[List], error) {
	return pool[List](m, id, ListsSegment)
}

// Nodes returns the node pool in the segment.
func (m *Manager) Nodes(id reg.SegmentID) (*Pool[Node], error) {
	return pool[Node](m, id, NodesSegment)
}

// Hunks returns the hunk pool in the segment.
func (m *Manager) Hunks(id reg.SegmentID) (*Pool[Hunk], error) {
	return pool[Hunk](m, id, HunksSegment)
}

// Strings returns the string pool in the segment.
func (m *Manager) Strings(id reg.SegmentID) (*Pool[[]byte], error) {
	return pool[[]byte](m, id, StringsSegment)
}

// Arrays returns the array pool in the segment.
func (m *Manager) Arrays(id reg.SegmentID) (*Pool[Array], error) {
	return pool[Array](m, id, ArraysSegment)
}

// GetObject returns the object at the reference. Objects are found in script
// segments and in the clone pool. Returns nil if there is no object at the
// reference.
func (m *Manager) GetObject(ref reg.Reference) *script.Object {
	seg, err := m.segment(ref.Segment)
	if err != nil {
		return nil
	}
	switch seg := seg.(type) {
	case scriptSegment:
		return seg.Object(ref.Offset)
	case *Pool[*script.Object]:
		obj, err := seg.Get(ref.Offset)
		if err != nil {
			return nil
		}
		return obj
	}
	return nil
}

// ListAllOutgoingReferences lists the references held by the entry at the
// reference.
func (m *Manager) ListAllOutgoingReferences(ref reg.Reference) ([]reg.Reference, error) {
	seg, err := m.segment(ref.Segment)
	if err != nil {
		return nil, err
	}
	return seg.ListAllOutgoingReferences(ref.Offset)
}

// ListAllDeallocatable lists the entries of the segment that can be freed.
func (m *Manager) ListAllDeallocatable(id reg.SegmentID) ([]reg.Reference, error) {
	seg, err := m.segment(id)
	if err != nil {
		return nil, err
	}
	return seg.ListAllDeallocatable(id), nil
}
