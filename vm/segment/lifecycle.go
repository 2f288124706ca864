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
	"github.com/scummvm/scummvm-sub239/logger"
	"github.com/scummvm/scummvm-sub239/vm/faults"
	"github.com/scummvm/scummvm-sub239/vm/reg"
	"github.com/scummvm/scummvm-sub239/vm/script"
)

// GetOrLoadScript returns the segment of the script. If no segment holds the
// script then an empty script segment is allocated for it. The script is not
// loaded and no locker is added.
func (m *Manager) GetOrLoadScript(number int) (reg.SegmentID, error) {
	if id, ok := m.scripts[number]; ok {
		return id, nil
	}

	id, err := m.AllocateSegment(ScriptSegment)
	if err != nil {
		return reg.NullSegment, err
	}
	if s, err := m.Script(id); err == nil {
		s.SetNumber(number)
	}
	m.scripts[number] = id

	return id, nil
}

// ScriptSegment returns the segment holding the script. The second return
// value is false if no segment holds the script.
func (m *Manager) ScriptSegment(number int) (reg.SegmentID, bool) {
	id, ok := m.scripts[number]
	return id, ok
}

// Instantiate makes sure the script is loaded and initialised and returns
// its segment.
//
// A script that is already loaded gains a locker. A script that is marked
// for deletion is reloaded in place. If anything fails then no segment for
// the script is left in the table.
func (m *Manager) Instantiate(number int) (reg.SegmentID, error) {
	id, err := m.GetOrLoadScript(number)
	if err != nil {
		return reg.NullSegment, err
	}

	s, err := m.Script(id)
	if err != nil {
		return reg.NullSegment, err
	}

	if s.State() == script.Loaded && !s.IsMarkedForDeletion() {
		if err := s.IncrementLockers(); err != nil {
			return reg.NullSegment, err
		}
		return id, nil
	}

	// anything left over from a previous load
	m.releaseScript(id, s)

	err = m.initialise(id, s, number)
	if err != nil {
		m.discardScript(id, s, number)
		return reg.NullSegment, err
	}

	logger.Logf(logger.Allow, "segment", "instantiated %s in segment %d", s, id)

	return id, nil
}

// the fixed sequence of steps that take an empty script to a usable script
func (m *Manager) initialise(id reg.SegmentID, s *script.Script, number int) error {
	if err := s.Load(number, m.resources, m.patches); err != nil {
		return err
	}
	if err := s.InitializeLocals(m); err != nil {
		return err
	}
	if err := s.InitializeClasses(m); err != nil {
		return err
	}
	return s.InitializeObjects(m, id)
}

// releaseScript frees the locals segment of the script and clears the class
// addresses that point into the script. the script itself is reset
func (m *Manager) releaseScript(id reg.SegmentID, s *script.Script) {
	// the slot may have been reused by the locals of another script
	if l := s.LocalsSegment(); l != reg.NullSegment && int(l) < len(m.segments) {
		if seg, ok := m.segments[l].(localsSegment); ok && seg.Locals == s.Locals() {
			m.segments[l] = nil
		}
	}
	m.classes.clearSegment(id)
	s.Free()
}

// discardScript removes every trace of a failed instantiation
func (m *Manager) discardScript(id reg.SegmentID, s *script.Script, number int) {
	// the locals segment may have been allocated before the failure but the
	// script only learns about it on success. search for an orphan
	for i := 1; i < len(m.segments); i++ {
		if l, ok := m.segments[i].(localsSegment); ok && l.ScriptNumber() == number {
			m.segments[i] = nil
		}
	}
	m.releaseScript(id, s)
	delete(m.scripts, number)
	m.segments[id] = nil

	logger.Logf(logger.Allow, "segment", "discarded script.%03d from segment %d", number, id)
}

// forgetScript removes the mapping from script number to the segment. the
// mapping is found by segment and not by the number held by the script
func (m *Manager) forgetScript(id reg.SegmentID) {
	for number, sid := range m.scripts {
		if sid == id {
			delete(m.scripts, number)
		}
	}
}

// IncrementLockers adds a locker to the script in the segment.
func (m *Manager) IncrementLockers(id reg.SegmentID) error {
	s, err := m.Script(id)
	if err != nil {
		return err
	}
	return s.IncrementLockers()
}

// DecrementLockers removes a locker from the script in the segment.
func (m *Manager) DecrementLockers(id reg.SegmentID) error {
	s, err := m.Script(id)
	if err != nil {
		return err
	}
	s.DecrementLockers()
	return nil
}

// MarkForDeletion flags the script in the segment for deletion. It is not
// deallocated until Deallocate() is called.
func (m *Manager) MarkForDeletion(id reg.SegmentID) error {
	s, err := m.Script(id)
	if err != nil {
		return err
	}
	s.MarkForDeletion()
	return nil
}

// Uninstantiate removes a locker from the script. When the last locker is
// removed the script is marked for deletion.
func (m *Manager) Uninstantiate(number int) error {
	id, ok := m.scripts[number]
	if !ok {
		return curated.Errorf(faults.InvalidReference, fmt.Sprintf("script.%03d is not instantiated", number))
	}
	s, err := m.Script(id)
	if err != nil {
		return err
	}
	s.DecrementLockers()
	if s.Lockers() == 0 {
		s.MarkForDeletion()
	}
	return nil
}

// Deallocate frees the segment. The slot can be reused by any later
// allocation so the id must not be used again by the caller.
//
// A script segment can only be deallocated once it is pending free (or if
// it was never loaded). Deallocating a script also deallocates its locals
// segment, forgets the script number and clears the class addresses that
// point into the script.
func (m *Manager) Deallocate(id reg.SegmentID) error {
	seg, err := m.segment(id)
	if err != nil {
		return err
	}

	switch seg := seg.(type) {
	case scriptSegment:
		st := seg.State()
		if st != script.PendingFree && st != script.Empty {
			return curated.Errorf(faults.InconsistentState, fmt.Sprintf("cannot deallocate %s in state %s", seg.Script, st))
		}
		m.releaseScript(id, seg.Script)
		m.forgetScript(id)

	case localsSegment:
		for _, sid := range m.scripts {
			if s, err := m.Script(sid); err == nil && s.Locals() == seg.Locals {
				s.DetachLocals()
			}
		}
	}

	switch id {
	case m.clones:
		m.clones = reg.NullSegment
	case m.lists:
		m.lists = reg.NullSegment
	case m.nodes:
		m.nodes = reg.NullSegment
	case m.hunks:
		m.hunks = reg.NullSegment
	case m.strings:
		m.strings = reg.NullSegment
	case m.arrays:
		m.arrays = reg.NullSegment
	}

	m.segments[id] = nil

	logger.Logf(logger.Allow, "segment", "deallocated segment %d (%s)", id, seg.Kind())

	return nil
}
