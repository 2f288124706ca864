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

// the Manager type is the host of every script it loads
var _ script.Host = (*Manager)(nil)

// AllocateLocals implements the script.Host interface. A locals segment
// already belonging to the script is reused.
func (m *Manager) AllocateLocals(s *script.Script) (reg.SegmentID, *script.Locals, error) {
	for i := 1; i < len(m.segments); i++ {
		if l, ok := m.segments[i].(localsSegment); ok && l.ScriptNumber() == s.Number() {
			l.Resize(s.LocalsCount())
			return reg.SegmentID(i), l.Locals, nil
		}
	}

	id, err := m.findFree()
	if err != nil {
		return reg.NullSegment, nil, err
	}

	l := script.NewLocals(s.Number(), s.LocalsCount())
	m.segments[id] = localsSegment{l}

	return id, l, nil
}

// ClassTableSize implements the script.Host interface.
func (m *Manager) ClassTableSize() int {
	return m.classes.Len()
}

// ResizeClassTable implements the script.Host interface.
func (m *Manager) ResizeClassTable(n int) {
	logger.Logf(logger.Allow, "classtable", "resized from %d to %d entries", m.classes.Len(), n)
	m.classes.Resize(n)
}

// SetClassAddress implements the script.Host interface.
func (m *Manager) SetClassAddress(species int, ref reg.Reference) error {
	return m.classes.SetAddress(species, ref)
}

// GetClassAddress implements the script.Host interface.
//
// If the class address is known and the policy is Lock then the script
// defining the class gains a locker, unless it is the calling script. If the
// address is not known the defining script is instantiated, unless the policy
// is DontLoad in which case the null reference is returned.
func (m *Manager) GetClassAddress(species uint16, policy script.LoadPolicy, caller reg.SegmentID) (reg.Reference, error) {
	if species == script.NullSpecies {
		return reg.NullReference, nil
	}

	e, err := m.classes.Entry(int(species))
	if err != nil {
		return reg.NullReference, err
	}

	if !e.Ref.IsNull() {
		if policy == script.Lock && e.Ref.Segment != caller {
			if s, err := m.Script(e.Ref.Segment); err == nil && s.State() == script.Loaded {
				_ = s.IncrementLockers()
			}
		}
		return e.Ref, nil
	}

	if policy == script.DontLoad {
		return reg.NullReference, nil
	}

	if e.Script < 0 {
		return reg.NullReference, curated.Errorf(faults.InconsistentState, fmt.Sprintf("class %d has no defining script", species))
	}

	if _, err := m.Instantiate(e.Script); err != nil {
		return reg.NullReference, err
	}

	e, err = m.classes.Entry(int(species))
	if err != nil {
		return reg.NullReference, err
	}
	if e.Ref.IsNull() {
		return reg.NullReference, curated.Errorf(faults.InconsistentState, fmt.Sprintf("class %d is not defined by script.%03d", species, e.Script))
	}

	return e.Ref, nil
}
