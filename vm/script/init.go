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
	"github.com/scummvm/scummvm-sub239/logger"
	"github.com/scummvm/scummvm-sub239/vm/faults"
	"github.com/scummvm/scummvm-sub239/vm/reg"
	"github.com/scummvm/scummvm-sub239/workarounds"
)

func (s *Script) requireLoaded() error {
	if s.state != Loaded {
		return curated.Errorf(faults.InconsistentState, fmt.Sprintf("%s is %s", s, s.state))
	}
	return nil
}

// InitializeLocals allocates the locals block and fills it with the initial
// values of the local variables. If the script has no locals then nothing
// is allocated.
func (s *Script) InitializeLocals(host Host) error {
	if err := s.requireLoaded(); err != nil {
		return err
	}

	if s.localsCount == 0 {
		return nil
	}

	seg, l, err := host.AllocateLocals(s)
	if err != nil {
		return s.wrap(err)
	}
	if l.ScriptNumber() != s.number {
		return s.wrap(curated.Errorf(faults.InconsistentState, fmt.Sprintf("locals segment %d belongs to script.%03d", seg, l.ScriptNumber())))
	}

	l.Resize(s.localsCount)

	for i := 0; i < s.localsCount; i++ {
		if s.localsOffset < 0 {
			l.cells[i] = reg.Number(0)
			continue
		}
		v, err := s.u16(s.localsOffset + i*2)
		if err != nil {
			return s.wrap(curated.Errorf(faults.MalformedFormat, err))
		}
		l.cells[i] = reg.Number(v)
	}

	s.localsSegment = seg
	s.locals = l

	return nil
}

// InitializeClasses sets the address of every class defined by the script
// in the class table.
func (s *Script) InitializeClasses(host Host) error {
	if err := s.requireLoaded(); err != nil {
		return err
	}

	classes, err := s.format.classes(s)
	if err != nil {
		return s.wrap(err)
	}

	for _, c := range classes {
		species := int(c.species)
		if species >= host.ClassTableSize() {
			e, ok := s.env.Workaround(s.number, workarounds.ClassOffByOne)
			if !ok || species != host.ClassTableSize() {
				return s.wrap(curated.Errorf(faults.InvalidSpecies, fmt.Sprintf("class at %#04x has species %d but class table has %d entries",
					c.pos, species, host.ClassTableSize())))
			}
			logger.Logf(logger.Allow, "workaround", "%s: species %d", e, species)
			host.ResizeClassTable(host.ClassTableSize() + 1)
		}

		err := host.SetClassAddress(species, reg.NewReference(s.segment, uint32(c.pos)))
		if err != nil {
			return s.wrap(err)
		}
	}

	return nil
}

// InitializeObjects creates the objects of the script and then runs the
// relocation pass.
func (s *Script) InitializeObjects(host Host, segment reg.SegmentID) error {
	if err := s.requireLoaded(); err != nil {
		return err
	}
	if segment != s.segment {
		return s.wrap(curated.Errorf(faults.InconsistentState, fmt.Sprintf("objects initialised for segment %d in segment %d", s.segment, segment)))
	}

	if err := s.format.objects(s, host); err != nil {
		return s.wrap(err)
	}

	return s.Relocate(segment)
}

// Relocate tags the values named by the relocation table with the segment.
// Each entry tags a local if it falls in the locals table, otherwise the
// variable of the first object that holds the position. Entries that match
// neither are ignored.
func (s *Script) Relocate(segment reg.SegmentID) error {
	if err := s.requireLoaded(); err != nil {
		return err
	}

	rels, err := s.format.relocations(s)
	if err != nil {
		return s.wrap(err)
	}

	objs := s.Objects()

	for _, r := range rels {
		if err := s.relocate(segment, r, objs); err != nil {
			return s.wrap(err)
		}
	}

	return nil
}

func (r relocation) apply(v reg.Value, segment reg.SegmentID) reg.Value {
	if r.absolute {
		return reg.Pointer(reg.NewReference(segment, r.offset))
	}
	return v.AddOffset(r.delta).WithSegment(segment)
}

func (s *Script) relocate(segment reg.SegmentID, r relocation, objs []*Object) error {
	if s.locals != nil && s.localsOffset >= 0 {
		end := s.localsOffset + s.locals.Len()*2
		if r.pos >= s.localsOffset && r.pos < end {
			if (r.pos-s.localsOffset)%2 != 0 {
				return curated.Errorf(faults.MalformedFormat, fmt.Sprintf("relocation at %#04x is not on a local boundary", r.pos))
			}
			i := (r.pos - s.localsOffset) / 2
			s.locals.cells[i] = r.apply(s.locals.cells[i], segment)
			return nil
		}
	}

	for _, obj := range objs {
		i, ok, err := obj.slotAt(r.pos)
		if err != nil {
			return err
		}
		if ok {
			obj.vars[i] = r.apply(obj.vars[i], segment)
			return nil
		}
	}

	return nil
}
