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
	"github.com/scummvm/scummvm-sub239/vm/faults"
	"github.com/scummvm/scummvm-sub239/vm/reg"
)

// recordLayout describes the variables of an object record in the
// generations where records begin with the magic marker. an index of -1
// means the record has no such variable.
type recordLayout struct {
	// the size variable (var1) counts words rather than bytes
	words bool

	propDict    int
	methDict    int
	classScript int
	species     int
	superclass  int
	info        int
	name        int
}

// info flag for a class record
const infoClass = 0x8000

func (l recordLayout) minVars() int {
	n := 2
	for _, v := range []int{l.propDict, l.methDict, l.classScript, l.species, l.superclass, l.info, l.name} {
		if v+1 > n {
			n = v + 1
		}
	}
	return n
}

// markerRecord is the position and size in bytes of a record.
type markerRecord struct {
	pos  int
	size int
}

// markerRecords lists the records from the start of the object area up to
// the first position that does not hold the magic marker. the end position is
// also returned.
func markerRecords(s *Script, l recordLayout) ([]markerRecord, int, error) {
	var recs []markerRecord

	pos := s.objectsStart
	for {
		magic, err := s.u16(pos)
		if err != nil || magic != ObjectMagic {
			return recs, pos, nil
		}

		sz, err := s.u16(pos + 2)
		if err != nil {
			return nil, pos, curated.Errorf(faults.MalformedFormat, err)
		}

		size := int(sz)
		if l.words {
			size *= 2
		}

		if size < l.minVars()*2 {
			return nil, pos, curated.Errorf(faults.MalformedFormat, fmt.Sprintf("object record at %#04x has size %d", pos, size))
		}
		if pos+size > len(s.buf) {
			return nil, pos, curated.Errorf(faults.MalformedFormat, fmt.Sprintf("object record at %#04x runs past end of buffer", pos))
		}

		recs = append(recs, markerRecord{pos: pos, size: size})
		pos += size
	}
}

func markerClasses(s *Script, l recordLayout) ([]classRecord, error) {
	recs, _, err := markerRecords(s, l)
	if err != nil {
		return nil, err
	}

	var classes []classRecord
	for _, r := range recs {
		info, err := s.u16(r.pos + l.info*2)
		if err != nil {
			return nil, curated.Errorf(faults.MalformedFormat, err)
		}
		if info&infoClass == 0 {
			continue
		}
		species, err := s.u16(r.pos + l.species*2)
		if err != nil {
			return nil, curated.Errorf(faults.MalformedFormat, err)
		}
		classes = append(classes, classRecord{pos: r.pos, species: species})
	}

	return classes, nil
}

// markerObjects creates the objects in a single pass. records are in
// declaration order so the superclass of every record is known by the time
// the record is reached.
func markerObjects(s *Script, host Host, l recordLayout) error {
	recs, _, err := markerRecords(s, l)
	if err != nil {
		return err
	}

	for _, r := range recs {
		vars, err := readVars(s, r.pos, r.size/2)
		if err != nil {
			return err
		}

		obj := newObject(reg.NewReference(s.segment, uint32(r.pos)), vars, l.name)
		obj.class = vars[l.info].Number()&infoClass != 0
		obj.species = vars[l.species].Number()
		obj.propDict = reg.NewReference(s.segment, uint32(vars[l.propDict].Number()))
		if l.methDict >= 0 {
			obj.methDict = reg.NewReference(s.segment, uint32(vars[l.methDict].Number()))
		}
		if l.classScript >= 0 {
			vars[l.classScript] = reg.Number(uint16(s.number))
		}

		super := vars[l.superclass].Number()
		if super != NullSpecies {
			obj.superclass, err = host.GetClassAddress(super, Lock, s.segment)
			if err != nil {
				return err
			}
		}

		if obj.class {
			obj.speciesRef = obj.ref
		} else {
			obj.speciesRef = obj.superclass
		}

		s.objects[uint32(r.pos)] = obj

		// instances take the property dictionary of their class
		if !obj.class && !obj.superclass.IsNull() {
			base := host.GetObject(obj.superclass)
			if base == nil {
				if err := s.missingBase(obj); err != nil {
					return err
				}
				continue
			}
			obj.propDict = base.propDict
		}
	}

	return nil
}

func markerLookup(s *Script, l recordLayout) ([]OffsetEntry, int) {
	recs, end, err := markerRecords(s, l)
	if err != nil {
		return nil, end
	}
	var entries []OffsetEntry
	for _, r := range recs {
		entries = append(entries, OffsetEntry{Kind: ObjectOffset, Offset: r.pos, Size: r.size})
	}
	return entries, end
}
