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
	"github.com/scummvm/scummvm-sub239/resourceloader"
	"github.com/scummvm/scummvm-sub239/vm/faults"
)

// maxLatestSize is the largest script of the latest generation.
const maxLatestSize = 0x40000

// latest generation header
const (
	latestCodeOffset       = 0
	latestRelocationOffset = 8
	latestLocalsCount      = 12
	latestRelocationCount  = 18
	latestExportCount      = 20
	latestExportTable      = 22
)

// size of a relocation table entry
const latestRelocationEntry = 10

var latestLayout = recordLayout{
	species:     2,
	superclass:  3,
	propDict:    4,
	info:        5,
	methDict:    -1,
	classScript: -1,
	name:        -1,
}

// latestFormat is the parser for the generation with a fixed header and 32
// bit offsets.
type latestFormat struct{}

func (latestFormat) assemble(s *Script, resources resourceloader.Provider) error {
	data, err := resources.Fetch(resourceloader.Script, s.number)
	if err != nil {
		return err
	}
	if len(data) > maxLatestSize {
		return curated.Errorf(faults.AddressingOverflow, fmt.Sprintf("script of %d bytes", len(data)))
	}
	s.buf = data
	s.scriptSize = len(data)
	return nil
}

// round up to a multiple of four
func align4(v int) int {
	return (v + 3) &^ 3
}

func (latestFormat) discover(s *Script) error {
	code, err := s.u32(latestCodeOffset)
	if err != nil {
		return curated.Errorf(faults.MalformedFormat, err)
	}
	s.codeOffset = int(code)

	lc, err := s.u16(latestLocalsCount)
	if err != nil {
		return curated.Errorf(faults.MalformedFormat, err)
	}

	ec, err := s.u16(latestExportCount)
	if err != nil {
		return curated.Errorf(faults.MalformedFormat, err)
	}
	s.exportCount = int(ec)
	s.exports, err = s.data.Subspan(latestExportTable, s.exportCount*2)
	if err != nil {
		return curated.Errorf(faults.MalformedFormat, err)
	}

	s.localsCount = int(lc)
	s.localsOffset = align4(latestExportTable + s.exportCount*2)
	s.objectsStart = align4(s.localsOffset + s.localsCount*2)

	return nil
}

func (latestFormat) classes(s *Script) ([]classRecord, error) {
	return markerClasses(s, latestLayout)
}

func (latestFormat) objects(s *Script, host Host) error {
	return markerObjects(s, host, latestLayout)
}

func (latestFormat) relocations(s *Script) ([]relocation, error) {
	n, err := s.u16(latestRelocationCount)
	if err != nil {
		return nil, curated.Errorf(faults.MalformedFormat, err)
	}
	if n == 0 {
		return nil, nil
	}

	t, err := s.u32(latestRelocationOffset)
	if err != nil {
		return nil, curated.Errorf(faults.MalformedFormat, err)
	}
	tab := int(t)

	rels := make([]relocation, 0, n)
	for i := 0; i < int(n); i++ {
		e := tab + i*latestRelocationEntry
		loc, err := s.u32(e)
		if err != nil {
			return nil, curated.Errorf(faults.MalformedFormat, fmt.Sprintf("relocation table at %#04x: %v", tab, err))
		}
		off, err := s.u32(e + 4)
		if err != nil {
			return nil, curated.Errorf(faults.MalformedFormat, fmt.Sprintf("relocation table at %#04x: %v", tab, err))
		}
		rels = append(rels, relocation{
			pos:      int(loc),
			absolute: true,
			offset:   off,
		})
	}

	return rels, nil
}

func (latestFormat) lookup(s *Script) []OffsetEntry {
	entries, _ := markerLookup(s, latestLayout)
	return entries
}
