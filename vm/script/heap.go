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

// maxHeapAddress is the largest buffer that 16 bit offsets can address.
const maxHeapAddress = 0xffff

// heap generation header
const (
	heapExportCount = 6
	heapExportTable = 8
)

var heapLayout = recordLayout{
	words:       true,
	propDict:    2,
	methDict:    3,
	classScript: 4,
	species:     5,
	superclass:  6,
	info:        7,
	name:        8,
}

// heapFormat is the parser for the generation where the objects, strings and
// locals of a script are in a separate heap resource. The heap is appended
// to the script in the buffer.
type heapFormat struct{}

func (heapFormat) assemble(s *Script, resources resourceloader.Provider) error {
	script, err := resources.Fetch(resourceloader.Script, s.number)
	if err != nil {
		return err
	}
	heap, err := resources.Fetch(resourceloader.Heap, s.number)
	if err != nil {
		return err
	}

	if len(script)+len(heap) > maxHeapAddress {
		return curated.Errorf(faults.AddressingOverflow, fmt.Sprintf("script of %d bytes and heap of %d bytes", len(script), len(heap)))
	}

	// heap starts on a word boundary
	s.scriptSize = len(script)
	s.heapStart = (len(script) + 1) &^ 1
	s.heapSize = len(heap)

	s.buf = make([]byte, s.heapStart+len(heap))
	copy(s.buf, script)
	copy(s.buf[s.heapStart:], heap)

	return nil
}

func (heapFormat) discover(s *Script) error {
	n, err := s.u16(heapExportCount)
	if err != nil {
		return curated.Errorf(faults.MalformedFormat, err)
	}
	s.exportCount = int(n)
	s.exports, err = s.data.Subspan(heapExportTable, s.exportCount*2)
	if err != nil {
		return curated.Errorf(faults.MalformedFormat, err)
	}

	if s.heapSize < 4 {
		return curated.Errorf(faults.MalformedFormat, fmt.Sprintf("heap of %d bytes", s.heapSize))
	}

	lc, err := s.u16(s.heapStart + 2)
	if err != nil {
		return curated.Errorf(faults.MalformedFormat, err)
	}
	s.localsCount = int(lc)
	s.localsOffset = s.heapStart + 4
	s.objectsStart = s.localsOffset + s.localsCount*2

	return nil
}

func (heapFormat) classes(s *Script) ([]classRecord, error) {
	return markerClasses(s, heapLayout)
}

func (heapFormat) objects(s *Script, host Host) error {
	return markerObjects(s, host, heapLayout)
}

// the relocation table is in the heap at the position given by the first
// word of the heap
func (heapFormat) relocationTable(s *Script) (int, error) {
	r, err := s.u16(s.heapStart)
	if err != nil {
		return 0, curated.Errorf(faults.MalformedFormat, err)
	}
	return s.heapStart + int(r), nil
}

func (f heapFormat) relocations(s *Script) ([]relocation, error) {
	tab, err := f.relocationTable(s)
	if err != nil {
		return nil, err
	}

	n, err := s.u16(tab)
	if err != nil {
		return nil, curated.Errorf(faults.MalformedFormat, fmt.Sprintf("relocation table at %#04x: %v", tab, err))
	}

	rels := make([]relocation, 0, n)
	for i := 0; i < int(n); i++ {
		v, err := s.u16(tab + 2 + i*2)
		if err != nil {
			return nil, curated.Errorf(faults.MalformedFormat, fmt.Sprintf("relocation table at %#04x: %v", tab, err))
		}
		rels = append(rels, relocation{
			pos:   s.heapStart + int(v),
			delta: s.heapStart,
		})
	}

	return rels, nil
}

func (f heapFormat) lookup(s *Script) []OffsetEntry {
	entries, end := markerLookup(s, heapLayout)

	// strings follow the word that terminates the object records and end at
	// the relocation table
	tab, err := f.relocationTable(s)
	if err != nil {
		return entries
	}
	return append(entries, stringLookup(s, end+2, tab)...)
}
