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
	"github.com/scummvm/scummvm-sub239/resourceloader"
	"github.com/scummvm/scummvm-sub239/vm/faults"
	"github.com/scummvm/scummvm-sub239/vm/reg"
	"github.com/scummvm/scummvm-sub239/vm/span"
	"github.com/scummvm/scummvm-sub239/workarounds"
)

// Block types of the block based generations.
const (
	BlockTerminator  = 0
	BlockObject      = 1
	BlockCode        = 2
	BlockSynonyms    = 3
	BlockSaid        = 4
	BlockStrings     = 5
	BlockClass       = 6
	BlockExports     = 7
	BlockRelocation  = 8
	BlockPreloadText = 9
	BlockLocals      = 10
)

// size of the type and size fields at the start of every block
const blockHeaderSize = 4

// layout of object and class blocks
const (
	blockObjectMagic    = 4
	blockObjectVarCount = 10
	blockObjectVars     = 12
)

func malformedBlock(detail string) error {
	return curated.Errorf(faults.MalformedFormat, curated.Errorf(faults.MalformedBlock, detail))
}

// blockFormat is the parser for the block based generation, where the script
// is a list of typed blocks starting at the beginning of the resource.
type blockFormat struct{}

// the position of the first block
func (blockFormat) start() int {
	return 0
}

// walkBlocks calls fn for every block of the script until the terminator is
// found. the size passed to fn includes the header.
func walkBlocks(s *Script, start int, fn func(typ uint16, pos int, size int) error) error {
	pos := start
	for {
		typ, err := s.u16(pos)
		if err != nil {
			if e, ok := s.env.Workaround(s.number, workarounds.UnterminatedBlocks); ok {
				logger.Logf(logger.Allow, "workaround", "%s: %s at %#04x", e, s, pos)
				return nil
			}
			return malformedBlock(fmt.Sprintf("no terminator before end of buffer at %#04x", pos))
		}

		if typ == BlockTerminator {
			return nil
		}

		sz, err := s.u16(pos + 2)
		if err != nil {
			return malformedBlock(fmt.Sprintf("truncated header of block type %d at %#04x", typ, pos))
		}
		size := int(sz)

		if size < blockHeaderSize {
			return malformedBlock(fmt.Sprintf("size of block type %d at %#04x is %d", typ, pos, size))
		}
		if pos+size > len(s.buf) {
			return malformedBlock(fmt.Sprintf("block type %d at %#04x with size %d runs past end of buffer", typ, pos, size))
		}

		if err := fn(typ, pos, size); err != nil {
			return err
		}

		pos += size
	}
}

func (f blockFormat) assemble(s *Script, resources resourceloader.Provider) error {
	data, err := resources.Fetch(resourceloader.Script, s.number)
	if err != nil {
		return err
	}
	s.buf = data
	s.scriptSize = len(data)
	if len(s.buf) > maxHeapAddress {
		return curated.Errorf(faults.AddressingOverflow, fmt.Sprintf("script of %d bytes", len(s.buf)))
	}
	return nil
}

func (f blockFormat) discover(s *Script) error {
	return f.discoverFrom(s, f.start(), true)
}

// discoverFrom walks the blocks from start. locals are taken from the locals
// block only if withLocals is true.
func (f blockFormat) discoverFrom(s *Script, start int, withLocals bool) error {
	return walkBlocks(s, start, func(typ uint16, pos int, size int) error {
		var err error

		switch typ {
		case BlockExports:
			// last export block wins
			var n uint16
			n, err = s.u16(pos + 4)
			if err != nil {
				return malformedBlock(fmt.Sprintf("export block at %#04x has no count", pos))
			}
			if 6+int(n)*2 > size {
				return malformedBlock(fmt.Sprintf("export block at %#04x too small for %d exports", pos, n))
			}
			s.exportCount = int(n)
			s.exports, err = s.data.Subspan(pos+6, int(n)*2)

		case BlockSynonyms:
			s.synonymCount = (size - blockHeaderSize) / 4
			s.synonyms, err = s.data.Subspan(pos+blockHeaderSize, s.synonymCount*4)

		case BlockLocals:
			if withLocals {
				s.localsOffset = pos + blockHeaderSize
				s.localsCount = (size-blockHeaderSize)/2 - 2
				if s.localsCount < 0 {
					s.localsCount = 0
				}
			}
		}

		return err
	})
}

func (f blockFormat) classes(s *Script) ([]classRecord, error) {
	return blockClasses(s, f.start())
}

func blockClasses(s *Script, start int) ([]classRecord, error) {
	var recs []classRecord
	err := walkBlocks(s, start, func(typ uint16, pos int, size int) error {
		if typ != BlockClass {
			return nil
		}
		species, err := s.u16(pos + blockObjectVars)
		if err != nil {
			return malformedBlock(fmt.Sprintf("class block at %#04x has no species", pos))
		}
		recs = append(recs, classRecord{pos: pos + blockObjectVars, species: species})
		return nil
	})
	return recs, err
}

func (f blockFormat) objects(s *Script, host Host) error {
	return blockObjects(s, host, f.start())
}

// blockObjects creates the objects of a block based script in two passes.
// the first pass creates the objects and resolves their species. the second
// pass links each object to its base class, which requires every species to
// be known.
func blockObjects(s *Script, host Host, start int) error {
	// pass 1
	err := walkBlocks(s, start, func(typ uint16, pos int, size int) error {
		if typ != BlockObject && typ != BlockClass {
			return nil
		}

		magic, err := s.u16(pos + blockObjectMagic)
		if err != nil || magic != ObjectMagic {
			return malformedBlock(fmt.Sprintf("object block at %#04x has no magic number", pos))
		}

		n, err := s.u16(pos + blockObjectVarCount)
		if err != nil {
			return malformedBlock(fmt.Sprintf("object block at %#04x has no variable count", pos))
		}
		if blockObjectVars+int(n)*2 > size {
			return malformedBlock(fmt.Sprintf("object block at %#04x too small for %d variables", pos, n))
		}

		vars, err := readVars(s, pos+blockObjectVars, int(n))
		if err != nil {
			return err
		}
		if len(vars) < 4 {
			return malformedBlock(fmt.Sprintf("object block at %#04x has %d variables", pos, n))
		}

		at := pos + blockObjectVars
		obj := newObject(reg.NewReference(s.segment, uint32(at)), vars, 3)
		obj.class = typ == BlockClass
		obj.species = vars[0].Number()

		if obj.species != NullSpecies {
			obj.speciesRef, err = host.GetClassAddress(obj.species, Lock, s.segment)
			if err != nil {
				return err
			}
		}

		if obj.class {
			// selector list follows the variables
			obj.propDict = reg.NewReference(s.segment, uint32(at+int(n)*2))
		}

		s.objects[uint32(at)] = obj
		return nil
	})
	if err != nil {
		return err
	}

	// pass 2
	for _, obj := range s.Objects() {
		base := host.GetObject(obj.speciesRef)
		if obj.speciesRef.IsNull() || base == nil {
			if err := s.missingBase(obj); err != nil {
				return err
			}
			continue
		}

		obj.resize(base.VarCount())
		obj.propDict = base.propDict

		if obj.VarCount() < 2 {
			continue
		}

		super := obj.vars[1].Number()
		if super != NullSpecies {
			obj.superclass, err = host.GetClassAddress(super, Load, s.segment)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// missingBase handles an object whose base class object cannot be found. the
// object is dropped if there is a workaround, otherwise it is an error.
func (s *Script) missingBase(obj *Object) error {
	if e, ok := s.env.Workaround(s.number, workarounds.MissingBaseObject); ok {
		logger.Logf(logger.Allow, "workaround", "%s: dropping %s", e, obj)
		delete(s.objects, obj.ref.Offset)
		return nil
	}
	return curated.Errorf(faults.MalformedFormat, fmt.Sprintf("base object of %s not found", obj))
}

func readVars(s *Script, pos int, n int) ([]reg.Value, error) {
	vars := make([]reg.Value, n)
	for i := range vars {
		v, err := s.u16(pos + i*2)
		if err != nil {
			return nil, curated.Errorf(faults.MalformedFormat, err)
		}
		vars[i] = reg.Number(v)
	}
	return vars, nil
}

func (f blockFormat) relocations(s *Script) ([]relocation, error) {
	return blockRelocations(s, f.start())
}

func blockRelocations(s *Script, start int) ([]relocation, error) {
	var rels []relocation
	err := walkBlocks(s, start, func(typ uint16, pos int, size int) error {
		if typ != BlockRelocation {
			return nil
		}

		n, err := s.u16(pos + 4)
		if err != nil {
			return malformedBlock(fmt.Sprintf("relocation block at %#04x has no count", pos))
		}
		count := int(n)
		entries := pos + 6

		// a leading zero entry that is not included in the count
		if count > 0 && 6+(count+1)*2 <= size {
			if v, err := s.u16(entries); err == nil && v == 0 {
				entries += 2
			}
		}

		if entries+count*2 > pos+size {
			return malformedBlock(fmt.Sprintf("relocation block at %#04x too small for %d entries", pos, count))
		}

		for i := 0; i < count; i++ {
			v, err := s.u16(entries + i*2)
			if err != nil {
				return curated.Errorf(faults.MalformedFormat, err)
			}
			rels = append(rels, relocation{pos: int(v)})
		}
		return nil
	})
	return rels, err
}

func (f blockFormat) lookup(s *Script) []OffsetEntry {
	return blockLookup(s, f.start())
}

// earliestFormat is the parser for the earliest block based generation. The
// script begins with the number of locals and the locals are not stored in
// the script.
type earliestFormat struct {
	blockFormat
}

func (earliestFormat) start() int {
	return 2
}

func (f earliestFormat) assemble(s *Script, resources resourceloader.Provider) error {
	data, err := resources.Fetch(resourceloader.Script, s.number)
	if err != nil {
		return err
	}

	s.data = span.New(data)
	n, err := s.u16(0)
	if err != nil {
		return curated.Errorf(faults.MalformedFormat, err)
	}

	// space for the locals is reserved at the end of the buffer
	s.buf = make([]byte, len(data)+int(n)*2)
	copy(s.buf, data)
	s.scriptSize = len(data)

	if len(s.buf) > maxHeapAddress {
		return curated.Errorf(faults.AddressingOverflow, fmt.Sprintf("script of %d bytes", len(s.buf)))
	}

	return nil
}

func (f earliestFormat) discover(s *Script) error {
	n, err := s.u16(0)
	if err != nil {
		return curated.Errorf(faults.MalformedFormat, err)
	}
	s.localsCount = int(n)
	s.localsOffset = -s.localsCount * 2
	return f.discoverFrom(s, f.start(), false)
}

func (f earliestFormat) classes(s *Script) ([]classRecord, error) {
	return blockClasses(s, f.start())
}

func (f earliestFormat) objects(s *Script, host Host) error {
	return blockObjects(s, host, f.start())
}

func (f earliestFormat) relocations(s *Script) ([]relocation, error) {
	return blockRelocations(s, f.start())
}

func (f earliestFormat) lookup(s *Script) []OffsetEntry {
	return blockLookup(s, f.start())
}
