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

package script_test

import (
	"encoding/binary"
	"fmt"

	"github.com/scummvm/scummvm-sub239/curated"
	"github.com/scummvm/scummvm-sub239/environment"
	"github.com/scummvm/scummvm-sub239/resourceloader"
	"github.com/scummvm/scummvm-sub239/vm/faults"
	"github.com/scummvm/scummvm-sub239/vm/reg"
	"github.com/scummvm/scummvm-sub239/vm/script"
)

// the segment used for the script under test
const testSegment = reg.SegmentID(1)

// host is a minimal implementation of the script.Host interface
type host struct {
	classes []reg.Reference
	scripts map[reg.SegmentID]*script.Script
	next    reg.SegmentID
}

func newHost(classTableSize int) *host {
	return &host{
		classes: make([]reg.Reference, classTableSize),
		scripts: make(map[reg.SegmentID]*script.Script),
		next:    testSegment + 1,
	}
}

func (h *host) AllocateLocals(s *script.Script) (reg.SegmentID, *script.Locals, error) {
	seg := h.next
	h.next++
	return seg, script.NewLocals(s.Number(), s.LocalsCount()), nil
}

func (h *host) ClassTableSize() int {
	return len(h.classes)
}

func (h *host) ResizeClassTable(n int) {
	for len(h.classes) < n {
		h.classes = append(h.classes, reg.NullReference)
	}
}

func (h *host) SetClassAddress(species int, ref reg.Reference) error {
	if species < 0 || species >= len(h.classes) {
		return curated.Errorf(faults.InvalidSpecies, species)
	}
	h.classes[species] = ref
	return nil
}

func (h *host) GetClassAddress(species uint16, policy script.LoadPolicy, caller reg.SegmentID) (reg.Reference, error) {
	if species == script.NullSpecies {
		return reg.NullReference, nil
	}
	if int(species) >= len(h.classes) {
		return reg.NullReference, curated.Errorf(faults.InvalidSpecies, species)
	}
	ref := h.classes[species]
	if ref.IsNull() && policy != script.DontLoad {
		return reg.NullReference, curated.Errorf(faults.InconsistentState, fmt.Sprintf("class %d not defined", species))
	}
	return ref, nil
}

func (h *host) GetObject(ref reg.Reference) *script.Object {
	s, ok := h.scripts[ref.Segment]
	if !ok {
		return nil
	}
	return s.Object(ref.Offset)
}

// newScript creates a script in the test segment and registers it with the
// host
func (h *host) newScript(env *environment.Environment) *script.Script {
	s, err := script.NewScript(env, testSegment)
	if err != nil {
		panic(err)
	}
	h.scripts[testSegment] = s
	return s
}

// instantiate runs the full set of initialisation steps
func (h *host) instantiate(s *script.Script, number int, res resourceloader.Provider) error {
	if err := s.Load(number, res, nil); err != nil {
		return err
	}
	if err := s.InitializeLocals(h); err != nil {
		return err
	}
	if err := s.InitializeClasses(h); err != nil {
		return err
	}
	return s.InitializeObjects(h, testSegment)
}

func newEnv(gen environment.Generation) *environment.Environment {
	return environment.NewEnvironment("test", "test", gen)
}

// fixture building helpers

func le(v ...uint16) []byte {
	b := make([]byte, len(v)*2)
	for i := range v {
		binary.LittleEndian.PutUint16(b[i*2:], v[i])
	}
	return b
}

func le32(v ...uint32) []byte {
	b := make([]byte, len(v)*4)
	for i := range v {
		binary.LittleEndian.PutUint32(b[i*4:], v[i])
	}
	return b
}

func cat(parts ...[]byte) []byte {
	var b []byte
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}

// block of the block based generations. the size includes the header
func block(typ uint16, payload ...uint16) []byte {
	return cat(le(typ, uint16(4+len(payload)*2)), le(payload...))
}

// raw block with a byte payload
func rawBlock(typ uint16, payload []byte) []byte {
	return cat(le(typ, uint16(4+len(payload))), payload)
}

// object or class block with the four standard variables
func objectBlock(typ uint16, species uint16, super uint16, name uint16) []byte {
	return block(typ, script.ObjectMagic, 0, 0, 4, species, super, 0, name)
}

var terminator = le(script.BlockTerminator)

func resources(number int, data []byte) resourceloader.Map {
	m := resourceloader.Map{}
	m.Add(resourceloader.Script, number, data)
	return m
}
