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
	"sort"

	"github.com/scummvm/scummvm-sub239/curated"
	"github.com/scummvm/scummvm-sub239/environment"
	"github.com/scummvm/scummvm-sub239/logger"
	"github.com/scummvm/scummvm-sub239/patch"
	"github.com/scummvm/scummvm-sub239/resourceloader"
	"github.com/scummvm/scummvm-sub239/vm/faults"
	"github.com/scummvm/scummvm-sub239/vm/reg"
	"github.com/scummvm/scummvm-sub239/vm/span"
)

// State of a Script.
type State int

// List of valid State values.
const (
	// nothing loaded. the initial state and the state after Free()
	Empty State = iota

	// loaded and in use
	Loaded

	// marked for deletion and no longer locked. the script is still
	// addressable but can only be deallocated or reloaded
	PendingFree
)

func (st State) String() string {
	switch st {
	case Empty:
		return "empty"
	case Loaded:
		return "loaded"
	case PendingFree:
		return "pending free"
	}
	return "unknown"
}

// Script is the loaded form of one script resource.
type Script struct {
	env     *environment.Environment
	format  format
	segment reg.SegmentID

	number int
	state  State

	buf  []byte
	data span.Span

	// size of the script part of the buffer. for the heap generation the
	// heap starts at heapStart, which is scriptSize rounded up to an even
	// number
	scriptSize int
	heapStart  int
	heapSize   int

	// latest generation only. start of the code area
	codeOffset int

	exports      span.Span
	exportCount  int
	synonyms     span.Span
	synonymCount int

	// a negative offset means the locals are not initialised from the
	// script data
	localsOffset  int
	localsCount   int
	localsSegment reg.SegmentID
	locals        *Locals

	// start of the object records for the heap and latest generations
	objectsStart int

	objects map[uint32]*Object
	lookup  []OffsetEntry

	lockers int
	marked  bool
}

// NewScript is the preferred method of initialisation for the Script type.
// The format generation is taken from the environment.
func NewScript(env *environment.Environment, segment reg.SegmentID) (*Script, error) {
	f, err := newFormat(env.Generation)
	if err != nil {
		return nil, err
	}
	s := &Script{
		env:     env,
		format:  f,
		segment: segment,
	}
	s.Free()
	return s, nil
}

func (s *Script) String() string {
	return fmt.Sprintf("script.%03d", s.number)
}

// wrap an error with the script number, generation and context
func (s *Script) wrap(err error) error {
	return curated.Errorf("script.%03d (%s): %v", s.number, s.env.Generation, err)
}

// Free resets the script to the Empty state.
func (s *Script) Free() {
	s.state = Empty
	s.buf = nil
	s.data = span.Span{}
	s.scriptSize = 0
	s.heapStart = 0
	s.heapSize = 0
	s.codeOffset = 0
	s.exports = span.Span{}
	s.exportCount = 0
	s.synonyms = span.Span{}
	s.synonymCount = 0
	s.localsOffset = 0
	s.localsCount = 0
	s.localsSegment = reg.NullSegment
	s.locals = nil
	s.objectsStart = 0
	s.objects = make(map[uint32]*Object)
	s.lookup = s.lookup[:0]
	s.lockers = 0
	s.marked = false
}

// Load the script from the resource provider. Any existing state is
// discarded first. The patches argument can be nil.
//
// On success the script is in the Loaded state with one locker. On failure
// the script is left Empty.
func (s *Script) Load(number int, resources resourceloader.Provider, patches patch.Provider) error {
	s.Free()
	s.number = number

	err := s.load(resources, patches)
	if err != nil {
		s.Free()
		s.number = number
		return s.wrap(err)
	}

	s.state = Loaded
	s.lockers = 1

	logger.Logf(logger.Allow, "script", "loaded %s (%d bytes, %d exports, %d locals)", s, len(s.buf), s.exportCount, s.localsCount)

	return nil
}

func (s *Script) load(resources resourceloader.Provider, patches patch.Provider) error {
	err := s.format.assemble(s, resources)
	if err != nil {
		return err
	}

	if patches != nil {
		if p, ok := patches.Lookup(resourceloader.Script, s.number); ok {
			if err := s.applyPatch(p); err != nil {
				return err
			}
		}
	}

	s.data = span.New(s.buf)

	err = s.format.discover(s)
	if err != nil {
		return err
	}

	if s.localsCount > 0 && s.localsOffset >= 0 {
		if s.localsOffset+s.localsCount*2+1 > len(s.buf) {
			return curated.Errorf(faults.MalformedFormat, fmt.Sprintf("locals table at %#04x with %d entries exceeds buffer of %d bytes",
				s.localsOffset, s.localsCount, len(s.buf)))
		}
	}

	s.lookup = s.format.lookup(s)

	return nil
}

func (s *Script) applyPatch(p patch.Patch) error {
	delta, _ := p.SizeDelta()
	if delta != 0 && s.env.Generation == environment.Heap {
		return curated.Errorf(faults.MalformedFormat, fmt.Sprintf("patch changes size of script by %d bytes", delta))
	}

	// reserved space at the end of the buffer that is not part of the script
	reserved := len(s.buf) - s.scriptSize

	b, err := p.Apply(s.buf, s.env.ByteOrder)
	if err != nil {
		return err
	}

	ceiling := maxHeapAddress
	if s.env.Generation == environment.Latest {
		ceiling = maxLatestSize
	}
	if len(b) > ceiling {
		return curated.Errorf(faults.AddressingOverflow, fmt.Sprintf("patched script of %d bytes", len(b)))
	}

	s.buf = b
	if s.env.Generation != environment.Heap {
		s.scriptSize = len(b) - reserved
	}

	logger.Logf(logger.Allow, "patch", "applied to script.%03d: %s", s.number, p.Notes)

	return nil
}

// helper functions for reading the buffer in the session byte order

func (s *Script) u16(offset int) (uint16, error) {
	return s.data.Uint16(offset, s.env.ByteOrder)
}

func (s *Script) u32(offset int) (uint32, error) {
	return s.data.Uint32(offset, s.env.ByteOrder)
}

// Number returns the script number.
func (s *Script) Number() int {
	return s.number
}

// SetNumber assigns the script number to a script that has not been
// loaded. It has no effect once the script is loaded.
func (s *Script) SetNumber(number int) {
	if s.state == Empty {
		s.number = number
	}
}

// Segment returns the segment of the script.
func (s *Script) Segment() reg.SegmentID {
	return s.segment
}

// Generation returns the format generation of the script.
func (s *Script) Generation() environment.Generation {
	return s.env.Generation
}

// State returns the lifecycle state of the script.
func (s *Script) State() State {
	return s.state
}

// Data returns a read-only view of the script buffer.
func (s *Script) Data() span.Span {
	return s.data
}

// BufferSize returns the size of the assembled buffer.
func (s *Script) BufferSize() int {
	return len(s.buf)
}

// ScriptSize returns the size of the script part of the buffer.
func (s *Script) ScriptSize() int {
	return s.scriptSize
}

// HeapStart returns the position of the heap in the buffer. Zero if the
// generation has no separate heap.
func (s *Script) HeapStart() int {
	return s.heapStart
}

// HeapSize returns the size of the heap part of the buffer.
func (s *Script) HeapSize() int {
	return s.heapSize
}

// CodeOffset returns the start of the code area. Only the latest generation
// records this.
func (s *Script) CodeOffset() int {
	return s.codeOffset
}

// ExportCount returns the number of entries in the export table.
func (s *Script) ExportCount() int {
	return s.exportCount
}

// ExportOffset returns the indexed entry of the export table.
func (s *Script) ExportOffset(idx int) (uint16, error) {
	if idx < 0 || idx >= s.exportCount {
		return 0, curated.Errorf(faults.OutOfBounds, fmt.Sprintf("export %d of %d in %s", idx, s.exportCount, s))
	}
	return s.exports.Uint16(idx*2, s.env.ByteOrder)
}

// Exports returns a copy of the export table.
func (s *Script) Exports() []uint16 {
	e := make([]uint16, 0, s.exportCount)
	for i := 0; i < s.exportCount; i++ {
		v, err := s.ExportOffset(i)
		if err != nil {
			break
		}
		e = append(e, v)
	}
	return e
}

// Synonym is an entry of the synonym table. Said word group A is replaced by
// word group B.
type Synonym struct {
	A uint16
	B uint16
}

// SynonymCount returns the number of entries in the synonym table.
func (s *Script) SynonymCount() int {
	return s.synonymCount
}

// Synonym returns the indexed entry of the synonym table.
func (s *Script) Synonym(idx int) (Synonym, error) {
	if idx < 0 || idx >= s.synonymCount {
		return Synonym{}, curated.Errorf(faults.OutOfBounds, fmt.Sprintf("synonym %d of %d in %s", idx, s.synonymCount, s))
	}
	a, err := s.synonyms.Uint16(idx*4, s.env.ByteOrder)
	if err != nil {
		return Synonym{}, err
	}
	b, err := s.synonyms.Uint16(idx*4+2, s.env.ByteOrder)
	if err != nil {
		return Synonym{}, err
	}
	return Synonym{A: a, B: b}, nil
}

// LocalsOffset returns the position of the locals table in the buffer. A
// negative value means the locals are zeroed rather than read from the
// script.
func (s *Script) LocalsOffset() int {
	return s.localsOffset
}

// LocalsCount returns the number of local variables.
func (s *Script) LocalsCount() int {
	return s.localsCount
}

// LocalsSegment returns the segment of the locals block. NullSegment if the
// locals have not been initialised or there are none.
func (s *Script) LocalsSegment() reg.SegmentID {
	return s.localsSegment
}

// DetachLocals forgets the locals block. Used when the locals segment is
// freed independently of the script.
func (s *Script) DetachLocals() {
	s.localsSegment = reg.NullSegment
	s.locals = nil
}

// Locals returns the locals block or nil.
func (s *Script) Locals() *Locals {
	return s.locals
}

// Object returns the object at the byte position or nil.
func (s *Script) Object(pos uint32) *Object {
	return s.objects[pos]
}

// ObjectCount returns the number of objects in the script.
func (s *Script) ObjectCount() int {
	return len(s.objects)
}

// Objects returns the objects of the script in offset order.
func (s *Script) Objects() []*Object {
	objs := make([]*Object, 0, len(s.objects))
	for _, o := range s.objects {
		objs = append(objs, o)
	}
	sort.Slice(objs, func(i, j int) bool {
		return objs[i].ref.Offset < objs[j].ref.Offset
	})
	return objs
}

// OffsetLookup returns the offset lookup table. Intended for debugging tools
// only.
func (s *Script) OffsetLookup() []OffsetEntry {
	return append([]OffsetEntry{}, s.lookup...)
}

// Lockers returns the number of lockers.
func (s *Script) Lockers() int {
	return s.lockers
}

// IncrementLockers adds a locker. Only a Loaded script can be locked.
func (s *Script) IncrementLockers() error {
	if s.state != Loaded {
		return curated.Errorf(faults.InconsistentState, fmt.Sprintf("cannot lock %s in state %s", s, s.state))
	}
	s.lockers++
	return nil
}

// DecrementLockers removes a locker. If the last locker is removed from a
// script that is marked for deletion the script becomes PendingFree.
func (s *Script) DecrementLockers() {
	if s.lockers > 0 {
		s.lockers--
	}
	s.checkPendingFree()
}

// MarkForDeletion flags the script for deletion. The script becomes
// PendingFree as soon as it has no lockers.
func (s *Script) MarkForDeletion() {
	if s.state == Empty {
		return
	}
	s.marked = true
	s.checkPendingFree()
}

// IsMarkedForDeletion returns true if MarkForDeletion() has been called
// since the script was last loaded.
func (s *Script) IsMarkedForDeletion() bool {
	return s.marked
}

func (s *Script) checkPendingFree() {
	if s.state == Loaded && s.marked && s.lockers == 0 {
		s.state = PendingFree
		logger.Logf(logger.Allow, "script", "%s is pending free", s)
	}
}
