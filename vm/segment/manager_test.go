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

package segment_test

import (
	"testing"

	"github.com/scummvm/scummvm-sub239/curated"
	"github.com/scummvm/scummvm-sub239/environment"
	"github.com/scummvm/scummvm-sub239/resourceloader"
	"github.com/scummvm/scummvm-sub239/test"
	"github.com/scummvm/scummvm-sub239/vm/faults"
	"github.com/scummvm/scummvm-sub239/vm/reg"
	"github.com/scummvm/scummvm-sub239/vm/script"
	"github.com/scummvm/scummvm-sub239/vm/segment"
)

func newManager(t *testing.T, env *environment.Environment, res resourceloader.Provider) *segment.Manager {
	t.Helper()
	m, err := segment.NewManager(env, res, nil)
	test.DemandSuccess(t, err)
	return m
}

func TestClassVocabulary(t *testing.T) {
	m := newManager(t, newEnv(), fixtures())
	test.ExpectEquality(t, m.ClassTable().Len(), 2)

	e, err := m.ClassTable().Entry(1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, e.Script, 20)
	test.ExpectSuccess(t, e.Ref.IsNull())

	// vocabulary with a partial record
	res := fixtures()
	res.Add(resourceloader.Vocab, resourceloader.VocabClassTable, []byte{0, 0, 10})
	_, err = segment.NewManager(newEnv(), res, nil)
	test.ExpectSuccess(t, curated.Has(err, faults.MalformedFormat))

	// no vocabulary
	_, err = segment.NewManager(newEnv(), resourceloader.Map{}, nil)
	test.ExpectSuccess(t, curated.Has(err, faults.ResourceMissing))
}

func TestAllocateSegment(t *testing.T) {
	m := newManager(t, newEnv(), fixtures())

	a, err := m.AllocateSegment(segment.DynMemSegment)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, a, reg.SegmentID(1))

	b, err := m.AllocateSegment(segment.ListsSegment)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, b, reg.SegmentID(2))

	// the lowest free slot is reused
	test.ExpectSuccess(t, m.Deallocate(a))
	test.ExpectFailure(t, m.IsValid(a))
	c, err := m.AllocateSegment(segment.NodesSegment)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, c, a)

	// the old id now names a segment of a different kind
	_, err = m.DynMem(a)
	test.ExpectSuccess(t, curated.Is(err, faults.InvalidReference))
	_, err = m.Nodes(a)
	test.ExpectSuccess(t, err)

	// slot zero is never used
	err = m.Deallocate(reg.NullSegment)
	test.ExpectSuccess(t, curated.Is(err, faults.InvalidReference))
	_, err = m.Dereference(reg.NullReference)
	test.ExpectSuccess(t, curated.Is(err, faults.InvalidReference))

	// out of range and double free
	err = m.Deallocate(99)
	test.ExpectSuccess(t, curated.Is(err, faults.InvalidReference))
	test.ExpectSuccess(t, m.Deallocate(b))
	err = m.Deallocate(b)
	test.ExpectSuccess(t, curated.Is(err, faults.InvalidReference))
}

func TestGetOrLoadScript(t *testing.T) {
	m := newManager(t, newEnv(), fixtures())

	id, err := m.GetOrLoadScript(10)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, id, reg.SegmentID(1))

	s, err := m.Script(id)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, s.State(), script.Empty)
	test.ExpectEquality(t, s.Lockers(), 0)

	// same segment and still not loaded
	again, err := m.GetOrLoadScript(10)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, again, id)
	test.ExpectEquality(t, s.State(), script.Empty)

	// the script knows its number before it is loaded
	test.ExpectEquality(t, s.Number(), 10)

	// a script that was never loaded can be deallocated
	test.ExpectSuccess(t, m.Deallocate(id))
	_, ok := m.ScriptSegment(10)
	test.ExpectFailure(t, ok)

	// the slot is reused by a segment of another kind. the script number
	// must not name it
	dyn, err := m.AllocateSegment(segment.DynMemSegment)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, dyn, id)
	_, ok = m.ScriptSegment(10)
	test.ExpectFailure(t, ok)

	id, err = m.Instantiate(10)
	test.DemandSuccess(t, err)
	test.ExpectInequality(t, id, dyn)
	s, err = m.Script(id)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, s.State(), script.Loaded)
}

func TestInstantiate(t *testing.T) {
	m := newManager(t, newEnv(), fixtures())

	// script 20 needs the superclass defined by script 10
	id20, err := m.Instantiate(20)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, id20, reg.SegmentID(1))

	id10, ok := m.ScriptSegment(10)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, id10, reg.SegmentID(2))

	s10, err := m.Script(id10)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, s10.Lockers(), 1)
	test.ExpectEquality(t, s10.LocalsSegment(), reg.SegmentID(3))

	l, err := m.Locals(s10.LocalsSegment())
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, l.ScriptNumber(), 10)
	test.DemandEquality(t, l.Len(), 2)
	v, _ := l.Get(0)
	test.ExpectEquality(t, v, reg.Number(7))
	v, _ = l.Get(1)
	test.ExpectEquality(t, v, reg.Number(8))

	// class addresses
	e, _ := m.ClassTable().Entry(0)
	test.ExpectEquality(t, e.Ref, reg.NewReference(id10, baseObject))
	e, _ = m.ClassTable().Entry(1)
	test.ExpectEquality(t, e.Ref, reg.NewReference(id20, derivedObject))

	derived := m.GetObject(reg.NewReference(id20, derivedObject))
	test.DemandSuccess(t, derived != nil)
	test.ExpectEquality(t, derived.Superclass(), reg.NewReference(id10, baseObject))
	test.ExpectEquality(t, m.ObjectName(reg.NewReference(id10, baseObject)), "Base")

	// no object away from an object position
	test.ExpectSuccess(t, m.GetObject(reg.NewReference(id20, 0)) == nil)

	// instantiating a loaded script adds a locker
	again, err := m.Instantiate(20)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, again, id20)
	s20, _ := m.Script(id20)
	test.ExpectEquality(t, s20.Lockers(), 2)
}

func TestFailedInstantiate(t *testing.T) {
	// missing resource
	m := newManager(t, newEnv(), fixtures())
	_, err := m.Instantiate(99)
	test.ExpectSuccess(t, curated.Has(err, faults.ResourceMissing))
	test.ExpectFailure(t, m.IsValid(1))
	_, ok := m.ScriptSegment(99)
	test.ExpectFailure(t, ok)

	// the object block is bad but the locals have been allocated by then
	res := fixtures()
	res.Add(resourceloader.Script, 10, cat(
		block(script.BlockLocals, 1, 2, 0, 0),
		block(script.BlockObject, 0x4321, 0, 0, 4, 0, 0, 0, 0),
		terminator,
	))
	m = newManager(t, newEnv(), res)
	_, err = m.Instantiate(10)
	test.ExpectSuccess(t, curated.Has(err, faults.MalformedBlock))
	test.ExpectFailure(t, m.IsValid(1))
	test.ExpectFailure(t, m.IsValid(2))
	_, ok = m.ScriptSegment(10)
	test.ExpectFailure(t, ok)

	// the failed script is not left behind by a dependent script either
	_, err = m.Instantiate(20)
	test.ExpectSuccess(t, curated.Has(err, faults.MalformedBlock))
	for id := reg.SegmentID(1); int(id) < m.Len(); id++ {
		test.ExpectFailure(t, m.IsValid(id))
	}
	e, _ := m.ClassTable().Entry(1)
	test.ExpectSuccess(t, e.Ref.IsNull())

	// the slot is free for the next allocation
	id, err := m.AllocateSegment(segment.HunksSegment)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, id, reg.SegmentID(1))
}

func TestDeallocate(t *testing.T) {
	m := newManager(t, newEnv(), fixtures())
	id, err := m.Instantiate(10)
	test.DemandSuccess(t, err)
	s, _ := m.Script(id)
	locals := s.LocalsSegment()

	// only a script pending free can be deallocated
	err = m.Deallocate(id)
	test.ExpectSuccess(t, curated.Is(err, faults.InconsistentState))

	test.ExpectSuccess(t, m.Uninstantiate(10))
	test.ExpectEquality(t, s.Lockers(), 0)
	test.ExpectSuccess(t, s.IsMarkedForDeletion())
	test.ExpectEquality(t, s.State(), script.PendingFree)

	test.ExpectSuccess(t, m.Deallocate(id))
	test.ExpectFailure(t, m.IsValid(id))
	test.ExpectFailure(t, m.IsValid(locals))
	_, ok := m.ScriptSegment(10)
	test.ExpectFailure(t, ok)
	e, _ := m.ClassTable().Entry(0)
	test.ExpectSuccess(t, e.Ref.IsNull())

	// uninstantiating an unknown script
	err = m.Uninstantiate(10)
	test.ExpectSuccess(t, curated.Is(err, faults.InvalidReference))
}

func TestLocalsFreedIndependently(t *testing.T) {
	res := fixtures()
	res.Add(resourceloader.Script, 30, script30)
	m := newManager(t, newEnv(), res)

	id10, err := m.Instantiate(10)
	test.DemandSuccess(t, err)
	s10, _ := m.Script(id10)
	locals10 := s10.LocalsSegment()
	test.DemandEquality(t, locals10, reg.SegmentID(2))

	// the segment for script 30 is allocated before the slot is freed
	id30, err := m.GetOrLoadScript(30)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, id30, reg.SegmentID(3))

	// the locals of script 10 are freed on their own
	test.DemandSuccess(t, m.Deallocate(locals10))
	test.ExpectEquality(t, s10.LocalsSegment(), reg.NullSegment)
	test.ExpectEquality(t, s10.State(), script.Loaded)

	// script 30 takes the free slot for its locals
	_, err = m.Instantiate(30)
	test.DemandSuccess(t, err)
	s30, _ := m.Script(id30)
	test.DemandEquality(t, s30.LocalsSegment(), locals10)

	test.DemandSuccess(t, m.Uninstantiate(10))
	test.DemandSuccess(t, m.Deallocate(id10))

	// the locals of script 30 survive
	test.ExpectEquality(t, s30.State(), script.Loaded)
	l, err := m.Locals(locals10)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, l.ScriptNumber(), 30)
	test.DemandEquality(t, l.Len(), 2)
	test.ExpectEquality(t, l.Values()[0], reg.Number(3))
	test.ExpectEquality(t, l.Values()[1], reg.Number(4))
}

func TestMarkedScriptIsReloaded(t *testing.T) {
	m := newManager(t, newEnv(), fixtures())
	id, err := m.Instantiate(10)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, m.MarkForDeletion(id))
	test.ExpectSuccess(t, m.DecrementLockers(id))
	s, _ := m.Script(id)
	test.DemandEquality(t, s.State(), script.PendingFree)

	// pending scripts can not be locked
	err = m.IncrementLockers(id)
	test.ExpectSuccess(t, curated.Is(err, faults.InconsistentState))

	// reloaded in the same segment
	again, err := m.Instantiate(10)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, again, id)
	test.ExpectEquality(t, s.State(), script.Loaded)
	test.ExpectEquality(t, s.Lockers(), 1)
	test.ExpectFailure(t, s.IsMarkedForDeletion())

	// the new locals segment replaces the old one
	test.ExpectSuccess(t, m.IsValid(s.LocalsSegment()))
	n := 0
	for i := reg.SegmentID(1); int(i) < m.Len(); i++ {
		if k, err := m.Kind(i); err == nil && k == segment.LocalsSegment {
			n++
		}
	}
	test.ExpectEquality(t, n, 1)
}

func TestGetClassAddress(t *testing.T) {
	m := newManager(t, newEnv(), fixtures())

	ref, err := m.GetClassAddress(script.NullSpecies, script.Load, reg.NullSegment)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, ref.IsNull())

	// the last entry of the table is valid. one past is not
	ref, err = m.GetClassAddress(1, script.DontLoad, reg.NullSegment)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, ref.IsNull())
	_, err = m.GetClassAddress(2, script.DontLoad, reg.NullSegment)
	test.ExpectSuccess(t, curated.Is(err, faults.InvalidSpecies))

	// loading the defining script
	ref, err = m.GetClassAddress(1, script.Load, reg.NullSegment)
	test.DemandSuccess(t, err)
	id, _ := m.ScriptSegment(20)
	test.ExpectEquality(t, ref, reg.NewReference(id, derivedObject))
	s, _ := m.Script(id)
	test.ExpectEquality(t, s.Lockers(), 1)

	// locking by another caller
	_, err = m.GetClassAddress(1, script.Lock, reg.NullSegment)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s.Lockers(), 2)

	// a script never locks itself
	_, err = m.GetClassAddress(1, script.Lock, id)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s.Lockers(), 2)

	// the defining script does not define the class
	res := fixtures()
	res.Add(resourceloader.Script, 20, terminator)
	m = newManager(t, newEnv(), res)
	_, err = m.GetClassAddress(1, script.Load, reg.NullSegment)
	test.ExpectSuccess(t, curated.Is(err, faults.InconsistentState))
}

func TestClassOffByOne(t *testing.T) {
	res := fixtures()
	res.Add(resourceloader.Script, 30, cat(objectBlock(script.BlockClass, 2, script.NullSpecies, 0), terminator))

	// not a known game
	m := newManager(t, newEnv(), res)
	_, err := m.Instantiate(30)
	test.ExpectSuccess(t, curated.Has(err, faults.InvalidSpecies))
	test.ExpectEquality(t, m.ClassTable().Len(), 2)
	test.ExpectFailure(t, m.IsValid(1))

	// the default table covers the lsl2 demo
	env := environment.NewEnvironment("test", "lsl2", environment.Block)
	env.Demo = true
	m = newManager(t, env, res)
	id, err := m.Instantiate(30)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, m.ClassTable().Len(), 3)
	e, err := m.ClassTable().Entry(2)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, e.Ref, reg.NewReference(id, 12))
	test.ExpectEquality(t, e.Script, -1)

	// but not the full game
	env = environment.NewEnvironment("test", "lsl2", environment.Block)
	m = newManager(t, env, res)
	_, err = m.Instantiate(30)
	test.ExpectSuccess(t, curated.Has(err, faults.InvalidSpecies))
}
