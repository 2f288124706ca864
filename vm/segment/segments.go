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
	"github.com/scummvm/scummvm-sub239/vm/faults"
	"github.com/scummvm/scummvm-sub239/vm/reg"
	"github.com/scummvm/scummvm-sub239/vm/script"
	"github.com/scummvm/scummvm-sub239/vm/span"
)

// scriptSegment is the segment of a loaded script. dereferencing exposes the
// script buffer as read-only bytes.
type scriptSegment struct {
	*script.Script
}

func (seg scriptSegment) Kind() Kind {
	return ScriptSegment
}

func (seg scriptSegment) Dereference(offset uint32) (View, error) {
	if int(offset) >= seg.BufferSize() {
		return View{}, curated.Errorf(faults.InvalidReference, fmt.Sprintf("offset %#04x beyond %s of %d bytes", offset, seg.Script, seg.BufferSize()))
	}
	sp, err := seg.Data().Subspan(int(offset), span.Rest)
	if err != nil {
		return View{}, curated.Errorf(faults.InvalidReference, err)
	}
	return View{IsRaw: true, Raw: sp, MaxSize: sp.Len()}, nil
}

func (seg scriptSegment) Entries() []uint32 {
	var e []uint32
	for _, o := range seg.Objects() {
		e = append(e, o.Pos())
	}
	return e
}

func (seg scriptSegment) ListAllOutgoingReferences(offset uint32) ([]reg.Reference, error) {
	obj := seg.Object(offset)
	if obj == nil {
		return nil, nil
	}
	return obj.OutgoingReferences(), nil
}

func (seg scriptSegment) ListAllDeallocatable(id reg.SegmentID) []reg.Reference {
	return []reg.Reference{reg.NewReference(id, 0)}
}

// localsSegment is the segment of a script's local variables. offsets are in
// bytes.
type localsSegment struct {
	*script.Locals
}

func (seg localsSegment) Kind() Kind {
	return LocalsSegment
}

func (seg localsSegment) Dereference(offset uint32) (View, error) {
	if offset%2 != 0 || int(offset/2) >= seg.Len() {
		return View{}, curated.Errorf(faults.InvalidReference, fmt.Sprintf("offset %#04x in locals of script.%03d", offset, seg.ScriptNumber()))
	}
	cells := seg.Values()[offset/2:]
	return View{Cells: cells, MaxSize: len(cells)}, nil
}

func (seg localsSegment) Entries() []uint32 {
	return []uint32{0}
}

func (seg localsSegment) ListAllOutgoingReferences(offset uint32) ([]reg.Reference, error) {
	return seg.OutgoingReferences(), nil
}

func (seg localsSegment) ListAllDeallocatable(id reg.SegmentID) []reg.Reference {
	return nil
}

// DynMem is a segment holding a single block of raw memory.
type DynMem struct {
	Description string
	data        []byte
}

// Kind implements the Segment interface.
func (dm *DynMem) Kind() Kind {
	return DynMemSegment
}

// Size returns the number of bytes in the block.
func (dm *DynMem) Size() int {
	return len(dm.data)
}

// Dereference implements the Segment interface. The view is writable.
func (dm *DynMem) Dereference(offset uint32) (View, error) {
	if int(offset) >= len(dm.data) {
		return View{}, curated.Errorf(faults.InvalidReference, fmt.Sprintf("offset %#04x in dynmem of %d bytes", offset, len(dm.data)))
	}
	sp := span.NewMutable(dm.data[offset:])
	return View{IsRaw: true, Raw: sp, MaxSize: sp.Len()}, nil
}

// Entries implements the Segment interface.
func (dm *DynMem) Entries() []uint32 {
	return []uint32{0}
}

// ListAllOutgoingReferences implements the Segment interface.
func (dm *DynMem) ListAllOutgoingReferences(offset uint32) ([]reg.Reference, error) {
	return nil, nil
}

// ListAllDeallocatable implements the Segment interface.
func (dm *DynMem) ListAllDeallocatable(id reg.SegmentID) []reg.Reference {
	return []reg.Reference{reg.NewReference(id, 0)}
}

// List is the header of a doubly linked list of nodes.
type List struct {
	First reg.Reference
	Last  reg.Reference
}

// Node is an entry of a list.
type Node struct {
	Pred  reg.Reference
	Succ  reg.Reference
	Key   reg.Value
	Value reg.Value
}

// Hunk is a block of raw memory in the hunk pool.
type Hunk struct {
	Type string
	Data []byte
}

// Array is a list of values in the array pool.
type Array []reg.Value

func nonNull(refs ...reg.Reference) []reg.Reference {
	var r []reg.Reference
	for _, ref := range refs {
		if !ref.IsNull() {
			r = append(r, ref)
		}
	}
	return r
}

func valueRefs(vals ...reg.Value) []reg.Reference {
	var r []reg.Reference
	for _, v := range vals {
		if v.IsReference() {
			r = append(r, v.Reference())
		}
	}
	return r
}

func cellsView(cells ...reg.Value) View {
	return View{Cells: cells, MaxSize: len(cells)}
}

func rawView(data []byte) View {
	return View{IsRaw: true, Raw: span.NewMutable(data), MaxSize: len(data)}
}

func newClonePool() *Pool[*script.Object] {
	return newPool(ClonesSegment,
		func(obj *script.Object) []reg.Reference {
			return obj.OutgoingReferences()
		},
		func(obj *script.Object) View {
			cells := make([]reg.Value, obj.VarCount())
			for i := range cells {
				cells[i], _ = obj.Var(i)
			}
			return cellsView(cells...)
		})
}

func newListPool() *Pool[List] {
	return newPool(ListsSegment,
		func(l List) []reg.Reference {
			return nonNull(l.First, l.Last)
		},
		func(l List) View {
			return cellsView(reg.Pointer(l.First), reg.Pointer(l.Last))
		})
}

func newNodePool() *Pool[Node] {
	return newPool(NodesSegment,
		func(n Node) []reg.Reference {
			return append(nonNull(n.Pred, n.Succ), valueRefs(n.Key, n.Value)...)
		},
		func(n Node) View {
			return cellsView(reg.Pointer(n.Pred), reg.Pointer(n.Succ), n.Key, n.Value)
		})
}

func newHunkPool() *Pool[Hunk] {
	return newPool(HunksSegment, nil,
		func(h Hunk) View {
			return rawView(h.Data)
		})
}

func newStringPool() *Pool[[]byte] {
	return newPool(StringsSegment, nil,
		func(s []byte) View {
			return rawView(s)
		})
}

func newArrayPool() *Pool[Array] {
	return newPool(ArraysSegment,
		func(a Array) []reg.Reference {
			return valueRefs(a...)
		},
		func(a Array) View {
			return cellsView(append([]reg.Value{}, a...)...)
		})
}
