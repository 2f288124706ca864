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
)

// no free entry
const noFree = -1

type poolEntry[T any] struct {
	value T
	live  bool

	// index of the next free entry when the entry is not live
	next int
}

// Pool is a segment of fixed-size entries. Freed entries are kept on a free
// list and are reused before the pool grows.
type Pool[T any] struct {
	kind    Kind
	entries []poolEntry[T]
	free    int
	live    int

	// references held by an entry
	refs func(T) []reg.Reference

	// the view of an entry
	view func(T) View
}

func newPool[T any](kind Kind, refs func(T) []reg.Reference, view func(T) View) *Pool[T] {
	return &Pool[T]{
		kind: kind,
		free: noFree,
		refs: refs,
		view: view,
	}
}

// Kind implements the Segment interface.
func (p *Pool[T]) Kind() Kind {
	return p.kind
}

// Allocate an entry and return its index.
func (p *Pool[T]) Allocate(v T) uint32 {
	p.live++

	if p.free != noFree {
		idx := p.free
		p.free = p.entries[idx].next
		p.entries[idx] = poolEntry[T]{value: v, live: true, next: noFree}
		return uint32(idx)
	}

	p.entries = append(p.entries, poolEntry[T]{value: v, live: true, next: noFree})
	return uint32(len(p.entries) - 1)
}

func (p *Pool[T]) invalid(idx uint32) error {
	return curated.Errorf(faults.InvalidReference, fmt.Sprintf("no entry %d in %s pool", idx, p.kind))
}

// IsValid returns true if the index is a live entry.
func (p *Pool[T]) IsValid(idx uint32) bool {
	return int(idx) < len(p.entries) && p.entries[idx].live
}

// Free the indexed entry.
func (p *Pool[T]) Free(idx uint32) error {
	if !p.IsValid(idx) {
		return p.invalid(idx)
	}
	var zero T
	p.entries[idx] = poolEntry[T]{value: zero, next: p.free}
	p.free = int(idx)
	p.live--
	return nil
}

// Get the value of the indexed entry.
func (p *Pool[T]) Get(idx uint32) (T, error) {
	if !p.IsValid(idx) {
		var zero T
		return zero, p.invalid(idx)
	}
	return p.entries[idx].value, nil
}

// Set the value of the indexed entry.
func (p *Pool[T]) Set(idx uint32, v T) error {
	if !p.IsValid(idx) {
		return p.invalid(idx)
	}
	p.entries[idx].value = v
	return nil
}

// Len returns the number of live entries.
func (p *Pool[T]) Len() int {
	return p.live
}

// Capacity returns the number of entries, live or free.
func (p *Pool[T]) Capacity() int {
	return len(p.entries)
}

// Dereference implements the Segment interface.
func (p *Pool[T]) Dereference(offset uint32) (View, error) {
	v, err := p.Get(offset)
	if err != nil {
		return View{}, err
	}
	return p.view(v), nil
}

// Entries implements the Segment interface.
func (p *Pool[T]) Entries() []uint32 {
	var e []uint32
	for i := range p.entries {
		if p.entries[i].live {
			e = append(e, uint32(i))
		}
	}
	return e
}

// ListAllOutgoingReferences implements the Segment interface.
func (p *Pool[T]) ListAllOutgoingReferences(offset uint32) ([]reg.Reference, error) {
	v, err := p.Get(offset)
	if err != nil {
		return nil, err
	}
	if p.refs == nil {
		return nil, nil
	}
	return p.refs(v), nil
}

// ListAllDeallocatable implements the Segment interface.
func (p *Pool[T]) ListAllDeallocatable(id reg.SegmentID) []reg.Reference {
	var refs []reg.Reference
	for _, i := range p.Entries() {
		refs = append(refs, reg.NewReference(id, i))
	}
	return refs
}
