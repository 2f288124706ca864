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
	"github.com/scummvm/scummvm-sub239/vm/reg"
	"github.com/scummvm/scummvm-sub239/vm/span"
)

// Kind of segment.
type Kind int

// List of valid Kind values.
const (
	ScriptSegment Kind = iota
	LocalsSegment
	ClonesSegment
	ListsSegment
	NodesSegment
	HunksSegment
	DynMemSegment
	StringsSegment
	ArraysSegment
)

func (k Kind) String() string {
	switch k {
	case ScriptSegment:
		return "script"
	case LocalsSegment:
		return "locals"
	case ClonesSegment:
		return "clones"
	case ListsSegment:
		return "lists"
	case NodesSegment:
		return "nodes"
	case HunksSegment:
		return "hunks"
	case DynMemSegment:
		return "dynmem"
	case StringsSegment:
		return "strings"
	case ArraysSegment:
		return "arrays"
	}
	return "invalid"
}

// the single letter used for the kind in the segment table listing
func (k Kind) letter() string {
	switch k {
	case ScriptSegment:
		return "S"
	case LocalsSegment:
		return "V"
	case ClonesSegment:
		return "C"
	case ListsSegment:
		return "L"
	case NodesSegment:
		return "N"
	case HunksSegment:
		return "H"
	case DynMemSegment:
		return "M"
	case StringsSegment:
		return "R"
	case ArraysSegment:
		return "A"
	}
	return "I"
}

// View is the result of dereferencing a reference. It is either raw bytes or
// a list of value cells.
type View struct {
	IsRaw bool

	// the bytes from the dereferenced offset to the end of the entry. only
	// valid if IsRaw is true
	Raw span.Span

	// the cells of the entry. a copy of the segment data. only valid if
	// IsRaw is false
	Cells []reg.Value

	// number of bytes or cells available
	MaxSize int
}

// Segment is implemented by every kind of segment.
type Segment interface {
	Kind() Kind

	// view of the memory at offset
	Dereference(offset uint32) (View, error)

	// offsets of the live entries of the segment
	Entries() []uint32

	// references held by the entry at offset
	ListAllOutgoingReferences(offset uint32) ([]reg.Reference, error)

	// references to the entries of the segment that can be freed
	// individually
	ListAllDeallocatable(id reg.SegmentID) []reg.Reference
}
