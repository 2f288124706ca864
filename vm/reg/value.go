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

package reg

import "fmt"

// Value is a variable cell. It is either a number or a reference. The zero
// Value is the number zero.
type Value struct {
	ref    Reference
	number uint16
}

// Number creates a numeric Value.
func Number(n uint16) Value {
	return Value{number: n}
}

// Pointer creates a Value from a Reference. A null reference produces a
// numeric Value holding the low 16 bits of the offset; a cell is numeric
// exactly when it has no segment.
func Pointer(r Reference) Value {
	if r.IsNull() {
		return Number(uint16(r.Offset))
	}
	return Value{ref: r}
}

// IsNumber returns true if the Value carries no segment.
func (v Value) IsNumber() bool {
	return v.ref.IsNull()
}

// IsReference returns true if the Value carries a segment.
func (v Value) IsReference() bool {
	return !v.ref.IsNull()
}

// Number returns the numeric content of the Value. For a reference this is
// the low 16 bits of the offset, which is how the file formats store it.
func (v Value) Number() uint16 {
	if v.IsNumber() {
		return v.number
	}
	return uint16(v.ref.Offset)
}

// Reference returns the Value as a Reference. A numeric value results in a
// null Reference with the number as the offset.
func (v Value) Reference() Reference {
	if v.IsNumber() {
		return Reference{Offset: uint32(v.number)}
	}
	return v.ref
}

// Offset returns the offset part of the Value. For a numeric value this is
// the number itself.
func (v Value) Offset() uint32 {
	if v.IsNumber() {
		return uint32(v.number)
	}
	return v.ref.Offset
}

// WithSegment tags the Value with a segment, keeping the offset. This is the
// relocation step.
func (v Value) WithSegment(segment SegmentID) Value {
	return Pointer(Reference{Segment: segment, Offset: v.Offset()})
}

// AddOffset moves the offset of the Value by delta.
func (v Value) AddOffset(delta int) Value {
	if v.IsNumber() {
		return Number(uint16(int(v.number) + delta))
	}
	return Pointer(v.ref.Add(delta))
}

func (v Value) String() string {
	if v.IsNumber() {
		return fmt.Sprintf("%d", v.number)
	}
	return v.ref.String()
}
