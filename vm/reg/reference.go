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

// SegmentID identifies a segment in the segment table.
type SegmentID uint16

// NullSegment is never allocated.
const NullSegment SegmentID = 0

// Reference is the pointer type of the virtual machine.
type Reference struct {
	Segment SegmentID
	Offset  uint32
}

// NullReference has no segment.
var NullReference = Reference{}

// NewReference is a convenience function for creating a Reference.
func NewReference(segment SegmentID, offset uint32) Reference {
	return Reference{Segment: segment, Offset: offset}
}

// IsNull returns true if the reference has no segment.
func (r Reference) IsNull() bool {
	return r.Segment == NullSegment
}

// Add returns a new Reference with the offset moved by delta bytes.
func (r Reference) Add(delta int) Reference {
	return Reference{Segment: r.Segment, Offset: uint32(int(r.Offset) + delta)}
}

func (r Reference) String() string {
	return fmt.Sprintf("%04x:%04x", uint16(r.Segment), r.Offset)
}
