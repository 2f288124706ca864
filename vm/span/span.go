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

package span

import (
	"encoding/binary"

	"github.com/scummvm/scummvm-sub239/curated"
	"github.com/scummvm/scummvm-sub239/vm/faults"
)

// Rest can be used as the length argument to Subspan() to indicate that the
// subspan should run to the end of the parent span.
const Rest = -1

// Span is a view of a byte buffer. The zero value is an empty, read-only
// span.
type Span struct {
	data    []byte
	mutable bool
}

// New creates a read-only span over data. The data is not copied.
func New(data []byte) Span {
	return Span{data: data}
}

// NewMutable creates a span that allows WriteUint16() and CopyFrom().
func NewMutable(data []byte) Span {
	return Span{data: data, mutable: true}
}

// Len returns the number of bytes in the span.
func (s Span) Len() int {
	return len(s.data)
}

// IsMutable returns true if the span accepts writes.
func (s Span) IsMutable() bool {
	return s.mutable
}

// check that width bytes can be accessed at offset
func (s Span) check(offset int, width int) error {
	if offset < 0 || width < 0 || offset+width > len(s.data) {
		return curated.Errorf(faults.OutOfBounds, curated.Errorf("%d bytes at %#04x in span of %d bytes", width, offset, len(s.data)))
	}
	return nil
}

// Uint8 reads a single byte.
func (s Span) Uint8(offset int) (uint8, error) {
	if err := s.check(offset, 1); err != nil {
		return 0, err
	}
	return s.data[offset], nil
}

// Uint16 reads a 16 bit value in the specified byte order.
func (s Span) Uint16(offset int, order binary.ByteOrder) (uint16, error) {
	if err := s.check(offset, 2); err != nil {
		return 0, err
	}
	return order.Uint16(s.data[offset:]), nil
}

// Uint32 reads a 32 bit value in the specified byte order.
func (s Span) Uint32(offset int, order binary.ByteOrder) (uint32, error) {
	if err := s.check(offset, 4); err != nil {
		return 0, err
	}
	return order.Uint32(s.data[offset:]), nil
}

// Uint16LE reads a little-endian 16 bit value.
func (s Span) Uint16LE(offset int) (uint16, error) {
	return s.Uint16(offset, binary.LittleEndian)
}

// Uint16BE reads a big-endian 16 bit value.
func (s Span) Uint16BE(offset int) (uint16, error) {
	return s.Uint16(offset, binary.BigEndian)
}

// Uint32LE reads a little-endian 32 bit value.
func (s Span) Uint32LE(offset int) (uint32, error) {
	return s.Uint32(offset, binary.LittleEndian)
}

// Uint32BE reads a big-endian 32 bit value.
func (s Span) Uint32BE(offset int) (uint32, error) {
	return s.Uint32(offset, binary.BigEndian)
}

// Subspan returns a span over length bytes starting at offset. The new span
// shares storage with the parent and inherits its mutability. A length of
// Rest runs to the end of the parent.
func (s Span) Subspan(offset int, length int) (Span, error) {
	if length == Rest {
		if offset < 0 || offset > len(s.data) {
			return Span{}, curated.Errorf(faults.OutOfBounds, curated.Errorf("subspan at %#04x in span of %d bytes", offset, len(s.data)))
		}
		length = len(s.data) - offset
	}
	if err := s.check(offset, length); err != nil {
		return Span{}, err
	}
	return Span{data: s.data[offset : offset+length : offset+length], mutable: s.mutable}, nil
}

// WriteUint16 writes a 16 bit value in the specified byte order.
func (s Span) WriteUint16(offset int, value uint16, order binary.ByteOrder) error {
	if !s.mutable {
		return curated.Errorf(faults.InconsistentState, "write to read-only span")
	}
	if err := s.check(offset, 2); err != nil {
		return err
	}
	order.PutUint16(s.data[offset:], value)
	return nil
}

// CopyFrom copies all of src into the span starting at offset.
func (s Span) CopyFrom(offset int, src []byte) error {
	if !s.mutable {
		return curated.Errorf(faults.InconsistentState, "write to read-only span")
	}
	if err := s.check(offset, len(src)); err != nil {
		return err
	}
	copy(s.data[offset:], src)
	return nil
}

// Bytes returns a copy of the span's data.
func (s Span) Bytes() []byte {
	b := make([]byte, len(s.data))
	copy(b, s.data)
	return b
}

// IndexByte returns the offset of the first occurrence of c at or after
// offset, or -1 if there is none.
func (s Span) IndexByte(offset int, c byte) int {
	if offset < 0 {
		return -1
	}
	for i := offset; i < len(s.data); i++ {
		if s.data[i] == c {
			return i
		}
	}
	return -1
}
