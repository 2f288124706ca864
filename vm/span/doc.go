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

// Package span implements a bounds checked view of a byte buffer. Every other
// part of the virtual machine memory reads and writes script data through a
// Span.
//
// Reads of 16 and 32 bit values are available in both byte orders. A read
// that would extend beyond the end of the span fails with an OutOfBounds
// fault; it is never truncated or wrapped.
//
// A Subspan shares the backing storage of its parent. Spans are read-only
// unless created with NewMutable(); writes to a read-only span fail with an
// InconsistentState fault.
package span
