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

// Package reg defines the pointer type of the virtual machine and the generic
// cell type that holds either a pointer or a small integer.
//
// A Reference is a (segment, offset) pair. The zero segment is never a live
// segment and so a Reference with a zero segment is null.
//
// A Value is the content of a variable slot. In the on-disk formats a slot is
// a raw 16-bit number and there is no way of telling a small integer from a
// pointer. The relocation pass decides which slots are pointers and tags them
// with a segment. The Value type makes the distinction explicit but keeps the
// rule of the file formats: a Value is numeric exactly when it carries no
// segment.
package reg
