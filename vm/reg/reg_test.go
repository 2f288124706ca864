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

package reg_test

import (
	"testing"

	"github.com/scummvm/scummvm-sub239/test"
	"github.com/scummvm/scummvm-sub239/vm/reg"
)

func TestNullReference(t *testing.T) {
	test.ExpectSuccess(t, reg.NullReference.IsNull())
	test.ExpectSuccess(t, reg.NewReference(0, 100).IsNull())
	test.ExpectFailure(t, reg.NewReference(1, 0).IsNull())
	test.ExpectEquality(t, reg.NewReference(3, 0x12).String(), "0003:0012")
}

func TestValueNumericRule(t *testing.T) {
	v := reg.Number(0x1234)
	test.ExpectSuccess(t, v.IsNumber())
	test.ExpectEquality(t, v.Number(), uint16(0x1234))
	test.ExpectSuccess(t, v.Reference().IsNull())
	test.ExpectEquality(t, v.Reference().Offset, uint32(0x1234))

	// a pointer built from a null reference is a number
	p := reg.Pointer(reg.NewReference(0, 7))
	test.ExpectSuccess(t, p.IsNumber())
	test.ExpectEquality(t, p, reg.Number(7))

	// a pointer with a segment is not a number
	q := reg.Pointer(reg.NewReference(2, 7))
	test.ExpectSuccess(t, q.IsReference())
	test.ExpectEquality(t, q.Number(), uint16(7))

	// the zero Value is numeric zero
	var z reg.Value
	test.ExpectEquality(t, z, reg.Number(0))
}

func TestWithSegment(t *testing.T) {
	v := reg.Number(0x40).WithSegment(5)
	test.ExpectSuccess(t, v.IsReference())
	test.ExpectEquality(t, v.Reference(), reg.NewReference(5, 0x40))

	// relocated values can be moved by the heap offset
	w := v.AddOffset(0x100)
	test.ExpectEquality(t, w.Reference(), reg.NewReference(5, 0x140))

	// tagging with the null segment leaves a number
	test.ExpectSuccess(t, reg.Number(3).WithSegment(reg.NullSegment).IsNumber())
}
