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

package patch

import (
	"encoding/binary"
	"fmt"

	"github.com/scummvm/scummvm-sub239/curated"
	"github.com/scummvm/scummvm-sub239/vm/faults"
	"github.com/scummvm/scummvm-sub239/vm/span"
)

// Op is the type of a patch Operation.
type Op int

// List of valid Op values.
const (
	Skip Op = iota
	ReplaceBytes
	InsertBytes
	ReplaceNumber
	AdjustNumber
	InsertNumber
	ReplaceFill
	InsertFill
	End
)

var opNames = map[Op]string{
	Skip:          "skip",
	ReplaceBytes:  "replace-bytes",
	InsertBytes:   "insert-bytes",
	ReplaceNumber: "replace-number",
	AdjustNumber:  "adjust-number",
	InsertNumber:  "insert-number",
	ReplaceFill:   "replace-fill",
	InsertFill:    "insert-fill",
	End:           "end",
}

func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return fmt.Sprintf("op(%d)", int(op))
}

// ParseOp returns the Op with the specified name.
func ParseOp(s string) (Op, error) {
	for op, n := range opNames {
		if n == s {
			return op, nil
		}
	}
	return End, curated.Errorf("patch: %v", fmt.Sprintf("unknown op (%s)", s))
}

// Operation is a single step of a Patch.
type Operation struct {
	Op Op

	// number of bytes for Skip, ReplaceFill and InsertFill
	Count int

	// literal data for ReplaceBytes and InsertBytes
	Data []byte

	// value for ReplaceNumber and InsertNumber. the delta for AdjustNumber.
	// numbers are written as 16 bit values
	Number int

	// fill value for ReplaceFill and InsertFill
	Fill byte
}

// size returns the number of bytes the operation writes and the number of
// source bytes it consumes.
func (o Operation) size() (written int, consumed int) {
	switch o.Op {
	case Skip:
		return o.Count, o.Count
	case ReplaceBytes:
		return len(o.Data), len(o.Data)
	case InsertBytes:
		return len(o.Data), 0
	case ReplaceNumber, AdjustNumber:
		return 2, 2
	case InsertNumber:
		return 2, 0
	case ReplaceFill:
		return o.Count, o.Count
	case InsertFill:
		return o.Count, 0
	}
	return 0, 0
}

// Patch is a list of operations to be applied to a resource.
type Patch struct {
	Notes string
	Ops   []Operation
}

// SizeDelta returns the change in size caused by the patch and the number of
// source bytes the patch consumes. Operations after an End operation are
// ignored.
func (p Patch) SizeDelta() (delta int, consumed int) {
	for _, o := range p.Ops {
		if o.Op == End {
			break
		}
		w, c := o.size()
		delta += w - c
		consumed += c
	}
	return delta, consumed
}

// Apply the patch to src and return the result. The src slice is not
// modified. Numbers are read and written in the specified byte order.
func (p Patch) Apply(src []byte, order binary.ByteOrder) ([]byte, error) {
	delta, consumed := p.SizeDelta()
	if consumed > len(src) {
		return nil, curated.Errorf(faults.MalformedFormat, fmt.Sprintf("patch consumes %d bytes of a %d byte resource", consumed, len(src)))
	}
	for _, o := range p.Ops {
		if o.Count < 0 {
			return nil, curated.Errorf(faults.MalformedFormat, fmt.Sprintf("negative count in %s operation", o.Op))
		}
	}

	in := span.New(src)
	dst := make([]byte, len(src)+delta)
	out := span.NewMutable(dst)

	var si, di int

	for _, o := range p.Ops {
		var err error

		switch o.Op {
		case Skip:
			err = out.CopyFrom(di, src[si:si+o.Count])
		case ReplaceBytes, InsertBytes:
			err = out.CopyFrom(di, o.Data)
		case ReplaceNumber, InsertNumber:
			err = out.WriteUint16(di, uint16(o.Number), order)
		case AdjustNumber:
			var v uint16
			v, err = in.Uint16(si, order)
			if err == nil {
				err = out.WriteUint16(di, uint16(int(v)+o.Number), order)
			}
		case ReplaceFill, InsertFill:
			for i := 0; i < o.Count; i++ {
				dst[di+i] = o.Fill
			}
		case End:
		default:
			return nil, curated.Errorf("patch: %v", fmt.Sprintf("unknown op (%d)", int(o.Op)))
		}

		if err != nil {
			return nil, curated.Errorf(faults.MalformedFormat, err)
		}

		if o.Op == End {
			break
		}

		w, c := o.size()
		si += c
		di += w
	}

	// remainder of source is unchanged
	copy(dst[di:], src[si:])

	return dst, nil
}
