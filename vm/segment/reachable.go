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
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/scummvm/scummvm-sub239/curated"
	"github.com/scummvm/scummvm-sub239/vm/reg"
)

// canonical encoding so that the same segment always encodes to the same
// bytes
var reachableEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("segment: failed to create CBOR enc mode: %v", err))
	}
	reachableEncMode = em
}

// EncodedReference is the encoded form of a reference.
type EncodedReference struct {
	Segment uint16 `cbor:"1,keyasint"`
	Offset  uint32 `cbor:"2,keyasint"`
}

// EncodedEntry is the encoded form of one live entry of a segment and the
// references it holds.
type EncodedEntry struct {
	Offset     uint32             `cbor:"1,keyasint"`
	References []EncodedReference `cbor:"2,keyasint,omitempty"`
}

// EncodedSegment is the encoded form of a segment.
type EncodedSegment struct {
	Segment uint16         `cbor:"1,keyasint"`
	Kind    string         `cbor:"2,keyasint"`
	Entries []EncodedEntry `cbor:"3,keyasint,omitempty"`
}

// Reachable returns the outgoing references of every live entry of the
// segment.
func (m *Manager) Reachable(id reg.SegmentID) (EncodedSegment, error) {
	seg, err := m.segment(id)
	if err != nil {
		return EncodedSegment{}, err
	}

	es := EncodedSegment{
		Segment: uint16(id),
		Kind:    seg.Kind().String(),
	}

	for _, off := range seg.Entries() {
		refs, err := seg.ListAllOutgoingReferences(off)
		if err != nil {
			return EncodedSegment{}, err
		}
		e := EncodedEntry{Offset: off}
		for _, r := range refs {
			e.References = append(e.References, EncodedReference{Segment: uint16(r.Segment), Offset: r.Offset})
		}
		es.Entries = append(es.Entries, e)
	}

	return es, nil
}

// EncodeReachable writes the CBOR encoding of Reachable() for the segment.
func (m *Manager) EncodeReachable(w io.Writer, id reg.SegmentID) error {
	es, err := m.Reachable(id)
	if err != nil {
		return err
	}
	b, err := reachableEncMode.Marshal(es)
	if err != nil {
		return curated.Errorf("segment: reachable: %v", err)
	}
	_, err = w.Write(b)
	if err != nil {
		return curated.Errorf("segment: reachable: %v", err)
	}
	return nil
}
