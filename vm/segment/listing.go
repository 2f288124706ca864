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
	"strings"

	"github.com/scummvm/scummvm-sub239/vm/reg"
)

// ObjectName returns the name of the object at the reference. The name is
// read from the string the name variable of the object points to.
func (m *Manager) ObjectName(ref reg.Reference) string {
	obj := m.GetObject(ref)
	if obj == nil {
		return "<no such object>"
	}
	v, ok := obj.Name()
	if !ok || !v.IsReference() {
		return "<no name>"
	}
	view, err := m.Dereference(v.Reference())
	if err != nil || !view.IsRaw {
		return "<invalid name>"
	}
	b := view.Raw.Bytes()
	if n := view.Raw.IndexByte(0, 0); n >= 0 {
		b = b[:n]
	}
	return string(b)
}

// WriteSegmentTable writes a one line summary of every allocated segment.
func (m *Manager) WriteSegmentTable(w io.Writer) {
	io.WriteString(w, "Segment table:\n")
	for i := 1; i < len(m.segments); i++ {
		seg := m.segments[i]
		if seg == nil {
			continue
		}
		fmt.Fprintf(w, " [%04x] %s  ", i, seg.Kind().letter())

		switch seg := seg.(type) {
		case scriptSegment:
			fmt.Fprintf(w, "script.%03d l:%d", seg.Number(), seg.Lockers())
		case localsSegment:
			fmt.Fprintf(w, "locals %03d", seg.ScriptNumber())
		case *DynMem:
			fmt.Fprintf(w, "dynmem: %d bytes", seg.Size())
		case interface{ Len() int }:
			fmt.Fprintf(w, "%s (%d)", seg.(Segment).Kind(), seg.Len())
		}

		io.WriteString(w, "\n")
	}
}

// WriteClassTable writes one line for every entry of the class table. The
// name of a class is only known once its script is loaded.
func (m *Manager) WriteClassTable(w io.Writer) {
	io.WriteString(w, "Available classes:\n")
	for i := 0; i < m.classes.Len(); i++ {
		e, err := m.classes.Entry(i)
		if err != nil {
			break
		}
		if e.Ref.IsNull() {
			fmt.Fprintf(w, " Class 0x%x (not loaded) (script %d)\n", i, e.Script)
			continue
		}
		fmt.Fprintf(w, " Class 0x%x (%s) at %s (script %d)\n", i, m.ObjectName(e.Ref), e.Ref, e.Script)
	}
}

// WriteSegmentInfo writes the details of the segment.
func (m *Manager) WriteSegmentInfo(w io.Writer, id reg.SegmentID) error {
	seg, err := m.segment(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "[%04x] ", id)

	switch seg := seg.(type) {
	case scriptSegment:
		fmt.Fprintf(w, "%s locked by %d, bufsize=%d (%x)\n", seg.Script, seg.Lockers(), seg.BufferSize(), seg.BufferSize())
		if seg.ExportCount() > 0 {
			fmt.Fprintf(w, "  Exports: %4d\n", seg.ExportCount())
		} else {
			io.WriteString(w, "  Exports: none\n")
		}
		fmt.Fprintf(w, "  Synonyms: %4d\n", seg.SynonymCount())
		if seg.LocalsCount() > 0 {
			fmt.Fprintf(w, "  Locals : %4d in segment 0x%x\n", seg.LocalsCount(), seg.LocalsSegment())
		} else {
			io.WriteString(w, "  Locals : none\n")
		}
		objs := seg.Objects()
		fmt.Fprintf(w, "  Objects: %4d\n", len(objs))
		for _, obj := range objs {
			fmt.Fprintf(w, "    [%s] %s : %3d vars\n", obj.Ref(), m.ObjectName(obj.Ref()), obj.VarCount())
		}

	case localsSegment:
		fmt.Fprintf(w, "locals for script.%03d\n", seg.ScriptNumber())
		fmt.Fprintf(w, "  %d (0x%x) locals\n", seg.Len(), seg.Len())

	case *DynMem:
		fmt.Fprintf(w, "dynmem (%s): %d bytes\n", seg.Description, seg.Size())

	case *Pool[List]:
		io.WriteString(w, "lists\n")
		for _, i := range seg.Entries() {
			l, _ := seg.Get(i)
			fmt.Fprintf(w, "  [%04x]: first=%s last=%s\n", i, l.First, l.Last)
		}

	case *Pool[Hunk]:
		fmt.Fprintf(w, "hunk  (total %d)\n", seg.Len())
		for _, i := range seg.Entries() {
			h, _ := seg.Get(i)
			fmt.Fprintf(w, "    [%04x] %d bytes, type=%s\n", i, len(h.Data), h.Type)
		}

	default:
		var s strings.Builder
		for _, i := range seg.Entries() {
			refs, _ := seg.ListAllOutgoingReferences(i)
			fmt.Fprintf(&s, "    [%04x] %d references\n", i, len(refs))
		}
		fmt.Fprintf(w, "%s (total %d)\n%s", seg.Kind(), len(seg.Entries()), s.String())
	}

	return nil
}
