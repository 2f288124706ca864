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

package script

import (
	"fmt"

	"github.com/scummvm/scummvm-sub239/curated"
	"github.com/scummvm/scummvm-sub239/logger"
	"github.com/scummvm/scummvm-sub239/vm/faults"
)

// OffsetKind classifies an entry of the offset lookup table.
type OffsetKind int

// List of valid OffsetKind values.
const (
	ObjectOffset OffsetKind = iota
	StringOffset
	SaidOffset
)

func (k OffsetKind) String() string {
	switch k {
	case ObjectOffset:
		return "object"
	case StringOffset:
		return "string"
	case SaidOffset:
		return "said"
	}
	return "unknown"
}

// OffsetEntry is a range of the script buffer that holds an object, a string
// or a said spec.
type OffsetEntry struct {
	Kind   OffsetKind
	Offset int
	Size   int
}

func (e OffsetEntry) String() string {
	return fmt.Sprintf("%#06x %-6s %d bytes", e.Offset, e.Kind, e.Size)
}

// terminator of a said spec
const saidTerminator = 0xff

// said spec bytes at or above this value are single byte operators. bytes
// below it begin a two byte word group
const saidOperator = 0xf0

func warnUnterminated(s *Script, kind OffsetKind, pos int) {
	err := curated.Errorf(faults.UnterminatedTable, fmt.Sprintf("%s at %#04x in %s", kind, pos, s))
	logger.Log(logger.Allow, "script", err)
}

// stringLookup lists the nul terminated strings between start and end.
func stringLookup(s *Script, start int, end int) []OffsetEntry {
	var entries []OffsetEntry
	if end > len(s.buf) {
		end = len(s.buf)
	}
	for p := start; p < end; {
		n := s.data.IndexByte(p, 0)
		if n < 0 || n >= end {
			warnUnterminated(s, StringOffset, p)
			return entries
		}
		if n > p {
			entries = append(entries, OffsetEntry{Kind: StringOffset, Offset: p, Size: n - p + 1})
		}
		p = n + 1
	}
	return entries
}

// saidLookup lists the said specs between start and end.
func saidLookup(s *Script, start int, end int) []OffsetEntry {
	var entries []OffsetEntry
	for p := start; p < end; {
		// padding at the end of the block
		if b, _ := s.data.Uint8(p); b == 0 {
			return entries
		}

		spec := p
		for {
			if p >= end {
				warnUnterminated(s, SaidOffset, spec)
				return entries
			}
			b, _ := s.data.Uint8(p)
			if b == saidTerminator {
				p++
				break
			}
			if b >= saidOperator {
				p++
			} else {
				p += 2
			}
		}
		entries = append(entries, OffsetEntry{Kind: SaidOffset, Offset: spec, Size: p - spec})
	}
	return entries
}

func blockLookup(s *Script, start int) []OffsetEntry {
	var entries []OffsetEntry
	_ = walkBlocks(s, start, func(typ uint16, pos int, size int) error {
		switch typ {
		case BlockObject, BlockClass:
			entries = append(entries, OffsetEntry{Kind: ObjectOffset, Offset: pos + blockObjectVars, Size: size - blockObjectVars})
		case BlockStrings:
			entries = append(entries, stringLookup(s, pos+blockHeaderSize, pos+size)...)
		case BlockSaid:
			entries = append(entries, saidLookup(s, pos+blockHeaderSize, pos+size)...)
		}
		return nil
	})
	return entries
}
