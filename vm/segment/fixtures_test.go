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

package segment_test

import (
	"encoding/binary"

	"github.com/scummvm/scummvm-sub239/environment"
	"github.com/scummvm/scummvm-sub239/resourceloader"
	"github.com/scummvm/scummvm-sub239/vm/script"
)

func le(v ...uint16) []byte {
	b := make([]byte, len(v)*2)
	for i := range v {
		binary.LittleEndian.PutUint16(b[i*2:], v[i])
	}
	return b
}

func cat(parts ...[]byte) []byte {
	var b []byte
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}

func block(typ uint16, payload ...uint16) []byte {
	return cat(le(typ, uint16(4+len(payload)*2)), le(payload...))
}

func rawBlock(typ uint16, payload []byte) []byte {
	return cat(le(typ, uint16(4+len(payload))), payload)
}

func objectBlock(typ uint16, species uint16, super uint16, name uint16) []byte {
	return block(typ, script.ObjectMagic, 0, 0, 4, species, super, 0, name)
}

var terminator = le(script.BlockTerminator)

// class vocabulary with one record per script number
func vocab(scripts ...uint16) []byte {
	var b []byte
	for _, s := range scripts {
		b = append(b, le(0, s)...)
	}
	return b
}

// script 10 defines class 0 named "Base" and has two locals
//
//	0x00 locals block. locals at 0x04
//	0x0c class block. object at 0x18, name variable at 0x1e
//	0x20 strings block. "Base" at 0x24
//	0x2a relocation block naming the name variable
//	0x32 terminator
var script10 = cat(
	block(script.BlockLocals, 7, 8, 0, 0),
	objectBlock(script.BlockClass, 0, script.NullSpecies, 0x24),
	rawBlock(script.BlockStrings, []byte("Base\x00\x00")),
	block(script.BlockRelocation, 1, 0x1e),
	terminator,
)

// script 20 defines class 1, a subclass of class 0. the object is at 0x0c
var script20 = cat(
	objectBlock(script.BlockClass, 1, 0, 0),
	terminator,
)

// script 30 has two locals and nothing else
var script30 = cat(
	block(script.BlockLocals, 3, 4, 0, 0),
	terminator,
)

// the object positions of the fixture classes
const (
	baseObject    = 0x18
	derivedObject = 0x0c
)

func fixtures() resourceloader.Map {
	res := resourceloader.Map{}
	res.Add(resourceloader.Vocab, resourceloader.VocabClassTable, vocab(10, 20))
	res.Add(resourceloader.Script, 10, script10)
	res.Add(resourceloader.Script, 20, script20)
	return res
}

func newEnv() *environment.Environment {
	return environment.NewEnvironment("test", "test", environment.Block)
}
