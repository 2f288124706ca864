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

package environment

import "fmt"

// Generation of the script file format.
type Generation int

// List of valid Generation values.
const (
	// leading locals count and a block list starting at offset 2
	Earliest Generation = iota

	// block list starting at offset 0
	Block

	// separate script and heap resources
	Heap

	// fixed header with 32 bit offsets
	Latest
)

var generationNames = map[Generation]string{
	Earliest: "sci0-early",
	Block:    "sci0",
	Heap:     "sci1.1",
	Latest:   "sci3",
}

// aliases accepted by ParseGeneration()
var generationAliases = map[string]Generation{
	"sci1":   Block,
	"sci2":   Heap,
	"sci2.1": Heap,
}

func (g Generation) String() string {
	if s, ok := generationNames[g]; ok {
		return s
	}
	return fmt.Sprintf("generation(%d)", int(g))
}

// ParseGeneration returns the Generation with the specified name.
func ParseGeneration(s string) (Generation, error) {
	for g, n := range generationNames {
		if n == s {
			return g, nil
		}
	}
	if g, ok := generationAliases[s]; ok {
		return g, nil
	}
	return Earliest, fmt.Errorf("unknown generation (%s)", s)
}

// IsBlockBased returns true if scripts of the generation are a list of
// typed blocks.
func (g Generation) IsBlockBased() bool {
	return g == Earliest || g == Block
}
