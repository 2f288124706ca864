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
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/scummvm/scummvm-sub239/curated"
	"github.com/scummvm/scummvm-sub239/resourceloader"
)

// Provider is implemented by any type that can supply a patch for a resource.
type Provider interface {
	Lookup(kind resourceloader.Kind, id int) (Patch, bool)
}

// Table is a Provider of patches keyed by resource.
type Table map[resourceloader.Key]Patch

// Lookup implements the Provider interface.
func (tab Table) Lookup(kind resourceloader.Kind, id int) (Patch, bool) {
	p, ok := tab[resourceloader.Key{Kind: kind, ID: id}]
	return p, ok
}

// the on-disk form of a patch table
type tableFile struct {
	Patch []struct {
		Kind  string `toml:"kind"`
		ID    int    `toml:"id"`
		Notes string `toml:"notes"`
		Ops   []struct {
			Op     string `toml:"op"`
			Count  int    `toml:"count"`
			Data   []int  `toml:"data"`
			Number int    `toml:"number"`
			Fill   int    `toml:"fill"`
		} `toml:"ops"`
	} `toml:"patch"`
}

// ParseTable creates a Table from TOML data.
func ParseTable(data []byte) (Table, error) {
	var f tableFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, curated.Errorf("patch: %v", err)
	}

	tab := make(Table)

	for i, p := range f.Patch {
		kind, err := resourceloader.ParseKind(p.Kind)
		if err != nil {
			return nil, curated.Errorf("patch: entry %d: %v", i, err)
		}

		key := resourceloader.Key{Kind: kind, ID: p.ID}
		if _, ok := tab[key]; ok {
			return nil, curated.Errorf("patch: entry %d: %v", i, fmt.Sprintf("duplicate patch for %s", resourceloader.Filename(kind, p.ID)))
		}

		n := Patch{Notes: p.Notes}
		for _, o := range p.Ops {
			op, err := ParseOp(o.Op)
			if err != nil {
				return nil, curated.Errorf("patch: entry %d: %v", i, err)
			}
			if o.Fill < 0 || o.Fill > 0xff {
				return nil, curated.Errorf("patch: entry %d: %v", i, fmt.Sprintf("fill value out of range (%d)", o.Fill))
			}

			var d []byte
			for _, v := range o.Data {
				if v < 0 || v > 0xff {
					return nil, curated.Errorf("patch: entry %d: %v", i, fmt.Sprintf("data value out of range (%d)", v))
				}
				d = append(d, byte(v))
			}

			n.Ops = append(n.Ops, Operation{
				Op:     op,
				Count:  o.Count,
				Data:   d,
				Number: o.Number,
				Fill:   byte(o.Fill),
			})
		}

		tab[key] = n
	}

	return tab, nil
}

// LoadTable reads a Table from a TOML file.
func LoadTable(filename string) (Table, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf("patch: %v", err)
	}
	return ParseTable(data)
}
