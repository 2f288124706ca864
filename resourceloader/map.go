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

package resourceloader

import (
	"github.com/scummvm/scummvm-sub239/curated"
	"github.com/scummvm/scummvm-sub239/vm/faults"
)

// Key identifies a resource in a Map.
type Key struct {
	Kind Kind
	ID   int
}

// Map is an in-memory Provider.
type Map map[Key][]byte

// Add data for a resource. The data is not copied.
func (m Map) Add(kind Kind, id int, data []byte) {
	m[Key{Kind: kind, ID: id}] = data
}

// Fetch implements the Provider interface. The returned data is a copy.
func (m Map) Fetch(kind Kind, id int) ([]byte, error) {
	data, ok := m[Key{Kind: kind, ID: id}]
	if !ok {
		return nil, curated.Errorf(faults.ResourceMissing, Filename(kind, id))
	}
	c := make([]byte, len(data))
	copy(c, data)
	return c, nil
}
