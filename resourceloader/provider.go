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

import "fmt"

// Kind of resource.
type Kind int

// List of valid Kind values.
const (
	Script Kind = iota
	Heap
	Vocab
)

func (k Kind) String() string {
	switch k {
	case Script:
		return "script"
	case Heap:
		return "heap"
	case Vocab:
		return "vocab"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// VocabClassTable is the id of the vocabulary resource that lists the script
// defining each class.
const VocabClassTable = 996

// Provider is implemented by any type that can supply resource data. The
// returned slice is owned by the caller and is exactly the size of the
// resource.
type Provider interface {
	Fetch(kind Kind, id int) ([]byte, error)
}

// Filename returns the name of the file holding the resource.
func Filename(kind Kind, id int) string {
	return fmt.Sprintf("%s.%03d", kind, id)
}

// ParseKind returns the Kind with the specified name.
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{Script, Heap, Vocab} {
		if k.String() == s {
			return k, nil
		}
	}
	return Script, fmt.Errorf("unknown resource kind (%s)", s)
}
