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
	"crypto/sha1"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/scummvm/scummvm-sub239/curated"
	"github.com/scummvm/scummvm-sub239/logger"
	"github.com/scummvm/scummvm-sub239/vm/faults"
)

// Directory fetches resources from loose files in a single directory.
type Directory struct {
	// the directory containing the resource files
	Path string

	// expected and loaded hashes, keyed by filename. an entry added with
	// Expect() is checked on the next Fetch(). after a successful Fetch() the
	// entry holds the hash of the loaded data
	hashes map[string]string
}

// NewDirectory is the preferred method of initialisation for the Directory
// type.
func NewDirectory(path string) *Directory {
	return &Directory{
		Path:   path,
		hashes: make(map[string]string),
	}
}

// Expect registers the sha1 hash the resource must have when it is loaded.
func (d *Directory) Expect(kind Kind, id int, hash string) {
	d.hashes[Filename(kind, id)] = hash
}

// Hash returns the sha1 hash of a loaded resource. The boolean is false if
// the resource has not yet been loaded or expected.
func (d *Directory) Hash(kind Kind, id int) (string, bool) {
	h, ok := d.hashes[Filename(kind, id)]
	return h, ok
}

// Fetch implements the Provider interface.
func (d *Directory) Fetch(kind Kind, id int) ([]byte, error) {
	name := Filename(kind, id)

	data, err := os.ReadFile(filepath.Join(d.Path, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, curated.Errorf(faults.ResourceMissing, name)
		}
		return nil, curated.Errorf("resourceloader: %v", err)
	}

	hash := fmt.Sprintf("%x", sha1.Sum(data))

	// check for hash consistency
	if expected, ok := d.hashes[name]; ok && expected != "" && expected != hash {
		return nil, curated.Errorf("resourceloader: %v", fmt.Sprintf("unexpected hash value for %s", name))
	}
	d.hashes[name] = hash

	logger.Logf(logger.Allow, "resourceloader", "%s (%d bytes, %s)", name, len(data), hash)

	return data, nil
}
