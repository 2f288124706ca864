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

package resourceloader_test

import (
	"crypto/sha1"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/scummvm/scummvm-sub239/curated"
	"github.com/scummvm/scummvm-sub239/resourceloader"
	"github.com/scummvm/scummvm-sub239/test"
	"github.com/scummvm/scummvm-sub239/vm/faults"
)

func TestFilename(t *testing.T) {
	test.ExpectEquality(t, resourceloader.Filename(resourceloader.Script, 42), "script.042")
	test.ExpectEquality(t, resourceloader.Filename(resourceloader.Heap, 7), "heap.007")
	test.ExpectEquality(t, resourceloader.Filename(resourceloader.Vocab, resourceloader.VocabClassTable), "vocab.996")
}

func TestMap(t *testing.T) {
	m := resourceloader.Map{}
	m.Add(resourceloader.Script, 1, []byte{1, 2, 3})

	d, err := m.Fetch(resourceloader.Script, 1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(d), 3)

	// fetched data is a copy
	d[0] = 100
	d, _ = m.Fetch(resourceloader.Script, 1)
	test.ExpectEquality(t, d[0], uint8(1))

	_, err = m.Fetch(resourceloader.Heap, 1)
	test.ExpectSuccess(t, curated.Is(err, faults.ResourceMissing))
	test.ExpectSuccess(t, curated.Is(err, faults.ResourceNotFound))
}

func TestDirectory(t *testing.T) {
	dir := t.TempDir()
	data := []byte{0x00, 0x00, 0x12, 0x34}
	err := os.WriteFile(filepath.Join(dir, "script.010"), data, 0o644)
	test.DemandSuccess(t, err)

	d := resourceloader.NewDirectory(dir)
	b, err := d.Fetch(resourceloader.Script, 10)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(b), len(data))

	h, ok := d.Hash(resourceloader.Script, 10)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, h, fmt.Sprintf("%x", sha1.Sum(data)))

	_, err = d.Fetch(resourceloader.Script, 11)
	test.ExpectSuccess(t, curated.Is(err, faults.ResourceMissing))

	// a mismatched expectation is an error
	d = resourceloader.NewDirectory(dir)
	d.Expect(resourceloader.Script, 10, "0000")
	_, err = d.Fetch(resourceloader.Script, 10)
	test.ExpectFailure(t, err)
	test.ExpectFailure(t, curated.Is(err, faults.ResourceMissing))
}
