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

// Package resourceloader supplies the raw bytes of game resources to the
// script loader.
//
// The Provider interface is the only thing the virtual machine depends on. Two
// implementations are included. Directory reads loose resource files from a
// single directory, using the same file naming as the patch files of the
// original engine:
//
//	script.042
//	heap.042
//	vocab.996
//
// Directory records the sha1 hash of every resource it loads. If a hash is
// registered with Expect() before the resource is fetched then the loaded
// data is checked against it.
//
// Map is an in-memory provider and is mostly useful for testing.
//
// A resource that does not exist is reported with the ResourceMissing
// fault.
package resourceloader
