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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are the only kind of
// error returned by the segment manager and the script loader.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The pattern is what identifies an error. Packages that want callers to be
// able to distinguish one failure from another store the pattern as a const
// string and compare against it with the Is() and Has() functions. For
// example, the faults package declares:
//
//	const MalformedFormat = "malformed format: %v"
//
// and the script loader returns:
//
//	curated.Errorf(faults.MalformedFormat, "block runs past end of buffer")
//
// Is() answers whether the outermost error was created with the pattern.
// Has() answers whether the pattern occurs anywhere in the chain:
//
//	e := curated.Errorf(faults.MalformedFormat, "bad block")
//	f := curated.Errorf("script.%03d: %v", 42, e)
//
//	curated.Is(f, faults.MalformedFormat)  // false
//	curated.Has(f, faults.MalformedFormat) // true
//
// The Error() function normalises the message. Adjacent duplicate parts of
// the chain are removed, parts being separated by the sub-string ": ". This
// means that wrapping an error with the same context twice, which happens
// naturally when errors pass through several layers of the loader, does not
// result in a stuttering message.
//
// Values that are errors are returned by Unwrap() so the errors package of the
// standard library can see inside a curated error. For example, errors.Is()
// finds fs.ErrNotExist inside the error for a missing resource file.
package curated
