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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The ExpectEquality() and ExpectInequality() functions are the most
// frequently used. They compare any two values of the same comparable type.
//
// The ExpectSuccess() and ExpectFailure() functions test for boolean values
// and for errors. A nil error is a success and a non-nil error is a failure.
//
// The Demand*() variants stop the test immediately on failure. They should be
// used when a failed test would make the remainder of the test function
// meaningless, for example when a fixture fails to load.
//
// All functions accept optional tags. The tags are printed at the beginning
// of any failure message and help to identify which of a series of similar
// tests has failed.
package test
