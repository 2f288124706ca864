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

// Package logger is the central log of the segment manager and script loader.
// Log entries are tagged with the name of the sub-system making the entry.
// The tags used in this repository are:
//
//	script, segment, classtable, workaround, patch, resourceloader
//
// Repeated entries (same tag and detail) are collapsed into a single entry
// with a repeat count. The central log holds a fixed number of entries and
// will drop the oldest entries as required.
//
// Logging is gated by the Permission interface. Use logger.Allow to log
// unconditionally.
package logger

import (
	"io"
)

// maximum number of entries in the central logger
const maxCentral = 256

var central *Logger

func init() {
	central = NewLogger(maxCentral)
}

// Log adds an entry to the central logger.
func Log(perm Permission, tag string, detail any) {
	central.Log(perm, tag, detail)
}

// Logf adds a formatted entry to the central logger.
func Logf(perm Permission, tag string, detail string, args ...any) {
	central.Logf(perm, tag, detail, args...)
}

// Clear all entries from central logger.
func Clear() {
	central.Clear()
}

// Write contents of central logger to io.Writer.
func Write(output io.Writer) bool {
	return central.Write(output)
}

// Tail writes the last N entries to io.Writer.
func Tail(output io.Writer, number int) {
	central.Tail(output, number)
}

// SetEcho prints entries to io.Writer as and when they are added. A nil
// writer turns echoing off.
func SetEcho(output io.Writer) {
	central.SetEcho(output)
}

// Entries returns a copy of the entries in the central logger.
func Entries() []Entry {
	return central.Entries()
}
