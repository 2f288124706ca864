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

package script

import (
	"fmt"

	"github.com/scummvm/scummvm-sub239/curated"
	"github.com/scummvm/scummvm-sub239/vm/faults"
	"github.com/scummvm/scummvm-sub239/vm/reg"
)

// Locals is the local variable storage of one script.
type Locals struct {
	scriptNumber int
	cells        []reg.Value
}

// NewLocals is the preferred method of initialisation for the Locals type.
func NewLocals(scriptNumber int, count int) *Locals {
	return &Locals{
		scriptNumber: scriptNumber,
		cells:        make([]reg.Value, count),
	}
}

// ScriptNumber returns the number of the script that owns the locals.
func (l *Locals) ScriptNumber() int {
	return l.scriptNumber
}

// Len returns the number of local variables.
func (l *Locals) Len() int {
	return len(l.cells)
}

// Resize the locals block. New entries are numeric zero.
func (l *Locals) Resize(n int) {
	if n <= len(l.cells) {
		l.cells = l.cells[:n]
		return
	}
	l.cells = append(l.cells, make([]reg.Value, n-len(l.cells))...)
}

// Get returns the value of the indexed local.
func (l *Locals) Get(idx int) (reg.Value, error) {
	if idx < 0 || idx >= len(l.cells) {
		return reg.Value{}, curated.Errorf(faults.OutOfBounds, fmt.Sprintf("local %d of %d", idx, len(l.cells)))
	}
	return l.cells[idx], nil
}

// Set the value of the indexed local.
func (l *Locals) Set(idx int, v reg.Value) error {
	if idx < 0 || idx >= len(l.cells) {
		return curated.Errorf(faults.OutOfBounds, fmt.Sprintf("local %d of %d", idx, len(l.cells)))
	}
	l.cells[idx] = v
	return nil
}

// Values returns a copy of the local variables.
func (l *Locals) Values() []reg.Value {
	return append([]reg.Value{}, l.cells...)
}

// OutgoingReferences lists the locals that are references.
func (l *Locals) OutgoingReferences() []reg.Reference {
	var refs []reg.Reference
	for _, v := range l.cells {
		if v.IsReference() {
			refs = append(refs, v.Reference())
		}
	}
	return refs
}
