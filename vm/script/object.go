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

// ObjectMagic begins every object record.
const ObjectMagic = 0x1234

// Object is a class or instance record of a script.
type Object struct {
	ref  reg.Reference
	vars []reg.Value

	// number of variables read from the script data. relocation only
	// applies to these slots
	fileVars int

	// index of the name variable or -1
	nameVar int

	class      bool
	species    uint16
	speciesRef reg.Reference
	superclass reg.Reference
	propDict   reg.Reference
	methDict   reg.Reference
}

func newObject(ref reg.Reference, vars []reg.Value, nameVar int) *Object {
	return &Object{
		ref:      ref,
		vars:     vars,
		fileVars: len(vars),
		nameVar:  nameVar,
	}
}

func (obj *Object) String() string {
	k := "instance"
	if obj.class {
		k = "class"
	}
	return fmt.Sprintf("%s %s species %d", k, obj.ref, obj.species)
}

// Ref returns the address of the object.
func (obj *Object) Ref() reg.Reference {
	return obj.ref
}

// Pos returns the byte position of the object in its script.
func (obj *Object) Pos() uint32 {
	return obj.ref.Offset
}

// IsClass returns true if the object is a class.
func (obj *Object) IsClass() bool {
	return obj.class
}

// Species returns the numeric species of the object.
func (obj *Object) Species() uint16 {
	return obj.species
}

// SpeciesRef returns the address of the class the object is an instance of.
// For a class this is the class itself.
func (obj *Object) SpeciesRef() reg.Reference {
	return obj.speciesRef
}

// Superclass returns the address of the superclass or a null reference.
func (obj *Object) Superclass() reg.Reference {
	return obj.superclass
}

// PropDict returns the address of the property dictionary.
func (obj *Object) PropDict() reg.Reference {
	return obj.propDict
}

// MethDict returns the address of the method dictionary. Not all format
// generations have one.
func (obj *Object) MethDict() reg.Reference {
	return obj.methDict
}

// Name returns the name variable. The boolean is false if the object has no
// name variable.
func (obj *Object) Name() (reg.Value, bool) {
	if obj.nameVar < 0 || obj.nameVar >= len(obj.vars) {
		return reg.Value{}, false
	}
	return obj.vars[obj.nameVar], true
}

// VarCount returns the number of variable slots.
func (obj *Object) VarCount() int {
	return len(obj.vars)
}

// Var returns the value of the indexed variable.
func (obj *Object) Var(idx int) (reg.Value, error) {
	if idx < 0 || idx >= len(obj.vars) {
		return reg.Value{}, curated.Errorf(faults.OutOfBounds, fmt.Sprintf("variable %d of %d in %s", idx, len(obj.vars), obj.ref))
	}
	return obj.vars[idx], nil
}

// SetVar sets the value of the indexed variable.
func (obj *Object) SetVar(idx int, v reg.Value) error {
	if idx < 0 || idx >= len(obj.vars) {
		return curated.Errorf(faults.OutOfBounds, fmt.Sprintf("variable %d of %d in %s", idx, len(obj.vars), obj.ref))
	}
	obj.vars[idx] = v
	return nil
}

// resize the variable slots to match a base object
func (obj *Object) resize(n int) {
	if n <= len(obj.vars) {
		obj.vars = obj.vars[:n]
		if obj.fileVars > n {
			obj.fileVars = n
		}
		return
	}
	obj.vars = append(obj.vars, make([]reg.Value, n-len(obj.vars))...)
}

// slotAt returns the index of the variable stored at byte position pos. the
// boolean is false if pos is not inside the object's variables.
func (obj *Object) slotAt(pos int) (int, bool, error) {
	base := int(obj.ref.Offset)
	if pos < base || pos >= base+obj.fileVars*2 {
		return 0, false, nil
	}
	if (pos-base)%2 != 0 {
		return 0, true, curated.Errorf(faults.MalformedFormat, fmt.Sprintf("relocation at %#04x is not on a slot boundary of %s", pos, obj.ref))
	}
	return (pos - base) / 2, true, nil
}

// Clone returns a copy of the object at a new address. The clone is an
// instance of the original.
func (obj *Object) Clone(ref reg.Reference) *Object {
	c := *obj
	c.ref = ref
	c.class = false
	c.vars = append([]reg.Value{}, obj.vars...)
	return &c
}

// OutgoingReferences lists the references held by the object.
func (obj *Object) OutgoingReferences() []reg.Reference {
	var refs []reg.Reference
	for _, r := range []reg.Reference{obj.speciesRef, obj.superclass, obj.propDict, obj.methDict} {
		if !r.IsNull() {
			refs = append(refs, r)
		}
	}
	for _, v := range obj.vars {
		if v.IsReference() {
			refs = append(refs, v.Reference())
		}
	}
	return refs
}
