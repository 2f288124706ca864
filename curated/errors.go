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

package curated

import (
	"errors"
	"fmt"
	"strings"
)

// curated is an implementation of the go language error interface. The
// pattern identifies the error and the values complete the message.
type curated struct {
	pattern string
	values  []any
}

// Errorf creates a new curated error. The first argument is a pattern and not
// a format string, although it is used as one when the message is created.
// The pattern is what Is() and Has() look for.
func Errorf(pattern string, values ...any) error {
	return curated{
		pattern: pattern,
		values:  values,
	}
}

// separator of the parts of an error message chain
const separator = ": "

// Error implements the go language error interface. Adjacent parts of the
// message chain that are identical are printed only once.
func (er curated) Error() string {
	parts := strings.Split(fmt.Sprintf(er.pattern, er.values...), separator)

	msg := parts[:1]
	for _, p := range parts[1:] {
		if p != msg[len(msg)-1] {
			msg = append(msg, p)
		}
	}

	return strings.Join(msg, separator)
}

// Unwrap returns the values of the error that are themselves errors. This
// allows errors.Is() and errors.As() to look inside a curated error.
func (er curated) Unwrap() []error {
	var errs []error
	for _, v := range er.values {
		if e, ok := v.(error); ok {
			errs = append(errs, e)
		}
	}
	return errs
}

// IsAny checks if the error is a curated error.
func IsAny(err error) bool {
	_, ok := err.(curated)
	return ok
}

// Is checks if the error is a curated error with a specific pattern. Only the
// outermost error is checked. Use Has() to check the entire chain.
func Is(err error, pattern string) bool {
	er, ok := err.(curated)
	return ok && er.pattern == pattern
}

// Has checks if the error, or any error it wraps, is a curated error with a
// specific pattern. Errors wrapped by other packages are also searched.
func Has(err error, pattern string) bool {
	if err == nil {
		return false
	}

	if Is(err, pattern) {
		return true
	}

	switch e := err.(type) {
	case interface{ Unwrap() []error }:
		for _, w := range e.Unwrap() {
			if Has(w, pattern) {
				return true
			}
		}
	default:
		return Has(errors.Unwrap(err), pattern)
	}

	return false
}
