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

package modalflag

import (
	"fmt"
	"strconv"
	"strings"
)

// Numbers is a flag value holding a list of numbers.
type Numbers struct {
	values []int
}

func (n *Numbers) String() string {
	if n == nil {
		return ""
	}
	s := make([]string, len(n.values))
	for i, v := range n.values {
		s[i] = strconv.Itoa(v)
	}
	return strings.Join(s, ",")
}

// Set implements the flag.Value interface. Each call adds to the list.
func (n *Numbers) Set(s string) error {
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseInt(f, 0, 32)
		if err != nil || v < 0 {
			return fmt.Errorf("not a number: %s", f)
		}
		n.values = append(n.values, int(v))
	}
	return nil
}

// Values returns a copy of the list.
func (n *Numbers) Values() []int {
	return append([]int{}, n.values...)
}

// Len returns the number of numbers in the list.
func (n *Numbers) Len() int {
	return len(n.values)
}
