package rarity

import "strings"

// Combination holds one variant id per layer, in layer order.
type Combination []string

// keySep cannot appear in a filename.
const keySep = "\x00"

// Key returns a comparable form of c, suitable as a map key.
func (c Combination) Key() string {
	return strings.Join(c, keySep)
}

// Equal reports whether every position of c and o matches.
func (c Combination) Equal(o Combination) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if c[i] != o[i] {
			return false
		}
	}
	return true
}

func (c Combination) String() string {
	return strings.Join(c, ", ")
}
