package key

import (
	"errors"
	"fmt"
	"strings"
)

// Mask is the OR of one or more key bits: the set of keys considered
// simultaneously active in one remote event. A zero mask carries no keys
// and is never sent to the host.
type Mask uint8

// ErrEmptyMask is returned when a combination names no keys.
var ErrEmptyMask = errors.New("empty key mask")

// ErrUnknownKey is returned when a value is not one of the eight surface keys.
var ErrUnknownKey = errors.New("unknown key")

// Combine ORs the given keys into a single mask. Combining a key with
// itself is harmless; combining zero keys is a caller error.
func Combine(keys ...Key) (Mask, error) {
	if len(keys) == 0 {
		return 0, ErrEmptyMask
	}
	var m Mask
	for _, k := range keys {
		if !k.Valid() {
			return 0, fmt.Errorf("%w: %d", ErrUnknownKey, uint8(k))
		}
		m |= Mask(k)
	}
	return m, nil
}

// Has reports whether m contains k.
func (m Mask) Has(k Key) bool {
	return m&Mask(k) != 0
}

// With returns a new Mask with k added.
func (m Mask) With(k Key) Mask {
	return m | Mask(k)
}

// Without returns a new Mask with k removed.
func (m Mask) Without(k Key) Mask {
	return m &^ Mask(k)
}

// IsEmpty reports whether the mask names no keys.
func (m Mask) IsEmpty() bool {
	return m == 0
}

// Keys returns the keys in the mask, in wire-bit order.
func (m Mask) Keys() []Key {
	var keys []Key
	for _, k := range All {
		if m.Has(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// String returns a representation like "Edit+Option".
func (m Mask) String() string {
	if m == 0 {
		return ""
	}
	var parts []string
	for _, k := range m.Keys() {
		parts = append(parts, k.String())
	}
	return strings.Join(parts, "+")
}
