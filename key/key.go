package key

import (
	"fmt"
	"strings"
)

// Key identifies one button on the M8 control surface. The bit values are
// part of the wire contract with the host and never change.
type Key uint8

const (
	Edit   Key = 1 << iota // 1
	Option                 // 2
	Right                  // 4
	Start                  // 8
	Select                 // 16
	Down                   // 32
	Up                     // 64
	Left                   // 128
)

// All lists every surface key in wire-bit order.
var All = [8]Key{Edit, Option, Right, Start, Select, Down, Up, Left}

// Valid reports whether k is exactly one of the eight surface keys.
func (k Key) Valid() bool {
	return k != 0 && k&(k-1) == 0
}

// Mask returns the single-key mask for k.
func (k Key) Mask() Mask {
	return Mask(k)
}

// String returns the key's name.
func (k Key) String() string {
	switch k {
	case Edit:
		return "Edit"
	case Option:
		return "Option"
	case Right:
		return "Right"
	case Start:
		return "Start"
	case Select:
		return "Select"
	case Down:
		return "Down"
	case Up:
		return "Up"
	case Left:
		return "Left"
	default:
		return fmt.Sprintf("Key(%d)", uint8(k))
	}
}

// keyNameMap maps key names (lowercase) to Key values.
var keyNameMap = map[string]Key{
	"edit":   Edit,
	"option": Option,
	"opt":    Option,
	"right":  Right,
	"start":  Start,
	"select": Select,
	"sel":    Select,
	"down":   Down,
	"up":     Up,
	"left":   Left,
}

// FromName returns the Key for a given name (case-insensitive).
// Returns 0 if the name is not recognized.
func FromName(name string) Key {
	name = strings.ToLower(strings.TrimSpace(name))
	return keyNameMap[name]
}
