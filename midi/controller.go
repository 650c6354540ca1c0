package midi

import "m8remote/key"

// ControllerType identifies the kind of controller
type ControllerType int

const (
	ControllerUnknown ControllerType = iota
	ControllerLaunchpad
	ControllerKeyboard
)

// KeyEvent is a press or release of one M8 surface key, as reported by a
// hardware controller. Pressed=true maps to a hold on the host, false to
// the matching release.
type KeyEvent struct {
	Key      key.Key
	Pressed  bool
	Velocity uint8
}

// Controller is the interface for MIDI input devices mapped onto the M8
// control surface.
type Controller interface {
	ID() string
	Type() ControllerType

	// KeyEvents streams surface key presses and releases.
	KeyEvents() <-chan KeyEvent

	// LED feedback for controllers that have it.
	SetKeyLED(k key.Key, color uint8) error
	ClearLEDs() error

	// Lifecycle
	Close() error
}

// Launchpad X palette velocities used for key feedback.
// See Programmer's Reference Manual for the full palette.
const (
	ColorOff    uint8 = 0
	ColorDim    uint8 = 1   // dim white, idle key
	ColorHeld   uint8 = 5   // red, key currently held
	ColorAccent uint8 = 45  // blue, direction cluster
	ColorWhite  uint8 = 119 // bright white
)
