package remote

import (
	"encoding/json"
	"fmt"

	"m8remote/key"
)

// EventType is the host-side schema name key events are triggered against.
// It is part of the remote protocol and must match the host registration.
const EventType = "bevy_m8::remote::M8Event"

// Kind enumerates the remote event variants understood by the host.
type Kind int

const (
	KindDisconnect Kind = iota
	KindEnable
	KindReset
	KindKeyHold
	KindKeyPress
	KindKeyRelease
)

// Event is one remote event sent to the host. The mask is meaningful only
// for the three key kinds. Events are built immediately before dispatch and
// consumed by exactly one call; the client keeps no key state of its own.
type Event struct {
	Kind Kind
	Mask key.Mask
}

// KeyPress builds a momentary press of the keys in m. The host treats a
// press as including its own release.
func KeyPress(m key.Mask) Event { return Event{Kind: KindKeyPress, Mask: m} }

// KeyHold builds an event holding the keys in m down until released.
func KeyHold(m key.Mask) Event { return Event{Kind: KindKeyHold, Mask: m} }

// KeyRelease builds an event releasing the keys in m.
func KeyRelease(m key.Mask) Event { return Event{Kind: KindKeyRelease, Mask: m} }

// Disconnect builds the host disconnect command.
func Disconnect() Event { return Event{Kind: KindDisconnect} }

// Enable builds the host enable command.
func Enable() Event { return Event{Kind: KindEnable} }

// Reset builds the host reset command.
func Reset() Event { return Event{Kind: KindReset} }

// HasMask reports whether the event kind carries a key mask.
func (e Event) HasMask() bool {
	switch e.Kind {
	case KindKeyHold, KindKeyPress, KindKeyRelease:
		return true
	}
	return false
}

// variantName is the wire name of the event variant.
func (e Event) variantName() string {
	switch e.Kind {
	case KindDisconnect:
		return "Disconnect"
	case KindEnable:
		return "Enable"
	case KindReset:
		return "Reset"
	case KindKeyHold:
		return "KeyHold"
	case KindKeyPress:
		return "KeyPress"
	case KindKeyRelease:
		return "KeyRelease"
	default:
		return ""
	}
}

// MarshalJSON encodes the event the way the host's enum expects it:
// mask-carrying variants as {"KeyPress": 3}, commands as a bare "Enable".
func (e Event) MarshalJSON() ([]byte, error) {
	name := e.variantName()
	if name == "" {
		return nil, fmt.Errorf("unknown event kind %d", e.Kind)
	}
	if !e.HasMask() {
		return json.Marshal(name)
	}
	return json.Marshal(map[string]uint8{name: uint8(e.Mask)})
}

// String returns a readable form like "KeyHold(Edit+Option)".
func (e Event) String() string {
	name := e.variantName()
	if name == "" {
		return fmt.Sprintf("Event(%d)", e.Kind)
	}
	if !e.HasMask() {
		return name
	}
	return fmt.Sprintf("%s(%s)", name, e.Mask)
}
