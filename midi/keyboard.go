package midi

import (
	"fmt"

	"m8remote/key"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// keyboardBaseNote is C3. The eight semitones from there map to the eight
// surface keys in wire-bit order, so any octave of a small keyboard covers
// the whole surface.
const keyboardBaseNote uint8 = 48

// noteToKey maps a MIDI note to a surface key, or 0 if unmapped.
func noteToKey(note uint8) key.Key {
	if note < keyboardBaseNote || note >= keyboardBaseNote+8 {
		return 0
	}
	return key.All[note-keyboardBaseNote]
}

// KeyboardController maps a standard MIDI keyboard onto the M8 surface
// (input only, no LED feedback).
type KeyboardController struct {
	id       string
	inPort   drivers.In
	stopFunc func()

	keyChan chan KeyEvent
}

// NewKeyboardController creates a keyboard controller (input only)
func NewKeyboardController(id string, inPort drivers.In) (*KeyboardController, error) {
	kb := &KeyboardController{
		id:      id,
		inPort:  inPort,
		keyChan: make(chan KeyEvent, 32),
	}

	// Note on is a press, note off (or velocity 0) the matching release.
	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
			var channel, note, velocity uint8

			if msg.GetNoteOn(&channel, &note, &velocity) {
				kb.emit(note, velocity > 0, velocity)
				return
			}
			if msg.GetNoteOff(&channel, &note, &velocity) {
				kb.emit(note, false, velocity)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		kb.stopFunc = stop
	}

	return kb, nil
}

func (kb *KeyboardController) emit(note uint8, pressed bool, velocity uint8) {
	k := noteToKey(note)
	if k == 0 {
		return
	}
	select {
	case kb.keyChan <- KeyEvent{Key: k, Pressed: pressed, Velocity: velocity}:
	default:
	}
}

func (kb *KeyboardController) ID() string {
	return kb.id
}

func (kb *KeyboardController) Type() ControllerType {
	return ControllerKeyboard
}

func (kb *KeyboardController) KeyEvents() <-chan KeyEvent {
	return kb.keyChan
}

// SetKeyLED is a no-op for keyboards (no visual feedback)
func (kb *KeyboardController) SetKeyLED(k key.Key, color uint8) error {
	return nil
}

// ClearLEDs is a no-op for keyboards
func (kb *KeyboardController) ClearLEDs() error {
	return nil
}

func (kb *KeyboardController) Close() error {
	if kb.stopFunc != nil {
		kb.stopFunc()
	}
	close(kb.keyChan)
	return nil
}
