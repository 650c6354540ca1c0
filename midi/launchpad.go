package midi

import (
	"fmt"

	"m8remote/debug"
	"m8remote/key"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Launchpad X programmer-mode note numbers: note = (row+1)*10 + col + 1,
// row 0 at the bottom. The M8 surface occupies the bottom-left corner as a
// direction diamond plus a 2x2 command cluster on the right:
//
//	row 1:      Up              Option  Edit
//	row 0:  Left Down Right     Select  Start
var padToKey = map[uint8]key.Key{
	22: key.Up,
	11: key.Left,
	12: key.Down,
	13: key.Right,
	16: key.Select,
	17: key.Start,
	26: key.Option,
	27: key.Edit,
}

// keyToNote is the reverse of padToKey, for LED addressing.
var keyToNote = func() map[key.Key]uint8 {
	m := make(map[key.Key]uint8, len(padToKey))
	for note, k := range padToKey {
		m[k] = note
	}
	return m
}()

// LaunchpadController maps a Novation Launchpad X onto the M8 surface.
type LaunchpadController struct {
	id       string
	outPort  drivers.Out
	inPort   drivers.In
	send     func(msg gomidi.Message) error
	stopFunc func()

	keyChan chan KeyEvent
}

// NewLaunchpadController creates and configures a Launchpad
func NewLaunchpadController(id string, inPort drivers.In, outPort drivers.Out) (*LaunchpadController, error) {
	lp := &LaunchpadController{
		id:      id,
		inPort:  inPort,
		outPort: outPort,
		keyChan: make(chan KeyEvent, 32),
	}

	// Open output
	if outPort != nil {
		send, err := gomidi.SendTo(outPort)
		if err != nil {
			return nil, fmt.Errorf("open output: %w", err)
		}
		lp.send = send

		// Send SysEx to switch to Programmer mode
		// F0 00 20 29 02 0C 00 7F F7
		lp.send(gomidi.SysEx([]byte{0x00, 0x20, 0x29, 0x02, 0x0C, 0x00, 0x7F}))

		// Set brightness to maximum (0-127)
		// F0 00 20 29 02 0C 08 <brightness> F7
		lp.send(gomidi.SysEx([]byte{0x00, 0x20, 0x29, 0x02, 0x0C, 0x08, 0x7F}))

		// Light the mapped pads so the surface is visible
		for note, k := range padToKey {
			color := ColorDim
			if k == key.Up || k == key.Down || k == key.Left || k == key.Right {
				color = ColorAccent
			}
			lp.send(gomidi.NoteOn(0, note, color))
		}
	}

	// Open input. Pad down (velocity > 0) is a press, pad up (NoteOff or
	// velocity 0) is the matching release; the host needs both to track
	// held keys.
	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
			var channel, note, velocity uint8

			if msg.GetNoteOn(&channel, &note, &velocity) {
				lp.emit(note, velocity > 0, velocity)
				return
			}
			if msg.GetNoteOff(&channel, &note, &velocity) {
				lp.emit(note, false, velocity)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		lp.stopFunc = stop
	}

	return lp, nil
}

func (lp *LaunchpadController) emit(note uint8, pressed bool, velocity uint8) {
	k, ok := padToKey[note]
	if !ok {
		return // unmapped pad
	}
	select {
	case lp.keyChan <- KeyEvent{Key: k, Pressed: pressed, Velocity: velocity}:
	default:
		debug.Log("launchpad", "dropped key event %s pressed=%v", k, pressed)
	}
}

func (lp *LaunchpadController) ID() string {
	return lp.id
}

func (lp *LaunchpadController) Type() ControllerType {
	return ControllerLaunchpad
}

func (lp *LaunchpadController) KeyEvents() <-chan KeyEvent {
	return lp.keyChan
}

// SetKeyLED lights the pad mapped to k with a palette color.
func (lp *LaunchpadController) SetKeyLED(k key.Key, color uint8) error {
	if lp.send == nil {
		return nil
	}
	note, ok := keyToNote[k]
	if !ok {
		return fmt.Errorf("no pad mapped for %s", k)
	}
	return lp.send(gomidi.NoteOn(0, note, color))
}

// ClearLEDs turns off every mapped pad.
func (lp *LaunchpadController) ClearLEDs() error {
	if lp.send == nil {
		return nil
	}
	for note := range padToKey {
		lp.send(gomidi.NoteOn(0, note, ColorOff))
	}
	return nil
}

func (lp *LaunchpadController) Close() error {
	lp.ClearLEDs()
	if lp.stopFunc != nil {
		lp.stopFunc()
	}
	close(lp.keyChan)
	return nil
}
