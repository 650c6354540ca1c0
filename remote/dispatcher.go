package remote

import (
	"context"
	"fmt"

	"m8remote/debug"
	"m8remote/key"
)

// Dispatcher turns key masks and commands into remote events, one outbound
// call per event. It performs no retries, keeps no key state and adds no
// locking: the host owns which keys are down, and concurrent holders of the
// same mask must serialize themselves.
type Dispatcher struct {
	caller Caller
}

// NewDispatcher creates a dispatcher sending through the given caller.
func NewDispatcher(c Caller) *Dispatcher {
	return &Dispatcher{caller: c}
}

// SendPress sends a momentary press of the keys in m. The host treats a
// press as self-releasing; use SendHold for sustained activation.
func (d *Dispatcher) SendPress(ctx context.Context, m key.Mask) error {
	if m.IsEmpty() {
		return key.ErrEmptyMask
	}
	return d.caller.TriggerEvent(ctx, KeyPress(m))
}

// SendHold signals the host to treat the keys in m as continuously
// depressed starting now. Every hold must be paired with a later release.
func (d *Dispatcher) SendHold(ctx context.Context, m key.Mask) error {
	if m.IsEmpty() {
		return key.ErrEmptyMask
	}
	return d.caller.TriggerEvent(ctx, KeyHold(m))
}

// SendRelease signals the host to treat the keys in m as released.
func (d *Dispatcher) SendRelease(ctx context.Context, m key.Mask) error {
	if m.IsEmpty() {
		return key.ErrEmptyMask
	}
	return d.caller.TriggerEvent(ctx, KeyRelease(m))
}

// DoWhileHeld sends a hold for m, runs action, then sends a release on every
// exit path: action error, early return, cancellation, even a panic. The one
// exception is a failed hold send, which means the hold never reached the
// host; action does not run and no release is attempted.
//
// The release is sent with a context detached from ctx's cancellation so a
// cancelled action cannot also strand the keys. If the release send itself
// fails, a *ReleaseError carrying both causes is returned.
func (d *Dispatcher) DoWhileHeld(ctx context.Context, m key.Mask, action func(context.Context) error) (err error) {
	if holdErr := d.SendHold(ctx, m); holdErr != nil {
		return fmt.Errorf("hold %s: %w", m, holdErr)
	}

	defer func() {
		relErr := d.SendRelease(context.WithoutCancel(ctx), m)
		if relErr == nil {
			return
		}
		debug.Warn("remote", "release of %s failed: %v", m, relErr)
		err = &ReleaseError{Mask: m, Action: err, Err: relErr}
	}()

	return action(ctx)
}

// Enable asks the host to enable the device connection.
func (d *Dispatcher) Enable(ctx context.Context) error {
	return d.caller.TriggerEvent(ctx, Enable())
}

// Reset asks the host to reset the device connection.
func (d *Dispatcher) Reset(ctx context.Context) error {
	return d.caller.TriggerEvent(ctx, Reset())
}

// Disconnect asks the host to drop the device connection.
func (d *Dispatcher) Disconnect(ctx context.Context) error {
	return d.caller.TriggerEvent(ctx, Disconnect())
}

// Single-key presses.

func (d *Dispatcher) PressEdit(ctx context.Context) error { return d.SendPress(ctx, key.Edit.Mask()) }

func (d *Dispatcher) PressOption(ctx context.Context) error {
	return d.SendPress(ctx, key.Option.Mask())
}

func (d *Dispatcher) PressRight(ctx context.Context) error {
	return d.SendPress(ctx, key.Right.Mask())
}

func (d *Dispatcher) PressStart(ctx context.Context) error {
	return d.SendPress(ctx, key.Start.Mask())
}

func (d *Dispatcher) PressSelect(ctx context.Context) error {
	return d.SendPress(ctx, key.Select.Mask())
}

func (d *Dispatcher) PressDown(ctx context.Context) error { return d.SendPress(ctx, key.Down.Mask()) }

func (d *Dispatcher) PressUp(ctx context.Context) error { return d.SendPress(ctx, key.Up.Mask()) }

func (d *Dispatcher) PressLeft(ctx context.Context) error { return d.SendPress(ctx, key.Left.Mask()) }

// PressDelete presses Edit+Option together, the device's delete shortcut.
func (d *Dispatcher) PressDelete(ctx context.Context) error {
	return d.SendPress(ctx, key.Edit.Mask().With(key.Option))
}
