package midi

import (
	"context"

	"m8remote/debug"
	"m8remote/key"
	"m8remote/remote"
)

// Bridge forwards controller key events to the remote dispatcher. A pad or
// note down holds the key on the host, the matching up releases it, so
// chords on the hardware arrive as overlapping holds the way the device's
// own buttons would. One Bridge runs per controller, single goroutine, so
// holds and releases leave in the order the hardware produced them.
type Bridge struct {
	dispatcher *remote.Dispatcher
	held       key.Mask
}

// NewBridge creates a bridge driving the given dispatcher.
func NewBridge(d *remote.Dispatcher) *Bridge {
	return &Bridge{dispatcher: d}
}

// Held returns the mask of keys this bridge currently holds on the host.
func (b *Bridge) Held() key.Mask {
	return b.held
}

// Run consumes c's key events until the channel closes or ctx is done.
// On exit any keys still held are released so the host is never left with
// stuck keys from an unplugged controller.
func (b *Bridge) Run(ctx context.Context, c Controller) {
	defer b.releaseAll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-c.KeyEvents():
			if !ok {
				return
			}
			b.handle(ctx, c, ev)
		}
	}
}

func (b *Bridge) handle(ctx context.Context, c Controller, ev KeyEvent) {
	m := ev.Key.Mask()

	if ev.Pressed {
		if b.held.Has(ev.Key) {
			return // controller repeat, already held
		}
		if err := b.dispatcher.SendHold(ctx, m); err != nil {
			debug.Log("bridge", "hold %s failed: %v", ev.Key, err)
			return
		}
		b.held = b.held.With(ev.Key)
		c.SetKeyLED(ev.Key, ColorHeld)
		return
	}

	if !b.held.Has(ev.Key) {
		return // release without a hold we sent, nothing to undo
	}
	if err := b.dispatcher.SendRelease(ctx, m); err != nil {
		// Keep the key marked held; the host still thinks it is down.
		debug.Warn("bridge", "release %s failed: %v", ev.Key, err)
		return
	}
	b.held = b.held.Without(ev.Key)
	c.SetKeyLED(ev.Key, ColorDim)
}

// releaseAll releases everything still held, detached from ctx cancellation.
func (b *Bridge) releaseAll(ctx context.Context) {
	if b.held.IsEmpty() {
		return
	}
	if err := b.dispatcher.SendRelease(context.WithoutCancel(ctx), b.held); err != nil {
		debug.Warn("bridge", "final release of %s failed: %v", b.held, err)
		return
	}
	b.held = 0
}
