package remote

import (
	"context"
	"errors"
	"testing"

	"m8remote/key"
)

// fakeCaller records triggered events and fails on demand.
type fakeCaller struct {
	events  []Event
	failOn  map[Kind]error
	failAll error
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{failOn: make(map[Kind]error)}
}

func (f *fakeCaller) TriggerEvent(_ context.Context, e Event) error {
	if f.failAll != nil {
		return f.failAll
	}
	if err := f.failOn[e.Kind]; err != nil {
		return err
	}
	f.events = append(f.events, e)
	return nil
}

func TestSendPressSelfContained(t *testing.T) {
	fc := newFakeCaller()
	d := NewDispatcher(fc)

	if err := d.SendPress(context.Background(), key.Start.Mask()); err != nil {
		t.Fatalf("SendPress() error = %v", err)
	}

	if len(fc.events) != 1 {
		t.Fatalf("got %d events, want 1", len(fc.events))
	}
	if fc.events[0] != KeyPress(key.Start.Mask()) {
		t.Errorf("event = %v, want KeyPress(Start)", fc.events[0])
	}
}

func TestSendRejectsEmptyMask(t *testing.T) {
	fc := newFakeCaller()
	d := NewDispatcher(fc)
	ctx := context.Background()

	for name, send := range map[string]func(context.Context, key.Mask) error{
		"press":   d.SendPress,
		"hold":    d.SendHold,
		"release": d.SendRelease,
	} {
		if err := send(ctx, 0); !errors.Is(err, key.ErrEmptyMask) {
			t.Errorf("%s(0) error = %v, want ErrEmptyMask", name, err)
		}
	}
	if len(fc.events) != 0 {
		t.Errorf("empty masks reached the wire: %v", fc.events)
	}
}

func TestDoWhileHeldBalance(t *testing.T) {
	fc := newFakeCaller()
	d := NewDispatcher(fc)
	m := key.Select.Mask()

	ran := false
	err := d.DoWhileHeld(context.Background(), m, func(ctx context.Context) error {
		ran = true
		if len(fc.events) != 1 || fc.events[0] != KeyHold(m) {
			t.Errorf("action ran before hold reached the wire: %v", fc.events)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("DoWhileHeld() error = %v", err)
	}
	if !ran {
		t.Fatal("action did not run")
	}

	want := []Event{KeyHold(m), KeyRelease(m)}
	if len(fc.events) != len(want) {
		t.Fatalf("got %d events, want %d: %v", len(fc.events), len(want), fc.events)
	}
	for i := range want {
		if fc.events[i] != want[i] {
			t.Errorf("events[%d] = %v, want %v", i, fc.events[i], want[i])
		}
	}
}

func TestDoWhileHeldActionFailure(t *testing.T) {
	fc := newFakeCaller()
	d := NewDispatcher(fc)
	m := key.Start.Mask() // mask 8

	actionErr := errors.New("boom")
	err := d.DoWhileHeld(context.Background(), m, func(ctx context.Context) error {
		return actionErr
	})

	if !errors.Is(err, actionErr) {
		t.Errorf("DoWhileHeld() error = %v, want wrapped action error", err)
	}

	want := []Event{KeyHold(m), KeyRelease(m)}
	if len(fc.events) != len(want) {
		t.Fatalf("got events %v, want hold then release", fc.events)
	}
	for i := range want {
		if fc.events[i] != want[i] {
			t.Errorf("events[%d] = %v, want %v", i, fc.events[i], want[i])
		}
	}
}

func TestDoWhileHeldHoldFailure(t *testing.T) {
	fc := newFakeCaller()
	holdErr := errors.New("connection refused")
	fc.failOn[KindKeyHold] = holdErr
	d := NewDispatcher(fc)

	ran := false
	err := d.DoWhileHeld(context.Background(), key.Edit.Mask(), func(ctx context.Context) error {
		ran = true
		return nil
	})

	if !errors.Is(err, holdErr) {
		t.Errorf("DoWhileHeld() error = %v, want hold failure", err)
	}
	if ran {
		t.Error("action ran although the hold never reached the host")
	}
	// No release for a hold that never took effect.
	if len(fc.events) != 0 {
		t.Errorf("unexpected events after failed hold: %v", fc.events)
	}
}

func TestDoWhileHeldReleaseFailure(t *testing.T) {
	fc := newFakeCaller()
	relErr := errors.New("write: broken pipe")
	fc.failOn[KindKeyRelease] = relErr
	d := NewDispatcher(fc)

	actionErr := errors.New("boom")
	err := d.DoWhileHeld(context.Background(), key.Edit.Mask(), func(ctx context.Context) error {
		return actionErr
	})

	var re *ReleaseError
	if !errors.As(err, &re) {
		t.Fatalf("DoWhileHeld() error = %v, want *ReleaseError", err)
	}
	if !errors.Is(err, actionErr) {
		t.Error("action error not reachable as the primary cause")
	}
	if !errors.Is(err, relErr) {
		t.Error("release failure not reachable")
	}
	if re.Mask != key.Edit.Mask() {
		t.Errorf("ReleaseError.Mask = %v, want Edit", re.Mask)
	}
}

func TestDoWhileHeldReleaseFailureWithoutActionError(t *testing.T) {
	fc := newFakeCaller()
	relErr := errors.New("write: broken pipe")
	fc.failOn[KindKeyRelease] = relErr
	d := NewDispatcher(fc)

	err := d.DoWhileHeld(context.Background(), key.Edit.Mask(), func(ctx context.Context) error {
		return nil
	})

	if !errors.Is(err, relErr) {
		t.Errorf("DoWhileHeld() error = %v, want release failure surfaced", err)
	}
}

func TestDoWhileHeldCancelledActionStillReleases(t *testing.T) {
	fc := newFakeCaller()
	d := NewDispatcher(fc)
	m := key.Down.Mask()

	ctx, cancel := context.WithCancel(context.Background())
	err := d.DoWhileHeld(ctx, m, func(ctx context.Context) error {
		cancel()
		return ctx.Err()
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("DoWhileHeld() error = %v, want context.Canceled", err)
	}
	if len(fc.events) != 2 || fc.events[1] != KeyRelease(m) {
		t.Errorf("release missing after cancelled action: %v", fc.events)
	}
}

func TestDoWhileHeldNestedPress(t *testing.T) {
	fc := newFakeCaller()
	d := NewDispatcher(fc)
	held := key.Select.Mask()

	err := d.DoWhileHeld(context.Background(), held, func(ctx context.Context) error {
		return d.PressUp(ctx)
	})
	if err != nil {
		t.Fatalf("DoWhileHeld() error = %v", err)
	}

	want := []Event{KeyHold(held), KeyPress(key.Up.Mask()), KeyRelease(held)}
	if len(fc.events) != len(want) {
		t.Fatalf("got events %v, want %v", fc.events, want)
	}
	for i := range want {
		if fc.events[i] != want[i] {
			t.Errorf("events[%d] = %v, want %v", i, fc.events[i], want[i])
		}
	}
}

func TestPressDelete(t *testing.T) {
	fc := newFakeCaller()
	d := NewDispatcher(fc)

	if err := d.PressDelete(context.Background()); err != nil {
		t.Fatalf("PressDelete() error = %v", err)
	}
	if len(fc.events) != 1 {
		t.Fatalf("got %d events, want 1", len(fc.events))
	}
	if fc.events[0].Kind != KindKeyPress || uint8(fc.events[0].Mask) != 3 {
		t.Errorf("event = %v, want KeyPress with mask 3", fc.events[0])
	}
}

func TestDirectionalPressMasks(t *testing.T) {
	tests := []struct {
		name  string
		press func(*Dispatcher, context.Context) error
		want  uint8
	}{
		{"edit", (*Dispatcher).PressEdit, 1},
		{"option", (*Dispatcher).PressOption, 2},
		{"right", (*Dispatcher).PressRight, 4},
		{"start", (*Dispatcher).PressStart, 8},
		{"select", (*Dispatcher).PressSelect, 16},
		{"down", (*Dispatcher).PressDown, 32},
		{"up", (*Dispatcher).PressUp, 64},
		{"left", (*Dispatcher).PressLeft, 128},
	}

	for _, tt := range tests {
		fc := newFakeCaller()
		d := NewDispatcher(fc)
		if err := tt.press(d, context.Background()); err != nil {
			t.Errorf("%s: error = %v", tt.name, err)
			continue
		}
		if len(fc.events) != 1 {
			t.Errorf("%s: got %d events, want 1", tt.name, len(fc.events))
			continue
		}
		e := fc.events[0]
		if e.Kind != KindKeyPress || uint8(e.Mask) != tt.want {
			t.Errorf("%s: event = %v, want KeyPress mask %d", tt.name, e, tt.want)
		}
	}
}

func TestSendFailurePropagates(t *testing.T) {
	fc := newFakeCaller()
	sendErr := errors.New("host unreachable")
	fc.failAll = sendErr
	d := NewDispatcher(fc)
	ctx := context.Background()

	if err := d.SendPress(ctx, key.Edit.Mask()); !errors.Is(err, sendErr) {
		t.Errorf("SendPress() error = %v, want transport failure", err)
	}
	if err := d.Enable(ctx); !errors.Is(err, sendErr) {
		t.Errorf("Enable() error = %v, want transport failure", err)
	}
}

func TestCommands(t *testing.T) {
	fc := newFakeCaller()
	d := NewDispatcher(fc)
	ctx := context.Background()

	if err := d.Enable(ctx); err != nil {
		t.Fatalf("Enable() error = %v", err)
	}
	if err := d.Reset(ctx); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if err := d.Disconnect(ctx); err != nil {
		t.Fatalf("Disconnect() error = %v", err)
	}

	want := []Event{Enable(), Reset(), Disconnect()}
	for i := range want {
		if fc.events[i] != want[i] {
			t.Errorf("events[%d] = %v, want %v", i, fc.events[i], want[i])
		}
	}
}
