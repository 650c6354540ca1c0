package remote

import (
	"encoding/json"
	"testing"

	"m8remote/key"
)

func TestEventMarshalJSON(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{KeyPress(3), `{"KeyPress":3}`},
		{KeyHold(key.Start.Mask()), `{"KeyHold":8}`},
		{KeyRelease(key.Up.Mask()), `{"KeyRelease":64}`},
		{Enable(), `"Enable"`},
		{Reset(), `"Reset"`},
		{Disconnect(), `"Disconnect"`},
	}

	for _, tt := range tests {
		data, err := json.Marshal(tt.event)
		if err != nil {
			t.Errorf("Marshal(%v) error = %v", tt.event, err)
			continue
		}
		if string(data) != tt.want {
			t.Errorf("Marshal(%v) = %s, want %s", tt.event, data, tt.want)
		}
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{KeyPress(key.Edit.Mask().With(key.Option)), "KeyPress(Edit+Option)"},
		{KeyHold(key.Select.Mask()), "KeyHold(Select)"},
		{Enable(), "Enable"},
	}

	for _, tt := range tests {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
