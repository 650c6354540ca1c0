package key

import "testing"

func TestKeyBitsDisjoint(t *testing.T) {
	for i, a := range All {
		for j, b := range All {
			if i == j {
				continue
			}
			if a&b != 0 {
				t.Errorf("%s and %s share bits: %d & %d != 0", a, b, a, b)
			}
		}
	}
}

func TestKeyBitsArePowersOfTwo(t *testing.T) {
	var sum uint16
	for _, k := range All {
		if !k.Valid() {
			t.Errorf("%s (%d) is not a power of two", k, uint8(k))
		}
		sum += uint16(k)
	}
	if sum != 255 {
		t.Errorf("key bits sum to %d, want 255", sum)
	}
}

func TestKeyBitValues(t *testing.T) {
	tests := []struct {
		key  Key
		want uint8
	}{
		{Edit, 1},
		{Option, 2},
		{Right, 4},
		{Start, 8},
		{Select, 16},
		{Down, 32},
		{Up, 64},
		{Left, 128},
	}

	for _, tt := range tests {
		if uint8(tt.key) != tt.want {
			t.Errorf("%s = %d, want %d", tt.key, uint8(tt.key), tt.want)
		}
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{Edit, "Edit"},
		{Option, "Option"},
		{Right, "Right"},
		{Start, "Start"},
		{Select, "Select"},
		{Down, "Down"},
		{Up, "Up"},
		{Left, "Left"},
		{Key(3), "Key(3)"},
		{Key(0), "Key(0)"},
	}

	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("Key(%d).String() = %q, want %q", uint8(tt.key), got, tt.want)
		}
	}
}

func TestFromName(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"edit", Edit},
		{"Edit", Edit},
		{"OPTION", Option},
		{"opt", Option},
		{"right", Right},
		{"start", Start},
		{"select", Select},
		{"sel", Select},
		{"down", Down},
		{"up", Up},
		{"left", Left},
		{" up ", Up},
		{"unknown", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := FromName(tt.name); got != tt.want {
			t.Errorf("FromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
