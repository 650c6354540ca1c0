package midi

import (
	"testing"

	"m8remote/key"
)

func TestPadMappingCoversAllKeys(t *testing.T) {
	seen := make(map[key.Key]bool)
	for _, k := range padToKey {
		if seen[k] {
			t.Errorf("%s mapped to more than one pad", k)
		}
		seen[k] = true
	}
	for _, k := range key.All {
		if !seen[k] {
			t.Errorf("%s has no pad", k)
		}
	}
}

func TestPadNoteRoundtrip(t *testing.T) {
	for note, k := range padToKey {
		if keyToNote[k] != note {
			t.Errorf("keyToNote[%s] = %d, want %d", k, keyToNote[k], note)
		}
	}
}

func TestKeyboardNoteMapping(t *testing.T) {
	tests := []struct {
		note uint8
		want key.Key
	}{
		{48, key.Edit},
		{49, key.Option},
		{50, key.Right},
		{51, key.Start},
		{52, key.Select},
		{53, key.Down},
		{54, key.Up},
		{55, key.Left},
		{47, 0},
		{56, 0},
		{0, 0},
	}

	for _, tt := range tests {
		if got := noteToKey(tt.note); got != tt.want {
			t.Errorf("noteToKey(%d) = %v, want %v", tt.note, got, tt.want)
		}
	}
}
