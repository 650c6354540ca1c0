package config

import (
	"testing"

	"m8remote/key"
)

func TestDefaultBindingsResolve(t *testing.T) {
	cfg := DefaultConfig()
	bindings, err := cfg.KeyBindings()
	if err != nil {
		t.Fatalf("KeyBindings() error = %v", err)
	}

	tests := []struct {
		trigger string
		want    key.Key
	}{
		{"z", key.Edit},
		{"x", key.Option},
		{"up", key.Up},
		{"down", key.Down},
		{"left", key.Left},
		{"right", key.Right},
		{"enter", key.Start},
		{"tab", key.Select},
	}

	for _, tt := range tests {
		if got := bindings[tt.trigger]; got != tt.want {
			t.Errorf("binding %q = %v, want %v", tt.trigger, got, tt.want)
		}
	}
}

func TestKeyBindingsUnknownName(t *testing.T) {
	cfg := &Config{Bindings: map[string]string{"q": "explode"}}
	if _, err := cfg.KeyBindings(); err == nil {
		t.Fatal("KeyBindings() error = nil, want failure for unknown key name")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Remote.Addr != "127.0.0.1:3030" {
		t.Errorf("Remote.Addr = %q, want default", cfg.Remote.Addr)
	}
	if len(cfg.Bindings) == 0 {
		t.Error("default bindings missing")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Remote.Addr = "192.168.1.20:3030"
	cfg.Bindings["a"] = "select"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Remote.Addr != "192.168.1.20:3030" {
		t.Errorf("Remote.Addr = %q, want saved value", loaded.Remote.Addr)
	}
	if loaded.Bindings["a"] != "select" {
		t.Errorf("Bindings[a] = %q, want select", loaded.Bindings["a"])
	}
}

func TestLoadFillsMissingSections(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := &Config{} // empty on disk
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Remote.Addr == "" {
		t.Error("missing remote addr not defaulted")
	}
	if len(loaded.Bindings) == 0 {
		t.Error("missing bindings not defaulted")
	}
}

func TestFindController(t *testing.T) {
	cfg := DefaultConfig()
	if c := cfg.FindController("Launchpad X LPX MIDI"); c == nil {
		t.Error("FindController() = nil for default controller")
	}
	if c := cfg.FindController("nope"); c != nil {
		t.Errorf("FindController(nope) = %v, want nil", c)
	}
}
