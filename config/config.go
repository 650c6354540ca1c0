package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"m8remote/key"
)

// ControllerType identifies the kind of MIDI controller
type ControllerType string

const (
	ControllerLaunchpadX ControllerType = "launchpad-x"
	ControllerKeyboard   ControllerType = "keyboard"
)

// ControllerConfig defines a saved MIDI controller configuration
type ControllerConfig struct {
	PortName    string         `json:"portName"`
	Type        ControllerType `json:"type"`
	AutoConnect bool           `json:"autoConnect"`
}

// RemoteConfig defines how to reach the host's remote endpoint
type RemoteConfig struct {
	Addr string `json:"addr,omitempty"` // host:port, default 127.0.0.1:3030
}

// UIConfig stores UI preferences
type UIConfig struct {
	PalettePath string `json:"palettePath,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Remote      RemoteConfig       `json:"remote,omitempty"`
	Bindings    map[string]string  `json:"bindings,omitempty"` // input trigger -> logical key name
	Controllers []ControllerConfig `json:"controllers,omitempty"`
	UI          UIConfig           `json:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults. The binding
// defaults follow the host's own keymap where the terminal allows it
// (z=edit, x=option) and use arrows plus enter/tab for the rest.
func DefaultConfig() *Config {
	return &Config{
		Remote: RemoteConfig{Addr: "127.0.0.1:3030"},
		Bindings: map[string]string{
			"z":     "edit",
			"x":     "option",
			"up":    "up",
			"down":  "down",
			"left":  "left",
			"right": "right",
			"enter": "start",
			"tab":   "select",
		},
		Controllers: []ControllerConfig{
			{
				PortName:    "Launchpad X LPX MIDI",
				Type:        ControllerLaunchpadX,
				AutoConnect: true,
			},
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "m8remote"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Remote.Addr == "" {
		cfg.Remote.Addr = DefaultConfig().Remote.Addr
	}
	if len(cfg.Bindings) == 0 {
		cfg.Bindings = DefaultConfig().Bindings
	}

	return &cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// KeyBindings resolves the trigger->name binding table into logical keys.
// An unknown key name is an error so typos don't silently unbind a key.
func (c *Config) KeyBindings() (map[string]key.Key, error) {
	bindings := make(map[string]key.Key, len(c.Bindings))
	for trigger, name := range c.Bindings {
		k := key.FromName(name)
		if k == 0 {
			return nil, fmt.Errorf("binding %q: unknown key name %q", trigger, name)
		}
		bindings[trigger] = k
	}
	return bindings, nil
}

// FindController finds a controller config by port name
func (c *Config) FindController(portName string) *ControllerConfig {
	for i := range c.Controllers {
		if c.Controllers[i].PortName == portName {
			return &c.Controllers[i]
		}
	}
	return nil
}

// AutoConnectControllers returns controllers with autoConnect enabled
func (c *Config) AutoConnectControllers() []ControllerConfig {
	var result []ControllerConfig
	for _, ctrl := range c.Controllers {
		if ctrl.AutoConnect {
			result = append(result, ctrl)
		}
	}
	return result
}
