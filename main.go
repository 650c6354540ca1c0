package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"m8remote/config"
	"m8remote/debug"
	"m8remote/midi"
	"m8remote/remote"
	"m8remote/theme"
	"m8remote/tui"
)

func main() {
	if os.Getenv("M8REMOTE_DEBUG") != "" {
		debug.Enable()
		defer debug.Disable()
	}

	// Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	bindings, err := cfg.KeyBindings()
	if err != nil {
		fmt.Printf("Error in key bindings: %v\n", err)
		os.Exit(1)
	}

	// Load theme
	palette := theme.Default()
	if cfg.UI.PalettePath != "" {
		p, err := theme.LoadGPL(cfg.UI.PalettePath)
		if err != nil {
			fmt.Printf("Warning: palette %s: %v (using built-in)\n", cfg.UI.PalettePath, err)
		} else {
			palette = p
		}
	}
	th := theme.New(palette)

	// Remote client and dispatcher
	client := remote.NewClient(cfg.Remote.Addr)
	dispatcher := remote.NewDispatcher(client)

	// Wake the host's device connection; the UI still starts if the host
	// is not up yet.
	enableCtx, cancelEnable := context.WithTimeout(context.Background(), 3*time.Second)
	if err := dispatcher.Enable(enableCtx); err != nil {
		debug.Log("main", "enable failed: %v", err)
	}
	cancelEnable()

	// Create MIDI device manager (handles hot-plug)
	var keyboardPorts []string
	for _, c := range cfg.AutoConnectControllers() {
		if c.Type == config.ControllerKeyboard {
			keyboardPorts = append(keyboardPorts, c.PortName)
		}
	}
	deviceMgr := midi.NewDeviceManager(keyboardPorts)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go deviceMgr.Run(ctx)

	fmt.Println("m8remote")
	fmt.Printf("Host: %s\n", cfg.Remote.Addr)
	fmt.Println("Connect MIDI controllers any time - they'll be detected automatically")
	fmt.Println("")

	// Create and run TUI
	m := tui.NewModel(dispatcher, deviceMgr, th, cfg.Remote.Addr, bindings)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
