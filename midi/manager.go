package midi

import (
	"context"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// DeviceEvent is emitted when controllers connect/disconnect
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// DeviceManager handles hot-plug detection of MIDI controllers. Launchpads
// are picked up automatically; other inputs connect as keyboards when their
// port name is listed in keyboardPorts.
type DeviceManager struct {
	controllers   map[string]Controller
	mu            sync.RWMutex
	events        chan DeviceEvent
	pollRate      time.Duration
	keyboardPorts []string
}

// NewDeviceManager creates a new device manager
func NewDeviceManager(keyboardPorts []string) *DeviceManager {
	return &DeviceManager{
		controllers:   make(map[string]Controller),
		events:        make(chan DeviceEvent, 16),
		pollRate:      time.Second,
		keyboardPorts: keyboardPorts,
	}
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Controllers returns a snapshot of connected controllers
func (dm *DeviceManager) Controllers() map[string]Controller {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	copy := make(map[string]Controller, len(dm.controllers))
	for k, v := range dm.controllers {
		copy[k] = v
	}
	return copy
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

func (dm *DeviceManager) scan() {
	// Get current MIDI ports with timeout (CoreMIDI can hang)
	type portsResult struct {
		inPorts  []drivers.In
		outPorts []drivers.Out
	}

	ch := make(chan portsResult, 1)
	go func() {
		inPorts := gomidi.GetInPorts()
		outPorts := gomidi.GetOutPorts()
		ch <- portsResult{inPorts: inPorts, outPorts: outPorts}
	}()

	var inPorts []drivers.In
	var outPorts []drivers.Out

	select {
	case result := <-ch:
		inPorts = result.inPorts
		outPorts = result.outPorts
	case <-time.After(3 * time.Second):
		// CoreMIDI is hung - skip this scan
		// User needs to run: sudo killall coreaudiod midiserver
		return
	}

	seenIDs := make(map[string]bool)

	for i, inPort := range inPorts {
		id := inPort.String()

		switch {
		case isLaunchpad(id):
			seenIDs[id] = true
			if dm.has(id) {
				continue
			}

			// Find matching output port for LED feedback
			var outPort drivers.Out
			for j, op := range outPorts {
				if strings.EqualFold(op.String(), id) {
					outPort = outPorts[j]
					break
				}
			}

			lp, err := NewLaunchpadController(id, inPorts[i], outPort)
			if err != nil {
				continue
			}
			dm.add(id, lp)

		case dm.isKeyboardPort(id):
			seenIDs[id] = true
			if dm.has(id) {
				continue
			}

			kb, err := NewKeyboardController(id, inPorts[i])
			if err != nil {
				continue
			}
			dm.add(id, kb)
		}
	}

	// Check for disconnects
	dm.mu.Lock()
	var toRemove []string
	for id := range dm.controllers {
		if !seenIDs[id] {
			toRemove = append(toRemove, id)
		}
	}
	for _, id := range toRemove {
		c := dm.controllers[id]
		c.Close()
		delete(dm.controllers, id)
		dm.events <- DeviceEvent{
			Type: DeviceDisconnected,
			ID:   id,
		}
	}
	dm.mu.Unlock()
}

func (dm *DeviceManager) has(id string) bool {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	_, ok := dm.controllers[id]
	return ok
}

func (dm *DeviceManager) add(id string, c Controller) {
	dm.mu.Lock()
	dm.controllers[id] = c
	dm.mu.Unlock()

	dm.events <- DeviceEvent{
		Type:       DeviceConnected,
		Controller: c,
		ID:         id,
	}
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = make(map[string]Controller)
}

func (dm *DeviceManager) isKeyboardPort(name string) bool {
	for _, p := range dm.keyboardPorts {
		if strings.EqualFold(p, name) {
			return true
		}
	}
	return false
}

func isLaunchpad(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "launchpad") && strings.Contains(name, "midi")
}
