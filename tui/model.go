package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"m8remote/key"
	"m8remote/midi"
	"m8remote/remote"
	"m8remote/theme"
	"m8remote/widgets"
)

// sendTimeout bounds one remote call issued from the UI.
const sendTimeout = 5 * time.Second

// layoutBounds holds cached layout info
type layoutBounds struct {
	padTop    int
	padHeight int
}

type Model struct {
	Dispatcher *remote.Dispatcher
	DeviceMgr  *midi.DeviceManager
	Theme      *theme.Theme

	addr       string
	bindings   map[string]key.Key
	pad        *widgets.ControlPad
	held       key.Mask // keys toggled held from this UI
	lastEvent  string
	lastErr    error
	controller midi.Controller // current controller (may be nil)
	quitting   bool
	mouseX     int
	mouseY     int
	tooltip    string
	bounds     *layoutBounds
}

// sentMsg reports the outcome of one remote call issued from the UI.
type sentMsg struct {
	desc string
	kind remote.Kind
	mask key.Mask
	err  error
}

type DeviceEventMsg midi.DeviceEvent

func NewModel(dispatcher *remote.Dispatcher, deviceMgr *midi.DeviceManager, th *theme.Theme, addr string, bindings map[string]key.Key) Model {
	return Model{
		Dispatcher: dispatcher,
		DeviceMgr:  deviceMgr,
		Theme:      th,
		addr:       addr,
		bindings:   bindings,
		pad:        widgets.NewControlPad(),
		bounds:     &layoutBounds{},
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event := <-deviceMgr.Events()
		return DeviceEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForDevices(m.DeviceMgr)
}

// send wraps one dispatcher call in a command so the UI never blocks on the
// network.
func (m Model) send(desc string, kind remote.Kind, mask key.Mask, call func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		return sentMsg{desc: desc, kind: kind, mask: mask, err: call(ctx)}
	}
}

func (m Model) press(k key.Key) tea.Cmd {
	mask := k.Mask()
	return m.send("press "+k.String(), remote.KindKeyPress, mask, func(ctx context.Context) error {
		return m.Dispatcher.SendPress(ctx, mask)
	})
}

// toggleHold holds k, or releases it if this UI already holds it.
func (m Model) toggleHold(k key.Key) tea.Cmd {
	mask := k.Mask()
	if m.held.Has(k) {
		return m.send("release "+k.String(), remote.KindKeyRelease, mask, func(ctx context.Context) error {
			return m.Dispatcher.SendRelease(ctx, mask)
		})
	}
	return m.send("hold "+k.String(), remote.KindKeyHold, mask, func(ctx context.Context) error {
		return m.Dispatcher.SendHold(ctx, mask)
	})
}

// releaseHeld returns a command releasing everything this UI holds, for a
// clean exit.
func (m Model) releaseHeld() tea.Cmd {
	if m.held.IsEmpty() {
		return nil
	}
	mask := m.held
	return m.send("release "+mask.String(), remote.KindKeyRelease, mask, func(ctx context.Context) error {
		return m.Dispatcher.SendRelease(ctx, mask)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		s := msg.String()

		switch s {
		case "q", "ctrl+c":
			m.quitting = true
			if rel := m.releaseHeld(); rel != nil {
				return m, tea.Sequence(rel, tea.Quit)
			}
			return m, tea.Quit

		case "d":
			return m, m.send("press Edit+Option (delete)", remote.KindKeyPress, key.Edit.Mask().With(key.Option), func(ctx context.Context) error {
				return m.Dispatcher.PressDelete(ctx)
			})

		case "e":
			return m, m.send("enable", remote.KindEnable, 0, m.Dispatcher.Enable)

		case "r":
			return m, m.send("reset", remote.KindReset, 0, m.Dispatcher.Reset)
		}

		// alt+<binding> toggles holding the bound key.
		if trigger, ok := strings.CutPrefix(s, "alt+"); ok {
			if k, bound := m.bindings[trigger]; bound {
				return m, m.toggleHold(k)
			}
			return m, nil
		}

		if k, bound := m.bindings[s]; bound {
			return m, m.press(k)
		}

	case tea.MouseMsg:
		m.mouseX, m.mouseY = msg.X, msg.Y
		k, hit := m.hitTest(msg.X, msg.Y)
		if hit {
			m.tooltip = fmt.Sprintf("click: press %s (mask %d)", k, uint8(k.Mask()))
		} else {
			m.tooltip = ""
		}
		if hit && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return m, m.press(k)
		}

	case sentMsg:
		m.lastErr = msg.err
		if msg.err != nil {
			m.lastEvent = msg.desc + " failed"
			return m, nil
		}
		m.lastEvent = msg.desc
		switch msg.kind {
		case remote.KindKeyHold:
			m.held = m.held | msg.mask
		case remote.KindKeyRelease:
			m.held = m.held &^ msg.mask
		}
		m.pad.SetHeld(m.held)

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		if event.Type == midi.DeviceConnected {
			m.controller = event.Controller

			// Forward hardware key events until the controller goes away.
			bridge := midi.NewBridge(m.Dispatcher)
			go bridge.Run(context.Background(), event.Controller)
		} else if event.Type == midi.DeviceDisconnected {
			if m.controller != nil && m.controller.ID() == event.ID {
				m.controller = nil
			}
		}
		return m, ListenForDevices(m.DeviceMgr)
	}

	return m, nil
}

func (m Model) hitTest(x, y int) (key.Key, bool) {
	if y >= m.bounds.padTop && y < m.bounds.padTop+m.bounds.padHeight {
		return m.pad.HitTest(x, y-m.bounds.padTop)
	}
	return 0, false
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	errStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())
	tooltipStyle := lipgloss.NewStyle().
		Foreground(m.Theme.FG()).
		Background(m.Theme.Muted()).
		Padding(0, 1)

	deviceStatus := ""
	if m.controller != nil {
		deviceStatus = "  midi:connected"
	}

	header := headerStyle.Render(fmt.Sprintf("m8remote  %s%s", m.addr, deviceStatus))

	status := ""
	switch {
	case m.lastErr != nil:
		status = errStyle.Render(fmt.Sprintf("%s: %v", m.lastEvent, m.lastErr))
	case m.lastEvent != "":
		status = dimStyle.Render(m.lastEvent)
	}

	padView := m.pad.View(m.Theme)

	heldLine := ""
	if !m.held.IsEmpty() {
		heldLine = dimStyle.Render("holding: " + m.held.String())
	}

	help := dimStyle.Render("z/x:edit/opt  arrows:move  enter:start  tab:select  alt+key:hold  d:delete  e:enable  r:reset  q:quit")

	// Compute layout bounds for mouse hit testing
	headerHeight := lipgloss.Height(header)
	m.bounds.padTop = 1 + headerHeight + 1
	m.bounds.padHeight = m.pad.Height()

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(padView)
	out.WriteString("\n\n")
	if heldLine != "" {
		out.WriteString(heldLine)
		out.WriteString("\n")
	}
	if status != "" {
		out.WriteString(status)
		out.WriteString("\n")
	}
	out.WriteString("\n")
	out.WriteString(help)

	if m.tooltip != "" {
		out.WriteString("\n")
		out.WriteString(tooltipStyle.Render(m.tooltip))
	}

	return out.String()
}
