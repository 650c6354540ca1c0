package widgets

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"m8remote/key"
	"m8remote/theme"
)

// padCell is one clickable key region at a fixed position.
type padCell struct {
	x, y  int
	label string
	key   key.Key
}

// ControlPad renders the eight M8 surface keys as a clickable widget:
// a direction diamond on the left, the command keys on the right.
type ControlPad struct {
	cells []padCell
	held  key.Mask
}

func NewControlPad() *ControlPad {
	return &ControlPad{
		cells: []padCell{
			{x: 5, y: 0, label: "▲", key: key.Up},
			{x: 1, y: 1, label: "◀", key: key.Left},
			{x: 5, y: 1, label: "▼", key: key.Down},
			{x: 9, y: 1, label: "▶", key: key.Right},
			{x: 16, y: 0, label: "OPTION", key: key.Option},
			{x: 25, y: 0, label: "EDIT", key: key.Edit},
			{x: 16, y: 1, label: "SELECT", key: key.Select},
			{x: 25, y: 1, label: "START", key: key.Start},
		},
	}
}

// SetHeld updates which keys render as held.
func (p *ControlPad) SetHeld(m key.Mask) {
	p.held = m
}

// Held returns the mask currently rendered as held.
func (p *ControlPad) Held() key.Mask {
	return p.held
}

// Height is the number of terminal rows the widget occupies.
func (p *ControlPad) Height() int {
	return 2
}

// HitTest maps widget-relative coordinates to a key.
func (p *ControlPad) HitTest(x, y int) (key.Key, bool) {
	for _, c := range p.cells {
		if y == c.y && x >= c.x && x < c.x+utf8.RuneCountInString(c.label) {
			return c.key, true
		}
	}
	return 0, false
}

func (p *ControlPad) View(th *theme.Theme) string {
	dirStyle := lipgloss.NewStyle().Foreground(th.Accent())
	cmdStyle := lipgloss.NewStyle().Foreground(th.FG())
	heldStyle := lipgloss.NewStyle().Foreground(th.Held()).Reverse(true)

	lines := make([]strings.Builder, p.Height())
	cols := make([]int, p.Height())

	// Cells are ordered left to right within each row.
	for _, c := range p.cells {
		for cols[c.y] < c.x {
			lines[c.y].WriteByte(' ')
			cols[c.y]++
		}

		style := cmdStyle
		if isDirection(c.key) {
			style = dirStyle
		}
		if p.held.Has(c.key) {
			style = heldStyle
		}

		lines[c.y].WriteString(style.Render(c.label))
		cols[c.y] += utf8.RuneCountInString(c.label)
	}

	out := make([]string, len(lines))
	for i := range lines {
		out[i] = lines[i].String()
	}
	return strings.Join(out, "\n")
}

func isDirection(k key.Key) bool {
	switch k {
	case key.Up, key.Down, key.Left, key.Right:
		return true
	}
	return false
}
