package segapad

import "strings"

// Button is one bit of the decoded State word.
type Button uint16

// Button definitions. The two lowest bits are status flags rather than
// buttons: Connected reports a pad answering the protocol, SixButton the
// detected controller mode.
const (
	Connected   Button = 1 << 0
	SixButton   Button = 1 << 1
	ButtonStart Button = 1 << 2
	ButtonUp    Button = 1 << 3
	ButtonDown  Button = 1 << 4
	ButtonLeft  Button = 1 << 5
	ButtonRight Button = 1 << 6
	ButtonA     Button = 1 << 7
	ButtonB     Button = 1 << 8
	ButtonC     Button = 1 << 9
	ButtonX     Button = 1 << 10
	ButtonY     Button = 1 << 11
	ButtonZ     Button = 1 << 12
	ButtonHome  Button = 1 << 13 // 8BitDo M30 and similar clones
	ButtonMode  Button = 1 << 14
)

// sixButtonOnly holds the buttons a three-button pad can never report.
const sixButtonOnly = ButtonX | ButtonY | ButtonZ | ButtonMode | ButtonHome

var buttonNames = [...]struct {
	btn  Button
	name string
}{
	{Connected, "on"},
	{SixButton, "6btn"},
	{ButtonUp, "up"},
	{ButtonDown, "down"},
	{ButtonLeft, "left"},
	{ButtonRight, "right"},
	{ButtonA, "a"},
	{ButtonB, "b"},
	{ButtonC, "c"},
	{ButtonX, "x"},
	{ButtonY, "y"},
	{ButtonZ, "z"},
	{ButtonStart, "start"},
	{ButtonMode, "mode"},
	{ButtonHome, "home"},
}

// ButtonByName returns the button (or status flag) with the given short
// name, as printed by State.String.
func ButtonByName(name string) (Button, bool) {
	for _, bn := range buttonNames {
		if bn.name == name {
			return bn.btn, true
		}
	}
	return 0, false
}

// String returns the short name of a single button.
func (b Button) String() string {
	for _, bn := range buttonNames {
		if bn.btn == b {
			return bn.name
		}
	}
	return "?"
}

// State is the decoded controller word: one bit per Button, high = pressed.
type State uint16

// Has reports whether every bit of b is set in s.
func (s State) Has(b Button) bool {
	return s&State(b) == State(b)
}

// Buttons returns s without its status flags.
func (s State) Buttons() State {
	return s &^ State(Connected|SixButton)
}

// String lists the set bits by name, "none" when s is zero.
func (s State) String() string {
	if s == 0 {
		return "none"
	}
	var sb strings.Builder
	for _, bn := range buttonNames {
		if s&State(bn.btn) == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(bn.name)
	}
	return sb.String()
}

// IsDown returns true if the button is currently pressed.
func (c *Controller) IsDown(btn Button) bool {
	return c.state.Has(btn)
}

// Pressed returns true if the button was just pressed (transition from up to down).
// This uses edge detection and only returns true once per button press.
func (c *Controller) Pressed(btn Button) bool {
	return c.changed&State(btn) != 0 && c.state&State(btn) != 0
}

// Released returns true if the button was just released (transition from down to up).
// This uses edge detection and only returns true once per button release.
func (c *Controller) Released(btn Button) bool {
	return c.changed&State(btn) != 0 && c.state&State(btn) == 0
}

// Connected returns true if the last poll found a pad on the port.
func (c *Controller) Connected() bool {
	return c.state.Has(Connected)
}

// SixButton returns true if the pad is believed to be a six-button pad.
// This decides how many cycles the next poll runs.
func (c *Controller) SixButton() bool {
	return c.sixButton
}
