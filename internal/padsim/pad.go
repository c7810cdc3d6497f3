// Package padsim models a DB9 controller port with a Sega pad plugged in.
// It stands in for the GPIO hardware on hosts without one.
package padsim

import (
	"sync"
	"time"

	"github.com/mistepien/segapad2usb"
	"github.com/mistepien/segapad2usb/internal/log"
)

// ResetTimeout is the time after which a six-button pad with no select
// edges resets its state counter. The real hardware uses an RC circuit, so
// this is approximate.
const ResetTimeout = 1500 * time.Microsecond

// Pad is a 3-button or 6-button pad. It is safe for concurrent use: buttons
// may be pressed and released from one goroutine while a Bus polls the pad
// from another.
//
// The six-button pad uses an 8-state counter advanced by select edges:
//
//	State 0,2,4 (select high): C, B, Right, Left, Down, Up
//	State 1,3   (select low):  Start, A, 0, 0, Down, Up
//	State 5     (select low):  Start, A, 0, 0, 0, 0  (detection)
//	State 6     (select high): C, B, Mode, X, Y, Z   (extra buttons)
//	State 7     (select low):  Start, A, 1, 1, 1, Home
type Pad struct {
	sixButton bool

	// mu guards everything below.
	mu       sync.Mutex
	held     segapad.State
	sel      bool          // select level seen by the pad
	counter  uint8         // six-button state counter (0-7)
	lastEdge time.Duration // bus time of the last select edge
	edges    bool          // at least one edge since power-on
}

// NewPad returns a released pad.
func NewPad(sixButton bool) *Pad {
	return &Pad{
		sixButton: sixButton,
		sel:       true, // select pulled high at power-on
	}
}

// SixButton reports the pad model.
func (p *Pad) SixButton() bool { return p.sixButton }

// Press holds down the given buttons.
func (p *Pad) Press(b segapad.Button) {
	p.mu.Lock()
	p.held |= segapad.State(b)
	p.mu.Unlock()
}

// Release lets go of the given buttons.
func (p *Pad) Release(b segapad.Button) {
	p.mu.Lock()
	p.held &^= segapad.State(b)
	p.mu.Unlock()
}

// Hold replaces the set of held buttons.
func (p *Pad) Hold(s segapad.State) {
	p.mu.Lock()
	p.held = s.Buttons()
	p.mu.Unlock()
}

// Held returns the buttons currently held.
func (p *Pad) Held() segapad.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.held
}

// Counter returns the six-button state counter.
func (p *Pad) Counter() uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counter
}

// powerOn resets the pad as if it was just plugged into a port whose select
// line sits at sel.
func (p *Pad) powerOn(sel bool) {
	p.mu.Lock()
	p.sel = sel
	p.counter = 0
	p.edges = false
	p.mu.Unlock()
}

func (p *Pad) timedOut(now time.Duration) bool {
	return p.edges && now-p.lastEdge >= ResetTimeout
}

// setSelect feeds a select level to the pad at bus time now.
func (p *Pad) setSelect(high bool, now time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.sixButton {
		p.sel = high
		return
	}
	if high == p.sel {
		return
	}
	if p.timedOut(now) {
		if p.counter != 0 {
			log.ModSim.WithField("state", p.counter).Debug("pad counter reset")
		}
		// Back to idle: the first high level after a reset is not an edge.
		p.counter = 0
		p.sel = true
		if high {
			return
		}
	}
	p.counter = (p.counter + 1) & 0x07
	p.sel = high
	p.lastEdge = now
	p.edges = true
}

// output returns the levels the pad drives on the six input lines, bit i
// for line i (DB9 pins 1,2,3,4,6,9). Active low: 0 = pressed.
func (p *Pad) output(now time.Duration) uint8 {
	p.mu.Lock()
	held := p.held
	state := p.counter
	if !p.sixButton {
		state = 1
		if p.sel {
			state = 0
		}
	} else if p.timedOut(now) {
		state = 0
	}
	p.mu.Unlock()

	var out uint8 = 0x3F
	press := func(b segapad.Button, line uint) {
		if held.Has(b) {
			out &^= 1 << line
		}
	}

	switch state {
	case 0, 2, 4:
		press(segapad.ButtonUp, 0)
		press(segapad.ButtonDown, 1)
		press(segapad.ButtonLeft, 2)
		press(segapad.ButtonRight, 3)
		press(segapad.ButtonB, 4)
		press(segapad.ButtonC, 5)
	case 1, 3:
		out &^= 0x0C
		press(segapad.ButtonUp, 0)
		press(segapad.ButtonDown, 1)
		press(segapad.ButtonA, 4)
		press(segapad.ButtonStart, 5)
	case 5:
		out &^= 0x0F
		press(segapad.ButtonA, 4)
		press(segapad.ButtonStart, 5)
	case 6:
		press(segapad.ButtonZ, 0)
		press(segapad.ButtonY, 1)
		press(segapad.ButtonX, 2)
		press(segapad.ButtonMode, 3)
		press(segapad.ButtonB, 4)
		press(segapad.ButtonC, 5)
	case 7:
		press(segapad.ButtonHome, 0)
		press(segapad.ButtonA, 4)
		press(segapad.ButtonStart, 5)
	}
	return out
}
