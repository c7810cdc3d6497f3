package padsim

import (
	"sync"
	"time"

	"github.com/mistepien/segapad2usb"
	"github.com/mistepien/segapad2usb/internal/log"
)

// Stats counts the port operations a driver performed on a Bus.
type Stats struct {
	Configures int
	Sets       int
	Toggles    int
	Gets       int
	Reads      int
	// MaskedReads counts ReadLevels calls made with interrupts disabled.
	MaskedReads int
	Masks       int
	Restores    int
}

// Accesses returns the number of operations touching a pin after setup.
func (s Stats) Accesses() int {
	return s.Sets + s.Toggles + s.Gets + s.Reads
}

// Bus is a DB9 port: it implements segapad.Port, segapad.Toggler and
// segapad.Clock. Time only moves through BusyWait and Advance, so runs are
// deterministic.
type Bus struct {
	pins   segapad.PinConfig
	inputs [segapad.InputLines]segapad.Pin

	// ExternalPullUp tells whether the board has resistors on the inputs.
	// Without them and without internal pull-ups an empty port floats low.
	ExternalPullUp bool

	// OnSample, when set, is called for every ReadLevels with the bus
	// time, the select level and the levels read.
	OnSample func(at time.Duration, sel bool, levels uint8)

	mu     sync.Mutex
	pad    *Pad
	modes  map[segapad.Pin]segapad.PinMode
	levels map[segapad.Pin]bool
	now    time.Duration
	masked bool
	stats  Stats
}

// NewBus returns an empty port wired to pins.
func NewBus(pins segapad.PinConfig) *Bus {
	return &Bus{
		pins: pins,
		inputs: [segapad.InputLines]segapad.Pin{
			pins.Pin1, pins.Pin2, pins.Pin3, pins.Pin4, pins.Pin6, pins.Pin9,
		},
		modes:  make(map[segapad.Pin]segapad.PinMode),
		levels: make(map[segapad.Pin]bool),
	}
}

// Plug connects a pad to the port. A nil pad unplugs the current one.
func (b *Bus) Plug(p *Pad) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if p != nil {
		// Power-on: the pad starts in state 0 with whatever select level
		// is on the line, pulled high when nothing drives it.
		sel := true
		if b.isOutput(b.pins.Select) {
			sel = b.levels[b.pins.Select]
		}
		p.powerOn(sel)
	}
	b.pad = p
	log.ModSim.WithField("plugged", p != nil).Debug("port changed")
}

// Pad returns the plugged pad, or nil.
func (b *Bus) Pad() *Pad {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pad
}

// Stats returns the operation counters.
func (b *Bus) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

// ResetStats zeroes the operation counters.
func (b *Bus) ResetStats() {
	b.mu.Lock()
	b.stats = Stats{}
	b.mu.Unlock()
}

// Masked reports whether interrupts are currently disabled.
func (b *Bus) Masked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.masked
}

// Mode returns the mode a pin was configured with.
func (b *Bus) Mode(pin segapad.Pin) (segapad.PinMode, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, ok := b.modes[pin]
	return m, ok
}

// Now returns the bus time.
func (b *Bus) Now() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.now
}

// Advance moves the bus time forward.
func (b *Bus) Advance(d time.Duration) {
	b.mu.Lock()
	b.now += d
	b.mu.Unlock()
}

func (b *Bus) Configure(pin segapad.Pin, mode segapad.PinMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats.Configures++
	b.modes[pin] = mode
}

func (b *Bus) Set(pin segapad.Pin, high bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats.Sets++
	b.set(pin, high)
}

func (b *Bus) Toggle(pin segapad.Pin) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats.Toggles++
	b.set(pin, !b.levels[pin])
}

// isOutput reports whether pin was configured as an output. PinOutput is
// the zero PinMode, so a pin never configured must not be mistaken for one.
func (b *Bus) isOutput(pin segapad.Pin) bool {
	m, ok := b.modes[pin]
	return ok && m == segapad.PinOutput
}

func (b *Bus) set(pin segapad.Pin, high bool) {
	if !b.isOutput(pin) {
		return
	}
	b.levels[pin] = high
	if pin == b.pins.Select && b.pad != nil {
		b.pad.setSelect(high, b.now)
	}
}

func (b *Bus) Get(pin segapad.Pin) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats.Gets++
	return b.level(pin)
}

func (b *Bus) ReadLevels(pins *[segapad.InputLines]segapad.Pin) uint8 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats.Reads++
	if b.masked {
		b.stats.MaskedReads++
	}

	var v uint8
	for i, p := range pins {
		if b.level(p) {
			v |= 1 << i
		}
	}
	if b.OnSample != nil {
		b.OnSample(b.now, b.levels[b.pins.Select], v)
	}
	return v
}

// level returns what a pin reads right now.
func (b *Bus) level(pin segapad.Pin) bool {
	if b.isOutput(pin) {
		return b.levels[pin]
	}
	mode := b.modes[pin]

	for line, in := range b.inputs {
		if in != pin {
			continue
		}
		if b.pad != nil {
			return b.pad.output(b.now)&(1<<line) != 0
		}
		break
	}
	// Nothing drives the line.
	return mode == segapad.PinInputPullup || b.ExternalPullUp
}

func (b *Bus) DisableInterrupts() segapad.InterruptState {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats.Masks++
	prev := b.masked
	b.masked = true
	if prev {
		return 1
	}
	return 0
}

func (b *Bus) RestoreInterrupts(state segapad.InterruptState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats.Restores++
	b.masked = state != 0
}

func (b *Bus) Millis() uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return uint32(b.now / time.Millisecond)
}

func (b *Bus) BusyWait(d time.Duration) {
	b.Advance(d)
}
