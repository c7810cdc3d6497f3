//go:build tinygo

package segapad

import (
	"machine"
	"runtime/interrupt"
	"time"
)

// MachinePort is the Port of the TinyGo machine package.
type MachinePort struct{}

// Configure sets the mode of a machine pin.
func (MachinePort) Configure(pin Pin, mode PinMode) {
	var m machine.PinMode
	switch mode {
	case PinOutput:
		m = machine.PinOutput
	case PinInputPullup:
		m = machine.PinInputPullup
	default:
		m = machine.PinInput
	}
	machine.Pin(pin).Configure(machine.PinConfig{Mode: m})
}

// Set drives a machine pin.
func (MachinePort) Set(pin Pin, high bool) {
	machine.Pin(pin).Set(high)
}

// Get samples a machine pin.
func (MachinePort) Get(pin Pin) bool {
	return machine.Pin(pin).Get()
}

// ReadLevels reads the pins one after the other. The machine package has no
// port-wide read, the spread between the first and the last sample is a
// handful of instructions and stays far below the settle delay.
func (MachinePort) ReadLevels(pins *[InputLines]Pin) uint8 {
	var v uint8
	for i, p := range pins {
		if machine.Pin(p).Get() {
			v |= 1 << i
		}
	}
	return v
}

// DisableInterrupts masks interrupts.
func (MachinePort) DisableInterrupts() InterruptState {
	return InterruptState(interrupt.Disable())
}

// RestoreInterrupts unmasks interrupts.
func (MachinePort) RestoreInterrupts(state InterruptState) {
	interrupt.Restore(interrupt.State(state))
}

// MachineClock is a Clock backed by the runtime's monotonic timer.
type MachineClock struct {
	start time.Time
}

// NewMachineClock returns a clock counting from now.
func NewMachineClock() *MachineClock {
	return &MachineClock{start: time.Now()}
}

// Millis returns the milliseconds elapsed since the clock was created.
func (c *MachineClock) Millis() uint32 {
	return uint32(time.Since(c.start) / time.Millisecond)
}

// BusyWait spins for d. time.Sleep would hand control to the scheduler,
// which cannot run with interrupts masked. See busyWait for the targets.
func (c *MachineClock) BusyWait(d time.Duration) {
	busyWait(d)
}

// New creates a Controller on machine pins, with the settle delay matched
// to the CPU frequency and internal pull-ups on the inputs.
func New(pins PinConfig) *Controller {
	return NewController(MachinePort{}, NewMachineClock(), pins, Config{
		SettleDelay: SettleDelayFor(machine.CPUFrequency()),
	})
}
