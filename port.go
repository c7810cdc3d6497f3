package segapad

import "time"

// Pin identifies a GPIO line. Its meaning is up to the Port implementation;
// on TinyGo it is a machine.Pin number.
type Pin uint8

// PinMode is the direction and pull setting of a line.
type PinMode uint8

const (
	PinOutput      PinMode = iota // push-pull output (select line)
	PinInput                      // plain input, pull-up supplied externally
	PinInputPullup                // input with the MCU's internal pull-up
)

// InterruptState is the opaque value returned by DisableInterrupts and
// handed back to RestoreInterrupts.
type InterruptState uintptr

// Port is the GPIO interface the driver uses to talk to the DB9 connector.
// Platform-specific implementations handle actual hardware control.
type Port interface {
	// Configure sets the direction and pull of a pin.
	Configure(pin Pin, mode PinMode)

	// Set drives an output pin high (true) or low (false).
	Set(pin Pin, high bool)

	// Get samples the level of a single pin.
	Get(pin Pin) bool

	// ReadLevels samples all given pins at the same instant and returns
	// their levels as a bitfield, bit i holding the level of pins[i].
	ReadLevels(pins *[InputLines]Pin) uint8

	// DisableInterrupts masks interrupts and returns the previous state.
	DisableInterrupts() InterruptState

	// RestoreInterrupts restores the state returned by DisableInterrupts.
	RestoreInterrupts(state InterruptState)
}

// Toggler is implemented by ports able to invert an output pin with a single
// write (for example the AVR PINx register). When the Port passed to
// NewController also implements Toggler, the select line is toggled instead
// of being driven to an explicit level on each cycle.
type Toggler interface {
	Toggle(pin Pin)
}

// Clock is the timing source of the driver.
type Clock interface {
	// Millis returns a monotonic millisecond counter. It may wrap.
	Millis() uint32

	// BusyWait spins for d without yielding. It is called with interrupts
	// disabled and must not sleep.
	BusyWait(d time.Duration)
}
