package segapad

import "time"

// Protocol timing.
const (
	// MinReadInterval is how long a six-button pad needs without select
	// edges to reset its cycle counter. Polls closer than this return the
	// cached state.
	MinReadInterval = 3 * time.Millisecond

	// DefaultReadInterval is used when Config.ReadInterval is zero.
	DefaultReadInterval = 4 * time.Millisecond

	// MaxSettleDelay keeps a full six-button poll far below the pad's
	// ~1.5ms counter reset window.
	MaxSettleDelay = 100 * time.Microsecond

	// DefaultSettleDelay suits MCUs clocked at 11MHz and above.
	DefaultSettleDelay = 10 * time.Microsecond
)

// SettleDelayFor returns the delay between a select edge and the sample
// for an MCU running at cpuHz. Values were measured on AVR boards against
// Retro-Bit, 8BitDo M30 and no-name pads.
func SettleDelayFor(cpuHz uint32) time.Duration {
	switch {
	case cpuHz == 0:
		return DefaultSettleDelay
	case cpuHz <= 1000000:
		// A single instruction is already long enough.
		return time.Second / time.Duration(cpuHz)
	case cpuHz < 4000000:
		return 2 * time.Microsecond
	case cpuHz < 6000000:
		return 4 * time.Microsecond
	case cpuHz <= 8000000:
		return 7 * time.Microsecond
	default:
		return DefaultSettleDelay
	}
}
