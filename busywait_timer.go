//go:build tinygo && !avr

package segapad

import "time"

// busyWait spins on the runtime timer. On RP2040, SAMD and nRF chips that
// timer is a free-running hardware counter, so it keeps counting while
// interrupts are masked.
func busyWait(d time.Duration) {
	t0 := time.Now()
	for time.Since(t0) < d {
	}
}
