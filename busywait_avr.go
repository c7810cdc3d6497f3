//go:build tinygo && avr

package segapad

import (
	"device/avr"
	"machine"
	"time"
)

// busyWait counts CPU cycles. The AVR runtime extends its tick count from
// the timer overflow interrupt, which does not run while sampling, so the
// timer cannot be used here.
//
// One iteration takes at least four cycles: the wait may run long, never
// short.
func busyWait(d time.Duration) {
	n := uint32(d/time.Microsecond) * (machine.CPUFrequency() / 1000000) / 4
	for i := uint32(0); i < n; i++ {
		avr.Asm("nop")
	}
}
