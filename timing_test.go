package segapad

import (
	"testing"
	"time"
)

func TestSettleDelayFor(t *testing.T) {
	tests := []struct {
		hz   uint32
		want time.Duration
	}{
		{0, DefaultSettleDelay},
		{500000, 2 * time.Microsecond},
		{1000000, time.Microsecond},
		{2000000, 2 * time.Microsecond},
		{3686400, 2 * time.Microsecond},
		{4000000, 4 * time.Microsecond},
		{7372800, 7 * time.Microsecond},
		{8000000, 7 * time.Microsecond},
		{16000000, 10 * time.Microsecond},
		{125000000, 10 * time.Microsecond},
	}
	for _, tt := range tests {
		if got := SettleDelayFor(tt.hz); got != tt.want {
			t.Errorf("SettleDelayFor(%d) = %v, want %v", tt.hz, got, tt.want)
		}
	}
}

func TestSixButtonPollFitsResetWindow(t *testing.T) {
	// The pad resets its counter after ~1.5ms without edges; a whole poll
	// must stay well below that even with the longest settle delay.
	if d := cycles6Button * MaxSettleDelay; d >= 1500*time.Microsecond {
		t.Errorf("6 button poll takes %v", d)
	}
}
