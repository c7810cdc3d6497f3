package segapad

// Input line indices, in DB9 pin order.
const (
	line1 = iota // DB9 pin 1
	line2        // DB9 pin 2
	line3        // DB9 pin 3
	line4        // DB9 pin 4
	line6        // DB9 pin 6
	line9        // DB9 pin 9
)

// cycleRule sets out when every line in lines reads active on cycle.
type cycleRule struct {
	cycle uint8
	lines uint8 // bitmask of input lines, all must be active
	out   Button
}

func lines(l ...uint8) uint8 {
	var m uint8
	for _, i := range l {
		m |= 1 << i
	}
	return m
}

// The presence rule must stay first, decode stops right after it when no
// pad answers.
// Cycles 2 and 3 repeat 0 and 1 and are only run to advance the pad's
// internal counter.
var cycleTable = [...]cycleRule{
	{cycleProbe, lines(line3, line4), Connected},

	{cycleProbe, lines(line6), ButtonA},
	{cycleProbe, lines(line9), ButtonStart},

	{cycleDPad, lines(line1), ButtonUp},
	{cycleDPad, lines(line2), ButtonDown},
	{cycleDPad, lines(line3), ButtonLeft},
	{cycleDPad, lines(line4), ButtonRight},
	{cycleDPad, lines(line6), ButtonB},
	{cycleDPad, lines(line9), ButtonC},

	{cycleModeProbe, lines(line1, line2), SixButton},

	{cycleExtra, lines(line1), ButtonZ},
	{cycleExtra, lines(line2), ButtonY},
	{cycleExtra, lines(line3), ButtonX},
	{cycleExtra, lines(line4), ButtonMode},

	{cycleHome, lines(line1), ButtonHome},
}

// decode turns the raw samples of one poll into a State. Only the first
// len(samples) cycles are looked at; rules for cycles that were not run
// never fire. The mode the next poll should use is State.Has(SixButton).
func decode(samples []uint8) State {
	var s State
	for i, r := range cycleTable {
		if int(r.cycle) >= len(samples) {
			continue
		}
		// Inputs are pulled up and the pad pulls a line low for "pressed".
		active := ^samples[r.cycle]
		if active&r.lines == r.lines {
			s |= State(r.out)
		}
		if i == 0 && s == 0 {
			// Nothing answering on the port.
			return 0
		}
	}

	s = clearOpposing(s, ButtonUp|ButtonDown)
	s = clearOpposing(s, ButtonLeft|ButtonRight)

	if !s.Has(SixButton) {
		s &^= State(sixButtonOnly)
	}
	if !s.Has(Connected) {
		return 0
	}
	return s
}

// clearOpposing releases both directions of an axis when both read pressed.
func clearOpposing(s State, axis Button) State {
	if s.Has(axis) {
		return s &^ State(axis)
	}
	return s
}
