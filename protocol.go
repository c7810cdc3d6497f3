package segapad

// Cycle indices. The select line idles high; cycle i drives it low when i
// is even and high when i is odd.
const (
	cycleProbe     = 0 // select low: presence, A, Start
	cycleDPad      = 1 // select high: D-pad, B, C
	cycleModeProbe = 4 // select low: lines 1-4 all low on a six-button pad
	cycleExtra     = 5 // select high: Z, Y, X, Mode
	cycleHome      = 6 // select low: Home

	cycles3Button = 5
	cycles6Button = 7
	maxCycles     = 8
)

// selectLevel returns the select level of a cycle.
func selectLevel(cycle int) bool {
	return cycle&1 == 1
}

// runCycles walks the select line through n cycles and stores one sample of
// the six input lines per cycle. It is the timing sensitive part of the
// protocol: the pad changes its outputs shortly after every select edge, so
// an interrupt between an edge and its sample garbles the read.
func (c *Controller) runCycles(samples *[maxCycles]uint8, n int) {
	state := c.port.DisableInterrupts()
	defer c.port.RestoreInterrupts(state)

	for cycle := 0; cycle < n; cycle++ {
		c.drive(cycle)
		c.clock.BusyWait(c.settleDelay)
		samples[cycle] = c.port.ReadLevels(&c.inputs)
	}

	// Back to idle. n is odd so select is low here.
	c.drive(n)
}

// drive puts the select line in the level of the given cycle. With a
// Toggler the level is reached by inverting the previous one, which relies
// on cycles being driven in order starting from idle high.
func (c *Controller) drive(cycle int) {
	if c.toggler != nil {
		c.toggler.Toggle(c.pins.Select)
		return
	}
	c.port.Set(c.pins.Select, selectLevel(cycle))
}
