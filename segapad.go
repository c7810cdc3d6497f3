// Package segapad provides a driver for Sega Genesis / Mega Drive
// controllers.
package segapad

import "time"

// InputLines is the number of DB9 lines the pad multiplexes buttons onto.
const InputLines = 6

// PinConfig holds the pin configuration for the DB9 controller port.
type PinConfig struct {
	Select Pin // DB9 pin 7, output
	Pin1   Pin // Up / Z
	Pin2   Pin // Down / Y
	Pin3   Pin // Left / X
	Pin4   Pin // Right / Mode
	Pin6   Pin // A / B
	Pin9   Pin // Start / C
}

// Config holds the tunables of a Controller. The zero value is usable.
type Config struct {
	// SettleDelay is the wait between a select edge and sampling the
	// inputs. Zero means DefaultSettleDelay; see SettleDelayFor.
	SettleDelay time.Duration

	// ReadInterval is the minimum time between two polls of the pad.
	// Zero means DefaultReadInterval, anything below MinReadInterval is
	// raised to it.
	ReadInterval time.Duration

	// ExternalPullUp leaves the inputs as plain inputs for boards with
	// pull-up resistors on the port. Otherwise the internal pull-ups are
	// enabled.
	ExternalPullUp bool
}

// Controller is the session state of one pad: the last decoded state, the
// time it was read and the believed controller mode.
//
// A Controller is not safe for concurrent use.
type Controller struct {
	port    Port
	toggler Toggler
	clock   Clock
	pins    PinConfig
	inputs  [InputLines]Pin

	settleDelay  time.Duration
	readInterval time.Duration
	pullMode     PinMode

	state     State
	changed   State // XOR of previous and current state
	sixButton bool
	lastRead  uint32
}

// NewController creates a Controller talking to the pad through port and
// configures its pins.
func NewController(port Port, clock Clock, pins PinConfig, cfg Config) *Controller {
	c := &Controller{
		port:  port,
		clock: clock,
		pins:  pins,
		inputs: [InputLines]Pin{
			pins.Pin1, pins.Pin2, pins.Pin3, pins.Pin4, pins.Pin6, pins.Pin9,
		},
		settleDelay:  cfg.SettleDelay,
		readInterval: cfg.ReadInterval,
		pullMode:     PinInputPullup,
	}
	if t, ok := port.(Toggler); ok {
		c.toggler = t
	}

	if c.settleDelay <= 0 {
		c.settleDelay = DefaultSettleDelay
	}
	if c.settleDelay > MaxSettleDelay {
		c.settleDelay = MaxSettleDelay
	}
	if c.readInterval == 0 {
		c.readInterval = DefaultReadInterval
	}
	if c.readInterval < MinReadInterval {
		c.readInterval = MinReadInterval
	}
	if cfg.ExternalPullUp {
		c.pullMode = PinInput
	}

	c.init()

	// The select edge driven by init lands inside the pad's counter reset
	// window. Until ReadInterval has passed GetState returns the zero State.
	c.lastRead = c.clock.Millis()
	return c
}

// init configures the GPIO pins and sets their initial states.
func (c *Controller) init() {
	c.port.Configure(c.pins.Select, PinOutput)
	c.port.Set(c.pins.Select, true)

	for _, p := range c.inputs {
		c.port.Configure(p, c.pullMode)
	}
}

// SettleDelay returns the settle delay in use.
func (c *Controller) SettleDelay() time.Duration { return c.settleDelay }

// ReadInterval returns the minimum interval between two polls.
func (c *Controller) ReadInterval() time.Duration { return c.readInterval }

// GetState polls the pad and returns its decoded state.
//
// When called again before ReadInterval has elapsed it returns the previous
// state without touching the port. This holds for the first call too: the
// pad is polled for the first time ReadInterval after NewController, and
// calls before that return the zero State. An unplugged pad is reported as
// the zero State and resets the believed mode to three buttons.
func (c *Controller) GetState() State {
	now := c.clock.Millis()
	if time.Duration(now-c.lastRead)*time.Millisecond < c.readInterval {
		c.changed = 0
		return c.state
	}

	n := cycles3Button
	if c.sixButton {
		n = cycles6Button
	}

	var samples [maxCycles]uint8
	c.runCycles(&samples, n)
	s := decode(samples[:n])

	c.changed = c.state ^ s
	c.state = s
	c.sixButton = s.Has(SixButton)
	c.lastRead = c.clock.Millis()
	return s
}
