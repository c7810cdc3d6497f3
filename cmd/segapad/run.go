package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-faster/jx"
	"golang.org/x/sync/errgroup"

	"github.com/mistepien/segapad2usb"
	"github.com/mistepien/segapad2usb/internal/config"
	"github.com/mistepien/segapad2usb/internal/log"
	"github.com/mistepien/segapad2usb/internal/padsim"
)

type pollResult struct {
	Port  string
	At    time.Duration
	State segapad.State
}

func newPad(model string) *padsim.Pad {
	switch model {
	case config.Pad3Btn:
		return padsim.NewPad(false)
	case config.Pad6Btn:
		return padsim.NewPad(true)
	}
	return nil
}

// simulatePort polls the pad of one port p.Polls times, one read interval
// apart and starting one read interval after power-on, applying the
// scripted steps as bus time passes them.
func simulatePort(cfg *config.Config, p config.Port) ([]pollResult, error) {
	pins := p.Pins.PinConfig()
	bus := padsim.NewBus(pins)
	bus.ExternalPullUp = p.ExternalPullUp
	bus.Plug(newPad(p.Pad))

	c := segapad.NewController(bus, bus, pins, cfg.Driver(p))
	modlog := log.ModPoll.WithField("port", p.Name)

	steps := p.Steps
	res := make([]pollResult, 0, p.Polls)
	for i := 0; i < p.Polls; i++ {
		bus.Advance(c.ReadInterval())
		now := bus.Now()
		for len(steps) > 0 && time.Duration(steps[0].At) <= now {
			if err := applyStep(bus, steps[0]); err != nil {
				return nil, fmt.Errorf("port %s: %w", p.Name, err)
			}
			steps = steps[1:]
		}

		s := c.GetState()
		modlog.WithFields(log.Fields{"t": now, "six": c.SixButton()}).Debug(s)
		res = append(res, pollResult{Port: p.Name, At: now, State: s})
	}
	return res, nil
}

// applyStep swaps the pad if the step names one, then holds the step's
// buttons. Hold is the whole set of buttons held from then on.
func applyStep(bus *padsim.Bus, st config.Step) error {
	held, err := st.Buttons()
	if err != nil {
		return err
	}
	if st.Pad != "" {
		bus.Plug(newPad(st.Pad))
	}
	if pad := bus.Pad(); pad != nil {
		pad.Hold(held)
	}
	return nil
}

// runPorts simulates every port on its own goroutine and writes the
// results port by port, in configuration order.
func runPorts(cfg config.Config, w io.Writer, asJSON bool) error {
	results := make([][]pollResult, len(cfg.Ports))

	var g errgroup.Group
	for i, p := range cfg.Ports {
		i, p := i, p
		g.Go(func() error {
			res, err := simulatePort(&cfg, p)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var buf bytes.Buffer
	for _, res := range results {
		for _, r := range res {
			if asJSON {
				writeJSON(&buf, r)
			} else {
				writeText(&buf, r)
			}
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func buttonNames(s segapad.State) []string {
	if s.Buttons() == 0 {
		return nil
	}
	return strings.Fields(s.Buttons().String())
}

func writeText(w io.Writer, r pollResult) {
	fmt.Fprintf(w, "%-8s %9.3fms  %s\n", r.Port, float64(r.At)/float64(time.Millisecond), r.State)
}

func writeJSON(w io.Writer, r pollResult) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("port")
	e.Str(r.Port)
	e.FieldStart("t_us")
	e.Int(int(r.At / time.Microsecond))
	e.FieldStart("word")
	e.Int(int(r.State))
	e.FieldStart("connected")
	e.Bool(r.State.Has(segapad.Connected))
	e.FieldStart("six_button")
	e.Bool(r.State.Has(segapad.SixButton))
	e.FieldStart("buttons")
	e.ArrStart()
	for _, name := range buttonNames(r.State) {
		e.Str(name)
	}
	e.ArrEnd()
	e.ObjEnd()

	w.Write(e.Bytes())
	io.WriteString(w, "\n")
}

// traceCycles runs two polls of a pad holding the given buttons, the first
// to learn the pad mode, and prints the cycles of the second.
func traceCycles(w io.Writer, model string, hold []string) error {
	held, err := config.Step{Hold: hold}.Buttons()
	if err != nil {
		return err
	}

	pins := config.DefaultPins.PinConfig()
	bus := padsim.NewBus(pins)
	if pad := newPad(model); pad != nil {
		pad.Hold(held)
		bus.Plug(pad)
	}
	c := segapad.NewController(bus, bus, pins, segapad.Config{})
	bus.Advance(c.ReadInterval())
	c.GetState()
	bus.Advance(c.ReadInterval())

	start := bus.Now()
	cycle := 0
	fmt.Fprintln(w, "cycle  t(us)  select  1 2 3 4 6 9")
	bus.OnSample = func(at time.Duration, sel bool, levels uint8) {
		lvl := "low "
		if sel {
			lvl = "high"
		}
		var lines []string
		for i := 0; i < segapad.InputLines; i++ {
			lines = append(lines, fmt.Sprint(levels>>i&1))
		}
		fmt.Fprintf(w, "%5d  %5d  %s    %s\n", cycle, (at-start)/time.Microsecond, lvl, strings.Join(lines, " "))
		cycle++
	}
	s := c.GetState()
	fmt.Fprintf(w, "state: %s\n", s)
	return nil
}
