package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mistepien/segapad2usb"
	"github.com/mistepien/segapad2usb/internal/config"
	"github.com/mistepien/segapad2usb/internal/log"
	"github.com/mistepien/segapad2usb/internal/padsim"
)

// playKeys maps keyboard keys to pad buttons.
var playKeys = map[byte]segapad.Button{
	'w':  segapad.ButtonUp,
	's':  segapad.ButtonDown,
	'a':  segapad.ButtonLeft,
	'd':  segapad.ButtonRight,
	'j':  segapad.ButtonA,
	'k':  segapad.ButtonB,
	'l':  segapad.ButtonC,
	'u':  segapad.ButtonX,
	'i':  segapad.ButtonY,
	'o':  segapad.ButtonZ,
	'\r': segapad.ButtonStart,
	'm':  segapad.ButtonMode,
	'h':  segapad.ButtonHome,
}

const playUsage = "wasd: d-pad  j k l: A B C  u i o: X Y Z  enter: start  m: mode  h: home  p: plug/unplug  q: quit\r\n"

// play polls a simulated pad in real time. Terminals only report key
// presses, so every press holds its button for hold.
func play(in *os.File, out io.Writer, model string, hold time.Duration) error {
	restore, err := rawMode(in)
	if err != nil {
		return err
	}
	defer restore()

	pins := config.DefaultPins.PinConfig()
	bus := padsim.NewBus(pins)
	pad := newPad(model)
	bus.Plug(pad)
	c := segapad.NewController(bus, bus, pins, segapad.Config{})

	keys := make(chan byte)
	go func() {
		defer close(keys)
		var buf [1]byte
		for {
			if _, err := in.Read(buf[:]); err != nil {
				return
			}
			keys <- buf[0]
		}
	}()

	io.WriteString(out, playUsage)

	ticker := time.NewTicker(c.ReadInterval())
	defer ticker.Stop()

	releaseAt := make(map[segapad.Button]time.Time)
	last := time.Now()
	var prev segapad.State = 0xFFFF
	for {
		select {
		case k, ok := <-keys:
			if !ok || k == 'q' || k == 3 {
				io.WriteString(out, "\r\n")
				return nil
			}
			if k == 'p' {
				if bus.Pad() != nil {
					bus.Plug(nil)
				} else {
					pad = newPad(model)
					bus.Plug(pad)
				}
				continue
			}
			if b, ok := playKeys[k]; ok && bus.Pad() != nil {
				pad.Press(b)
				releaseAt[b] = time.Now().Add(hold)
			}

		case now := <-ticker.C:
			bus.Advance(now.Sub(last))
			last = now
			for b, t := range releaseAt {
				if now.After(t) {
					pad.Release(b)
					delete(releaseAt, b)
				}
			}

			s := c.GetState()
			if s != prev {
				log.ModPoll.WithField("six", c.SixButton()).Debug(s)
				fmt.Fprintf(out, "\r%-64s", s)
				prev = s
			}
		}
	}
}
