// Package config reads the TOML files describing simulated controller
// ports for the segapad tool.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mistepien/segapad2usb"
	"github.com/mistepien/segapad2usb/internal/log"
)

// Pad models accepted in Port.Pad and Step.Pad.
const (
	PadNone  = "none"
	Pad3Btn  = "3button"
	Pad6Btn  = "6button"
	padKeep  = ""
	maxPolls = 100000
)

// Duration is a time.Duration written as a string ("4ms") in TOML.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

type Config struct {
	Timing TimingConfig `toml:"timing"`
	Ports  []Port       `toml:"port"`
}

type TimingConfig struct {
	// CPUHz derives the settle delay with segapad.SettleDelayFor when
	// SettleDelay is not set.
	CPUHz        uint32   `toml:"cpu_hz"`
	SettleDelay  Duration `toml:"settle_delay"`
	ReadInterval Duration `toml:"read_interval"`
}

type Pins struct {
	Select uint8 `toml:"select"`
	Pin1   uint8 `toml:"pin1"`
	Pin2   uint8 `toml:"pin2"`
	Pin3   uint8 `toml:"pin3"`
	Pin4   uint8 `toml:"pin4"`
	Pin6   uint8 `toml:"pin6"`
	Pin9   uint8 `toml:"pin9"`
}

// Port is one controller port and the pad plugged into it.
type Port struct {
	Name           string `toml:"name"`
	Pad            string `toml:"pad"`
	Pins           Pins   `toml:"pins"`
	ExternalPullUp bool   `toml:"external_pullup"`
	Polls          int    `toml:"polls"`
	Steps          []Step `toml:"step"`
}

// Step changes the pad at a point in time, relative to the start of the run.
type Step struct {
	At   Duration `toml:"at"`
	Hold []string `toml:"hold"`
	Pad  string   `toml:"pad"`
}

// DefaultPins is the wiring used by the examples on a Raspberry Pi Pico.
var DefaultPins = Pins{Select: 2, Pin1: 3, Pin2: 4, Pin3: 5, Pin4: 6, Pin6: 7, Pin9: 8}

// Default returns a configuration with a single six-button pad.
func Default() Config {
	cfg := Config{
		Ports: []Port{{Name: "p1", Pad: Pad6Btn}},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads, completes and checks the configuration file at path.
func Load(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		log.ModCfg.WithField("key", key.String()).Warn("unknown configuration key")
	}
	return finish(cfg)
}

// Parse is Load for an in-memory document.
func Parse(doc string) (Config, error) {
	var cfg Config
	if _, err := toml.Decode(doc, &cfg); err != nil {
		return Config{}, err
	}
	return finish(cfg)
}

func finish(cfg Config) (Config, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	log.ModCfg.WithField("ports", len(cfg.Ports)).Debug("configuration loaded")
	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

func (cfg *Config) applyDefaults() {
	if len(cfg.Ports) == 0 {
		cfg.Ports = []Port{{Pad: Pad6Btn}}
	}
	for i := range cfg.Ports {
		p := &cfg.Ports[i]
		if p.Name == "" {
			p.Name = fmt.Sprintf("p%d", i+1)
		}
		if p.Pad == padKeep {
			p.Pad = Pad6Btn
		}
		if p.Pins == (Pins{}) {
			p.Pins = DefaultPins
		}
		if p.Polls == 0 {
			p.Polls = 10
		}
	}
}

// Validate checks pad models, button names, step order and pin wiring.
func (cfg *Config) Validate() error {
	if cfg.Timing.SettleDelay < 0 || cfg.Timing.ReadInterval < 0 {
		return fmt.Errorf("timing: negative duration")
	}
	names := make(map[string]bool)
	for _, p := range cfg.Ports {
		if names[p.Name] {
			return fmt.Errorf("port %s: defined twice", p.Name)
		}
		names[p.Name] = true

		if !validPad(p.Pad) {
			return fmt.Errorf("port %s: unknown pad %q", p.Name, p.Pad)
		}
		if p.Polls < 0 || p.Polls > maxPolls {
			return fmt.Errorf("port %s: polls out of range: %d", p.Name, p.Polls)
		}
		if err := p.Pins.check(); err != nil {
			return fmt.Errorf("port %s: %w", p.Name, err)
		}

		var last Duration
		for i, st := range p.Steps {
			if st.At < last {
				return fmt.Errorf("port %s: step %d goes back in time", p.Name, i)
			}
			last = st.At
			if st.Pad != padKeep && !validPad(st.Pad) {
				return fmt.Errorf("port %s: step %d: unknown pad %q", p.Name, i, st.Pad)
			}
			if _, err := st.Buttons(); err != nil {
				return fmt.Errorf("port %s: step %d: %w", p.Name, i, err)
			}
		}
	}
	return nil
}

func validPad(s string) bool {
	return s == PadNone || s == Pad3Btn || s == Pad6Btn
}

func (p Pins) check() error {
	seen := make(map[uint8]bool)
	for _, pin := range []uint8{p.Select, p.Pin1, p.Pin2, p.Pin3, p.Pin4, p.Pin6, p.Pin9} {
		if seen[pin] {
			return fmt.Errorf("pin %d used twice", pin)
		}
		seen[pin] = true
	}
	return nil
}

// PinConfig converts the wiring for the driver.
func (p Pins) PinConfig() segapad.PinConfig {
	return segapad.PinConfig{
		Select: segapad.Pin(p.Select),
		Pin1:   segapad.Pin(p.Pin1),
		Pin2:   segapad.Pin(p.Pin2),
		Pin3:   segapad.Pin(p.Pin3),
		Pin4:   segapad.Pin(p.Pin4),
		Pin6:   segapad.Pin(p.Pin6),
		Pin9:   segapad.Pin(p.Pin9),
	}
}

// Buttons returns the held buttons of a step.
func (st Step) Buttons() (segapad.State, error) {
	var s segapad.State
	for _, name := range st.Hold {
		b, ok := segapad.ButtonByName(name)
		if !ok || b == segapad.Connected || b == segapad.SixButton {
			return 0, fmt.Errorf("unknown button %q", name)
		}
		s |= segapad.State(b)
	}
	return s, nil
}

// Driver returns the driver configuration of a port.
func (cfg *Config) Driver(p Port) segapad.Config {
	settle := time.Duration(cfg.Timing.SettleDelay)
	if settle == 0 {
		settle = segapad.SettleDelayFor(cfg.Timing.CPUHz)
	}
	return segapad.Config{
		SettleDelay:    settle,
		ReadInterval:   time.Duration(cfg.Timing.ReadInterval),
		ExternalPullUp: p.ExternalPullUp,
	}
}
