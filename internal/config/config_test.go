package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/mistepien/segapad2usb"
)

const sample = `
[timing]
cpu_hz = 8000000
read_interval = "5ms"

[[port]]
name = "left"
pad = "3button"
polls = 4

  [port.pins]
  select = 10
  pin1 = 11
  pin2 = 12
  pin3 = 13
  pin4 = 14
  pin6 = 16
  pin9 = 19

  [[port.step]]
  at = "0s"
  hold = ["up", "a"]

  [[port.step]]
  at = "10ms"
  pad = "none"

[[port]]
external_pullup = true
`

func TestParse(t *testing.T) {
	cfg, err := Parse(sample)
	if err != nil {
		t.Fatal(err)
	}

	want := Config{
		Timing: TimingConfig{
			CPUHz:        8000000,
			ReadInterval: Duration(5 * time.Millisecond),
		},
		Ports: []Port{
			{
				Name:  "left",
				Pad:   Pad3Btn,
				Pins:  Pins{Select: 10, Pin1: 11, Pin2: 12, Pin3: 13, Pin4: 14, Pin6: 16, Pin9: 19},
				Polls: 4,
				Steps: []Step{
					{At: 0, Hold: []string{"up", "a"}},
					{At: Duration(10 * time.Millisecond), Pad: PadNone},
				},
			},
			{
				Name:           "p2",
				Pad:            Pad6Btn,
				Pins:           DefaultPins,
				ExternalPullUp: true,
				Polls:          10,
			},
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}

	drv := cfg.Driver(cfg.Ports[1])
	if drv.SettleDelay != 7*time.Microsecond {
		t.Errorf("settle delay = %v, want 7us from cpu_hz", drv.SettleDelay)
	}
	if drv.ReadInterval != 5*time.Millisecond || !drv.ExternalPullUp {
		t.Errorf("driver config = %+v", drv)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad duration", "[timing]\nsettle_delay = \"fast\""},
		{"unknown pad", "[[port]]\npad = \"saturn\""},
		{"unknown button", "[[port]]\n[[port.step]]\nhold = [\"select\"]"},
		{"status bit as button", "[[port]]\n[[port.step]]\nhold = [\"on\"]"},
		{"steps out of order", "[[port]]\n[[port.step]]\nat = \"5ms\"\n[[port.step]]\nat = \"1ms\""},
		{"pin reused", "[[port]]\n[port.pins]\nselect = 1\npin1 = 1\npin2 = 2\npin3 = 3\npin4 = 4\npin6 = 6\npin9 = 9"},
		{"duplicate names", "[[port]]\nname = \"a\"\n[[port]]\nname = \"a\""},
		{"negative polls", "[[port]]\npolls = -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.doc); err == nil {
				t.Errorf("Parse succeeded, want an error")
			} else {
				t.Log(err)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if len(cfg.Ports) != 1 || cfg.Ports[0].Pad != Pad6Btn {
		t.Errorf("default ports = %+v", cfg.Ports)
	}
	if got := cfg.Driver(cfg.Ports[0]).SettleDelay; got != segapad.DefaultSettleDelay {
		t.Errorf("default settle delay = %v", got)
	}
}

func TestSaveLoad(t *testing.T) {
	cfg, err := Parse(sample)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "segapad.toml")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Load(Save(cfg)) mismatch (-want +got):\n%s", diff)
	}
}

func TestStepButtons(t *testing.T) {
	st := Step{Hold: []string{"b", "home", "left"}}
	got, err := st.Buttons()
	if err != nil {
		t.Fatal(err)
	}
	want := segapad.State(segapad.ButtonB | segapad.ButtonHome | segapad.ButtonLeft)
	if got != want {
		t.Errorf("Buttons() = %v, want %v", got, want)
	}
}
