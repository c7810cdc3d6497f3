// Command segapad runs the Sega pad driver against a simulated DB9 port.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mistepien/segapad2usb/internal/config"
	"github.com/mistepien/segapad2usb/internal/log"
)

var version = "dev"

func main() {
	cfg := parseArgs(os.Args[1:])

	switch cfg.mode {
	case versionMode:
		fmt.Println("segapad", version)

	case playMode:
		hold := time.Duration(cfg.Play.Hold) * time.Millisecond
		exitOn(play(os.Stdin, os.Stdout, cfg.Play.Pad, hold), "play")

	case traceMode:
		exitOn(traceCycles(os.Stdout, cfg.Trace.Pad, cfg.Trace.Hold), "trace")

	case runMode:
		pcfg := config.Default()
		if cfg.Run.Config != "" {
			var err error
			pcfg, err = config.Load(cfg.Run.Config)
			exitOn(err, "loading %s", cfg.Run.Config)
		}
		log.ModCLI.WithField("ports", len(pcfg.Ports)).Info("running")

		out := cfg.Run.Out
		if out == nil {
			out = &output{WriteCloser: stdStream{os.Stdout}, name: "stdout"}
		}
		exitOn(runPorts(pcfg, out, cfg.Run.JSON), "run")
		exitOn(out.Close(), "closing %s", out)
	}
}
