package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mistepien/segapad2usb/internal/log"
)

type mode byte

const (
	runMode     mode = iota // Replay scripted ports
	playMode                // Drive a simulated pad from the keyboard
	traceMode               // Show the cycles of one poll
	versionMode             // Show version
)

type (
	CLI struct {
		Run     Run     `cmd:"" help:"Replay the scripted ports of a configuration file." default:"withargs"`
		Play    Play    `cmd:"" help:"Drive a simulated pad from the keyboard."`
		Trace   Trace   `cmd:"" help:"Show select level and input lines of every cycle of a poll."`
		Version Version `cmd:"" help:"Show segapad version."`

		Log logModules `help:"${log_help}" placeholder:"mod0,mod1,..."`

		mode mode
	}

	Run struct {
		Config string   `name:"config" short:"c" help:"${config_help}" type:"existingfile"`
		Out    *output  `name:"out" help:"Write decoded states to FILE." placeholder:"FILE|stdout|stderr" default:"stdout"`
		JSON   bool     `name:"json" help:"One JSON object per poll instead of text."`
	}

	Play struct {
		Pad  string `name:"pad" help:"Pad model: 3button or 6button." default:"6button" enum:"3button,6button"`
		Hold int    `name:"hold" help:"Milliseconds a key press holds its button." default:"150"`
	}

	Trace struct {
		Pad  string   `name:"pad" help:"Pad model: none, 3button or 6button." default:"6button" enum:"none,3button,6button"`
		Hold []string `name:"hold" help:"Buttons held during the poll." placeholder:"up,a,..."`
	}

	Version struct{}
)

var vars = kong.Vars{
	"config_help": "TOML file describing ports, pads and button changes. Without it a single idle 6 button pad is polled.",
	"log_help":    "Enable logging for specified modules.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("segapad"),
		kong.Description("Sega Genesis / Mega Drive pad driver, on a simulated DB9 port."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	switch ctx.Command() {
	case "play":
		cfg.mode = playMode
	case "trace":
		cfg.mode = traceMode
	case "version":
		cfg.mode = versionMode
	default:
		cfg.mode = runMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
	var strs []string
	for _, m := range log.ModuleNames() {
		strs = append(strs, "    - "+m)
	}
	fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	return nil
}

// logModules is the --log flag. Its value is applied as soon as it is
// parsed so that configuration loading is already logged.
type logModules string

func (lm *logModules) Decode(ctx *kong.DecodeContext) error {
	var list string
	if err := ctx.Scan.PopValueInto("log modules", &list); err != nil {
		return err
	}
	*lm = logModules(list)
	return log.Configure(list)
}

// output is the --out flag: stdout, stderr or a file created for writing.
type output struct {
	io.WriteCloser
	name string
}

type stdStream struct{ io.Writer }

func (stdStream) Close() error { return nil }

func (o *output) Decode(ctx *kong.DecodeContext) error {
	if err := ctx.Scan.PopValueInto("output file", &o.name); err != nil {
		return err
	}
	switch o.name {
	case "stdout":
		o.WriteCloser = stdStream{os.Stdout}
	case "stderr":
		o.WriteCloser = stdStream{os.Stderr}
	default:
		f, err := os.Create(o.name)
		if err != nil {
			return err
		}
		o.WriteCloser = f
	}
	return nil
}

func (o *output) String() string { return o.name }

// exitOn prints err with what failed and exits with status 1.
func exitOn(err error, what string, args ...any) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "segapad: %s: %v\n", fmt.Sprintf(what, args...), err)
	os.Exit(1)
}
