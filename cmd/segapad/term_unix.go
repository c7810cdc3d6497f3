//go:build linux || darwin

package main

import (
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// rawMode puts the terminal behind f in raw mode and returns the function
// putting it back in canonical mode.
func rawMode(f *os.File) (restore func(), err error) {
	var canAttr, rawAttr unix.Termios
	if err := termios.Tcgetattr(f.Fd(), &canAttr); err != nil {
		return nil, fmt.Errorf("stdin is not a terminal: %w", err)
	}
	rawAttr = canAttr
	termios.Cfmakeraw(&rawAttr)
	if err := termios.Tcsetattr(f.Fd(), termios.TCIFLUSH, &rawAttr); err != nil {
		return nil, err
	}
	return func() {
		termios.Tcsetattr(f.Fd(), termios.TCIFLUSH, &canAttr)
	}, nil
}
