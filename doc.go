// Package segapad provides a TinyGo driver for Sega Genesis / Mega Drive
// controllers.
//
// This package reads 3-button and 6-button pads through the DB9 port by
// toggling the select line and sampling the six shared input lines after
// every edge.
//
// # Features
//
//   - Support for both 3-button and 6-button pads, detected automatically
//   - Controller presence detection
//   - Opposite D-pad directions are never reported together
//   - Edge detection for button press/release events
//   - Several pads on one MCU, one Controller per port
//
// # Hardware Connection
//
// Connect the controller as follows. The inputs use the MCU's internal
// pull-ups unless Config.ExternalPullUp is set (10k-15kΩ resistors to VCC).
//
//	Controller Pin | Select high | Select low | Notes
//	---------------|-------------|------------|------------------
//	1              | Up          | Up         | Input
//	2              | Down        | Down       | Input
//	3              | Left        | GND        | Input
//	4              | Right       | GND        | Input
//	5              | VCC         | VCC        | 5V (3.3V works for most pads)
//	6              | B           | A          | Input
//	7              | Select      | Select     | Output
//	8              | GND         | GND        | Ground
//	9              | C           | Start      | Input
//
// # Protocol
//
// The select line idles high. A poll runs 5 cycles for a 3-button pad and
// 7 for a 6-button pad, cycle i driving select low for even i and high for
// odd i:
//
//	Cycle | Select | Lines read
//	------|--------|--------------------------------------------
//	0     | low    | 3+4 low: pad present; 6: A; 9: Start
//	1     | high   | 1: Up; 2: Down; 3: Left; 4: Right; 6: B; 9: C
//	2, 3  |        | repeat of 0 and 1
//	4     | low    | 1+2 low: 6-button pad
//	5     | high   | 1: Z; 2: Y; 3: X; 4: Mode (6-button only)
//	6     | low    | 1: Home (6-button only)
//
// Interrupts are disabled while the cycles run. A 6-button pad needs about
// 1.5ms without edges to reset its internal counter, so polls closer than
// Config.ReadInterval (at least 3ms) return the previous state.
//
// # Example Usage
//
//	package main
//
//	import (
//	    "machine"
//	    "time"
//
//	    "github.com/mistepien/segapad2usb"
//	)
//
//	func main() {
//	    pad := segapad.New(segapad.PinConfig{
//	        Select: segapad.Pin(machine.GP2),
//	        Pin1:   segapad.Pin(machine.GP3),
//	        Pin2:   segapad.Pin(machine.GP4),
//	        Pin3:   segapad.Pin(machine.GP5),
//	        Pin4:   segapad.Pin(machine.GP6),
//	        Pin6:   segapad.Pin(machine.GP7),
//	        Pin9:   segapad.Pin(machine.GP8),
//	    })
//
//	    for {
//	        state := pad.GetState()
//
//	        if pad.Pressed(segapad.ButtonA) {
//	            println("A pressed!")
//	        }
//
//	        if state.Has(segapad.ButtonUp) {
//	            println("Up is held down")
//	        }
//
//	        time.Sleep(5 * time.Millisecond)
//	    }
//	}
//
// On other Go targets, implement Port and Clock and use NewController.
//
// # Original Library
//
// The protocol handling follows the Arduino SegaController library by
// Jon Thysell and Michał Stępień.
package segapad
