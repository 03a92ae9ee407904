//go:build rp2040 || rp2350

package main

import (
	"machine"

	"rotenc/core"
)

// machinePinDriver implements core.PinDriver on the TinyGo machine package.
// Encoder pins map directly to GPIO numbers on RP2040/RP2350.
type machinePinDriver struct{}

func (machinePinDriver) EnableInput(pin core.Pin) {
	machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinInputPullup})
}

func (machinePinDriver) DisableInput(pin core.Pin) {
	p := machine.Pin(pin)
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.Low()
}

func (machinePinDriver) ReadPin(pin core.Pin) bool {
	return machine.Pin(pin).Get()
}
