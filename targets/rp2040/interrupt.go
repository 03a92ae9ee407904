//go:build rp2040 || rp2350

package main

import (
	"machine"

	"rotenc/core"
)

// machineInterruptDriver implements core.InterruptDriver on the machine
// package's pin change interrupts.
type machineInterruptDriver struct{}

func (machineInterruptDriver) AttachChange(pin core.Pin, fn func(core.Pin)) {
	// The hardware attach only fails for pins that cannot raise interrupts;
	// the decoder is constructed on interrupt-capable lines.
	_ = machine.Pin(pin).SetInterrupt(machine.PinRising|machine.PinFalling, func(p machine.Pin) {
		fn(core.Pin(p))
	})
}

func (machineInterruptDriver) Detach(pin core.Pin) {
	_ = machine.Pin(pin).SetInterrupt(0, nil)
}
