//go:build rp2040 || rp2350

package main

import (
	"machine"
	"time"

	"rotenc/core"
	"rotenc/protocol"
)

const (
	reportInterval = 50 * time.Millisecond

	// A heartbeat report goes out even when the knob is idle so the host
	// can tell a quiet encoder from a dead link.
	heartbeatEvery = 20
)

func main() {
	core.SetPinDriver(machinePinDriver{})
	core.SetInterruptDriver(machineInterruptDriver{})

	enc := core.NewEncoder()
	if !enc.Start() {
		return
	}
	defer enc.Close()

	out := protocol.NewScratchOutput()
	booted := time.Now()

	lastPos := enc.Position()
	idle := 0
	for {
		time.Sleep(reportInterval)

		pos := enc.Position()
		if pos == lastPos && idle < heartbeatEvery {
			idle++
			continue
		}
		lastPos = pos
		idle = 0

		out.Reset()
		protocol.EncodePosition(out, protocol.Report{
			Position: pos,
			Ticks:    uint32(time.Since(booted) / time.Millisecond),
		})
		machine.Serial.Write(out.Result())
	}
}
