package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"rotenc/host/monitor"
	"rotenc/host/serial"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	tickHz  = flag.Float64("tickhz", monitor.DefaultTickHz, "Device report timestamp frequency")
	verbose = flag.Bool("verbose", false, "Print raw report fields")
)

func main() {
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	// Drop whatever accumulated in the OS buffer before we attached.
	if err := port.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: flush: %v\n", err)
		os.Exit(1)
	}

	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt)

	fmt.Printf("Monitoring encoder on %s\n", *device)

	m := monitor.New(port, *tickHz)
	for {
		select {
		case <-interrupted:
			fmt.Println("\nDone.")
			return
		default:
		}

		updates, err := m.Poll()
		for _, u := range updates {
			if *verbose {
				fmt.Printf("position=%d ticks=%d rate=%+.1f/s\n",
					u.Report.Position, u.Report.Ticks, u.Rate)
			} else {
				fmt.Printf("position=%d rate=%+.1f/s\n", u.Report.Position, u.Rate)
			}
		}
		if err != nil && err != io.EOF {
			fmt.Fprintf(os.Stderr, "Error: read: %v\n", err)
			os.Exit(1)
		}
		// io.EOF here is a read timeout with no data; keep polling.
	}
}
