// Position stream monitor
// Turns the raw serial byte stream from an encoder device into decoded
// position updates with a rotation rate estimate.
package monitor

import (
	"io"

	"rotenc/protocol"
)

// DefaultTickHz is the report timestamp resolution the reference firmware
// uses (milliseconds of uptime).
const DefaultTickHz = 1000.0

// Update is one decoded report plus the rate derived from it.
type Update struct {
	Report protocol.Report
	Rate   float64 // detents per second, signed, exponentially smoothed
}

// Monitor incrementally scans a byte stream for position report frames.
// Partial frames are carried across reads, so chunk boundaries on the serial
// line never lose reports.
type Monitor struct {
	r       io.Reader
	tickHz  float64
	scratch [256]byte
	pending []byte

	hasLast bool
	last    protocol.Report
	rate    float64
}

// New creates a Monitor reading from r. tickHz is the device's report
// timestamp frequency; pass DefaultTickHz for the stock firmware.
func New(r io.Reader, tickHz float64) *Monitor {
	if tickHz <= 0 {
		tickHz = DefaultTickHz
	}
	return &Monitor{r: r, tickHz: tickHz}
}

// Poll performs one read on the underlying stream and returns the updates
// decoded from it, possibly none. Any data read is processed before the
// read error, if one occurred, is returned.
func (m *Monitor) Poll() ([]Update, error) {
	n, err := m.r.Read(m.scratch[:])
	if n > 0 {
		return m.feed(m.scratch[:n]), err
	}
	return nil, err
}

// feed appends data to the pending buffer and drains every complete frame.
func (m *Monitor) feed(data []byte) []Update {
	m.pending = append(m.pending, data...)

	var updates []Update
	consumed := protocol.ScanReports(m.pending, func(r protocol.Report) {
		updates = append(updates, Update{Report: r, Rate: m.updateRate(r)})
	})
	m.pending = m.pending[consumed:]
	return updates
}

// updateRate folds a report into the smoothed detents-per-second estimate.
func (m *Monitor) updateRate(r protocol.Report) float64 {
	if !m.hasLast {
		m.hasLast = true
		m.last = r
		return 0
	}

	// Unsigned subtraction keeps the delta correct across a tick counter
	// wraparound.
	dt := float64(r.Ticks-m.last.Ticks) / m.tickHz
	if dt > 0 {
		instant := float64(r.Position-m.last.Position) / dt
		m.rate += (instant - m.rate) * 0.5
	}
	m.last = r
	return m.rate
}
