package protocol

// Frame layout: length, type, VLQ payload, CRC16 (big endian), sync byte.
// The trailing sync bounds resynchronization after line noise.
const (
	FrameHeaderSize  = 2
	FrameTrailerSize = 3
	FrameLengthMin   = FrameHeaderSize + FrameTrailerSize
	FrameLengthMax   = 64
	FrameOffLen      = 0
	FrameOffType     = 1
	FrameSync        = 0x7E
)

// Frame types
const (
	TypePosition = 0x01 // position report: VLQ int32 position, VLQ uint32 ticks
)

// Report is one decoded position report from the device.
type Report struct {
	Position int32  // accumulated quadrature step count
	Ticks    uint32 // device uptime in timer ticks at sample time
}

// EncodePosition appends one framed position report to out.
func EncodePosition(out OutputBuffer, r Report) {
	start := out.CurPosition()
	out.Output([]byte{0, TypePosition}) // length patched below
	EncodeVLQInt(out, r.Position)
	EncodeVLQUint(out, r.Ticks)

	frameLen := out.CurPosition() - start + FrameTrailerSize
	out.Update(start+FrameOffLen, byte(frameLen))

	crc := CRC16(out.DataSince(start))
	out.Output([]byte{byte(crc >> 8), byte(crc & 0xFF), FrameSync})
}

// ScanReports scans a received byte stream for valid frames and calls fn for
// every decoded position report. Garbage, frames with bad CRCs and unknown
// frame types are skipped; a partial frame at the tail is left for the next
// scan. Returns the number of bytes consumed.
func ScanReports(data []byte, fn func(Report)) int {
	consumed := 0
	for {
		buf := data[consumed:]
		if len(buf) == 0 {
			return consumed
		}

		// Sync bytes between frames carry nothing.
		if buf[0] == FrameSync {
			consumed++
			continue
		}

		frameLen := int(buf[FrameOffLen])
		if frameLen < FrameLengthMin || frameLen > FrameLengthMax {
			// Not a plausible frame start; step one byte and resync.
			consumed++
			continue
		}
		if len(buf) < frameLen {
			// Possible partial frame, wait for more data.
			return consumed
		}

		if buf[frameLen-1] != FrameSync {
			consumed++
			continue
		}

		wantCRC := uint16(buf[frameLen-FrameTrailerSize])<<8 |
			uint16(buf[frameLen-FrameTrailerSize+1])
		if wantCRC != CRC16(buf[:frameLen-FrameTrailerSize]) {
			// The trailing sync already authenticated the frame boundary,
			// so the corrupt frame is discarded whole. Stepping a single
			// byte here would resync into the payload instead.
			consumed += frameLen
			continue
		}

		payload := buf[FrameHeaderSize : frameLen-FrameTrailerSize]
		if buf[FrameOffType] == TypePosition {
			pos, err := DecodeVLQInt(&payload)
			if err == nil {
				ticks, err := DecodeVLQUint(&payload)
				if err == nil {
					fn(Report{Position: pos, Ticks: ticks})
				}
			}
		}
		consumed += frameLen
	}
}
