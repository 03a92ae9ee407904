// Quadrature rotary encoder decoding
// Edge interrupts on two input lines drive a Gray-code state machine that
// accumulates a signed step count, with no polling loop and the pull-ups
// powered down whenever a line's transitions carry no information.
package core

// Encoder flags
const (
	EF_ASIDE   = 1 << 0 // Last latched half-state was A-asserted-only
	EF_PENDING = 1 << 1 // Both-asserted state traversed since the last half-state
)

// Encoder decodes one quadrature encoder attached to two
// interrupt-capable input lines.
type Encoder struct {
	pinA Pin
	pinB Pin
	gpio PinDriver
	irq  InterruptDriver

	// Written only in interrupt context, read by the foreground task
	// under a critical section.
	position int32
	flags    uint8

	// Sample pair for the current invocation. Kept on the struct so the
	// handler does not touch the stack more than it has to.
	inA, inB bool
}

// activeEncoder is the single interrupt ownership slot. The hardware
// interrupt vector is one shared physical resource reachable only through a
// free-standing callback, so at most one Encoder may receive dispatch at a
// time. Mutated only inside critical sections.
var activeEncoder *Encoder

// dispatchInterrupt is the trampoline attached to both pins. It forwards to
// the registered instance, if any.
func dispatchInterrupt(_ Pin) {
	if activeEncoder != nil {
		activeEncoder.serviceInterrupt()
	}
}

// NewEncoder returns a decoder for the default pin pair using the
// registered drivers.
func NewEncoder() *Encoder {
	return NewEncoderOnPins(DefaultPinA, DefaultPinB)
}

// NewEncoderOnPins returns a decoder for an alternate pair of
// interrupt-capable lines using the registered drivers.
func NewEncoderOnPins(a, b Pin) *Encoder {
	return NewEncoderWithDrivers(a, b, MustPins(), MustInterrupts())
}

// NewEncoderWithDrivers injects the GPIO and interrupt capabilities
// directly, bypassing the global driver registration. This is the hook for
// substituting raw-register I/O or test doubles without touching the state
// machine.
func NewEncoderWithDrivers(a, b Pin, gpio PinDriver, irq InterruptDriver) *Encoder {
	return &Encoder{
		pinA: a,
		pinB: b,
		gpio: gpio,
		irq:  irq,
	}
}

// PinA returns the line carrying the encoder's A contact.
func (e *Encoder) PinA() Pin { return e.pinA }

// PinB returns the line carrying the encoder's B contact.
func (e *Encoder) PinB() Pin { return e.pinB }

// Start installs this instance as the sole interrupt target, enables both
// pull-ups and attaches change interrupts to both pins. It returns false
// without side effects if an instance (including this one) is already
// active.
func (e *Encoder) Start() bool {
	// Claiming the slot inside a critical section covers the case of a
	// previous Stop whose detach silently failed: no dispatch can observe
	// a half-written slot.
	state := disableInterrupts()
	if activeEncoder != nil {
		restoreInterrupts(state)
		return false
	}
	activeEncoder = e
	restoreInterrupts(state)

	e.gpio.EnableInput(e.pinA)
	e.gpio.EnableInput(e.pinB)
	e.irq.AttachChange(e.pinA, dispatchInterrupt)
	e.irq.AttachChange(e.pinB, dispatchInterrupt)
	return true
}

// Stop detaches both interrupts and releases the ownership slot. It returns
// false if this instance is not the active one.
func (e *Encoder) Stop() bool {
	state := disableInterrupts()
	if activeEncoder != e {
		restoreInterrupts(state)
		return false
	}
	// Clear the slot before detaching. Detach reports nothing, so this
	// ordering guarantees no further dispatch to a stale instance even if
	// the physical detach fails.
	activeEncoder = nil
	restoreInterrupts(state)

	e.irq.Detach(e.pinA)
	e.irq.Detach(e.pinB)
	return true
}

// Close releases the instance, attempting Stop and ignoring its result. A
// discarded Encoder can never leave a dangling registration behind.
func (e *Encoder) Close() {
	e.Stop()
}

// Position returns a snapshot of the accumulated step count. The counter is
// wider than the bus on small targets, so the read is taken under a minimal
// critical section. Never blocks.
func (e *Encoder) Position() int32 {
	state := disableInterrupts()
	pos := e.position
	restoreInterrupts(state)
	return pos
}

// readA reports whether the A contact is closed. Asserted lines read
// electrically low.
func (e *Encoder) readA() bool { return !e.gpio.ReadPin(e.pinA) }

// readB reports whether the B contact is closed.
func (e *Encoder) readB() bool { return !e.gpio.ReadPin(e.pinB) }

// serviceInterrupt runs the quadrature state machine. It executes in
// interrupt context with all interrupts masked for its duration, so it must
// stay short and must never block or wait on interrupts itself.
func (e *Encoder) serviceInterrupt() {
	state := disableInterrupts()

	// A previous invocation may have dropped a pull-up to save power.
	e.gpio.EnableInput(e.pinA)
	e.gpio.EnableInput(e.pinB)

	// Sample until two consecutive reads agree on both inputs; a reading
	// taken mid-transition is rejected. Terminates as soon as the lines are
	// physically stable.
	for {
		e.inA = e.readA()
		e.inB = e.readB()
		if e.readA() == e.inA && e.readB() == e.inB {
			break
		}
	}

	if e.inA {
		if e.inB {
			// Both contacts engaged: a full step is in progress.
			e.flags |= EF_PENDING
		} else {
			// A-only half-state. A's transitions carry nothing new until
			// the next cycle, so its pull-up current can be cut.
			e.gpio.DisableInput(e.pinA)
			if e.flags&EF_ASIDE == 0 && e.flags&EF_PENDING != 0 {
				e.position++
			}
			e.flags = EF_ASIDE
		}
	} else {
		if e.inB {
			// B-only half-state, mirror of the above.
			e.gpio.DisableInput(e.pinB)
			if e.flags&EF_ASIDE != 0 && e.flags&EF_PENDING != 0 {
				e.position--
			}
			e.flags = 0
		}
		// Neither asserted: detent rest state. Bounce on the common
		// contact lands here with EF_PENDING clear, so there is nothing
		// to do.
	}

	restoreInterrupts(state)
}
