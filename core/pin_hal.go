package core

// Pin identifies an interrupt-capable digital input line.
type Pin uint8

// Default encoder wiring: two interrupt-capable lines with the encoder
// common contact tied to ground.
const (
	DefaultPinA Pin = 2
	DefaultPinB Pin = 3
)

// PinDriver is the abstract GPIO interface the decoder uses.
// Platform-specific implementations handle actual hardware control.
//
// All three methods are called from interrupt context and must not
// allocate, block, or wait on interrupts.
type PinDriver interface {
	// EnableInput configures the pin as an input with its pull-up active,
	// so an open contact reads high and a closed contact pulls the line low.
	EnableInput(pin Pin)

	// DisableInput drives the pin as a low output, removing the pull-up
	// current draw while that pin's transitions carry no information.
	DisableInput(pin Pin)

	// ReadPin returns the electrical level of the pin (true = high).
	ReadPin(pin Pin) bool
}

// InterruptDriver is the abstract edge-interrupt interface.
// Platform-specific implementations route pin change events to fn.
type InterruptDriver interface {
	// AttachChange routes every level change on pin to fn.
	AttachChange(pin Pin, fn func(Pin))

	// Detach stops change delivery for pin. Like the underlying hardware
	// primitive it reports nothing; callers must not depend on it having
	// taken effect.
	Detach(pin Pin)
}

// Global singletons used by core code.
var (
	pinDriver PinDriver
	irqDriver InterruptDriver
)

// SetPinDriver is called by target-specific code to register its GPIO driver.
func SetPinDriver(d PinDriver) {
	pinDriver = d
}

// MustPins returns the configured GPIO driver or panics if missing.
func MustPins() PinDriver {
	if pinDriver == nil {
		panic("pin driver not configured")
	}
	return pinDriver
}

// SetInterruptDriver is called by target-specific code to register its
// edge-interrupt driver.
func SetInterruptDriver(d InterruptDriver) {
	irqDriver = d
}

// MustInterrupts returns the configured interrupt driver or panics if missing.
func MustInterrupts() InterruptDriver {
	if irqDriver == nil {
		panic("interrupt driver not configured")
	}
	return irqDriver
}
