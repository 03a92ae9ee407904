//go:build !tinygo

package core

// State is a placeholder for interrupt mask state on regular Go
type State uintptr

// criticalDepth tracks critical section nesting on regular Go so tests can
// verify that shared state is only touched with interrupts masked and that
// every section is restored on every exit path.
var criticalDepth int

// disableInterrupts enters a critical section. On regular Go (host tests)
// it only maintains the nesting counter.
func disableInterrupts() State {
	criticalDepth++
	return 0
}

// restoreInterrupts leaves a critical section entered by disableInterrupts.
func restoreInterrupts(state State) {
	_ = state
	criticalDepth--
}
