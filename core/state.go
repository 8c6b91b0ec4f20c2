package core

import "github.com/sarchlab/widthbridge/bus"

// PendingRequest is the one request record the adapter keeps so that a bus
// response can be matched with the request issued a cycle earlier.
type PendingRequest struct {
	Address    uint32
	Size       bus.AccessSize
	ReadEnable bool
}

// WidthAdapter is the cycle model of the bridge. Evaluate is the
// combinational logic of one cycle and Advance is the rising clock edge.
//
// The zero value is an adapter that has just been reset.
type WidthAdapter struct {
	current PendingRequest
	next    PendingRequest
}

// NewWidthAdapter creates an adapter in its reset state.
func NewWidthAdapter() *WidthAdapter {
	return &WidthAdapter{}
}

// Current returns the latched request visible in this cycle.
func (a *WidthAdapter) Current() PendingRequest {
	return a.current
}

// Next returns what the latch will hold after the next clock edge.
func (a *WidthAdapter) Next() PendingRequest {
	return a.next
}

// Advance latches the value computed by the last Evaluate.
func (a *WidthAdapter) Advance() {
	a.current = a.next
}
