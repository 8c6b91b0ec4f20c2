package bus

import "encoding/binary"

// WordBytes is the width of a bus word in bytes.
const WordBytes = 8

// Request is the requester-side input bundle of one cycle.
type Request struct {
	Valid   bool
	Write   bool
	Size    AccessSize
	Address uint32
	Data    uint64
}

// BusRequest is what the adapter drives onto the memory bus in one cycle.
type BusRequest struct {
	Valid   bool
	Write   bool
	Address uint32
	Strobe  uint8
	Data    uint64
}

// LineAddress returns bits [31:3] of the aligned address, the 29-bit value
// carried on the bus.
func (r BusRequest) LineAddress() uint32 {
	return r.Address >> 3
}

// BusResponse is the bus-side response bundle of one cycle.
type BusResponse struct {
	Valid bool
	Data  uint64
}

// Response is what the adapter returns to the requester in one cycle.
type Response struct {
	Valid   bool
	Data    uint64
	Address uint32
}

// Inputs collects every input signal of one cycle. ResetActive is active-low:
// false means reset is asserted.
type Inputs struct {
	ResetActive bool
	Request     Request
	BusResponse BusResponse
}

// Outputs collects every output signal of one cycle.
type Outputs struct {
	BusRequest BusRequest
	Response   Response
}

// LaneOffset returns the byte lane an address falls into within its bus word.
func LaneOffset(addr uint32) uint {
	return uint(addr & (WordBytes - 1))
}

// AlignAddress clears the lane bits of an address.
func AlignAddress(addr uint32) uint32 {
	return addr &^ (WordBytes - 1)
}

// WordToBytes lays a bus word out lane by lane, lane 0 first.
func WordToBytes(word uint64) []byte {
	bytes := make([]byte, WordBytes)
	binary.LittleEndian.PutUint64(bytes, word)

	return bytes
}

// BytesToWord is the inverse of WordToBytes. Short slices are zero-extended and
// bytes past the eighth are ignored.
func BytesToWord(data []byte) uint64 {
	buf := make([]byte, WordBytes)
	copy(buf, data)

	return binary.LittleEndian.Uint64(buf)
}

// StrobeToMask expands a strobe into one flag per byte lane.
func StrobeToMask(strobe uint8) []bool {
	mask := make([]bool, WordBytes)
	for i := range mask {
		mask[i] = strobe&(1<<i) != 0
	}

	return mask
}
