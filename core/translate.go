package core

import "github.com/sarchlab/widthbridge/bus"

// Evaluate computes the outputs of one cycle from the inputs and the current
// latch, and prepares the value to be latched at the next edge. It does not
// change what Current returns, so calling it again with the same inputs gives
// the same result.
func (a *WidthAdapter) Evaluate(in bus.Inputs) bus.Outputs {
	req := in.Request
	a.next = a.current

	out := bus.Outputs{}
	out.BusRequest = bus.BusRequest{
		Valid:   req.Valid,
		Write:   req.Write,
		Address: bus.AlignAddress(req.Address),
	}

	a.next.ReadEnable = req.Valid && !req.Write

	if req.Write {
		out.BusRequest.Strobe, out.BusRequest.Data =
			writeLanes(req.Size, req.Address, req.Data)
	}

	// The bus answers the request latched one edge ago, never this cycle's.
	out.Response = bus.Response{
		Valid: in.BusResponse.Valid,
		Data: extractReadData(
			in.BusResponse.Data, a.current.Address, a.current.Size),
		Address: a.current.Address,
	}

	if req.Valid {
		a.next.Address = req.Address
		a.next.Size = req.Size
	}

	if !in.ResetActive {
		a.next = PendingRequest{}
	}

	return out
}

// writeLanes returns the byte strobe and the replicated write data of a store.
// Unknown size codes produce neither.
func writeLanes(
	size bus.AccessSize,
	addr uint32,
	data uint64,
) (strobe uint8, wdata uint64) {
	var pattern uint8

	switch size {
	case bus.Byte:
		pattern = 0x01
		wdata = replicate(data, 8)
	case bus.Half:
		pattern = 0x03
		wdata = replicate(data, 16)
	case bus.Word:
		pattern = 0x0F
		wdata = replicate(data, 32)
	case bus.Double:
		pattern = 0xFF
		wdata = data
	default:
		return 0, 0
	}

	strobe = pattern << bus.LaneOffset(addr)

	return strobe, wdata
}

// replicate copies the low width bits of data across the whole bus word.
func replicate(data uint64, width uint) uint64 {
	chunk := data & (uint64(1)<<width - 1)

	var word uint64
	for shift := uint(0); shift < 64; shift += width {
		word |= chunk << shift
	}

	return word
}

// extractReadData moves the addressed lanes of a bus word down to bit 0 and
// zero-extends them to the access size.
func extractReadData(word uint64, addr uint32, size bus.AccessSize) uint64 {
	shifted := word >> (8 * bus.LaneOffset(addr))

	return shifted & size.Mask()
}
