package core

import (
	"fmt"
	"reflect"

	"github.com/sarchlab/akita/v4/mem/mem"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/widthbridge/bus"
)

type transaction struct {
	req      mem.AccessReq
	write    bool
	size     bus.AccessSize
	busReqID string
}

// Adapter runs a WidthAdapter against akita ports. Each tick is one clock
// cycle. Requests arrive at the Top port as mem.ReadReq or mem.WriteReq of 1,
// 2, 4 or 8 bytes and leave the Bottom port as 8-byte bus-aligned requests.
type Adapter struct {
	*sim.TickingComponent

	topPort             sim.Port
	bottomPort          sim.Port
	addressToPortMapper mem.AddressToPortMapper

	model        *WidthAdapter
	inflight     *transaction
	resetPending bool

	lastInputs  bus.Inputs
	lastOutputs bus.Outputs
}

// TopPort returns the requester-facing port.
func (a *Adapter) TopPort() sim.Port {
	return a.topPort
}

// BottomPort returns the bus-facing port.
func (a *Adapter) BottomPort() sim.Port {
	return a.bottomPort
}

// Latch returns the pending request currently held by the adapter.
func (a *Adapter) Latch() PendingRequest {
	return a.model.Current()
}

// LastCycle returns the signals of the most recent tick.
func (a *Adapter) LastCycle() (bus.Inputs, bus.Outputs) {
	return a.lastInputs, a.lastOutputs
}

// Reset asserts the active-low reset for the next cycle.
func (a *Adapter) Reset() {
	a.resetPending = true
	a.TickLater()
}

// Tick runs one clock cycle.
func (a *Adapter) Tick() (madeProgress bool) {
	in := bus.Inputs{ResetActive: !a.resetPending}

	rsp := a.peekBusResponse()
	if rsp != nil {
		in.BusResponse = busResponseFrom(rsp)
	}

	req := a.peekRequest(rsp != nil)
	if req != nil {
		in.Request = requestFrom(req)
	}

	out := a.model.Evaluate(in)

	if out.Response.Valid {
		a.respond(out.Response)
		madeProgress = true
	}

	if out.BusRequest.Valid {
		a.issue(req, in.Request, out.BusRequest)
		madeProgress = true
	}

	if a.resetPending {
		Trace("Adapter",
			"Behavior", "Reset",
			"Time", float64(a.Engine.CurrentTime()*1e9),
			"Name", a.Name(),
		)
		LogState(a.Name(), a.model.Next())
		a.resetPending = false
		madeProgress = true
	}

	a.lastInputs = in
	a.lastOutputs = out
	PrintState(a.model.Current(), in, out)

	a.model.Advance()

	return madeProgress
}

func (a *Adapter) peekBusResponse() sim.Msg {
	item := a.bottomPort.PeekIncoming()
	if item == nil {
		return nil
	}

	if a.inflight == nil {
		panic(fmt.Sprintf("%s received a bus response with no request "+
			"in flight", a.Name()))
	}

	if !a.topPort.CanSend() {
		return nil
	}

	rsp, ok := item.(mem.AccessRsp)
	if !ok {
		panic(fmt.Sprintf("cannot process message of type %s",
			reflect.TypeOf(item)))
	}

	if rsp.GetRspTo() != a.inflight.busReqID {
		panic(fmt.Sprintf("%s received a response to %s while waiting for %s",
			a.Name(), rsp.GetRspTo(), a.inflight.busReqID))
	}

	return item
}

// peekRequest returns the request to present this cycle. A new request is only
// accepted once the previous one is answered, which may be in this same cycle.
func (a *Adapter) peekRequest(completing bool) mem.AccessReq {
	if a.inflight != nil && !completing {
		return nil
	}

	if !a.bottomPort.CanSend() {
		return nil
	}

	item := a.topPort.PeekIncoming()
	if item == nil {
		return nil
	}

	switch req := item.(type) {
	case *mem.ReadReq:
		return req
	case *mem.WriteReq:
		return req
	default:
		panic(fmt.Sprintf("cannot process message of type %s",
			reflect.TypeOf(item)))
	}
}

func busResponseFrom(msg sim.Msg) bus.BusResponse {
	switch rsp := msg.(type) {
	case *mem.DataReadyRsp:
		return bus.BusResponse{Valid: true, Data: bus.BytesToWord(rsp.Data)}
	case *mem.WriteDoneRsp:
		return bus.BusResponse{Valid: true}
	default:
		panic(fmt.Sprintf("cannot process message of type %s",
			reflect.TypeOf(msg)))
	}
}

func requestFrom(req mem.AccessReq) bus.Request {
	size, _ := bus.SizeFromByteCount(req.GetByteSize())
	r := bus.Request{
		Valid:   true,
		Size:    size,
		Address: uint32(req.GetAddress()),
	}

	if write, ok := req.(*mem.WriteReq); ok {
		r.Write = true
		r.Data = bus.BytesToWord(write.Data)
	}

	return r
}

func (a *Adapter) issue(
	req mem.AccessReq,
	in bus.Request,
	busReq bus.BusRequest,
) {
	if a.addressToPortMapper == nil {
		panic(fmt.Sprintf("%s has no address to port mapper", a.Name()))
	}

	dst := a.addressToPortMapper.Find(uint64(busReq.Address))

	var msg mem.AccessReq
	if busReq.Write {
		msg = mem.WriteReqBuilder{}.
			WithSrc(a.bottomPort.AsRemote()).
			WithDst(dst).
			WithAddress(uint64(busReq.Address)).
			WithData(bus.WordToBytes(busReq.Data)).
			WithDirtyMask(bus.StrobeToMask(busReq.Strobe)).
			Build()
	} else {
		msg = mem.ReadReqBuilder{}.
			WithSrc(a.bottomPort.AsRemote()).
			WithDst(dst).
			WithAddress(uint64(busReq.Address)).
			WithByteSize(bus.WordBytes).
			Build()
	}

	err := a.bottomPort.Send(msg)
	if err != nil {
		panic(fmt.Sprintf("%s cannot send to the bus after CanSend",
			a.Name()))
	}

	a.topPort.RetrieveIncoming()
	a.inflight = &transaction{
		req:      req,
		write:    busReq.Write,
		size:     in.Size,
		busReqID: msg.Meta().ID,
	}

	Trace("Adapter",
		"Behavior", "Issue",
		"Time", float64(a.Engine.CurrentTime()*1e9),
		"Name", a.Name(),
		"Write", busReq.Write,
		"Size", in.Size.String(),
		"Address", in.Address,
		"BusAddress", busReq.Address,
		"Strobe", busReq.Strobe,
		"Data", busReq.Data,
	)
}

func (a *Adapter) respond(rsp bus.Response) {
	t := a.inflight

	var msg sim.Msg
	if t.write {
		msg = mem.WriteDoneRspBuilder{}.
			WithSrc(a.topPort.AsRemote()).
			WithDst(t.req.Meta().Src).
			WithRspTo(t.req.Meta().ID).
			Build()
	} else {
		n := t.size.ByteCount()
		if n == 0 {
			n = bus.WordBytes
		}

		msg = mem.DataReadyRspBuilder{}.
			WithSrc(a.topPort.AsRemote()).
			WithDst(t.req.Meta().Src).
			WithRspTo(t.req.Meta().ID).
			WithData(bus.WordToBytes(rsp.Data)[:n]).
			Build()
	}

	err := a.topPort.Send(msg)
	if err != nil {
		panic(fmt.Sprintf("%s cannot respond after CanSend", a.Name()))
	}

	a.bottomPort.RetrieveIncoming()
	a.inflight = nil

	Trace("Adapter",
		"Behavior", "Respond",
		"Time", float64(a.Engine.CurrentTime()*1e9),
		"Name", a.Name(),
		"Write", t.write,
		"Address", rsp.Address,
		"Data", rsp.Data,
	)
}
