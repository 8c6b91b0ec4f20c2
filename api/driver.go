// Package api defines the driver API for the width bridge.
package api

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/sarchlab/akita/v4/mem/mem"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/akita/v4/sim/directconnection"
	"github.com/sarchlab/widthbridge/bus"
)

// Driver plays the requester. It issues loads and stores to a width adapter
// one at a time, in the order they are added.
type Driver interface {
	// RegisterDevice registers a device to the driver. The driver will
	// establish a connection to the device.
	RegisterDevice(device bus.Device)

	// Load reads size bytes from addr. The zero-extended result is written to
	// dst when the access completes. dst may be nil.
	Load(addr uint32, size bus.AccessSize, dst *uint64)

	// Store writes the low bytes of data to addr.
	Store(addr uint32, size bus.AccessSize, data uint64)

	// Enqueue adds an access read from a trace.
	Enqueue(access Access)

	// Run will run all the accesses that have been added to the driver.
	Run() error

	// Results returns the completed accesses in completion order.
	Results() []AccessRecord
}

// AccessRecord is a completed access.
type AccessRecord struct {
	Access

	// Result is the loaded value. It is zero for stores.
	Result      uint64
	IssuedAt    uint64
	CompletedAt uint64
}

// Latency returns the number of cycles from issue to completion.
func (r AccessRecord) Latency() uint64 {
	return r.CompletedAt - r.IssuedAt
}

type portFactory interface {
	make(c sim.Component, name string) sim.Port
}

type accessTask struct {
	access   Access
	dst      *uint64
	msgID    string
	issuedAt uint64
}

type driverImpl struct {
	*sim.TickingComponent

	device      bus.Device
	portFactory portFactory
	port        sim.Port

	pending  []*accessTask
	inflight *accessTask
	records  []AccessRecord
}

// Tick runs the driver for one cycle.
func (d *driverImpl) Tick() (madeProgress bool) {
	madeProgress = d.doCollect() || madeProgress
	madeProgress = d.doIssue() || madeProgress

	return madeProgress
}

func (d *driverImpl) doIssue() bool {
	if d.inflight != nil || len(d.pending) == 0 {
		return false
	}

	if d.device == nil {
		panic("no device registered to the driver")
	}

	task := d.pending[0]
	msg := d.buildMsg(task.access)

	err := d.port.Send(msg)
	if err != nil {
		return false
	}

	task.msgID = msg.Meta().ID
	task.issuedAt = d.cycle()
	d.inflight = task
	d.pending = d.pending[1:]

	return true
}

func (d *driverImpl) buildMsg(access Access) sim.Msg {
	n := uint64(access.Size.ByteCount())

	if access.Op == OpStore {
		return mem.WriteReqBuilder{}.
			WithSrc(d.port.AsRemote()).
			WithDst(d.device.TopPort().AsRemote()).
			WithAddress(uint64(access.Address)).
			WithData(bus.WordToBytes(access.Data)[:n]).
			Build()
	}

	return mem.ReadReqBuilder{}.
		WithSrc(d.port.AsRemote()).
		WithDst(d.device.TopPort().AsRemote()).
		WithAddress(uint64(access.Address)).
		WithByteSize(n).
		Build()
}

func (d *driverImpl) doCollect() bool {
	item := d.port.PeekIncoming()
	if item == nil {
		return false
	}

	task := d.inflight
	if task == nil {
		panic(fmt.Sprintf("%s received a response with no access in flight",
			d.Name()))
	}

	rsp, ok := item.(mem.AccessRsp)
	if !ok {
		panic(fmt.Sprintf("cannot process message of type %s",
			reflect.TypeOf(item)))
	}

	if rsp.GetRspTo() != task.msgID {
		panic(fmt.Sprintf("%s received a response to %s while waiting for %s",
			d.Name(), rsp.GetRspTo(), task.msgID))
	}

	record := AccessRecord{
		Access:      task.access,
		IssuedAt:    task.issuedAt,
		CompletedAt: d.cycle(),
	}

	if dataReady, ok := rsp.(*mem.DataReadyRsp); ok {
		record.Result = bus.BytesToWord(dataReady.Data)
		if task.dst != nil {
			*task.dst = record.Result
		}
	}

	d.records = append(d.records, record)
	d.inflight = nil
	d.port.RetrieveIncoming()

	slog.Debug("AccessDone",
		"Driver", d.Name(),
		"Op", record.Op.String(),
		"Size", record.Size.String(),
		"Address", record.Address,
		"Result", record.Result,
		"Latency", record.Latency(),
	)

	return true
}

func (d *driverImpl) cycle() uint64 {
	return d.Freq.Cycle(d.Engine.CurrentTime())
}

// RegisterDevice registers a device to the driver. The driver will
// establish a connection to the device.
func (d *driverImpl) RegisterDevice(device bus.Device) {
	d.device = device

	conn := directconnection.MakeBuilder().
		WithEngine(d.Engine).
		WithFreq(d.Freq).
		Build(d.port.Name() + "." + device.TopPort().Name())
	conn.PlugIn(d.port)
	conn.PlugIn(device.TopPort())
}

func (d *driverImpl) Load(addr uint32, size bus.AccessSize, dst *uint64) {
	d.pending = append(d.pending, &accessTask{
		access: Access{Op: OpLoad, Size: size, Address: addr},
		dst:    dst,
	})
}

func (d *driverImpl) Store(addr uint32, size bus.AccessSize, data uint64) {
	d.Enqueue(Access{Op: OpStore, Size: size, Address: addr, Data: data})
}

func (d *driverImpl) Enqueue(access Access) {
	d.pending = append(d.pending, &accessTask{access: access})
}

// Run runs all the accesses in the driver.
func (d *driverImpl) Run() error {
	d.TickLater()

	return d.Engine.Run()
}

func (d *driverImpl) Results() []AccessRecord {
	records := make([]AccessRecord, len(d.records))
	copy(records, d.records)

	return records
}
