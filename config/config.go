// Package config provides a default platform for the width bridge: a driver,
// an adapter and an ideal memory behind a 64-bit bus.
package config

import (
	"github.com/sarchlab/akita/v4/mem/idealmemcontroller"
	"github.com/sarchlab/akita/v4/mem/mem"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/akita/v4/sim/directconnection"

	"github.com/sarchlab/widthbridge/api"
	"github.com/sarchlab/widthbridge/bus"
	"github.com/sarchlab/widthbridge/core"
)

// PlatformBuilder can build platforms.
type PlatformBuilder struct {
	engine          sim.Engine
	freq            sim.Freq
	memoryLatency   int
	memoryCapacity  uint64
	trafficCounting bool
}

// MakePlatformBuilder returns a builder with a 1 GHz clock and a 4 GB memory
// that answers in one cycle.
func MakePlatformBuilder() PlatformBuilder {
	return PlatformBuilder{
		freq:           1 * sim.GHz,
		memoryLatency:  1,
		memoryCapacity: 4 * mem.GB,
	}
}

// WithEngine sets the engine that drives the simulation. A serial engine is
// created if none is given.
func (b PlatformBuilder) WithEngine(engine sim.Engine) PlatformBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of every component.
func (b PlatformBuilder) WithFreq(freq sim.Freq) PlatformBuilder {
	b.freq = freq
	return b
}

// WithMemoryLatency sets the number of cycles the memory takes to answer.
func (b PlatformBuilder) WithMemoryLatency(cycles int) PlatformBuilder {
	b.memoryLatency = cycles
	return b
}

// WithMemoryCapacity sets the size of the memory in bytes.
func (b PlatformBuilder) WithMemoryCapacity(capacity uint64) PlatformBuilder {
	b.memoryCapacity = capacity
	return b
}

// WithTrafficCounting attaches a TrafficCounter to the bus side of the
// adapter.
func (b PlatformBuilder) WithTrafficCounting(enabled bool) PlatformBuilder {
	b.trafficCounting = enabled
	return b
}

// Build creates a platform.
func (b PlatformBuilder) Build(name string) *Platform {
	if b.engine == nil {
		b.engine = sim.NewSerialEngine()
	}

	p := &Platform{Engine: b.engine}

	p.Memory = idealmemcontroller.MakeBuilder().
		WithEngine(b.engine).
		WithFreq(b.freq).
		WithLatency(b.memoryLatency).
		WithNewStorage(b.memoryCapacity).
		Build(name + ".Memory")

	p.Adapter = core.NewBuilder().
		WithEngine(b.engine).
		WithFreq(b.freq).
		WithAddressToPortMapper(&mem.SinglePortMapper{
			Port: p.Memory.GetPortByName("Top").AsRemote(),
		}).
		Build(name + ".Adapter")

	busConn := directconnection.MakeBuilder().
		WithEngine(b.engine).
		WithFreq(b.freq).
		Build(name + ".Bus")
	busConn.PlugIn(p.Adapter.BottomPort())
	busConn.PlugIn(p.Memory.GetPortByName("Top"))

	p.Driver = api.MakeDriverBuilder().
		WithEngine(b.engine).
		WithFreq(b.freq).
		Build(name + ".Driver")
	p.Driver.RegisterDevice(p.Adapter)

	if b.trafficCounting {
		p.Traffic = NewTrafficCounter()
		p.Adapter.BottomPort().AcceptHook(p.Traffic)
	}

	return p
}

// Platform is a requester, an adapter and a memory wired together.
type Platform struct {
	Engine  sim.Engine
	Driver  api.Driver
	Adapter *core.Adapter
	Memory  *idealmemcontroller.Comp

	// Traffic is nil unless traffic counting is enabled.
	Traffic *TrafficCounter
}

// ReadMemory returns the bus word stored at the aligned address of addr.
func (p *Platform) ReadMemory(addr uint64) (uint64, error) {
	data, err := p.Memory.Storage.Read(addr&^(bus.WordBytes-1), bus.WordBytes)
	if err != nil {
		return 0, err
	}

	return bus.BytesToWord(data), nil
}

// WriteMemory stores a bus word at the aligned address of addr without going
// through the adapter.
func (p *Platform) WriteMemory(addr uint64, word uint64) error {
	return p.Memory.Storage.Write(
		addr&^(bus.WordBytes-1), bus.WordToBytes(word))
}

// Reset asserts the reset of the adapter for one cycle.
func (p *Platform) Reset() {
	p.Adapter.Reset()
}
