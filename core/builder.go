package core

import (
	"github.com/sarchlab/akita/v4/mem/mem"
	"github.com/sarchlab/akita/v4/sim"
)

// Builder can create new adapters.
type Builder struct {
	engine              sim.Engine
	freq                sim.Freq
	topBufSize          int
	bottomBufSize       int
	addressToPortMapper mem.AddressToPortMapper
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the adapter.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithTopBufSize sets the buffer size of the requester-facing port.
func (b Builder) WithTopBufSize(n int) Builder {
	if n < 1 {
		panic("Need at least 1 buffer slot")
	}
	b.topBufSize = n
	return b
}

// WithBottomBufSize sets the buffer size of the bus-facing port.
func (b Builder) WithBottomBufSize(n int) Builder {
	if n < 1 {
		panic("Need at least 1 buffer slot")
	}
	b.bottomBufSize = n
	return b
}

// WithAddressToPortMapper sets how the adapter finds the bus target of an
// address.
func (b Builder) WithAddressToPortMapper(
	addressToPortMapper mem.AddressToPortMapper,
) Builder {
	b.addressToPortMapper = addressToPortMapper
	return b
}

func NewBuilder() Builder {
	return Builder{
		freq:          1 * sim.GHz,
		topBufSize:    4,
		bottomBufSize: 4,
	}
}

// Build creates an adapter.
func (b Builder) Build(name string) *Adapter {
	a := &Adapter{
		model:               NewWidthAdapter(),
		addressToPortMapper: b.addressToPortMapper,
	}

	a.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, a)

	a.topPort = sim.NewPort(a, b.topBufSize, b.topBufSize, name+".TopPort")
	a.AddPort("Top", a.topPort)

	a.bottomPort = sim.NewPort(
		a, b.bottomBufSize, b.bottomBufSize, name+".BottomPort")
	a.AddPort("Bottom", a.bottomPort)

	return a
}
