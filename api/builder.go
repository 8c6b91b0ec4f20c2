package api

import "github.com/sarchlab/akita/v4/sim"

type defaultPortFactory struct {
	bufSize int
}

func (f defaultPortFactory) make(c sim.Component, name string) sim.Port {
	return sim.NewPort(c, f.bufSize, f.bufSize, name)
}

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	engine  sim.Engine
	freq    sim.Freq
	bufSize int
}

// MakeDriverBuilder returns a builder with a 1 GHz clock.
func MakeDriverBuilder() DriverBuilder {
	return DriverBuilder{
		freq:    1 * sim.GHz,
		bufSize: 1,
	}
}

// WithEngine sets the engine.
func (b DriverBuilder) WithEngine(engine sim.Engine) DriverBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the driver.
func (b DriverBuilder) WithFreq(freq sim.Freq) DriverBuilder {
	b.freq = freq
	return b
}

// Build create a driver.
func (b DriverBuilder) Build(name string) Driver {
	if b.bufSize < 1 {
		b.bufSize = 1
	}

	return b.build(name, defaultPortFactory{bufSize: b.bufSize})
}

func (b DriverBuilder) build(name string, factory portFactory) *driverImpl {
	d := &driverImpl{
		portFactory: factory,
	}

	d.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, d)

	d.port = d.portFactory.make(d, name+".Port")
	d.AddPort("Port", d.port)

	return d
}
