package config

import (
	"github.com/sarchlab/akita/v4/mem/mem"
	"github.com/sarchlab/akita/v4/sim"
)

// TrafficCounter counts the requests that leave a port towards the bus.
type TrafficCounter struct {
	Reads        uint64
	Writes       uint64
	StrobedBytes uint64
}

// NewTrafficCounter creates a counter with all counts at zero.
func NewTrafficCounter() *TrafficCounter {
	return &TrafficCounter{}
}

// Func counts one message.
func (c *TrafficCounter) Func(ctx sim.HookCtx) {
	if ctx.Pos != sim.HookPosPortMsgSend {
		return
	}

	switch msg := ctx.Item.(type) {
	case *mem.ReadReq:
		c.Reads++
	case *mem.WriteReq:
		c.Writes++
		for _, dirty := range msg.DirtyMask {
			if dirty {
				c.StrobedBytes++
			}
		}
	}
}
