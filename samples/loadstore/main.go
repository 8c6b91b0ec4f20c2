package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/widthbridge/api"
	"github.com/sarchlab/widthbridge/bus"
	"github.com/sarchlab/widthbridge/config"
	"github.com/sarchlab/widthbridge/core"
)

func loadStore(driver api.Driver) {
	src := []uint64{0x11, 0x2222, 0x33333333, 0x4444444444444444}
	sizes := []bus.AccessSize{bus.Byte, bus.Half, bus.Word, bus.Double}
	dst := make([]uint64, len(src))

	addr := uint32(0x1000)
	for i, size := range sizes {
		driver.Store(addr, size, src[i])
		driver.Load(addr, size, &dst[i])
		addr += bus.WordBytes
	}

	if err := driver.Run(); err != nil {
		panic(err)
	}

	fmt.Println(src)
	fmt.Println(dst)
}

func main() {
	f, err := os.Create("loadstore.json.log")
	if err != nil {
		panic(err)
	}
	atexit.Register(func() { f.Close() })

	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: core.LevelTrace,
	})
	slog.SetDefault(slog.New(handler))

	platform := config.MakePlatformBuilder().
		WithEngine(sim.NewSerialEngine()).
		WithFreq(1 * sim.GHz).
		WithMemoryLatency(10).
		Build("Platform")

	loadStore(platform.Driver)

	atexit.Exit(0)
}
