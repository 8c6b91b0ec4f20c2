package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/widthbridge/bus"
)

const (
	LevelTrace slog.Level = slog.LevelInfo + 1
)

// PrintToggle turns on the per-cycle state dump of every adapter.
var PrintToggle = false

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// PrintState prints the latch and the signals of one cycle as tables.
func PrintState(latch PendingRequest, in bus.Inputs, out bus.Outputs) {
	if !PrintToggle {
		return
	}

	fmt.Println(RenderState(latch, in, out))
}

// RenderState renders the latch and the signals of one cycle.
func RenderState(latch PendingRequest, in bus.Inputs, out bus.Outputs) string {
	latchTable := table.NewWriter()
	latchTable.SetTitle("Pending Request")
	latchTable.AppendHeader(table.Row{"Address", "Size", "ReadEnable"})
	latchTable.AppendRow(table.Row{
		fmt.Sprintf("0x%08X", latch.Address),
		latch.Size.String(),
		latch.ReadEnable,
	})

	sigTable := table.NewWriter()
	sigTable.SetTitle("Signals")
	sigTable.AppendHeader(table.Row{"Side", "Valid", "Write", "Address",
		"Size/Strobe", "Data"})
	sigTable.AppendRow(table.Row{
		"Request",
		in.Request.Valid,
		in.Request.Write,
		fmt.Sprintf("0x%08X", in.Request.Address),
		in.Request.Size.String(),
		fmt.Sprintf("0x%016X", in.Request.Data),
	})
	sigTable.AppendRow(table.Row{
		"BusRequest",
		out.BusRequest.Valid,
		out.BusRequest.Write,
		fmt.Sprintf("0x%08X", out.BusRequest.Address),
		fmt.Sprintf("0b%08b", out.BusRequest.Strobe),
		fmt.Sprintf("0x%016X", out.BusRequest.Data),
	})
	sigTable.AppendRow(table.Row{
		"BusResponse",
		in.BusResponse.Valid,
		"",
		"",
		"",
		fmt.Sprintf("0x%016X", in.BusResponse.Data),
	})
	sigTable.AppendRow(table.Row{
		"Response",
		out.Response.Valid,
		"",
		fmt.Sprintf("0x%08X", out.Response.Address),
		"",
		fmt.Sprintf("0x%016X", out.Response.Data),
	})

	return latchTable.Render() + "\n" + sigTable.Render()
}

func LogState(name string, latch PendingRequest) {
	slog.Debug("StateCheckpoint",
		"Name", name,
		"Address", latch.Address,
		"Size", latch.Size.String(),
		"ReadEnable", latch.ReadEnable,
	)
}
