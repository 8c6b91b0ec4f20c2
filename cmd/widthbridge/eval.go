package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sarchlab/widthbridge/bus"
	"github.com/sarchlab/widthbridge/core"
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate the adapter for one request and the bus response after it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sizeName, _ := cmd.Flags().GetString("size")
		addrText, _ := cmd.Flags().GetString("address")
		dataText, _ := cmd.Flags().GetString("data")
		busDataText, _ := cmd.Flags().GetString("bus-data")
		write, _ := cmd.Flags().GetBool("write")

		size, err := bus.ParseAccessSize(sizeName)
		if err != nil {
			return err
		}

		addr, err := strconv.ParseUint(addrText, 0, 32)
		if err != nil {
			return fmt.Errorf("invalid address: %w", err)
		}

		data, err := strconv.ParseUint(dataText, 0, 64)
		if err != nil {
			return fmt.Errorf("invalid data: %w", err)
		}

		busData, err := strconv.ParseUint(busDataText, 0, 64)
		if err != nil {
			return fmt.Errorf("invalid bus data: %w", err)
		}

		cycles := []bus.Inputs{
			{
				ResetActive: true,
				Request: bus.Request{
					Valid:   true,
					Write:   write,
					Size:    size,
					Address: uint32(addr),
					Data:    data,
				},
			},
			{
				ResetActive: true,
				BusResponse: bus.BusResponse{Valid: true, Data: busData},
			},
		}

		model := core.NewWidthAdapter()
		for i, in := range cycles {
			out := model.Evaluate(in)
			fmt.Fprintf(cmd.OutOrStdout(), "Cycle %d\n%s\n\n",
				i, core.RenderState(model.Current(), in, out))
			model.Advance()
		}

		return nil
	},
}

func init() {
	evalCmd.Flags().String("size", "word", "access size: byte, half, word or double")
	evalCmd.Flags().String("address", "0", "byte address of the access")
	evalCmd.Flags().String("data", "0", "store data")
	evalCmd.Flags().String("bus-data", "0",
		"bus word returned in the cycle after the request")
	evalCmd.Flags().Bool("write", false, "evaluate a store instead of a load")
	rootCmd.AddCommand(evalCmd)
}
