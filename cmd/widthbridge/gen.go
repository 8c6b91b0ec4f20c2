package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/sarchlab/widthbridge/api"
	valgen "github.com/sarchlab/widthbridge/util"
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a random trace of naturally aligned accesses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		seed, _ := cmd.Flags().GetInt64("seed")
		baseText, _ := cmd.Flags().GetString("base")
		span, _ := cmd.Flags().GetUint32("span")
		output, _ := cmd.Flags().GetString("output")

		base, err := strconv.ParseUint(baseText, 0, 32)
		if err != nil {
			return fmt.Errorf("invalid base: %w", err)
		}

		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Seed %d\n", seed)

		gen := valgen.MakeAccessGen(
			rand.New(rand.NewSource(seed)), uint32(base), span)

		data, err := api.MarshalAccesses(valgen.GenerateTrace(count, gen))
		if err != nil {
			return err
		}

		if output == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}

		return os.WriteFile(output, data, 0o644)
	},
}

func init() {
	genCmd.Flags().Int("count", 16, "number of accesses")
	genCmd.Flags().Int64("seed", 0, "random seed, 0 picks one from the clock")
	genCmd.Flags().String("base", "0x1000", "lowest address of the trace")
	genCmd.Flags().Uint32("span", 64, "bytes covered by the trace")
	genCmd.Flags().StringP("output", "o", "", "write the trace to a file")
	rootCmd.AddCommand(genCmd)
}
