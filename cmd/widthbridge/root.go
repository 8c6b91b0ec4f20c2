package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rs/xid"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/widthbridge/core"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "widthbridge",
	Short: "Simulate 1, 2, 4 and 8-byte accesses going through a width adapter to a 64-bit bus.",
	Long: `widthbridge runs access traces through a cycle model of a width adapter ` +
		`in front of an ideal 64-bit memory, evaluates single cycles of the adapter, ` +
		`and lints traces for accesses the adapter cannot express.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		printState, _ := cmd.Flags().GetBool("print-state")
		core.PrintToggle = printState

		logFile, _ := cmd.Flags().GetString("log-file")
		return setupLogging(logFile)
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-file", "",
		`write trace logs as JSON to this file, "auto" picks a unique name`)
	rootCmd.PersistentFlags().Bool("print-state", false,
		"print the latch and signals of every adapter cycle")
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}
}

func setupLogging(path string) error {
	if path == "" {
		return nil
	}

	if path == "auto" {
		path = "widthbridge_" + xid.New().String() + ".log"
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	atexit.Register(func() { f.Close() })

	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: core.LevelTrace,
	})
	slog.SetDefault(slog.New(handler))

	return nil
}
