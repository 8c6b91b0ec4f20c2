package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sarchlab/widthbridge/api"
	"github.com/sarchlab/widthbridge/config"
	"github.com/sarchlab/widthbridge/verify"
)

var runCmd = &cobra.Command{
	Use:   "run <trace.yaml>",
	Short: "Run an access trace through the adapter and an ideal memory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		latency, _ := cmd.Flags().GetInt("latency")
		check, _ := cmd.Flags().GetBool("verify")

		accesses, err := api.LoadAccessFileFromYAML(args[0])
		if err != nil {
			return err
		}

		p := config.MakePlatformBuilder().
			WithMemoryLatency(latency).
			WithTrafficCounting(true).
			Build("Platform")

		for _, access := range accesses {
			p.Driver.Enqueue(access)
		}

		if err := p.Driver.Run(); err != nil {
			return fmt.Errorf("simulation failed: %w", err)
		}

		records := p.Driver.Results()
		out := cmd.OutOrStdout()

		t := table.NewWriter()
		t.SetOutputMirror(out)
		t.AppendHeader(table.Row{
			"#", "Op", "Size", "Address", "Data", "Result", "Issued", "Latency",
		})
		for i, r := range records {
			t.AppendRow(table.Row{
				i,
				r.Op,
				r.Size,
				fmt.Sprintf("0x%08X", r.Address),
				fmt.Sprintf("0x%016X", r.Data),
				fmt.Sprintf("0x%016X", r.Result),
				r.IssuedAt,
				r.Latency(),
			})
		}
		t.AppendFooter(table.Row{
			"", "", "", "", "",
			fmt.Sprintf("%d reads", p.Traffic.Reads),
			fmt.Sprintf("%d writes", p.Traffic.Writes),
			fmt.Sprintf("%d bytes", p.Traffic.StrobedBytes),
		})
		t.Render()

		if !check {
			return nil
		}

		report := verify.GenerateReport(accesses, records)
		report.WriteReport(out)

		if !report.Passed() {
			return fmt.Errorf("simulation does not match the golden model")
		}

		return nil
	},
}

func init() {
	runCmd.Flags().Int("latency", 1, "cycles the memory takes to answer")
	runCmd.Flags().Bool("verify", false,
		"lint the trace and compare the results with the golden model")
	rootCmd.AddCommand(runCmd)
}
