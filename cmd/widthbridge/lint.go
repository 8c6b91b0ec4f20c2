package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sarchlab/widthbridge/api"
	"github.com/sarchlab/widthbridge/verify"
)

var lintCmd = &cobra.Command{
	Use:   "lint <trace.yaml>",
	Short: "Report accesses of a trace that the adapter cannot express",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		accesses, err := api.LoadAccessFileFromYAML(args[0])
		if err != nil {
			return err
		}

		issues := verify.RunLint(accesses)
		if len(issues) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %d accesses, no lint issues\n",
				len(accesses))
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"#", "Type", "Message"})
		for _, issue := range issues {
			t.AppendRow(table.Row{issue.Index, issue.Type, issue.Message})
		}
		t.Render()

		return fmt.Errorf("found %d lint issues", len(issues))
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
