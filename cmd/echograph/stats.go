package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print graph size and LeapController diagnostics as a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openEngine()
			if err != nil {
				return err
			}
			defer eng.Sink.Close()

			s := eng.Stats()
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"metric", "value"})
			table.Append([]string{"nodes", fmt.Sprint(s.NodeCount)})
			table.Append([]string{"edges", fmt.Sprint(s.EdgeCount)})
			table.Append([]string{"exact edges", fmt.Sprint(s.ExactEdges)})
			table.Append([]string{"leap edges", fmt.Sprint(s.LeapEdges)})
			table.Append([]string{"active leap nodes", fmt.Sprint(s.Diagnostics.ActiveLeapNodes)})
			table.Append([]string{"permanent leap nodes", fmt.Sprint(s.Diagnostics.PermanentLeapNodes)})
			table.Append([]string{"leap engagements", fmt.Sprint(s.Diagnostics.Engagements)})
			table.Append([]string{"leap promotions", fmt.Sprint(s.Diagnostics.Promotions)})
			table.Append([]string{"entropy threshold", fmt.Sprintf("%.3f", s.Diagnostics.EntropyThreshold)})
			table.Render()
			return nil
		},
	}
}
