package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDecayCmd() *cobra.Command {
	var rate float32

	cmd := &cobra.Command{
		Use:   "decay",
		Short: "Run one decay tick over the graph, pruning edges that fall below threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openEngine()
			if err != nil {
				return err
			}
			defer eng.Sink.Close()

			pruned := eng.Decay(rate)
			fmt.Printf("pruned %d edges\n", pruned)
			return eng.Save(graphPath)
		},
	}
	cmd.Flags().Float32Var(&rate, "rate", 0.05, "fraction of weight to decay off every edge")
	return cmd
}
