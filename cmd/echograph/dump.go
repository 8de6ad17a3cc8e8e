package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/EchoCog/echograph/core/graph"
)

func newDumpCmd() *cobra.Command {
	var from string
	var hops int
	var out string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Render the graph (or the subgraph reachable from --from) as Graphviz DOT",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openEngine()
			if err != nil {
				return err
			}
			defer eng.Sink.Close()

			var seeds []graph.Handle
			if from != "" {
				if h, ok := eng.Graph.Lookup(from); ok {
					seeds = append(seeds, h)
				}
			}

			w := os.Stdout
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				return eng.Graph.WriteDOT(f, seeds, hops)
			}
			return eng.Graph.WriteDOT(w, seeds, hops)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "only dump the subgraph reachable from this node's label")
	cmd.Flags().IntVar(&hops, "hops", 3, "how many hops out from --from to include")
	cmd.Flags().StringVar(&out, "out", "", "write DOT to this file instead of stdout")
	return cmd
}
