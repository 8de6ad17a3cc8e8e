package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newSaveCmd re-saves --graph to --out (or back to --graph itself),
// useful for migrating a loaded graph to a new path or simply forcing a
// checkpoint without teaching anything new.
func newSaveCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Load --graph and write it back out, optionally to a different path",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openEngine()
			if err != nil {
				return err
			}
			defer eng.Sink.Close()

			dest := graphPath
			if out != "" {
				dest = out
			}
			if err := eng.Save(dest); err != nil {
				return err
			}
			fmt.Printf("saved %d nodes, %d edges to %s\n", eng.Graph.NodeCount(), eng.Graph.EdgeCount(), dest)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "write to this path instead of --graph")
	return cmd
}

// newLoadCmd loads --graph and reports what it found, a quick sanity
// check before teaching or serving a checkpoint someone else produced.
func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Load --graph and report its size",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openEngine()
			if err != nil {
				return err
			}
			defer eng.Sink.Close()

			fmt.Printf("loaded %d nodes, %d edges from %s\n", eng.Graph.NodeCount(), eng.Graph.EdgeCount(), graphPath)
			return nil
		},
	}
}
