package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newThinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "think [query]",
		Short: "Ask the graph a question and print the continuation it generates",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openEngine()
			if err != nil {
				return err
			}
			defer eng.Sink.Close()

			query := strings.Join(args, " ")
			result, ok := eng.Think(query)
			if !ok {
				fmt.Println("(abstained — nothing in the graph grounds that query)")
				return nil
			}

			fmt.Println(strings.Join(result.Words, " "))
			if result.Decision.Created {
				fmt.Printf("leap created: support=%.2f\n", result.Decision.Support)
			}
			fmt.Printf("path score: %.4f\n", result.Score.Score)

			return eng.Save(graphPath)
		},
	}
	return cmd
}
