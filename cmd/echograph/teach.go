package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTeachCmd() *cobra.Command {
	var audio, image, motor string

	cmd := &cobra.Command{
		Use:   "teach [text]",
		Short: "Teach the graph a sentence, saving it back to --graph afterward",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openEngine()
			if err != nil {
				return err
			}
			defer eng.Sink.Close()

			if text := strings.TrimSpace(strings.Join(args, " ")); text != "" {
				handles := eng.TeachText(text)
				fmt.Printf("taught %d tokens\n", len(handles))
			}
			if audio != "" {
				eng.TeachAudio(audio, nil)
				fmt.Printf("taught audio token %q\n", audio)
			}
			if image != "" {
				eng.TeachImage(image, nil)
				fmt.Printf("taught image percept %q\n", image)
			}
			if motor != "" {
				eng.TeachMotor(motor, nil)
				fmt.Printf("taught motor action %q\n", motor)
			}

			return eng.Save(graphPath)
		},
	}
	cmd.Flags().StringVar(&audio, "audio", "", "also teach an audio token label")
	cmd.Flags().StringVar(&image, "image", "", "also teach an image percept label")
	cmd.Flags().StringVar(&motor, "motor", "", "also teach a motor action label")
	return cmd
}
