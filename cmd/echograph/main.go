// Command echograph is the CLI and HTTP front door for the knowledge
// graph engine in core/engine: teach it text, ask it to think, inspect
// its stats, or serve it over HTTP for a longer-lived collaborator.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/EchoCog/echograph/core/config"
	"github.com/EchoCog/echograph/core/engine"
	"github.com/EchoCog/echograph/core/telemetry"
)

var (
	graphPath     string
	configPath    string
	telemetryPath string
	logger        *zap.Logger
)

func main() {
	root := &cobra.Command{
		Use:   "echograph",
		Short: "A persistent, self-learning knowledge graph engine",
	}
	root.PersistentFlags().StringVar(&graphPath, "graph", "echograph.bin", "path to the graph's binary artifact")
	root.PersistentFlags().StringVar(&configPath, "config", "", "optional YAML config overriding the defaults")
	root.PersistentFlags().StringVar(&telemetryPath, "telemetry", "", "optional path to append structured telemetry events to")

	root.AddCommand(
		newTeachCmd(),
		newThinkCmd(),
		newStatsCmd(),
		newSaveCmd(),
		newLoadCmd(),
		newDecayCmd(),
		newDumpCmd(),
		newServeCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves --config if set, falling back to the environment.
func loadConfig() *config.Config {
	if configPath != "" {
		if cfg, err := config.FromYAML(configPath); err == nil {
			return cfg
		}
	}
	return config.FromEnv()
}

// openEngine builds an Engine wired to the shared logger and telemetry
// sink and loads --graph into it. A missing graph file starts empty.
func openEngine() (*engine.Engine, error) {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}

	var sink *telemetry.Sink
	if telemetryPath != "" {
		sink, err = telemetry.Open(telemetryPath)
		if err != nil {
			return nil, fmt.Errorf("echograph: open telemetry sink: %w", err)
		}
	} else {
		sink = telemetry.NewSink(nil)
	}

	eng := engine.New(loadConfig(), logger, sink)
	if err := eng.Load(graphPath); err != nil {
		return nil, fmt.Errorf("echograph: load %s: %w", graphPath, err)
	}
	return eng, nil
}
