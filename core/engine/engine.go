// Package engine wires graph, reasoning, embeddings, leap, predictive,
// leapcontroller, and learning into the external operations a caller
// actually invokes: teach, think, stats, save, load, decay. It is the
// session object a CLI or HTTP server holds onto.
package engine

import (
	"math/rand"
	"time"

	"github.com/EchoCog/echograph/core/config"
	"github.com/EchoCog/echograph/core/embeddings"
	"github.com/EchoCog/echograph/core/graph"
	"github.com/EchoCog/echograph/core/leapcontroller"
	"github.com/EchoCog/echograph/core/reasoning"
	"github.com/EchoCog/echograph/core/telemetry"
	"go.uber.org/zap"
)

// Engine owns one graph and everything reasoning over it needs: a
// diffusion field, an embedding bridge, the uncertainty-escape
// controller, and the tunables and telemetry sink they all share.
type Engine struct {
	Graph   *graph.Graph
	Field   *reasoning.ContextField
	Bridge  *embeddings.Bridge
	Config  *config.Config
	Sink    *telemetry.Sink
	Leap    *leapcontroller.Controller
	Queue   *IngestQueue

	log *zap.Logger
	rng *rand.Rand
}

// New builds an Engine from explicit dependencies. A nil cfg uses
// config.Default(), a nil sink/log fall back to safe no-ops.
func New(cfg *config.Config, log *zap.Logger, sink *telemetry.Sink) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if sink == nil {
		sink = telemetry.NewSink(nil)
	}
	g := graph.New(log)
	return &Engine{
		Graph:  g,
		Field:  reasoning.NewContextField(),
		Bridge: embeddings.NewBridge(embeddings.DefaultDimension),
		Config: cfg,
		Sink:   sink,
		Leap:   leapcontroller.New(cfg, log, sink),
		Queue:  &IngestQueue{},
		log:    log,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}
