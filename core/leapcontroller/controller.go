// Package leapcontroller implements the uncertainty escape hatch: when the
// predictive sampler's distribution goes flat or its output starts
// repeating, a Controller clusters currently-active nodes, mints a
// temporary LeapNode to represent the cluster, and biases the context
// field toward it so generation has somewhere new to go. Sustained
// positive feedback promotes a LeapNode to permanent.
package leapcontroller

import (
	"sync"

	"github.com/EchoCog/echograph/core/config"
	"github.com/EchoCog/echograph/core/graph"
	"github.com/EchoCog/echograph/core/predictive"
	"github.com/EchoCog/echograph/core/reasoning"
	"github.com/EchoCog/echograph/core/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// leapState tracks one temporary LeapNode's feedback history.
type leapState struct {
	cluster   []graph.Handle
	successes int
	score     float32
	permanent bool
}

// Controller owns every temporary LeapNode minted so far and the tunables
// governing when to engage and when to promote.
type Controller struct {
	mu  sync.RWMutex
	log *zap.Logger
	sink *telemetry.Sink

	cfg *config.Config

	states map[graph.Handle]*leapState

	recentEntropy []float32
	engagements   int
	promotions    int
}

// New builds a Controller bound to cfg's thresholds. A nil logger or sink
// fall back to safe no-ops.
func New(cfg *config.Config, log *zap.Logger, sink *telemetry.Sink) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		log:    log,
		sink:   sink,
		cfg:    cfg,
		states: make(map[graph.Handle]*leapState),
	}
}

// ShouldEngage reports whether the sampler's current state warrants the
// escape hatch: either the candidate distribution's entropy is at or
// above cfg.LeapEntropyThreshold, or the last 5 outputs show a repetition
// loop.
func (c *Controller) ShouldEngage(candidates []predictive.Candidate, history []graph.Handle) bool {
	c.mu.Lock()
	h := predictive.Entropy(candidates)
	c.recentEntropy = append(c.recentEntropy, h)
	if len(c.recentEntropy) > 50 {
		c.recentEntropy = c.recentEntropy[len(c.recentEntropy)-50:]
	}
	threshold := c.cfg.LeapEntropyThreshold
	c.mu.Unlock()

	if h >= threshold {
		return true
	}
	return predictive.DetectRepetition(history, 5)
}

// Escape runs the full uncertainty-escape sequence and satisfies
// predictive.EscapeHatch: form a cluster around the currently active
// field, mint (or reuse) its LeapNode, bias the field toward it, and
// return that node as the next hop.
func (c *Controller) Escape(g *graph.Graph, field *reasoning.ContextField) predictive.EscapeHatch {
	return func(recent []graph.Handle) (graph.Handle, bool) {
		cluster := FormClusters(g, field, defaultMinJaccard, defaultMinMembers)
		if len(cluster) == 0 {
			return graph.InvalidHandle, false
		}

		node := c.mintLeapNode(g, cluster)
		ApplyBiasField(g, field, node, c.cfg.LambdaGraphBias)

		c.mu.Lock()
		c.engagements++
		c.mu.Unlock()
		c.sink.Emit("leap_controller_engage", map[string]interface{}{
			"node": int32(node), "cluster_size": len(cluster),
		})
		return node, true
	}
}

func (c *Controller) mintLeapNode(g *graph.Graph, cluster []graph.Handle) graph.Handle {
	dominant := cluster[0]
	label := payloadOf(g, dominant) + "_leap_" + uuid.NewString()[:8]
	node := g.CreateOrTouch(label, graph.KindConcept, graph.ModalityAbstract)

	for _, member := range cluster {
		g.Connect(node, member, graph.RelGeneralization, 0, graph.EdgeLeap)
	}

	c.mu.Lock()
	c.states[node] = &leapState{cluster: cluster}
	c.mu.Unlock()
	return node
}

func payloadOf(g *graph.Graph, h graph.Handle) string {
	if n := g.Node(h); n != nil {
		return n.Payload
	}
	return "unknown"
}
