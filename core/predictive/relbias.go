// Package predictive implements the neighbor-scoring, beam-search, and
// top-p text generator: candidate scoring blends frequency, embedding
// similarity, and a per-relation prior; softmax and beam search (or
// nucleus sampling) pick the next hop; adaptive tuning and
// self-reinforcement close the loop after each generation.
package predictive

import "github.com/EchoCog/echograph/core/graph"

// RelationBias returns the per-relation prior the original sampler's
// rel_bias table encodes: is-a and consumes edges carry a strong prior
// toward being "the obvious next thing to say", temporal-next a mild one,
// everything else neutral.
func RelationBias(r graph.Relation) float32 {
	switch r {
	case graph.RelIsA:
		return 0.35
	case graph.RelConsumes:
		return 0.25
	case graph.RelTemporalNext:
		return 0.1
	default:
		return 0.0
	}
}
