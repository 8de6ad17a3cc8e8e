// Package learning closes the loop between a completed generation or
// reasoning path and the graph it walked: rewarding the edges it used,
// promoting LEAP edges that keep paying off, and recording the path
// itself as a temporal-next chain so future generation can recognize it
// as a seen continuation (predictive.ApplyNgramBonus).
package learning

import (
	"strings"

	"github.com/EchoCog/echograph/core/config"
	"github.com/EchoCog/echograph/core/graph"
)

// ReinforcePath rewards every edge a successful path walked (positive
// reward) and promotes any LEAP edge on the path whose accumulated
// weight has cleared cfg.PromoteThreshold with enough successes — the
// ordinary (non-uncertainty-escape) promotion route, as opposed to
// leapcontroller's feedback-driven one.
func ReinforcePath(g *graph.Graph, cfg *config.Config, path []graph.Handle, reward float32) {
	for i := 0; i+1 < len(path); i++ {
		e, ok := g.AnyEdgeBetween(path[i], path[i+1])
		if !ok {
			continue
		}
		g.Reinforce(e.ID, reward)

		if e.Kind != graph.EdgeLeap {
			continue
		}
		if reward > 0 {
			e.Successes++
		} else {
			e.Failures++
		}
		if e.W >= cfg.PromoteThreshold && e.Successes >= int32(cfg.MinSuccesses) {
			g.PromoteLeapToExact(e.ID)
		}
	}
}

// RecordThought stores a successful generation path as a chain of nodes
// linked by temporal-next EXACT edges. A token that already has a node
// reuses it and keeps its kind; only unseen tokens become new thought-kind
// nodes. Grounded on
// the original sampler's save_thought_node, which persists generated
// continuations as graph-native memory instead of a side table, so the
// same n-gram bonus lookup that scores "has this continuation been seen
// before" works for both taught text and self-generated thought.
func RecordThought(g *graph.Graph, tokens []string) []graph.Handle {
	handles := make([]graph.Handle, 0, len(tokens))
	for _, tok := range tokens {
		h := g.CreateOrTouch(strings.ToLower(tok), graph.KindThought, graph.ModalityText)
		handles = append(handles, h)
	}
	for i := 0; i+1 < len(handles); i++ {
		g.Connect(handles[i], handles[i+1], graph.RelTemporalNext, 0, graph.EdgeExact)
	}
	return handles
}
