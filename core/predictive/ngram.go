package predictive

import (
	"github.com/EchoCog/echograph/core/config"
	"github.com/EchoCog/echograph/core/graph"
)

// ApplyNgramBonus rewards candidates that continue a sequence the graph
// has already seen once as a recorded thought (core/learning stores
// successful generation paths as temporal-next-linked nodes). If the most
// recent context node has a temporal-next edge to a candidate, that
// candidate's score gains cfg.NgramBonus.
func ApplyNgramBonus(g *graph.Graph, cfg *config.Config, context []graph.Handle, candidates []Candidate) {
	if len(context) == 0 {
		return
	}
	last := context[len(context)-1]
	for i := range candidates {
		if _, ok := g.EdgeBetween(last, candidates[i].Target, graph.RelTemporalNext); ok {
			candidates[i].Score += cfg.NgramBonus
		}
	}
}
