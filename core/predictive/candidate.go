package predictive

import (
	"github.com/EchoCog/echograph/core/config"
	"github.com/EchoCog/echograph/core/embeddings"
	"github.com/EchoCog/echograph/core/graph"
)

// Candidate is one scored next-hop option out of current.
type Candidate struct {
	Target    graph.Handle
	Rel       graph.Relation
	FreqRatio float32
	Score     float32
	Prob      float32 // filled by Softmax
}

// ScoreNeighbors scores every non-pruned outgoing edge of current: alpha
// weights the edge's frequency share among current's neighbors, (1-alpha)
// weights its cosine similarity to the recent-context embedding (when a
// bridge and context vector are supplied), and gamma scales the
// relation's prior. bridge and contextVec may both be nil/empty to run
// frequency+relation-only, e.g. before any embeddings are learned.
func ScoreNeighbors(g *graph.Graph, cfg *config.Config, current graph.Handle, bridge *embeddings.Bridge, contextVec []float32) []Candidate {
	neighbors := g.Neighbors(current)
	if len(neighbors) == 0 {
		return nil
	}

	var totalCount float32
	for _, n := range neighbors {
		totalCount += float32(n.Edge.Count)
	}
	if totalCount == 0 {
		totalCount = 1
	}

	out := make([]Candidate, 0, len(neighbors))
	for _, n := range neighbors {
		freqRatio := float32(n.Edge.Count) / totalCount

		var sim float32
		if bridge != nil && len(contextVec) > 0 {
			sim = embeddings.Cosine(contextVec, bridge.NodeEmbedding(n.Target))
		}

		relTerm := cfg.Gamma * RelationBias(n.Edge.Rel)
		score := cfg.Alpha*freqRatio + (1-cfg.Alpha)*sim + relTerm
		if score < cfg.Epsilon {
			score = cfg.Epsilon
		}

		out = append(out, Candidate{
			Target:    n.Target,
			Rel:       n.Edge.Rel,
			FreqRatio: freqRatio,
			Score:     score,
		})
	}
	return out
}
