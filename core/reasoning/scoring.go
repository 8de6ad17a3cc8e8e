package reasoning

import (
	"math"

	"github.com/EchoCog/echograph/core/graph"
)

// ScoringWeights are the path-scoring coefficients from spec §4.B.
type ScoringWeights struct {
	Kappa float32 // bonus per EXACT edge traversed
	Mu    float32 // penalty per LEAP edge traversed
	Sigma float32 // bonus for node-sequence uniqueness
}

// DefaultScoringWeights returns the spec's default κ=0.5, μ=0.7, σ=0.2.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{Kappa: 0.5, Mu: 0.7, Sigma: 0.2}
}

// PathScore scores a sequence of handles already known to be connected by
// edges (path[i] -> path[i+1]). Higher is better; Less breaks ties on
// Score using NLeap, then MinW.
type PathScore struct {
	Score  float32
	NExact int
	NLeap  int
	MinW   float32
}

// ScorePath implements spec §4.B:
//
//	score = Σ log(1+w_i) + κ·n_exact − μ·n_leap + σ·(unique(p)/|p|)
func ScorePath(g *graph.Graph, path []graph.Handle, w ScoringWeights) PathScore {
	if len(path) < 2 {
		return PathScore{}
	}
	var sumLog float32
	nExact, nLeap := 0, 0
	minW := float32(math.MaxFloat32)

	for i := 0; i+1 < len(path); i++ {
		edge := edgeBetweenAny(g, path[i], path[i+1])
		if edge == nil {
			continue
		}
		sumLog += float32(math.Log(1 + float64(edge.W)))
		if edge.W < minW {
			minW = edge.W
		}
		if edge.Kind == graph.EdgeExact {
			nExact++
		} else {
			nLeap++
		}
	}
	if minW == float32(math.MaxFloat32) {
		minW = 0
	}

	unique := make(map[graph.Handle]struct{}, len(path))
	for _, h := range path {
		unique[h] = struct{}{}
	}
	uniqueRatio := float32(len(unique)) / float32(len(path))

	score := sumLog + w.Kappa*float32(nExact) - w.Mu*float32(nLeap) + w.Sigma*uniqueRatio
	return PathScore{Score: score, NExact: nExact, NLeap: nLeap, MinW: minW}
}

// edgeBetweenAny finds the highest-weight edge a->b regardless of
// relation, for scoring purposes.
func edgeBetweenAny(g *graph.Graph, a, b graph.Handle) *graph.Edge {
	var best *graph.Edge
	for _, ne := range g.Neighbors(a) {
		if ne.Target != b {
			continue
		}
		if best == nil || ne.Edge.W > best.W {
			best = ne.Edge
		}
	}
	return best
}

// Less reports whether ps should be ranked below other (other wins ties):
// higher score wins; on a tie, fewer LEAP edges wins; on a further tie,
// higher MinW wins.
func (ps PathScore) Less(other PathScore) bool {
	if ps.Score != other.Score {
		return ps.Score < other.Score
	}
	if ps.NLeap != other.NLeap {
		return ps.NLeap > other.NLeap
	}
	return ps.MinW < other.MinW
}
