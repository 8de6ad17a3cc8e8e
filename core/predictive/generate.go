package predictive

import (
	"math/rand"

	"github.com/EchoCog/echograph/core/config"
	"github.com/EchoCog/echograph/core/embeddings"
	"github.com/EchoCog/echograph/core/graph"
)

// EscapeHatch is called whenever DetectRepetition fires; it returns an
// alternative next node to splice in (typically the LeapController's
// cluster-seeded suggestion) and ok=false to let generation stop instead.
// Kept as a callback rather than a direct import of core/leapcontroller so
// the dependency runs one way: leapcontroller depends on predictive, not
// the reverse.
type EscapeHatch func(recent []graph.Handle) (graph.Handle, bool)

// GeneratePath produces one token path from seedContext: beam search when
// cfg.UseBeam, nucleus sampling hop-by-hop otherwise. Either way, the
// walked edges are self-reinforced. Only the nucleus-sampling walk checks
// for a repetition loop (triggering escape, if provided) and adaptively
// tunes cfg from its last candidate distribution and whether it reached a
// terminator on its own; a beam-search path gets neither.
func GeneratePath(g *graph.Graph, cfg *config.Config, seedContext []graph.Handle, bridge *embeddings.Bridge, escape EscapeHatch, rng *rand.Rand) []graph.Handle {
	if len(seedContext) == 0 {
		return nil
	}

	var path []graph.Handle
	var lastCandidates []Candidate
	reachedTerminator := false

	if cfg.UseBeam {
		path = BeamSearch(g, cfg, seedContext, bridge)
		if last := g.Node(path[len(path)-1]); last != nil && terminators[last.Payload] {
			reachedTerminator = true
		}
	} else {
		path = append([]graph.Handle(nil), seedContext...)
		for hop := 0; hop < cfg.MaxHops; hop++ {
			current := path[len(path)-1]
			if node := g.Node(current); node != nil && terminators[node.Payload] {
				reachedTerminator = true
				break
			}

			if DetectRepetition(path, cfg.AntiRepeatWindow) {
				if escape != nil {
					if next, ok := escape(path); ok {
						path = append(RestartFromTail(path), next)
						continue
					}
				}
				break
			}

			var contextVec []float32
			if bridge != nil {
				contextVec = bridge.MeanEmbedding(contextWindow(path, cfg.CtxWindow))
			}
			candidates := ScoreNeighbors(g, cfg, current, bridge, contextVec)
			ApplyNgramBonus(g, cfg, path, candidates)
			if len(candidates) == 0 {
				break
			}
			Softmax(candidates, cfg.Beta)
			lastCandidates = candidates

			next, ok := TopPSample(candidates, cfg.TopP, rng)
			if !ok {
				break
			}
			path = append(path, next)
		}
	}

	ReinforceActiveEdges(g, path, cfg.SelfReinforceRate)
	if lastCandidates != nil {
		AdaptiveTune(cfg, lastCandidates, reachedTerminator)
	}
	return path
}
