package predictive

import (
	"math"

	"github.com/EchoCog/echograph/core/config"
	"github.com/EchoCog/echograph/core/embeddings"
	"github.com/EchoCog/echograph/core/graph"
	"github.com/emirpasic/gods/v2/queues/priorityqueue"
)

// beamItem is one partial hypothesis carried through beam search.
type beamItem struct {
	path       []graph.Handle
	cumulative float32
}

// higherFirst orders beamItems so the priority queue dequeues the highest
// cumulative score first (gods' Dequeue always returns the comparator's
// minimum, so scores are compared inverted).
func higherFirst(a, b beamItem) int {
	switch {
	case a.cumulative > b.cumulative:
		return -1
	case a.cumulative < b.cumulative:
		return 1
	default:
		return 0
	}
}

// terminators are token payloads that end a beam early.
var terminators = map[string]bool{".": true, "?": true, "!": true}

// BeamSearch expands cfg.BeamWidth hypotheses out to cfg.MaxHops, scoring
// each next hop with ScoreNeighbors+ApplyNgramBonus+Softmax, and returns
// the single path with the highest cumulative log-probability found.
func BeamSearch(g *graph.Graph, cfg *config.Config, seed []graph.Handle, bridge *embeddings.Bridge) []graph.Handle {
	if len(seed) == 0 {
		return nil
	}

	frontier := []beamItem{{path: append([]graph.Handle(nil), seed...), cumulative: 0}}

	for hop := 0; hop < cfg.MaxHops; hop++ {
		pq := priorityqueue.NewWith(higherFirst)
		progressed := false

		for _, item := range frontier {
			last := item.path[len(item.path)-1]
			if node := g.Node(last); node != nil && terminators[node.Payload] {
				pq.Enqueue(item)
				continue
			}

			var contextVec []float32
			if bridge != nil {
				contextVec = bridge.MeanEmbedding(contextWindow(item.path, cfg.CtxWindow))
			}
			candidates := ScoreNeighbors(g, cfg, last, bridge, contextVec)
			ApplyNgramBonus(g, cfg, item.path, candidates)
			if len(candidates) == 0 {
				pq.Enqueue(item)
				continue
			}
			Softmax(candidates, cfg.Beta)

			for _, c := range candidates {
				progressed = true
				next := append(append([]graph.Handle(nil), item.path...), c.Target)
				pq.Enqueue(beamItem{path: next, cumulative: item.cumulative + float32(math.Log(float64(c.Prob)))})
			}
		}

		frontier = frontier[:0]
		for i := 0; i < cfg.BeamWidth; i++ {
			v, ok := pq.Dequeue()
			if !ok {
				break
			}
			frontier = append(frontier, v)
		}
		if !progressed || len(frontier) == 0 {
			break
		}
	}

	if len(frontier) == 0 {
		return seed
	}
	best := frontier[0]
	for _, item := range frontier[1:] {
		if item.cumulative > best.cumulative {
			best = item
		}
	}
	return best.path
}

// contextWindow returns the last k handles of path (or all of it, if
// shorter).
func contextWindow(path []graph.Handle, k int) []graph.Handle {
	if len(path) <= k {
		return path
	}
	return path[len(path)-k:]
}
