package reasoning

import (
	"math"
	"math/rand"

	"github.com/EchoCog/echograph/core/graph"
)

// Traverse walks from start for up to maxSteps hops, at each step picking
// the highest-weight outgoing edge. When preferExact is true any EXACT
// edge outranks any LEAP edge regardless of weight. Every visited node is
// touched. Returns the visited handle sequence.
func Traverse(g *graph.Graph, start graph.Handle, maxSteps int, preferExact bool) []graph.Handle {
	path := []graph.Handle{start}
	cur := start
	g.Touch(cur)

	for step := 0; step < maxSteps; step++ {
		neighbors := g.Neighbors(cur)
		if len(neighbors) == 0 {
			break
		}
		best := bestNeighbor(neighbors, preferExact)
		if best == nil {
			break
		}
		cur = best.Target
		g.Touch(cur)
		path = append(path, cur)
	}
	return path
}

func bestNeighbor(neighbors []graph.NeighborEdge, preferExact bool) *graph.NeighborEdge {
	var best *graph.NeighborEdge
	for i := range neighbors {
		n := &neighbors[i]
		if best == nil {
			best = n
			continue
		}
		if preferExact && n.Edge.Kind != best.Edge.Kind {
			if n.Edge.Kind == graph.EdgeExact {
				best = n
			}
			continue
		}
		if n.Edge.W > best.Edge.W {
			best = n
		}
	}
	return best
}

// TraverseProbabilistic is the probabilistic variant of Traverse: at each
// step, samples a neighbor proportional to w^(1/T), amplified by the
// edge's cross-modal bonus.
func TraverseProbabilistic(g *graph.Graph, start graph.Handle, maxSteps int, temperature float32, rng *rand.Rand) []graph.Handle {
	if temperature <= 0 {
		temperature = 1
	}
	path := []graph.Handle{start}
	cur := start
	g.Touch(cur)

	for step := 0; step < maxSteps; step++ {
		neighbors := g.Neighbors(cur)
		if len(neighbors) == 0 {
			break
		}
		weights := make([]float64, len(neighbors))
		var total float64
		for i, n := range neighbors {
			w := math.Pow(float64(n.Edge.W), 1/float64(temperature))
			w *= 1 + float64(n.Edge.CrossModalBonus)
			weights[i] = w
			total += w
		}
		if total <= 0 {
			break
		}
		r := rng.Float64() * total
		var acc float64
		chosen := neighbors[len(neighbors)-1].Target
		for i, w := range weights {
			acc += w
			if r <= acc {
				chosen = neighbors[i].Target
				break
			}
		}
		cur = chosen
		g.Touch(cur)
		path = append(path, cur)
	}
	return path
}
