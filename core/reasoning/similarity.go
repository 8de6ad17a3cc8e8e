package reasoning

import "github.com/EchoCog/echograph/core/graph"

// Jaccard computes the Jaccard similarity of a and b's out-neighbor sets.
// Returns 1 when a==b, 0 when either has no neighbors.
func Jaccard(g *graph.Graph, a, b graph.Handle) float32 {
	if a == b {
		return 1
	}
	na := g.Neighbors(a)
	nb := g.Neighbors(b)
	if len(na) == 0 || len(nb) == 0 {
		return 0
	}

	setA := make(map[graph.Handle]struct{}, len(na))
	for _, n := range na {
		setA[n.Target] = struct{}{}
	}
	setB := make(map[graph.Handle]struct{}, len(nb))
	for _, n := range nb {
		setB[n.Target] = struct{}{}
	}

	intersection := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float32(intersection) / float32(union)
}
