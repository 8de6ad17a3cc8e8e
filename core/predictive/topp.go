package predictive

import (
	"math/rand"
	"sort"

	"github.com/EchoCog/echograph/core/graph"
)

// TopPSample picks one candidate by nucleus sampling: sort descending by
// probability, keep the smallest prefix whose cumulative probability
// reaches topP, renormalize, and sample from that nucleus.
func TopPSample(candidates []Candidate, topP float32, rng *rand.Rand) (graph.Handle, bool) {
	if len(candidates) == 0 {
		return graph.InvalidHandle, false
	}
	sorted := append([]Candidate(nil), candidates...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Prob > sorted[j].Prob })

	var cumulative float32
	nucleus := sorted[:0:0]
	for _, c := range sorted {
		nucleus = append(nucleus, c)
		cumulative += c.Prob
		if cumulative >= topP {
			break
		}
	}
	if len(nucleus) == 0 {
		nucleus = sorted
	}

	var total float32
	for _, c := range nucleus {
		total += c.Prob
	}
	if total == 0 {
		total = 1
	}

	r := rng.Float32() * total
	var acc float32
	for _, c := range nucleus {
		acc += c.Prob
		if r <= acc {
			return c.Target, true
		}
	}
	return nucleus[len(nucleus)-1].Target, true
}
