package predictive

import "github.com/EchoCog/echograph/core/graph"

// ReinforceActiveEdges applies a small positive reward to every edge a
// generated path actually walked — self-reinforcement, so a path the
// sampler is willing to produce becomes modestly more likely next time.
func ReinforceActiveEdges(g *graph.Graph, path []graph.Handle, rate float32) {
	for i := 0; i+1 < len(path); i++ {
		if e, ok := g.AnyEdgeBetween(path[i], path[i+1]); ok {
			g.Reinforce(e.ID, rate)
		}
	}
}

// repeatThreshold is how many times a single node may recur in the last
// window outputs before generation is considered stuck in a loop.
const repeatThreshold = 3

// DetectRepetition reports whether any node in the last window entries of
// history recurs at least repeatThreshold times — the signal that hands
// generation off to the LeapController's escape hatch.
func DetectRepetition(history []graph.Handle, window int) bool {
	if len(history) > window {
		history = history[len(history)-window:]
	}
	counts := make(map[graph.Handle]int, len(history))
	for _, h := range history {
		counts[h]++
		if counts[h] >= repeatThreshold {
			return true
		}
	}
	return false
}

// RestartFromTail truncates history back to its last node, the simplest
// recovery from a detected repetition loop before handing off to the
// LeapController.
func RestartFromTail(history []graph.Handle) []graph.Handle {
	if len(history) == 0 {
		return history
	}
	return history[len(history)-1:]
}
