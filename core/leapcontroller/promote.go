package leapcontroller

import "github.com/EchoCog/echograph/core/graph"

// feedbackStep is how much one positive/negative signal moves a LeapNode's
// promotion score.
const feedbackStep = 0.15

// Feedback records one outcome for a minted LeapNode: positive when a
// generation that passed through it was accepted/reinforced, negative
// otherwise. Once the accumulated score clears cfg.PromoteThreshold and
// the node has seen cfg.MinSuccesses positive signals, it is promoted:
// its Kind flips to permanent and its generalization edges to cluster
// members become EXACT instead of LEAP.
func (c *Controller) Feedback(g *graph.Graph, node graph.Handle, positive bool) bool {
	c.mu.Lock()
	st, ok := c.states[node]
	if !ok || st.permanent {
		c.mu.Unlock()
		return false
	}
	if positive {
		st.score += feedbackStep
		st.successes++
	} else {
		st.score -= feedbackStep
		if st.score < 0 {
			st.score = 0
		}
	}
	promote := st.score >= c.cfg.PromoteThreshold && st.successes >= c.cfg.MinSuccesses
	if promote {
		st.permanent = true
		c.promotions++
	}
	cluster := append([]graph.Handle(nil), st.cluster...)
	c.mu.Unlock()

	if !promote {
		return false
	}

	g.SetKind(node, graph.KindLeapPermanent)
	for _, member := range cluster {
		if id, ok := g.EdgeBetween(node, member, graph.RelGeneralization); ok {
			g.PromoteLeapToExact(id.ID)
		}
	}
	c.sink.Emit("leap_promote", map[string]interface{}{
		"node": int32(node), "cluster_size": len(cluster),
	})
	return true
}
