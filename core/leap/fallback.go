package leap

import (
	"github.com/EchoCog/echograph/core/config"
	"github.com/EchoCog/echograph/core/graph"
	"github.com/EchoCog/echograph/core/reasoning"
	"github.com/EchoCog/echograph/core/telemetry"
)

// fallbackCandidate pairs a candidate target with the combined Jaccard +
// activation score that ranked it.
type fallbackCandidate struct {
	target graph.Handle
	score  float32
}

// Fallback runs when DetectGap finds no X-CONNECTOR-Y pattern in a query
// but the subject is known: it ranks every other node by how structurally
// similar its EXACT neighborhood is to subject's (Jaccard) combined with
// how active it currently is in the diffusion field, and proposes the top
// scorer as a generalization LEAP if the combined score clears
// cfg.LeapThreshold.
func Fallback(g *graph.Graph, field *reasoning.ContextField, cfg *config.Config, sink *telemetry.Sink, subject graph.Handle) Decision {
	var best fallbackCandidate
	for _, payload := range g.Payloads() {
		h, ok := g.Lookup(payload)
		if !ok || h == subject {
			continue
		}
		j := reasoning.Jaccard(g, subject, h)
		if j == 0 {
			continue
		}
		score := j
		if field != nil {
			score += field.Get(h)
		}
		if score > best.score {
			best = fallbackCandidate{target: h, score: score}
		}
	}

	if best.score < cfg.LeapThreshold {
		sink.Emit("leap_reject", map[string]interface{}{
			"subject": int32(subject), "reason": "fallback_below_threshold", "score": best.score,
		})
		return Decision{Reason: "fallback_below_threshold"}
	}

	w := best.score
	if w > 0.8 {
		w = 0.8
	}
	id := g.Connect(subject, best.target, graph.RelGeneralization, w, graph.EdgeLeap)
	leapScore := best.score * 10
	g.SetLeapScore(id, leapScore)

	sink.Emit("leap_create", map[string]interface{}{
		"subject": int32(subject), "target": int32(best.target), "reason": "fallback", "score": best.score,
	})
	return Decision{Created: true, EdgeID: id, Target: best.target, Support: leapScore}
}
