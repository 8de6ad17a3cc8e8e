package leap

import (
	"github.com/EchoCog/echograph/core/config"
	"github.com/EchoCog/echograph/core/graph"
	"github.com/EchoCog/echograph/core/telemetry"
)

// Decision is the outcome of running the creation policy against one gap.
type Decision struct {
	Created bool
	EdgeID  graph.EdgeID
	Target  graph.Handle
	Support float32
	Reason  string // "insufficient_support", "insufficient_diversity",
	// "insufficient_margin", "conflict_with_exact", "no_candidates", "no_gap"
}

// Evaluate runs the full crowd-supported LEAP creation policy for one
// template gap: aggregate crowd support at the connector, check the
// THSupport/THDiversity/THMargin thresholds, check for a conflicting
// existing EXACT fact (unless the candidate's support clears
// OverrideThreshold), then create the LEAP edge and emit telemetry.
func Evaluate(g *graph.Graph, cfg *config.Config, sink *telemetry.Sink, gap Gap) Decision {
	if !gap.HasGap {
		return Decision{Reason: "no_gap"}
	}

	rows := AggregateCrowd(g, gap.Connector)
	if len(rows) == 0 {
		sink.Emit("leap_reject", map[string]interface{}{
			"subject": int32(gap.Subject), "connector": string(gap.ConnWord),
			"reason": "no_candidates",
		})
		return Decision{Reason: "no_candidates"}
	}

	best := rows[0]
	var secondSupport float32
	if len(rows) > 1 {
		secondSupport = rows[1].Support
	}
	margin := best.Support - secondSupport

	reject := func(reason string) Decision {
		sink.Emit("leap_reject", map[string]interface{}{
			"subject": int32(gap.Subject), "target": int32(best.Target),
			"reason": reason, "support": best.Support, "distinct": best.Distinct,
			"margin": margin,
		})
		return Decision{Reason: reason, Support: best.Support, Target: best.Target}
	}

	if best.Support < cfg.THSupport {
		return reject("insufficient_support")
	}
	if best.Distinct < cfg.THDiversity {
		return reject("insufficient_diversity")
	}
	if margin < cfg.THMargin {
		return reject("insufficient_margin")
	}

	if conflictTarget, conflicts := conflictingExactTarget(g, gap.Subject, gap.ConnWord, best.Target, cfg.AbstainMargin); conflicts {
		if best.Support < cfg.OverrideThreshold {
			sink.Emit("abstain", map[string]interface{}{
				"subject": int32(gap.Subject), "candidate": int32(best.Target),
				"existing_exact": int32(conflictTarget), "reason": "conflict_with_exact",
			})
			return Decision{Reason: "conflict_with_exact", Support: best.Support, Target: best.Target}
		}
		// best.Support >= OverrideThreshold: the crowd's evidence outweighs
		// the existing EXACT fact, so creation proceeds anyway.
	}

	w := best.Support / 10
	if w > 0.8 {
		w = 0.8
	}
	id := g.Connect(gap.Subject, best.Target, best.Rel, w, graph.EdgeLeap)
	g.SetLeapScore(id, best.Support)

	sink.Emit("leap_create", map[string]interface{}{
		"subject": int32(gap.Subject), "target": int32(best.Target),
		"support": best.Support, "distinct": best.Distinct, "weight": w,
	})
	return Decision{Created: true, EdgeID: id, Target: best.Target, Support: best.Support}
}
