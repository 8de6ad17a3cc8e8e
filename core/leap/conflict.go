package leap

import (
	"github.com/EchoCog/echograph/core/config"
	"github.com/EchoCog/echograph/core/graph"
)

// conflictingExactTarget reports whether subject already holds an EXACT
// edge, via the same relation, to some target other than candidate, with
// accumulated weight at or above margin — the pre-creation abstain check a
// LEAP candidate must clear (spec §4.C "conflict with existing EXACT").
func conflictingExactTarget(g *graph.Graph, subject graph.Handle, conn Connector, candidate graph.Handle, margin float32) (graph.Handle, bool) {
	rel := relationFor(conn)
	for _, e := range g.AllEdgesFrom(subject) {
		if e.Kind != graph.EdgeExact || e.Rel != rel || e.B == candidate {
			continue
		}
		if e.W >= margin {
			return e.B, true
		}
	}
	return graph.InvalidHandle, false
}

// ApplyConflictPenalty runs when a new EXACT edge subject->target (via rel)
// is recorded. Every non-pruned LEAP edge out of subject whose target
// disagrees is penalized by cfg.Penalty; scope narrows the search to edges
// sharing rel when cfg.ConflictScope is ConflictScopeConnector. Returns the
// penalized edge IDs, for telemetry.
func ApplyConflictPenalty(g *graph.Graph, cfg *config.Config, subject, target graph.Handle, rel graph.Relation) []graph.EdgeID {
	var penalized []graph.EdgeID
	for _, e := range g.AllEdgesFrom(subject) {
		if e.Kind != graph.EdgeLeap || e.B == target {
			continue
		}
		if cfg.ConflictScope == config.ConflictScopeConnector && e.Rel != rel {
			continue
		}
		g.Penalize(e.ID, cfg.Penalty)
		penalized = append(penalized, e.ID)
	}
	return penalized
}
