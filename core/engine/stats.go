package engine

import "github.com/EchoCog/echograph/core/leapcontroller"

// Stats is the snapshot a CLI or HTTP stats surface renders: graph size,
// edge counts split by kind, and the LeapController's lifetime
// diagnostics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	ExactEdges  int
	LeapEdges   int
	Diagnostics leapcontroller.Diagnostics
}

// Stats returns the current snapshot.
func (e *Engine) Stats() Stats {
	exact, leap := e.Graph.EdgeKindCounts()
	return Stats{
		NodeCount:   e.Graph.NodeCount(),
		EdgeCount:   e.Graph.EdgeCount(),
		ExactEdges:  exact,
		LeapEdges:   leap,
		Diagnostics: e.Leap.Report(),
	}
}
