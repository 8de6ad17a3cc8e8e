package leap

import (
	"sort"

	"github.com/EchoCog/echograph/core/graph"
)

// maxExamples caps how many subject handles a CrowdRow carries for display.
const maxExamples = 5

// CrowdRow is one candidate target a connector fans out to, with the
// evidence gathered for it.
type CrowdRow struct {
	Target   graph.Handle
	Rel      graph.Relation
	Support  float32
	Distinct int
	Examples []graph.Handle
}

// AggregateCrowd enumerates every EXACT S -> connector edge, then every
// EXACT connector -> target edge, and scores each target by how many
// teaching events produced it (Support, the target edge's reinforcement
// count) and how many distinct subjects feed the connector at all
// (Distinct — an approximation shared across every target of a connector,
// since the graph does not separately track which subject "intended"
// which target). The mirror edges Connect() pairs with every EXACT edge
// are skipped on both sides. Rows are sorted by Support, descending.
func AggregateCrowd(g *graph.Graph, connector graph.Handle) []CrowdRow {
	incoming := g.IncomingExact(connector)
	if len(incoming) == 0 {
		return nil
	}

	distinct := 0
	examples := make([]graph.Handle, 0, maxExamples)
	for _, e := range incoming {
		// The mirror of each connector -> target teaching (target ->
		// connector) is not a subject.
		if isMirror(e.ID, e.Reverse) {
			continue
		}
		distinct++
		if len(examples) >= maxExamples {
			continue
		}
		examples = append(examples, e.A)
	}

	var rows []CrowdRow
	for _, out := range g.Neighbors(connector) {
		// Connect() auto-creates the reverse of every EXACT edge, so the
		// connector's outgoing edges include the mirror of each S -> C
		// teaching (connector -> S). Those are not real connector -> target
		// facts and must be excluded, or every subject would also show up
		// as a spurious one-vote "target".
		if out.Edge.Kind != graph.EdgeExact || isMirror(out.Edge.ID, out.Edge.Reverse) {
			continue
		}
		rows = append(rows, CrowdRow{
			Target:   out.Target,
			Rel:      out.Edge.Rel,
			Support:  float32(out.Edge.Count),
			Distinct: distinct,
			Examples: examples,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Support > rows[j].Support })
	return rows
}

// isMirror reports whether an EXACT edge is the auto-created reverse of
// another: Connect() allocates the mirror right after the forward edge,
// so the mirror is the one whose pair has the lower ID.
func isMirror(id, reverse graph.EdgeID) bool {
	return reverse >= 0 && reverse < id
}
