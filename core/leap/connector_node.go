package leap

import "github.com/EchoCog/echograph/core/graph"

// ConnectorNode returns (creating if needed) the single shared node for a
// canonical connector — e.g. every "is/are/was" in the corpus routes
// through one "BE" node, which is what lets crowd aggregation see many
// subjects fan into one mid-pattern hub.
func ConnectorNode(g *graph.Graph, c Connector) graph.Handle {
	return g.CreateOrTouch(string(c), graph.KindConnector, graph.ModalityAbstract)
}

// LookupConnectorNode resolves a connector to its node only if it already
// exists, without creating it — used by DetectGap, which must not
// materialize a connector the corpus has never used.
func LookupConnectorNode(g *graph.Graph, c Connector) (graph.Handle, bool) {
	return g.Lookup(string(c))
}
