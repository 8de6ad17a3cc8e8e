package graph

import (
	"fmt"
	"io"
)

// WriteDOT renders the graph (or, if handles is non-empty, just the
// subgraph reachable from them within hops) as Graphviz DOT — grounded on
// the original sampler's dump_subgraph_to_dot, useful for inspecting what
// a think() call actually walked.
func (g *Graph) WriteDOT(w io.Writer, handles []Handle, hops int) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	include := g.reachableLocked(handles, hops)

	if _, err := fmt.Fprintln(w, "digraph echograph {"); err != nil {
		return err
	}
	for _, n := range g.nodes {
		if include != nil && !include[n.Handle] {
			continue
		}
		shape := "ellipse"
		if n.Kind == KindConnector {
			shape = "box"
		}
		if _, err := fmt.Fprintf(w, "  n%d [label=%q shape=%s];\n", n.Handle, n.Payload, shape); err != nil {
			return err
		}
	}
	for _, e := range g.edges {
		if e.Pruned {
			continue
		}
		if include != nil && (!include[e.A] || !include[e.B]) {
			continue
		}
		style := "solid"
		if e.Kind == EdgeLeap {
			style = "dashed"
		}
		if _, err := fmt.Fprintf(w, "  n%d -> n%d [label=%q style=%s];\n", e.A, e.B, e.Rel.String(), style); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

// reachableLocked BFS-expands from seeds out to hops edges, or returns nil
// (meaning "everything") when seeds is empty.
func (g *Graph) reachableLocked(seeds []Handle, hops int) map[Handle]bool {
	if len(seeds) == 0 {
		return nil
	}
	visited := make(map[Handle]bool, len(seeds))
	frontier := append([]Handle(nil), seeds...)
	for _, h := range frontier {
		visited[h] = true
	}
	for d := 0; d < hops; d++ {
		var next []Handle
		for _, h := range frontier {
			for _, id := range g.adjacency[h] {
				e := g.edges[id]
				if e.Pruned || visited[e.B] {
					continue
				}
				visited[e.B] = true
				next = append(next, e.B)
			}
		}
		frontier = next
		if len(frontier) == 0 {
			break
		}
	}
	return visited
}
