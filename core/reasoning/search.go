package reasoning

import "github.com/EchoCog/echograph/core/graph"

// DefaultMaxDepth is the BFS depth cap for ExactChain.
const DefaultMaxDepth = 5

// ExactChain returns the shortest sequence of handles from start to
// target following only EXACT edges, or nil if none exists within
// maxDepth hops. maxDepth<=0 uses DefaultMaxDepth.
func ExactChain(g *graph.Graph, start, target graph.Handle, maxDepth int) []graph.Handle {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if start == target {
		return []graph.Handle{start}
	}

	visited := map[graph.Handle]bool{start: true}
	parent := map[graph.Handle]graph.Handle{}
	queue := []graph.Handle{start}
	depth := map[graph.Handle]int{start: 0}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if depth[cur] >= maxDepth {
			continue
		}
		for _, ne := range g.Neighbors(cur) {
			if ne.Edge.Kind != graph.EdgeExact {
				continue
			}
			next := ne.Target
			if visited[next] {
				continue
			}
			visited[next] = true
			parent[next] = cur
			depth[next] = depth[cur] + 1
			if next == target {
				return reconstructPath(parent, start, target)
			}
			queue = append(queue, next)
		}
	}
	return nil
}

func reconstructPath(parent map[graph.Handle]graph.Handle, start, target graph.Handle) []graph.Handle {
	path := []graph.Handle{target}
	cur := target
	for cur != start {
		cur = parent[cur]
		path = append(path, cur)
	}
	// reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
