package leap

import (
	"github.com/EchoCog/echograph/core/graph"
	"github.com/agnivade/levenshtein"
)

// maxFuzzyDistance bounds how many edits a query token may differ from a
// known payload before it is no longer treated as a typo of it.
const maxFuzzyDistance = 2

// ResolveSubject exposes resolveSubject to callers outside the package
// (the think pipeline's fallback-subject lookup when no template gap is
// found).
func ResolveSubject(g *graph.Graph, token string) (graph.Handle, bool) {
	return resolveSubject(g, token)
}

// resolveSubject looks up token exactly, falling back to the closest known
// payload within maxFuzzyDistance edits — e.g. "dogz" still resolves to
// "dogs" — so template-gap detection tolerates small typos the way a
// forgiving text-ingest pipeline would.
func resolveSubject(g *graph.Graph, token string) (graph.Handle, bool) {
	if h, ok := g.Lookup(token); ok {
		return h, true
	}

	best := ""
	bestDist := maxFuzzyDistance + 1
	for _, p := range g.Payloads() {
		d := levenshtein.ComputeDistance(token, p)
		if d < bestDist {
			bestDist = d
			best = p
		}
	}
	if bestDist > maxFuzzyDistance {
		return graph.InvalidHandle, false
	}
	return g.Lookup(best)
}
