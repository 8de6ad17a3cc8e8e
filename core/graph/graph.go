package graph

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Graph owns all nodes and edges. It is exclusively owned by the caller's
// session; concurrent access must be arbitrated externally (see §5 of the
// design: one writer at a time, many readers).
type Graph struct {
	mu sync.RWMutex

	log *zap.Logger

	nodes      []*Node
	payloadIdx map[string]Handle

	edges []*Edge
	// adjacency maps a source handle to the IDs of its outgoing edges.
	// Always kept consistent with edges: an edge's ID appears in
	// adjacency[edge.A] and nowhere else.
	adjacency map[Handle][]EdgeID
	// edgeIdx resolves (a,b,rel) to an existing edge for reinforcement.
	edgeIdx map[edgeKey]EdgeID
}

type edgeKey struct {
	a, b Handle
	rel  Relation
}

// New creates an empty Graph. A nil logger falls back to zap.NewNop().
func New(log *zap.Logger) *Graph {
	if log == nil {
		log = zap.NewNop()
	}
	return &Graph{
		log:        log,
		payloadIdx: make(map[string]Handle),
		adjacency:  make(map[Handle][]EdgeID),
		edgeIdx:    make(map[edgeKey]EdgeID),
	}
}

// NodeCount returns the number of nodes ever created (pruning never
// removes nodes).
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// EdgeCount returns the number of edge slots, including pruned ones.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}

// Node returns the node at handle, or nil if the handle is invalid.
// Invalid handles are a §7 "invalid handle" condition: never fatal.
func (g *Graph) Node(h Handle) *Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.nodeLocked(h)
}

func (g *Graph) nodeLocked(h Handle) *Node {
	if h < 0 || int(h) >= len(g.nodes) {
		g.log.Warn("invalid node handle", zap.Int32("handle", int32(h)))
		return nil
	}
	return g.nodes[h]
}

// Edge returns the edge at id, or nil if the id is invalid. A pruned edge
// is still returned, with Pruned set.
func (g *Graph) Edge(id EdgeID) *Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edgeLocked(id)
}

func (g *Graph) edgeLocked(id EdgeID) *Edge {
	if id < 0 || int(id) >= len(g.edges) {
		g.log.Warn("invalid edge id", zap.Int32("id", int32(id)))
		return nil
	}
	return g.edges[id]
}

// Lookup returns the handle for a known payload and true, or InvalidHandle
// and false.
func (g *Graph) Lookup(payload string) (Handle, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	h, ok := g.payloadIdx[payload]
	if !ok {
		return InvalidHandle, false
	}
	return h, true
}

// Payloads returns every known payload string, for fuzzy-match fallback in
// reasoning/leap template detection.
func (g *Graph) Payloads() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, 0, len(g.payloadIdx))
	for p := range g.payloadIdx {
		out = append(out, p)
	}
	return out
}

// CreateOrTouch returns the existing handle for payload, incrementing its
// usage counter, or allocates a new node. O(1) expected.
func (g *Graph) CreateOrTouch(payload string, kind Kind, modality Modality) Handle {
	now := time.Now()
	g.mu.Lock()
	defer g.mu.Unlock()

	if h, ok := g.payloadIdx[payload]; ok {
		g.nodes[h].touch(now)
		return h
	}

	h := Handle(len(g.nodes))
	n := newNode(h, payload, kind, modality, now)
	g.nodes = append(g.nodes, n)
	g.payloadIdx[payload] = h
	return h
}

// Connect creates or reinforces a (a,b,rel) edge. If kind is EdgeExact the
// reverse (b,a,rel) edge is also created/reinforced, enforcing
// bidirectionality by construction (spec §3 Edge invariants).
func (g *Graph) Connect(a, b Handle, rel Relation, w float32, kind EdgeKind) EdgeID {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.connectLocked(a, b, rel, w, kind)
	if kind == EdgeExact {
		revID := g.connectLocked(b, a, rel, w, kind)
		g.edges[id].Reverse = revID
		g.edges[revID].Reverse = id
	}
	return id
}

func (g *Graph) connectLocked(a, b Handle, rel Relation, w float32, kind EdgeKind) EdgeID {
	now := time.Now()
	key := edgeKey{a, b, rel}
	if id, ok := g.edgeIdx[key]; ok {
		e := g.edges[id]
		e.Count++
		e.WCore = clamp01(e.WCore + 0.05)
		e.WCtx = clamp01(e.WCtx + 0.05)
		e.W = recomposeWeight(e.WCore, e.WCtx)
		e.LastTouched = now
		e.Pruned = false
		return id
	}

	core, ctx := baselineExactCore, baselineExactCtx
	if kind == EdgeLeap {
		core, ctx = baselineLeapCore, baselineLeapCtx
	}
	if w > 0 {
		core, ctx = w, w
	}

	id := EdgeID(len(g.edges))
	e := &Edge{
		ID:          id,
		A:           a,
		B:           b,
		Rel:         rel,
		Kind:        kind,
		Reverse:     -1,
		WCore:       clamp01(core),
		WCtx:        clamp01(ctx),
		Count:       1,
		LastTouched: now,
	}
	e.W = recomposeWeight(e.WCore, e.WCtx)
	g.edges = append(g.edges, e)
	g.edgeIdx[key] = id
	g.adjacency[a] = append(g.adjacency[a], id)
	return id
}

// Reinforce applies a signed reward to an edge: durable weight moves 30%
// of the reward, contextual weight moves 70%, both clamped to [0,1]; the
// composite weight is recomputed. Cross-modal edges also gain bonus.
func (g *Graph) Reinforce(id EdgeID, reward float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e := g.edgeLocked(id)
	if e == nil {
		return
	}
	e.WCore = clamp01(e.WCore + coreWeightShare*reward)
	e.WCtx = clamp01(e.WCtx + ctxWeightShare*reward)
	e.W = recomposeWeight(e.WCore, e.WCtx)
	e.LastTouched = time.Now()
	if e.CrossModal {
		e.CrossModalBonus = clamp01(e.CrossModalBonus + 0.1*reward)
	}
}

// Decay moves every edge and node weight toward baseline by rate r in
// [0,1]. A contraction: no weight overshoots its baseline (spec §8
// invariant 5).
func (g *Graph) Decay(r float32) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, e := range g.edges {
		e.WCore = (1-r)*e.WCore + r*0.1
		e.WCtx = (1-r)*e.WCtx + r*0.2
		e.W = recomposeWeight(e.WCore, e.WCtx)
		e.CrossModalBonus = (1 - r) * e.CrossModalBonus
	}
	for _, n := range g.nodes {
		n.Weight = clampNodeWeight(n.Weight * (1 - r/2))
		if n.Weight < 0.1 {
			n.Weight = 0.1
		}
	}
}

// PromoteLeapToExact flips a LEAP edge to EXACT, resets its weights to
// EXACT baseline, and inserts the reverse EXACT edge, preserving
// LeapScore as the "was a LEAP" marker (spec §9 open question 3).
func (g *Graph) PromoteLeapToExact(id EdgeID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e := g.edgeLocked(id)
	if e == nil || e.Kind != EdgeLeap {
		return
	}
	e.Kind = EdgeExact
	e.WCore = baselineExactCore
	e.WCtx = baselineExactCtx
	e.W = recomposeWeight(e.WCore, e.WCtx)

	revID := g.connectLocked(e.B, e.A, e.Rel, e.W, EdgeExact)
	rev := g.edges[revID]
	e.Reverse = revID
	rev.Reverse = id
	rev.LeapScore = e.LeapScore
	// Mirror bookkeeping fields so the (a,b) / (b,a) pair stays identical,
	// per the universal EXACT-edge invariant.
	rev.Count = e.Count
	rev.Successes = e.Successes
	rev.Failures = e.Failures
	rev.LastTouched = e.LastTouched
}

// Penalize subtracts amount directly from an edge's durable and contextual
// weights (clamped at 0) and recomposes w — conflict arbitration's blunt
// instrument, distinct from Reinforce's scaled reward.
func (g *Graph) Penalize(id EdgeID, amount float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e := g.edgeLocked(id)
	if e == nil {
		return
	}
	e.WCore = clamp01(e.WCore - amount)
	e.WCtx = clamp01(e.WCtx - amount)
	e.W = recomposeWeight(e.WCore, e.WCtx)
}

// SetLeapScore records the crowd-support value a LEAP edge was born with,
// so it survives promotion to EXACT as the "was once a LEAP" marker.
func (g *Graph) SetLeapScore(id EdgeID, score float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if e := g.edgeLocked(id); e != nil {
		e.LeapScore = score
	}
}

// Prune marks edges with w<0.1 or failures>5 as logically absent. The
// slot is kept (so EdgeIDs remain valid) but Neighbors and traversal skip
// it.
func (g *Graph) Prune() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	count := 0
	for _, e := range g.edges {
		if e.Pruned {
			continue
		}
		if e.W < 0.1 || e.Failures > 5 {
			e.Pruned = true
			e.W = 0
			count++
		}
	}
	return count
}

// NeighborEdge is a (edge, target) pair returned by Neighbors.
type NeighborEdge struct {
	Edge   *Edge
	Target Handle
}

// Neighbors returns the non-pruned outgoing edges of h, O(outdeg).
func (g *Graph) Neighbors(h Handle) []NeighborEdge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids := g.adjacency[h]
	out := make([]NeighborEdge, 0, len(ids))
	for _, id := range ids {
		e := g.edges[id]
		if e.Pruned {
			continue
		}
		out = append(out, NeighborEdge{Edge: e, Target: e.B})
	}
	return out
}

// EdgeBetween returns the (a,b,rel) edge, if it exists (pruned or not).
func (g *Graph) EdgeBetween(a, b Handle, rel Relation) (*Edge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	id, ok := g.edgeIdx[edgeKey{a, b, rel}]
	if !ok {
		return nil, false
	}
	return g.edges[id], true
}

// HasExactEdge reports whether an EXACT (a,b,rel) edge exists and is not
// pruned — used by LEAP creation to enforce spec §8 invariant 2 (no LEAP
// coexists with an EXACT of the same (a,b,rel)).
func (g *Graph) HasExactEdge(a, b Handle, rel Relation) bool {
	e, ok := g.EdgeBetween(a, b, rel)
	return ok && e.Kind == EdgeExact && !e.Pruned
}

// AllEdgesFrom returns every non-pruned outgoing edge of h regardless of
// relation, for crowd aggregation and conflict arbitration.
func (g *Graph) AllEdgesFrom(h Handle) []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids := g.adjacency[h]
	out := make([]*Edge, 0, len(ids))
	for _, id := range ids {
		if !g.edges[id].Pruned {
			out = append(out, g.edges[id])
		}
	}
	return out
}

// AnyEdgeBetween returns whichever non-pruned edge connects a to b,
// regardless of relation — used when a consumer (e.g. the predictive
// sampler reinforcing a hop it already took) only knows the endpoints.
func (g *Graph) AnyEdgeBetween(a, b Handle) (*Edge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, id := range g.adjacency[a] {
		e := g.edges[id]
		if !e.Pruned && e.B == b {
			return e, true
		}
	}
	return nil, false
}

// IncomingExact scans the whole edge set for non-pruned EXACT edges
// targeting h. O(edge count); acceptable for the crowd-aggregation query
// pattern, which runs once per template-gap think call, not per token.
func (g *Graph) IncomingExact(h Handle) []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []*Edge
	for _, e := range g.edges {
		if !e.Pruned && e.Kind == EdgeExact && e.B == h {
			out = append(out, e)
		}
	}
	return out
}

// Touch updates a node's usage counter and timestamp directly (used by
// traversal, which visits nodes without necessarily re-ingesting them).
func (g *Graph) Touch(h Handle) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n := g.nodeLocked(h); n != nil {
		n.touch(time.Now())
	}
}

// SetKind reclassifies a node — used when a temporary LeapNode is
// promoted to permanent.
func (g *Graph) SetKind(h Handle, kind Kind) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n := g.nodeLocked(h); n != nil {
		n.Kind = kind
	}
}

// EdgeKindCounts returns the number of non-pruned EXACT and LEAP edges,
// for the stats surface.
func (g *Graph) EdgeKindCounts() (exact, leap int) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, e := range g.edges {
		if e.Pruned {
			continue
		}
		if e.Kind == EdgeExact {
			exact++
		} else {
			leap++
		}
	}
	return exact, leap
}

// SetCrossModal flags an edge as spanning two modalities, so Reinforce
// grows its CrossModalBonus. Diffusion does not read the flag: it halves
// flow across any edge whose endpoint nodes' modalities differ.
func (g *Graph) SetCrossModal(id EdgeID, v bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if e := g.edgeLocked(id); e != nil {
		e.CrossModal = v
	}
}

// SetEmbedding stores a node's dense embedding vector.
func (g *Graph) SetEmbedding(h Handle, v []float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n := g.nodeLocked(h); n != nil {
		n.Embedding = v
	}
}
