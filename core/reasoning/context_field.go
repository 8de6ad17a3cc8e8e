// Package reasoning implements context-field diffusion, similarity,
// EXACT-chain search, path scoring, and traversal over a graph.Graph.
package reasoning

import "github.com/EchoCog/echograph/core/graph"

const fieldDecay = 0.95

// ContextField is a dense per-node activation vector, lazily grown as
// nodes are activated. It is owned by the reasoning layer, logically
// parallel to the node vector, and treated as ephemeral working state
// (not persisted).
type ContextField struct {
	values []float32
}

// NewContextField returns an empty field.
func NewContextField() *ContextField {
	return &ContextField{}
}

func (f *ContextField) grow(n int) {
	if len(f.values) >= n {
		return
	}
	grown := make([]float32, n)
	copy(grown, f.values)
	f.values = grown
}

// Activate sets the activation potential of h to x, growing the field if
// necessary.
func (f *ContextField) Activate(h graph.Handle, x float32) {
	f.grow(int(h) + 1)
	f.values[h] = x
}

// Get returns the current activation of h (0 if never activated).
func (f *ContextField) Get(h graph.Handle) float32 {
	if int(h) >= len(f.values) || h < 0 {
		return 0
	}
	return f.values[h]
}

// Reset zeroes the field without shrinking its backing array.
func (f *ContextField) Reset() {
	for i := range f.values {
		f.values[i] = 0
	}
}

// Diffuse iterates `steps` times: for each edge (a->b, w), flow moves
// toward equalizing F[a] and F[b] scaled by w and by τ, halved across
// cross-modal edges, followed by a multiplicative 0.95 decay of the whole
// field at the end of each step.
func (f *ContextField) Diffuse(g *graph.Graph, steps int, tau float32) {
	n := g.NodeCount()
	f.grow(n)

	for s := 0; s < steps; s++ {
		// Snapshot so flows within a step are computed from a consistent
		// read, then applied — otherwise edges processed later in the
		// same step would read partially-updated values.
		src := make([]float32, len(f.values))
		copy(src, f.values)

		for a := 0; a < n; a++ {
			ha := graph.Handle(a)
			node := g.Node(ha)
			if node == nil {
				continue
			}
			for _, ne := range g.Neighbors(ha) {
				b := ne.Target
				bNode := g.Node(b)
				if bNode == nil {
					continue
				}
				w := ne.Edge.W
				flow := w * (src[a] - src[b])
				if node.Modality != bNode.Modality {
					flow *= 0.5
				}
				f.values[int(b)] += tau * flow
				f.values[a] -= tau * flow
			}
		}

		for i := range f.values {
			f.values[i] *= fieldDecay
		}
	}
}

// ActivatedEntry pairs a handle with its field activation, used by TopK.
type ActivatedEntry struct {
	Handle     graph.Handle
	Activation float32
}

// TopK returns the k highest-activation entries, descending.
func (f *ContextField) TopK(k int) []ActivatedEntry {
	entries := make([]ActivatedEntry, 0, len(f.values))
	for i, v := range f.values {
		if v > 0 {
			entries = append(entries, ActivatedEntry{graph.Handle(i), v})
		}
	}
	// Simple selection sort over a small top-k is fine here — k is a
	// handful and this runs once per diffusion, not per token.
	for i := 0; i < len(entries) && i < k; i++ {
		maxIdx := i
		for j := i + 1; j < len(entries); j++ {
			if entries[j].Activation > entries[maxIdx].Activation {
				maxIdx = j
			}
		}
		entries[i], entries[maxIdx] = entries[maxIdx], entries[i]
	}
	if k > len(entries) {
		k = len(entries)
	}
	return entries[:k]
}

// AboveThreshold returns every activated node with activation strictly
// greater than min, used by the LeapController's cluster-seed selection.
func (f *ContextField) AboveThreshold(min float32) []ActivatedEntry {
	var out []ActivatedEntry
	for i, v := range f.values {
		if v > min {
			out = append(out, ActivatedEntry{graph.Handle(i), v})
		}
	}
	return out
}
