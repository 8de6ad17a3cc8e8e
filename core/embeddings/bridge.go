// Package embeddings implements the lightweight, deterministic node/token
// embedding tables and the activation-vector <-> token-bias coupling
// described in spec §4.D. There is no gradient training here: vectors
// move by a fixed-rate Hebbian-style update.
package embeddings

import (
	"github.com/EchoCog/echograph/core/graph"
	"gonum.org/v1/gonum/floats"
)

// DefaultDimension is the shared vector width for node and token tables.
const DefaultDimension = 64

// Bridge owns the node and token embedding tables.
type Bridge struct {
	dim        int
	nodeTable  map[graph.Handle][]float32
	tokenTable map[string][]float32
}

// NewBridge creates an empty bridge with the given vector dimension. dim
// <= 0 uses DefaultDimension.
func NewBridge(dim int) *Bridge {
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &Bridge{
		dim:        dim,
		nodeTable:  make(map[graph.Handle][]float32),
		tokenTable: make(map[string][]float32),
	}
}

// Dimension returns the shared vector width.
func (b *Bridge) Dimension() int { return b.dim }

// SetNodeEmbedding stores v (zero-padded or truncated to the bridge's
// dimension, then unit-normalized) for h.
func (b *Bridge) SetNodeEmbedding(h graph.Handle, v []float32) {
	b.nodeTable[h] = normalize(v, b.dim)
}

// SetTokenEmbedding stores v (zero-padded or truncated to the bridge's
// dimension, then unit-normalized) for token.
func (b *Bridge) SetTokenEmbedding(token string, v []float32) {
	b.tokenTable[token] = normalize(v, b.dim)
}

// NodeEmbedding returns h's vector, or the zero vector if unknown.
func (b *Bridge) NodeEmbedding(h graph.Handle) []float32 {
	if v, ok := b.nodeTable[h]; ok {
		return v
	}
	return make([]float32, b.dim)
}

// TokenEmbedding returns token's vector, or the zero vector if unknown.
func (b *Bridge) TokenEmbedding(token string) []float32 {
	if v, ok := b.tokenTable[token]; ok {
		return v
	}
	return make([]float32, b.dim)
}

func normalize(v []float32, dim int) []float32 {
	out := make([]float32, dim)
	copy(out, v)
	norm := float32(floats64Norm(out))
	if norm < 1e-9 {
		return out
	}
	for i := range out {
		out[i] /= norm
	}
	return out
}

// floats64Norm computes the L2 norm via gonum's float64 routine, the
// package's native precision, converting to/from float32 at the edges.
func floats64Norm(v []float32) float64 {
	f64 := make([]float64, len(v))
	for i, x := range v {
		f64[i] = float64(x)
	}
	return floats.Norm(f64, 2)
}

func cosine(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	fa := make([]float64, n)
	fb := make([]float64, n)
	for i := 0; i < n; i++ {
		fa[i] = float64(a[i])
		fb[i] = float64(b[i])
	}
	na, nb := floats.Norm(fa, 2), floats.Norm(fb, 2)
	if na < 1e-9 || nb < 1e-9 {
		return 0
	}
	dot := floats.Dot(fa, fb)
	return float32(dot / (na * nb))
}

// Cosine exposes cosine similarity for callers outside the package
// (predictive sampler's context-embedding scoring).
func Cosine(a, b []float32) float32 { return cosine(a, b) }

// LeapContribution is the (activation, cohesion, concept vector) a
// participating LeapNode contributes to an activation vector, per spec
// §4.D.
type LeapContribution struct {
	Activation    float32
	Cohesion      float32
	Boost         float32
	ConceptVector []float32
}

// ActivationVector computes v = Σ w_i·emb(node_i) / Σw_i, folding in any
// leap contributions as leap.Activation*leap.Cohesion*leap.Boost*concept.
// Returns (vector, zero=true) when accumulated weight is below 1e-6.
func (b *Bridge) ActivationVector(handles []graph.Handle, weights []float32, leaps []LeapContribution) ([]float32, bool) {
	acc := make([]float32, b.dim)
	var totalW float32

	n := len(handles)
	if len(weights) < n {
		n = len(weights)
	}
	for i := 0; i < n; i++ {
		emb := b.NodeEmbedding(handles[i])
		w := weights[i]
		for j := 0; j < b.dim && j < len(emb); j++ {
			acc[j] += w * emb[j]
		}
		totalW += w
	}

	for _, l := range leaps {
		scale := l.Activation * l.Cohesion * l.Boost
		for j := 0; j < b.dim && j < len(l.ConceptVector); j++ {
			acc[j] += scale * l.ConceptVector[j]
		}
		totalW += scale
	}

	if totalW < 1e-6 {
		return make([]float32, b.dim), true
	}
	for j := range acc {
		acc[j] /= totalW
	}
	return acc, false
}

// TokenBias computes, for each candidate token, λ·cosine(activation,
// token_embedding) when that similarity exceeds threshold; tokens below
// threshold get no entry (non-contributing).
func (b *Bridge) TokenBias(candidates []string, activation []float32, threshold, lambda float32) map[string]float32 {
	out := make(map[string]float32, len(candidates))
	for _, tok := range candidates {
		sim := cosine(activation, b.TokenEmbedding(tok))
		if sim > threshold {
			out[tok] = lambda * sim
		}
	}
	return out
}

// Learn applies the Hebbian-style update from spec §4.D for a reward r on
// token tok given the activation vector and the contributing nodes/
// weights. r>0 pulls vectors together, r<0 drives them apart. alpha is
// the learning rate (LEARNING_RATE_EMBEDDINGS).
func (b *Bridge) Learn(tok string, activation []float32, handles []graph.Handle, weights []float32, reward, alpha float32) {
	tokEmb := b.TokenEmbedding(tok)
	updated := make([]float32, b.dim)
	for i := 0; i < b.dim; i++ {
		var a float32
		if i < len(activation) {
			a = activation[i]
		}
		var t float32
		if i < len(tokEmb) {
			t = tokEmb[i]
		}
		updated[i] = (1-alpha)*t + alpha*reward*a
	}
	b.SetTokenEmbedding(tok, updated)
	newTokEmb := b.TokenEmbedding(tok)

	n := len(handles)
	if len(weights) < n {
		n = len(weights)
	}
	for i := 0; i < n; i++ {
		w := weights[i]
		if w <= 0.1 {
			continue
		}
		cur := b.NodeEmbedding(handles[i])
		next := make([]float32, b.dim)
		rate := alpha * w
		for j := 0; j < b.dim; j++ {
			var c float32
			if j < len(cur) {
				c = cur[j]
			}
			var t float32
			if j < len(newTokEmb) {
				t = newTokEmb[j]
			}
			next[j] = (1-rate)*c + rate*reward*t
		}
		b.SetNodeEmbedding(handles[i], next)
	}
}

// MeanEmbedding returns the mean vector of a context window of nodes, used
// by the predictive sampler's ctx_emb term.
func (b *Bridge) MeanEmbedding(handles []graph.Handle) []float32 {
	out := make([]float32, b.dim)
	if len(handles) == 0 {
		return out
	}
	for _, h := range handles {
		emb := b.NodeEmbedding(h)
		for i := 0; i < b.dim && i < len(emb); i++ {
			out[i] += emb[i]
		}
	}
	inv := 1 / float32(len(handles))
	for i := range out {
		out[i] *= inv
	}
	return out
}
