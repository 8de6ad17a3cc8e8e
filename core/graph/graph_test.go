package graph

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpTimeEqual = cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })

func TestCreateOrTouchIdempotent(t *testing.T) {
	g := New(nil)
	h1 := g.CreateOrTouch("dogs", KindConcept, ModalityText)
	h2 := g.CreateOrTouch("dogs", KindConcept, ModalityText)
	assert.Equal(t, h1, h2)
	assert.Equal(t, int32(2), g.Node(h1).Usage)
	assert.Equal(t, 1, g.NodeCount())
}

func TestConnectBidirectionalExact(t *testing.T) {
	g := New(nil)
	a := g.CreateOrTouch("dogs", KindConcept, ModalityText)
	b := g.CreateOrTouch("mammals", KindConcept, ModalityText)

	id := g.Connect(a, b, RelIsA, 0, EdgeExact)
	fwd := g.Edge(id)
	require.NotNil(t, fwd)
	rev := g.Edge(fwd.Reverse)
	require.NotNil(t, rev)

	assert.Equal(t, b, rev.A)
	assert.Equal(t, a, rev.B)
	assert.Equal(t, fwd.W, rev.W)
	assert.Equal(t, fwd.Count, rev.Count)
	assert.Equal(t, fwd.Kind, rev.Kind)
}

func TestConnectReinforcesExistingEdgeInsteadOfDuplicating(t *testing.T) {
	g := New(nil)
	a := g.CreateOrTouch("dogs", KindConcept, ModalityText)
	b := g.CreateOrTouch("mammals", KindConcept, ModalityText)

	id1 := g.Connect(a, b, RelIsA, 0, EdgeExact)
	w1 := g.Edge(id1).W
	id2 := g.Connect(a, b, RelIsA, 0, EdgeExact)
	assert.Equal(t, id1, id2)
	w2 := g.Edge(id2).W
	assert.Greater(t, w2, w1)
	assert.LessOrEqual(t, w2, float32(1.0))
	assert.Equal(t, int32(2), g.Edge(id1).Count)
}

func TestDecayIsContraction(t *testing.T) {
	g := New(nil)
	a := g.CreateOrTouch("a", KindConcept, ModalityText)
	b := g.CreateOrTouch("b", KindConcept, ModalityText)
	id := g.Connect(a, b, RelIsA, 0, EdgeExact)

	g.Reinforce(id, 1.0)
	before := g.Edge(id).WCore
	for i := 0; i < 50; i++ {
		g.Decay(0.1)
	}
	after := g.Edge(id).WCore
	// baseline for core is 0.1; starting above baseline, decay should
	// monotonically approach (not overshoot) it.
	assert.Less(t, after, before)
	assert.GreaterOrEqual(t, after, float32(0.1)-1e-3)
}

func TestLeapPromotionInsertsReverseExact(t *testing.T) {
	g := New(nil)
	foxes := g.CreateOrTouch("foxes", KindConcept, ModalityText)
	mammals := g.CreateOrTouch("mammals", KindConcept, ModalityText)

	id := g.Connect(foxes, mammals, RelIsA, 0.75, EdgeLeap)
	leap := g.Edge(id)
	leap.LeapScore = 4
	leap.Successes = 3

	g.PromoteLeapToExact(id)

	promoted := g.Edge(id)
	assert.Equal(t, EdgeExact, promoted.Kind)
	assert.Greater(t, promoted.LeapScore, float32(0)) // §9 open question 3 marker
	require.NotEqual(t, EdgeID(-1), promoted.Reverse)

	rev := g.Edge(promoted.Reverse)
	assert.Equal(t, mammals, rev.A)
	assert.Equal(t, foxes, rev.B)
	assert.Equal(t, EdgeExact, rev.Kind)
	assert.Equal(t, promoted.W, rev.W)
	assert.Equal(t, promoted.Count, rev.Count)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	g := New(nil)
	a := g.CreateOrTouch("dogs", KindConcept, ModalityText)
	b := g.CreateOrTouch("mammals", KindConcept, ModalityText)
	g.Connect(a, b, RelIsA, 0, EdgeExact)
	g.Connect(a, b, RelIsA, 0, EdgeExact) // second ingest, double the count

	dir := t.TempDir()
	path := filepath.Join(dir, "graph.bin")
	require.NoError(t, g.Save(path))

	g2 := New(nil)
	require.NoError(t, g2.Load(path))

	assert.Equal(t, g.NodeCount(), g2.NodeCount())
	assert.Equal(t, g.EdgeCount(), g2.EdgeCount())

	for i := 0; i < g.EdgeCount(); i++ {
		e1 := g.Edge(EdgeID(i))
		e2 := g2.Edge(EdgeID(i))
		if diff := cmp.Diff(e1, e2, cmpTimeEqual); diff != "" {
			t.Errorf("edge %d round-tripped differently (-want +got):\n%s", i, diff)
		}
	}

	// save -> load -> save is byte-identical
	path2 := filepath.Join(dir, "graph2.bin")
	require.NoError(t, g2.Save(path2))
	b1, err := os.ReadFile(path)
	require.NoError(t, err)
	b2, err := os.ReadFile(path2)
	require.NoError(t, err)
	assert.Equal(t, b1, b2)
}

func TestLoadMissingFileStartsEmpty(t *testing.T) {
	g := New(nil)
	err := g.Load(filepath.Join(t.TempDir(), "does-not-exist.bin"))
	require.NoError(t, err)
	assert.Equal(t, 0, g.NodeCount())
}

func TestLoadTruncatedFileDiscardsPartialRecord(t *testing.T) {
	g := New(nil)
	a := g.CreateOrTouch("dogs", KindConcept, ModalityText)
	b := g.CreateOrTouch("mammals", KindConcept, ModalityText)
	g.Connect(a, b, RelIsA, 0, EdgeExact)

	dir := t.TempDir()
	path := filepath.Join(dir, "graph.bin")
	require.NoError(t, g.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	truncated := data[:len(data)-3]
	truncPath := filepath.Join(dir, "truncated.bin")
	require.NoError(t, os.WriteFile(truncPath, truncated, 0o644))

	g2 := New(nil)
	err = g2.Load(truncPath)
	require.NoError(t, err)
	// At least the nodes (written before the truncated edge tail) survive.
	assert.Equal(t, g.NodeCount(), g2.NodeCount())
}

func TestNeighborsSkipsPrunedEdges(t *testing.T) {
	g := New(nil)
	a := g.CreateOrTouch("a", KindConcept, ModalityText)
	b := g.CreateOrTouch("b", KindConcept, ModalityText)
	id := g.Connect(a, b, RelIsA, 0.01, EdgeLeap)
	g.Edge(id).Failures = 6
	pruned := g.Prune()
	assert.Equal(t, 1, pruned)
	assert.Empty(t, g.Neighbors(a))
}
