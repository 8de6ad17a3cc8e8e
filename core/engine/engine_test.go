package engine

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/EchoCog/echograph/core/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S1 from spec §8: three diverse subjects sharing a connector trigger a
// leap_create when the fourth is asked about.
func TestThinkCreatesLeapOnCrowdSupport(t *testing.T) {
	e := New(nil, nil, nil)
	e.TeachText("dogs are mammals")
	e.TeachText("cats are mammals")
	e.TeachText("wolves are mammals")

	result, ok := e.Think("are foxes mammals")
	require.True(t, ok)
	assert.True(t, result.Decision.Created)
}

// S2: teaching the same sentence again only reinforces the existing
// edges, it never duplicates them.
func TestTeachTextIsIdempotentOnEdgeCount(t *testing.T) {
	e := New(nil, nil, nil)
	e.TeachText("dogs are mammals")
	before := e.Graph.EdgeCount()
	e.TeachText("dogs are mammals")
	after := e.Graph.EdgeCount()
	assert.Equal(t, before, after)
}

func TestThinkAbstainsOnEmptyQuery(t *testing.T) {
	e := New(nil, nil, nil)
	result, ok := e.Think("")
	assert.False(t, ok)
	assert.True(t, result.Abstained)
}

func TestThinkAbstainsWhenNoTokenIsKnown(t *testing.T) {
	e := New(nil, nil, nil)
	result, ok := e.Think("xyzzy plugh")
	assert.False(t, ok)
	assert.True(t, result.Abstained)
}

func TestSaveLoadRoundTripsGraphAndEmbeddings(t *testing.T) {
	e := New(nil, nil, nil)
	e.TeachText("dogs are mammals")
	h, _ := e.Graph.Lookup("dogs")
	e.Bridge.SetNodeEmbedding(h, []float32{1, 2, 3, 4})

	path := filepath.Join(t.TempDir(), "graph.bin")
	require.NoError(t, e.Save(path))

	e2 := New(nil, nil, nil)
	require.NoError(t, e2.Load(path))
	assert.Equal(t, e.Graph.NodeCount(), e2.Graph.NodeCount())
	assert.Equal(t, e.Bridge.NodeEmbedding(h), e2.Bridge.NodeEmbedding(h))
}

func TestStatsReportsEdgeKindCounts(t *testing.T) {
	e := New(nil, nil, nil)
	e.TeachText("dogs are mammals")
	stats := e.Stats()
	assert.Greater(t, stats.NodeCount, 0)
	assert.Greater(t, stats.ExactEdges, 0)
	assert.Equal(t, 0, stats.LeapEdges)
}

func TestDecayPrunesWeakEdges(t *testing.T) {
	e := New(nil, nil, nil)
	a := e.Graph.CreateOrTouch("a", graph.KindConcept, graph.ModalityText)
	b := e.Graph.CreateOrTouch("b", graph.KindConcept, graph.ModalityText)
	id := e.Graph.Connect(a, b, graph.RelIsA, 0.01, graph.EdgeLeap)
	for i := 0; i < 100; i++ {
		e.Decay(0.5)
	}
	assert.True(t, e.Graph.Edge(id).Pruned)
}

func TestDrainIngestQueueAppliesAllEventsBeforeReturning(t *testing.T) {
	e := New(nil, nil, nil)
	for i := 0; i < 8; i++ {
		word := string(rune('a' + i))
		e.Queue.Enqueue(func(eng *Engine) {
			eng.TeachText(word)
		})
	}
	require.NoError(t, e.DrainIngestQueue(context.Background(), 3))
	assert.Equal(t, 8, e.Graph.NodeCount())
}
