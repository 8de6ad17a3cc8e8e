package learning

import (
	"testing"

	"github.com/EchoCog/echograph/core/config"
	"github.com/EchoCog/echograph/core/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReinforcePathIncreasesWeight(t *testing.T) {
	g := graph.New(nil)
	a := g.CreateOrTouch("a", graph.KindConcept, graph.ModalityText)
	b := g.CreateOrTouch("b", graph.KindConcept, graph.ModalityText)
	g.Connect(a, b, graph.RelTemporalNext, 0, graph.EdgeExact)
	before, _ := g.EdgeBetween(a, b, graph.RelTemporalNext)
	w0 := before.W

	cfg := config.Default()
	ReinforcePath(g, cfg, []graph.Handle{a, b}, 0.5)

	after, _ := g.EdgeBetween(a, b, graph.RelTemporalNext)
	assert.Greater(t, after.W, w0)
}

func TestReinforcePathPromotesLeapAfterEnoughSuccess(t *testing.T) {
	g := graph.New(nil)
	a := g.CreateOrTouch("foxes", graph.KindInstance, graph.ModalityText)
	b := g.CreateOrTouch("mammals", graph.KindConcept, graph.ModalityText)
	id := g.Connect(a, b, graph.RelIsA, 0.6, graph.EdgeLeap)
	require.Equal(t, graph.EdgeLeap, g.Edge(id).Kind)

	cfg := config.Default()
	cfg.PromoteThreshold = 0.6
	cfg.MinSuccesses = 2
	for i := 0; i < 3; i++ {
		ReinforcePath(g, cfg, []graph.Handle{a, b}, 0.5)
	}

	assert.Equal(t, graph.EdgeExact, g.Edge(id).Kind)
}

func TestRecordThoughtChainsTemporalNext(t *testing.T) {
	g := graph.New(nil)
	handles := RecordThought(g, []string{"The", "dog", "runs"})
	require.Len(t, handles, 3)
	for i := 0; i+1 < len(handles); i++ {
		_, ok := g.EdgeBetween(handles[i], handles[i+1], graph.RelTemporalNext)
		assert.True(t, ok)
	}
}

func TestRecordThoughtReusesExistingNode(t *testing.T) {
	g := graph.New(nil)
	existing := g.CreateOrTouch("dogs", graph.KindInstance, graph.ModalityText)
	handles := RecordThought(g, []string{"dogs", "bark"})
	assert.Equal(t, existing, handles[0])
}
