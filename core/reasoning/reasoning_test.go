package reasoning

import (
	"testing"

	"github.com/EchoCog/echograph/core/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildChain(t *testing.T) (*graph.Graph, graph.Handle, graph.Handle, graph.Handle) {
	t.Helper()
	g := graph.New(nil)
	dogs := g.CreateOrTouch("dogs", graph.KindConcept, graph.ModalityText)
	be := g.CreateOrTouch("BE", graph.KindConnector, graph.ModalityAbstract)
	mammals := g.CreateOrTouch("mammals", graph.KindConcept, graph.ModalityText)
	g.Connect(dogs, be, graph.RelIsA, 0, graph.EdgeExact)
	g.Connect(be, mammals, graph.RelIsA, 0, graph.EdgeExact)
	return g, dogs, be, mammals
}

func TestExactChainFindsShortestPath(t *testing.T) {
	g, dogs, be, mammals := buildChain(t)
	path := ExactChain(g, dogs, mammals, 0)
	require.Len(t, path, 3)
	assert.Equal(t, []graph.Handle{dogs, be, mammals}, path)
}

func TestExactChainEmptyWhenUnreachable(t *testing.T) {
	g, _, _, _ := buildChain(t)
	isolated := g.CreateOrTouch("isolated", graph.KindConcept, graph.ModalityText)
	dogs, _ := g.Lookup("dogs")
	path := ExactChain(g, dogs, isolated, 0)
	assert.Nil(t, path)
}

func TestJaccardSelfAndDisjoint(t *testing.T) {
	g := graph.New(nil)
	a := g.CreateOrTouch("a", graph.KindConcept, graph.ModalityText)
	assert.Equal(t, float32(1), Jaccard(g, a, a))

	b := g.CreateOrTouch("b", graph.KindConcept, graph.ModalityText)
	assert.Equal(t, float32(0), Jaccard(g, a, b))
}

func TestJaccardSharedNeighbors(t *testing.T) {
	g := graph.New(nil)
	dogs := g.CreateOrTouch("dogs", graph.KindConcept, graph.ModalityText)
	cats := g.CreateOrTouch("cats", graph.KindConcept, graph.ModalityText)
	mammals := g.CreateOrTouch("mammals", graph.KindConcept, graph.ModalityText)
	fluffy := g.CreateOrTouch("fluffy", graph.KindConcept, graph.ModalityText)

	g.Connect(dogs, mammals, graph.RelIsA, 0, graph.EdgeExact)
	g.Connect(dogs, fluffy, graph.RelIsA, 0, graph.EdgeExact)
	g.Connect(cats, mammals, graph.RelIsA, 0, graph.EdgeExact)

	sim := Jaccard(g, dogs, cats)
	assert.InDelta(t, 1.0/2.0, sim, 1e-6)
}

func TestScorePathRewardsExactOverLeap(t *testing.T) {
	g, dogs, be, mammals := buildChain(t)
	exactPath := []graph.Handle{dogs, be, mammals}
	exactScore := ScorePath(g, exactPath, DefaultScoringWeights())

	foxes := g.CreateOrTouch("foxes", graph.KindConcept, graph.ModalityText)
	g.Connect(foxes, mammals, graph.RelIsA, 0.5, graph.EdgeLeap)
	leapScore := ScorePath(g, []graph.Handle{foxes, mammals}, DefaultScoringWeights())

	assert.Equal(t, 2, exactScore.NExact)
	assert.Equal(t, 0, exactScore.NLeap)
	assert.Equal(t, 1, leapScore.NLeap)
	assert.True(t, leapScore.Less(exactScore))
}

func TestTraversePrefersExactOverHigherWeightLeap(t *testing.T) {
	g := graph.New(nil)
	start := g.CreateOrTouch("start", graph.KindConcept, graph.ModalityText)
	exactTarget := g.CreateOrTouch("exact-target", graph.KindConcept, graph.ModalityText)
	leapTarget := g.CreateOrTouch("leap-target", graph.KindConcept, graph.ModalityText)

	g.Connect(start, exactTarget, graph.RelIsA, 0.2, graph.EdgeExact)
	g.Connect(start, leapTarget, graph.RelIsA, 0.9, graph.EdgeLeap)

	path := Traverse(g, start, 1, true)
	require.Len(t, path, 2)
	assert.Equal(t, exactTarget, path[1])
}
