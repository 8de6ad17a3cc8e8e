package leap

import (
	"testing"

	"github.com/EchoCog/echograph/core/config"
	"github.com/EchoCog/echograph/core/graph"
	"github.com/EchoCog/echograph/core/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// teachIsA mimics the ingest-time pattern "X is/are Y": reinforce X->BE and
// BE->Y, both EXACT, through the shared connector node.
func teachIsA(g *graph.Graph, subject, object string) (graph.Handle, graph.Handle, graph.Handle) {
	s := g.CreateOrTouch(subject, graph.KindInstance, graph.ModalityText)
	o := g.CreateOrTouch(object, graph.KindConcept, graph.ModalityText)
	c := ConnectorNode(g, ConnBE)
	g.Connect(s, c, graph.RelIsA, 0, graph.EdgeExact)
	g.Connect(c, o, graph.RelIsA, 0, graph.EdgeExact)
	return s, c, o
}

func TestDetectGapFindsKnownSubjectAndMissingConnectorEdge(t *testing.T) {
	g := graph.New(nil)
	teachIsA(g, "dogs", "mammals")
	teachIsA(g, "cats", "mammals")
	teachIsA(g, "wolves", "mammals")
	foxes := g.CreateOrTouch("foxes", graph.KindInstance, graph.ModalityText)

	gap := DetectGap(g, func(c Connector) (graph.Handle, bool) { return LookupConnectorNode(g, c) },
		[]string{"are", "foxes", "mammals"})

	require.True(t, gap.HasGap)
	assert.Equal(t, foxes, gap.Subject)
	assert.Equal(t, ConnBE, gap.ConnWord)
	assert.True(t, gap.HasObject)
}

func TestDetectGapNoGapWhenEdgeAlreadyExists(t *testing.T) {
	g := graph.New(nil)
	teachIsA(g, "dogs", "mammals")

	gap := DetectGap(g, func(c Connector) (graph.Handle, bool) { return LookupConnectorNode(g, c) },
		[]string{"dogs", "are", "mammals"})

	assert.False(t, gap.HasGap)
}

func TestDetectGapFuzzyMatchesTypo(t *testing.T) {
	g := graph.New(nil)
	teachIsA(g, "dogs", "mammals")
	teachIsA(g, "cats", "mammals")
	teachIsA(g, "wolves", "mammals")
	g.CreateOrTouch("foxes", graph.KindInstance, graph.ModalityText)

	gap := DetectGap(g, func(c Connector) (graph.Handle, bool) { return LookupConnectorNode(g, c) },
		[]string{"are", "foxez", "mammals"})

	expected, _ := g.Lookup("foxes")
	assert.True(t, gap.HasGap)
	assert.Equal(t, expected, gap.Subject)
}

// S1: three diverse subjects all reach one target through a shared
// connector -> crowd support clears every threshold -> leap_create.
func TestEvaluateCreatesLeapOnSufficientCrowdSupport(t *testing.T) {
	g := graph.New(nil)
	teachIsA(g, "dogs", "mammals")
	teachIsA(g, "cats", "mammals")
	teachIsA(g, "wolves", "mammals")
	foxes := g.CreateOrTouch("foxes", graph.KindInstance, graph.ModalityText)
	connector, _ := LookupConnectorNode(g, ConnBE)
	mammals, _ := g.Lookup("mammals")

	cfg := config.Default()
	sink := telemetry.NewSink(nil)
	gap := Gap{HasGap: true, Subject: foxes, Connector: connector, ConnWord: ConnBE}

	decision := Evaluate(g, cfg, sink, gap)

	require.True(t, decision.Created)
	assert.Equal(t, mammals, decision.Target)
	assert.GreaterOrEqual(t, decision.Support, cfg.THSupport)

	edge := g.Edge(decision.EdgeID)
	require.NotNil(t, edge)
	assert.Equal(t, graph.EdgeLeap, edge.Kind)
	assert.Equal(t, decision.Support, edge.LeapScore)
}

// S4: a single observation can't clear TH_SUPPORT -> leap_reject.
func TestEvaluateRejectsInsufficientSupport(t *testing.T) {
	g := graph.New(nil)
	teachIsA(g, "apples", "red")
	bananas := g.CreateOrTouch("bananas", graph.KindInstance, graph.ModalityText)
	connector, _ := LookupConnectorNode(g, ConnBE)

	cfg := config.Default()
	sink := telemetry.NewSink(nil)
	gap := Gap{HasGap: true, Subject: bananas, Connector: connector, ConnWord: ConnBE}

	decision := Evaluate(g, cfg, sink, gap)

	assert.False(t, decision.Created)
	assert.Equal(t, "insufficient_support", decision.Reason)
}

// S5: teaching a conflicting EXACT fact penalizes an existing LEAP out of
// the same subject until it prunes.
func TestApplyConflictPenaltyErodesConflictingLeap(t *testing.T) {
	g := graph.New(nil)
	teachIsA(g, "dogs", "fluffy")
	teachIsA(g, "cats", "fluffy")
	teachIsA(g, "rabbits", "fluffy")
	foxes := g.CreateOrTouch("foxes", graph.KindInstance, graph.ModalityText)
	connector, _ := LookupConnectorNode(g, ConnBE)

	cfg := config.Default()
	sink := telemetry.NewSink(nil)
	decision := Evaluate(g, cfg, sink, Gap{HasGap: true, Subject: foxes, Connector: connector, ConnWord: ConnBE})
	require.True(t, decision.Created)
	leapID := decision.EdgeID

	carnivores := g.CreateOrTouch("carnivores", graph.KindConcept, graph.ModalityText)
	g.Connect(foxes, connector, graph.RelIsA, 0, graph.EdgeExact)
	g.Connect(connector, carnivores, graph.RelIsA, 0, graph.EdgeExact)

	penalized := ApplyConflictPenalty(g, cfg, foxes, carnivores, graph.RelIsA)
	require.Contains(t, penalized, leapID)

	leapEdge := g.Edge(leapID)
	assert.Equal(t, float32(0), leapEdge.W)

	pruned := g.Prune()
	assert.Equal(t, 1, pruned)
	assert.True(t, g.Edge(leapID).Pruned)
}

func TestConflictingExactTargetHonorsOverrideThreshold(t *testing.T) {
	g := graph.New(nil)
	teachIsA(g, "dogs", "mammals")
	foxes := g.CreateOrTouch("foxes", graph.KindInstance, graph.ModalityText)
	connector, _ := LookupConnectorNode(g, ConnBE)
	g.Connect(foxes, connector, graph.RelIsA, 1.0, graph.EdgeExact)
	reptiles := g.CreateOrTouch("reptiles", graph.KindConcept, graph.ModalityText)
	g.Connect(connector, reptiles, graph.RelIsA, 0, graph.EdgeExact)

	cfg := config.Default()
	target, conflicts := conflictingExactTarget(g, foxes, ConnBE, reptiles, cfg.AbstainMargin)
	assert.False(t, conflicts)
	_ = target

	mammals, _ := g.Lookup("mammals")
	target, conflicts = conflictingExactTarget(g, foxes, ConnBE, mammals, cfg.AbstainMargin)
	assert.True(t, conflicts)
}
