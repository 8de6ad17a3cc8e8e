package leapcontroller

import (
	"testing"

	"github.com/EchoCog/echograph/core/config"
	"github.com/EchoCog/echograph/core/graph"
	"github.com/EchoCog/echograph/core/predictive"
	"github.com/EchoCog/echograph/core/reasoning"
	"github.com/EchoCog/echograph/core/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildActiveField(t *testing.T) (*graph.Graph, *reasoning.ContextField, []graph.Handle) {
	t.Helper()
	g := graph.New(nil)
	var handles []graph.Handle
	for _, p := range []string{"a", "b", "c", "d"} {
		handles = append(handles, g.CreateOrTouch(p, graph.KindConcept, graph.ModalityText))
	}
	// Share a common neighbor so Jaccard(a,b)/(a,c) is nonzero.
	hub := g.CreateOrTouch("hub", graph.KindConcept, graph.ModalityText)
	for _, h := range handles {
		g.Connect(h, hub, graph.RelCoOccurs, 0, graph.EdgeExact)
	}

	field := reasoning.NewContextField()
	field.Activate(handles[0], 1.0)
	field.Activate(handles[1], 0.9)
	field.Activate(handles[2], 0.8)
	field.Activate(handles[3], 0.7)
	return g, field, handles
}

func TestFormClustersRequiresMinMembers(t *testing.T) {
	g, field, _ := buildActiveField(t)
	cluster := FormClusters(g, field, 0.5, 3)
	assert.GreaterOrEqual(t, len(cluster), 3)
}

func TestFormClustersEmptyWhenNoneActive(t *testing.T) {
	g := graph.New(nil)
	field := reasoning.NewContextField()
	cluster := FormClusters(g, field, 0.3, 3)
	assert.Nil(t, cluster)
}

func TestControllerShouldEngageOnHighEntropy(t *testing.T) {
	cfg := config.Default()
	cfg.LeapEntropyThreshold = 0.1
	c := New(cfg, nil, telemetry.NewSink(nil))
	candidates := []predictive.Candidate{{Prob: 0.5}, {Prob: 0.5}}
	assert.True(t, c.ShouldEngage(candidates, nil))
}

func TestControllerShouldEngageOnRepetition(t *testing.T) {
	cfg := config.Default()
	cfg.LeapEntropyThreshold = 10.0 // unreachable via entropy
	c := New(cfg, nil, telemetry.NewSink(nil))
	history := []graph.Handle{1, 2, 1, 2, 1}
	assert.True(t, c.ShouldEngage(nil, history))
}

func TestEscapeMintsLeapNodeAndBiasesField(t *testing.T) {
	g, field, _ := buildActiveField(t)
	cfg := config.Default()
	c := New(cfg, nil, telemetry.NewSink(nil))

	escape := c.Escape(g, field)
	node, ok := escape(nil)
	require.True(t, ok)
	assert.Greater(t, field.Get(node), float32(0))

	n := g.Node(node)
	require.NotNil(t, n)
	assert.Equal(t, graph.KindConcept, n.Kind)
}

func TestFeedbackPromotesAfterEnoughSuccess(t *testing.T) {
	g, field, _ := buildActiveField(t)
	cfg := config.Default()
	c := New(cfg, nil, telemetry.NewSink(nil))

	escape := c.Escape(g, field)
	node, ok := escape(nil)
	require.True(t, ok)

	var promoted bool
	for i := 0; i < 10; i++ {
		promoted = c.Feedback(g, node, true)
		if promoted {
			break
		}
	}
	require.True(t, promoted)
	assert.Equal(t, graph.KindLeapPermanent, g.Node(node).Kind)
}

func TestAutoTuneEntropyThresholdRaisesWhenEngagingTooOften(t *testing.T) {
	cfg := config.Default()
	cfg.LeapEntropyThreshold = 0.5
	c := New(cfg, nil, telemetry.NewSink(nil))
	for i := 0; i < 10; i++ {
		c.recentEntropy = append(c.recentEntropy, 0.9)
	}
	before := cfg.LeapEntropyThreshold
	c.AutoTuneEntropyThreshold()
	assert.Greater(t, cfg.LeapEntropyThreshold, before)
}

func TestReportCountsEngagementsAndNodes(t *testing.T) {
	g, field, _ := buildActiveField(t)
	cfg := config.Default()
	c := New(cfg, nil, telemetry.NewSink(nil))
	escape := c.Escape(g, field)
	_, _ = escape(nil)

	report := c.Report()
	assert.Equal(t, 1, report.Engagements)
	assert.Equal(t, 1, report.ActiveLeapNodes)
}
