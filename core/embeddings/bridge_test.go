package embeddings

import (
	"testing"

	"github.com/EchoCog/echograph/core/graph"
	"github.com/stretchr/testify/assert"
)

func TestSetNodeEmbeddingNormalizes(t *testing.T) {
	b := NewBridge(4)
	b.SetNodeEmbedding(1, []float32{3, 4, 0, 0})
	v := b.NodeEmbedding(1)
	assert.InDelta(t, 1.0, float64(v[0]*v[0]+v[1]*v[1]+v[2]*v[2]+v[3]*v[3]), 1e-5)
}

func TestUnknownEmbeddingsAreZero(t *testing.T) {
	b := NewBridge(4)
	v := b.NodeEmbedding(99)
	for _, x := range v {
		assert.Equal(t, float32(0), x)
	}
}

func TestActivationVectorZeroFlagBelowThreshold(t *testing.T) {
	b := NewBridge(4)
	_, zero := b.ActivationVector(nil, nil, nil)
	assert.True(t, zero)
}

func TestActivationVectorWeightedMean(t *testing.T) {
	b := NewBridge(2)
	b.SetNodeEmbedding(1, []float32{1, 0})
	b.SetNodeEmbedding(2, []float32{0, 1})
	v, zero := b.ActivationVector([]graph.Handle{1, 2}, []float32{1, 1}, nil)
	assert.False(t, zero)
	assert.InDelta(t, 0.5, float64(v[0]), 1e-5)
	assert.InDelta(t, 0.5, float64(v[1]), 1e-5)
}

func TestTokenBiasRespectsThreshold(t *testing.T) {
	b := NewBridge(2)
	b.SetTokenEmbedding("mammals", []float32{1, 0})
	b.SetTokenEmbedding("unrelated", []float32{0, 1})
	activation := []float32{1, 0}

	bias := b.TokenBias([]string{"mammals", "unrelated"}, activation, 0.4, 0.5)
	_, hasMammals := bias["mammals"]
	_, hasUnrelated := bias["unrelated"]
	assert.True(t, hasMammals)
	assert.False(t, hasUnrelated)
	assert.InDelta(t, 0.5, float64(bias["mammals"]), 1e-5)
}

func TestLearnPullsTokenTowardActivationOnPositiveReward(t *testing.T) {
	b := NewBridge(2)
	b.SetTokenEmbedding("mammals", []float32{0, 1})
	activation := []float32{1, 0}

	b.Learn("mammals", activation, nil, nil, 1.0, 0.5)
	updated := b.TokenEmbedding("mammals")
	// Pulled toward [1,0]: the first component should have grown.
	assert.Greater(t, updated[0], float32(0))
}
