package leapcontroller

import (
	"github.com/EchoCog/echograph/core/graph"
	"github.com/EchoCog/echograph/core/reasoning"
)

// ApplyBiasField injects lambda activation into node directly, and
// lambda/2 into its first-degree EXACT/LEAP neighbors, pulling the
// diffusion field's attention toward the newly minted LeapNode without
// overwriting activation it already holds.
func ApplyBiasField(g *graph.Graph, field *reasoning.ContextField, node graph.Handle, lambda float32) {
	field.Activate(node, field.Get(node)+lambda)
	for _, n := range g.Neighbors(node) {
		field.Activate(n.Target, field.Get(n.Target)+lambda/2)
	}
}
