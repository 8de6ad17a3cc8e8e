package leapcontroller

import (
	"github.com/EchoCog/echograph/core/graph"
	"github.com/EchoCog/echograph/core/reasoning"
)

const (
	defaultMinJaccard  = 0.3
	defaultMinMembers  = 3
	activationFloor    = 0.1
	clusterCandidateCap = 64
)

// FormClusters greedily groups the field's currently activated nodes: seed
// on the highest-activation node, pull in every other activated node
// whose EXACT-neighborhood Jaccard similarity to the seed is at least
// minJaccard, and return the resulting members — or nil if fewer than
// minMembers nodes qualify, per spec's "discard clusters under 3 members".
func FormClusters(g *graph.Graph, field *reasoning.ContextField, minJaccard float32, minMembers int) []graph.Handle {
	active := field.AboveThreshold(activationFloor)
	if len(active) > clusterCandidateCap {
		active = active[:clusterCandidateCap]
	}
	if len(active) == 0 {
		return nil
	}

	seed := active[0]
	for _, a := range active[1:] {
		if a.Activation > seed.Activation {
			seed = a
		}
	}

	members := []graph.Handle{seed.Handle}
	for _, a := range active {
		if a.Handle == seed.Handle {
			continue
		}
		if reasoning.Jaccard(g, seed.Handle, a.Handle) >= minJaccard {
			members = append(members, a.Handle)
		}
	}

	if len(members) < minMembers {
		return nil
	}
	return members
}
