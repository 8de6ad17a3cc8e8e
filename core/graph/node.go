// Package graph implements the persistent node/edge substrate: in-memory
// storage, adjacency indexing, and binary load/save.
package graph

import "time"

// Handle is a stable integer identifier for a Node. Handles are never
// reused or invalidated for the lifetime of a Graph.
type Handle int32

// InvalidHandle marks the absence of a node.
const InvalidHandle Handle = -1

// Kind classifies the semantic role a node plays in the graph.
type Kind int32

const (
	KindConcept Kind = iota
	KindInstance
	KindConnector
	KindThought
	KindAudioToken
	KindImagePercept
	KindLeapPermanent
	KindSpeech
)

func (k Kind) String() string {
	switch k {
	case KindConcept:
		return "concept"
	case KindInstance:
		return "instance"
	case KindConnector:
		return "connector"
	case KindThought:
		return "thought"
	case KindAudioToken:
		return "audio-token"
	case KindImagePercept:
		return "image-percept"
	case KindLeapPermanent:
		return "leap-permanent"
	case KindSpeech:
		return "speech"
	default:
		return "unknown"
	}
}

// Modality identifies which sensory channel produced a node.
type Modality int32

const (
	ModalityText Modality = iota
	ModalityAudio
	ModalityImage
	ModalityMotor
	ModalityAbstract
)

func (m Modality) String() string {
	switch m {
	case ModalityText:
		return "text"
	case ModalityAudio:
		return "audio"
	case ModalityImage:
		return "image"
	case ModalityMotor:
		return "motor"
	case ModalityAbstract:
		return "abstract"
	default:
		return "unknown"
	}
}

// Node is a discrete unit of meaning: a payload plus bookkeeping the
// reasoning and learning layers rely on. Nodes are never deleted; decay is
// the only way a node's durable weight moves.
type Node struct {
	Handle    Handle
	Payload   string
	Kind      Kind
	Modality  Modality
	Weight    float32 // durable weight, clamped to [0,2]
	Usage     int32
	CreatedAt time.Time
	TouchedAt time.Time
	Embedding []float32 // optional, fixed dimension once set
}

const (
	defaultNodeWeight = 1.0
	maxNodeWeight     = 2.0
	minNodeWeight     = 0.0
)

func newNode(handle Handle, payload string, kind Kind, modality Modality, now time.Time) *Node {
	return &Node{
		Handle:    handle,
		Payload:   payload,
		Kind:      kind,
		Modality:  modality,
		Weight:    defaultNodeWeight,
		Usage:     1,
		CreatedAt: now,
		TouchedAt: now,
	}
}

// touch bumps the usage counter and last-touched timestamp.
func (n *Node) touch(now time.Time) {
	n.Usage++
	n.TouchedAt = now
}

func clampNodeWeight(w float32) float32 {
	if w < minNodeWeight {
		return minNodeWeight
	}
	if w > maxNodeWeight {
		return maxNodeWeight
	}
	return w
}
