package engine

import (
	"github.com/EchoCog/echograph/core/graph"
	"github.com/EchoCog/echograph/core/leap"
)

// TeachText tokenizes text, links its words as a temporal-next EXACT
// chain (so "the dog runs" leaves a sequential memory the predictive
// sampler can walk), and — whenever a recognized connector sits between
// two other tokens — teaches the X-CONNECTOR-Y fact as a pair of EXACT
// edges through the connector's shared node, the same structure
// AggregateCrowd later reads back out.
func (e *Engine) TeachText(text string) []graph.Handle {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	handles := make([]graph.Handle, 0, len(tokens))
	for _, tok := range tokens {
		handles = append(handles, e.Graph.CreateOrTouch(tok, graph.KindConcept, graph.ModalityText))
	}
	for i := 0; i+1 < len(handles); i++ {
		e.Graph.Connect(handles[i], handles[i+1], graph.RelTemporalNext, 0, graph.EdgeExact)
	}

	e.teachConnectorPatterns(tokens, handles)

	e.Sink.Emit("teach_text", map[string]interface{}{"tokens": len(tokens)})
	return handles
}

func (e *Engine) teachConnectorPatterns(tokens []string, handles []graph.Handle) {
	for i, tok := range tokens {
		c := leap.NormalizeConnector(tok)
		if c == leap.ConnNone || i == 0 || i+1 >= len(tokens) {
			continue
		}
		subject, object := handles[i-1], handles[i+1]
		connNode := leap.ConnectorNode(e.Graph, c)
		rel := leap.RelationFor(c)
		e.Graph.Connect(subject, connNode, rel, 0, graph.EdgeExact)
		e.Graph.Connect(connNode, object, rel, 0, graph.EdgeExact)

		// A freshly taught EXACT fact may contradict a LEAP guess made
		// before the teacher ever confirmed it; penalize those guesses
		// now rather than waiting for the next think() to notice.
		if penalized := leap.ApplyConflictPenalty(e.Graph, e.Config, subject, object, rel); len(penalized) > 0 {
			e.Sink.Emit("conflict_detected", map[string]interface{}{
				"subject": int32(subject), "target": int32(object), "penalized": len(penalized),
			})
		}
	}
}

// TeachAudio registers an audio token (e.g. a phoneme or sound label) and,
// when features are supplied, stores them as its embedding.
func (e *Engine) TeachAudio(label string, features []float32) graph.Handle {
	return e.teachPercept(label, graph.KindAudioToken, graph.ModalityAudio, features)
}

// TeachImage registers a visual percept label and its optional feature
// vector.
func (e *Engine) TeachImage(label string, features []float32) graph.Handle {
	return e.teachPercept(label, graph.KindImagePercept, graph.ModalityImage, features)
}

// TeachMotor registers a motor-action label and its optional feature
// vector (e.g. a proprioceptive summary of the action).
func (e *Engine) TeachMotor(label string, features []float32) graph.Handle {
	return e.teachPercept(label, graph.KindConcept, graph.ModalityMotor, features)
}

func (e *Engine) teachPercept(label string, kind graph.Kind, modality graph.Modality, features []float32) graph.Handle {
	h := e.Graph.CreateOrTouch(label, kind, modality)
	if len(features) > 0 {
		e.Graph.SetEmbedding(h, features)
		e.Bridge.SetNodeEmbedding(h, features)
	}
	e.Sink.Emit("teach_percept", map[string]interface{}{
		"label": label, "modality": modality.String(),
	})
	return h
}

// TeachMultimodalPair links a node from one modality to a node from
// another (e.g. the word "bark" to the audio token it sounds like) with a
// bidirectional EXACT cross-modal edge, flagged so Reinforce grows its
// CrossModalBonus. Diffusion does not read the flag; it halves flow
// across any edge whose endpoint modalities differ.
func (e *Engine) TeachMultimodalPair(a, b graph.Handle) {
	id := e.Graph.Connect(a, b, graph.RelCrossModal, 0, graph.EdgeExact)
	e.Graph.SetCrossModal(id, true)
	if edge := e.Graph.Edge(id); edge != nil && edge.Reverse >= 0 {
		e.Graph.SetCrossModal(edge.Reverse, true)
	}
	e.Sink.Emit("teach_multimodal_pair", map[string]interface{}{
		"a": int32(a), "b": int32(b),
	})
}
