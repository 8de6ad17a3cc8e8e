package engine

import (
	"github.com/EchoCog/echograph/core/graph"
	"github.com/EchoCog/echograph/core/leap"
	"github.com/EchoCog/echograph/core/learning"
	"github.com/EchoCog/echograph/core/predictive"
	"github.com/EchoCog/echograph/core/reasoning"
)

// diffusionSteps and diffusionTau drive the context field's spread before
// generation, per spec's worked diffusion examples.
const (
	diffusionSteps = 3
	diffusionTau   = 0.5
)

// Result is the outcome of one Think call.
type Result struct {
	Query     string
	Tokens    []string
	Path      []graph.Handle
	Words     []string
	Decision  leap.Decision
	Score     reasoning.PathScore
	Abstained bool
}

// Think answers a query: a recognized X-CONNECTOR-Y gap runs the
// crowd-supported creation policy; otherwise, a known subject runs the
// structural-similarity fallback. Either way, activation diffuses out
// from the query's known terms, a continuation is generated (or, in
// cfg.ReasoningOnlyMode, traversed deterministically instead), and the
// path it walked is reinforced and recorded as a thought. ok is false, and
// Result.Abstained set, when the query has no tokens, when no token
// resolves to a known node (nothing in the graph grounds the query), when
// the LEAP policy abstains (the top two candidates are within the margin,
// or the best one conflicts with an existing EXACT fact), or when the
// path covers fewer than two nodes and no LEAP edge was created.
func (e *Engine) Think(query string) (Result, bool) {
	tokens := Tokenize(query)
	result := Result{Query: query, Tokens: tokens}
	if len(tokens) == 0 {
		result.Abstained = true
		return result, false
	}

	var seed []graph.Handle
	for _, tok := range tokens {
		if h, ok := leap.ResolveSubject(e.Graph, tok); ok {
			seed = append(seed, h)
		}
	}
	if len(seed) == 0 {
		result.Abstained = true
		return result, false
	}

	gap := leap.DetectGap(e.Graph, func(c leap.Connector) (graph.Handle, bool) {
		return leap.LookupConnectorNode(e.Graph, c)
	}, tokens)

	var decision leap.Decision
	switch {
	case gap.HasGap:
		decision = leap.Evaluate(e.Graph, e.Config, e.Sink, gap)
	case e.Config.EnableLeapSystem:
		decision = leap.Fallback(e.Graph, e.Field, e.Config, e.Sink, seed[0])
	}
	result.Decision = decision

	for _, h := range seed {
		e.Field.Activate(h, 1.0)
	}
	e.Field.Diffuse(e.Graph, diffusionSteps, diffusionTau)

	var path []graph.Handle
	if e.Config.ReasoningOnlyMode {
		path = reasoning.Traverse(e.Graph, seed[0], e.Config.MaxHops, true)
	} else {
		escape := e.Leap.Escape(e.Graph, e.Field)
		path = predictive.GeneratePath(e.Graph, e.Config, seed, e.Bridge, escape, e.rng)
	}
	result.Path = path

	words := make([]string, 0, len(path))
	for _, h := range path {
		if n := e.Graph.Node(h); n != nil {
			words = append(words, n.Payload)
		}
	}
	result.Words = words

	reward := float32(0.1)
	if decision.Created {
		reward = 0.5
	}
	learning.ReinforcePath(e.Graph, e.Config, path, reward)
	if len(words) > 0 {
		learning.RecordThought(e.Graph, words)
	}

	result.Score = reasoning.ScorePath(e.Graph, path, reasoning.ScoringWeights{
		Kappa: e.Config.Kappa, Mu: e.Config.Mu, Sigma: e.Config.Sigma,
	})

	if decision.Reason == "insufficient_margin" || decision.Reason == "conflict_with_exact" {
		result.Abstained = true
		return result, false
	}
	if len(path) < 2 && !decision.Created {
		result.Abstained = true
		return result, false
	}
	return result, true
}

// Feedback reports an external verdict on a minted LeapNode back to the
// escape-hatch controller (positive reinforces toward promotion, negative
// decays it) — exposed here so a caller need not reach into e.Leap
// directly.
func (e *Engine) Feedback(node graph.Handle, positive bool) bool {
	return e.Leap.Feedback(e.Graph, node, positive)
}
