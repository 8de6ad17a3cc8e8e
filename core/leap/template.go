package leap

import "github.com/EchoCog/echograph/core/graph"

// relationFor maps a canonical connector to the relation its pattern edges
// carry: "is/are" -> is-a, "has" -> has, "can" -> can, "does" -> consumes
// (the teach-time "X does Y" pattern is always a consumption fact, per
// spec's worked examples).
// RelationFor exposes relationFor to the ingest pipeline, which needs the
// same subject-connector-object relation a template gap would later look
// for when teaching text supplies the pattern directly.
func RelationFor(c Connector) graph.Relation { return relationFor(c) }

func relationFor(c Connector) graph.Relation {
	switch c {
	case ConnHAS:
		return graph.RelHas
	case ConnCAN:
		return graph.RelCan
	case ConnDOES:
		return graph.RelConsumes
	default:
		return graph.RelIsA
	}
}

// Gap is the result of scanning a tokenized query for the X · CONNECTOR · Y?
// pattern: a known subject and a recognized connector with no EXACT edge
// between them yet — the signal that crowd aggregation should run.
type Gap struct {
	HasGap bool

	Subject   graph.Handle
	Connector graph.Handle
	ConnWord  Connector

	Object   graph.Handle
	HasObject bool
}

// DetectGap scans tokens (already split and lowercased) for a connector and
// a known subject around it. Both declarative ("dogs are Y") and
// interrogative ("are foxes mammals") orderings are accepted: the connector
// may sit before or between the other two terms. Unknown subjects resolve
// through fuzzy matching (fuzzy.go) so "dogz are mammals" still recognizes
// "dogs".
func DetectGap(g *graph.Graph, connNode func(Connector) (graph.Handle, bool), tokens []string) Gap {
	connIdx := -1
	var connWord Connector
	for i, tok := range tokens {
		if c := NormalizeConnector(tok); c != ConnNone {
			connIdx = i
			connWord = c
			break
		}
	}
	if connIdx < 0 {
		return Gap{}
	}

	var others []string
	for i, tok := range tokens {
		if i != connIdx {
			others = append(others, tok)
		}
	}
	if len(others) == 0 {
		return Gap{}
	}

	subjTok := others[0]
	subject, subjOK := resolveSubject(g, subjTok)
	if !subjOK {
		return Gap{}
	}

	connHandle, connOK := connNode(connWord)
	if !connOK {
		return Gap{}
	}

	gap := Gap{
		HasGap:    !g.HasExactEdge(subject, connHandle, relationFor(connWord)),
		Subject:   subject,
		Connector: connHandle,
		ConnWord:  connWord,
	}

	if len(others) > 1 {
		if obj, ok := resolveSubject(g, others[1]); ok {
			gap.Object = obj
			gap.HasObject = true
		}
	}
	return gap
}
