// Package leap implements crowd-supported LEAP inference: connector
// normalization, template-gap detection, crowd aggregation, the
// create/reject/penalize/promote policy, and conflict arbitration.
package leap

import "strings"

// Connector is one of the canonical connector tokens a natural-language
// query is normalized to before template-gap detection.
type Connector string

const (
	ConnBE    Connector = "BE"
	ConnHAS   Connector = "HAS"
	ConnCAN   Connector = "CAN"
	ConnDOES  Connector = "DOES"
	ConnNone  Connector = ""
)

var connectorTable = map[string]Connector{
	"is": ConnBE, "are": ConnBE, "was": ConnBE, "were": ConnBE, "be": ConnBE,
	"has": ConnHAS, "have": ConnHAS, "had": ConnHAS,
	"can": ConnCAN, "could": ConnCAN, "able": ConnCAN,
	"does": ConnDOES, "do": ConnDOES, "did": ConnDOES,
}

// NormalizeConnector maps a natural-language token to its canonical
// connector, or ConnNone if the token is not a recognized connector.
func NormalizeConnector(token string) Connector {
	if c, ok := connectorTable[strings.ToLower(token)]; ok {
		return c
	}
	return ConnNone
}

// IsConnector reports whether token normalizes to a recognized connector.
func IsConnector(token string) bool {
	return NormalizeConnector(token) != ConnNone
}
