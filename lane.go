package waykit

import (
	"encoding/json"
	"strings"
)

// LaneIndication is a bit set of the turn directions a highway lane is
// marked for.
type LaneIndication uint16

// Lane indication flags, one per marked direction.
const (
	LaneSharpRight LaneIndication = 1 << (iota + 1)
	LaneRight
	LaneSlightRight
	LaneStraightAhead
	LaneSlightLeft
	LaneLeft
	LaneSharpLeft
	LaneUTurn
)

// laneIndicationTokens pairs each flag with its wire token. The table
// drives both directions of the codec, and its order is the order tokens
// are emitted in.
var laneIndicationTokens = []struct {
	flag  LaneIndication
	token string
}{
	{LaneSharpRight, "sharp right"},
	{LaneRight, "right"},
	{LaneSlightRight, "slight right"},
	{LaneStraightAhead, "straight"},
	{LaneSlightLeft, "slight left"},
	{LaneLeft, "left"},
	{LaneSharpLeft, "sharp left"},
	{LaneUTurn, "uturn"},
}

// ParseLaneIndications folds wire tokens into a bit set. The token "none"
// contributes nothing. Any other unrecognized token fails the whole parse
// with an UnknownLaneIndicationError.
func ParseLaneIndications(tokens []string) (LaneIndication, error) {
	var indications LaneIndication
	for _, token := range tokens {
		if token == "none" {
			continue
		}
		flag, ok := laneIndicationFlag(token)
		if !ok {
			return 0, &UnknownLaneIndicationError{Token: token}
		}
		indications |= flag
	}
	return indications, nil
}

func laneIndicationFlag(token string) (LaneIndication, bool) {
	for _, entry := range laneIndicationTokens {
		if entry.token == token {
			return entry.flag, true
		}
	}
	return 0, false
}

// Contains reports whether every flag in other is set.
func (l LaneIndication) Contains(other LaneIndication) bool {
	return l&other == other
}

// Descriptions returns the wire tokens of the set flags, in declaration
// order regardless of how the set was assembled. An empty set yields nil.
func (l LaneIndication) Descriptions() []string {
	var tokens []string
	for _, entry := range laneIndicationTokens {
		if l.Contains(entry.flag) {
			tokens = append(tokens, entry.token)
		}
	}
	return tokens
}

// String joins the indication tokens with commas.
func (l LaneIndication) String() string {
	return strings.Join(l.Descriptions(), ",")
}

// MarshalJSON encodes the set as its token array. The empty set encodes
// as an empty array, not null.
func (l LaneIndication) MarshalJSON() ([]byte, error) {
	tokens := l.Descriptions()
	if tokens == nil {
		tokens = []string{}
	}
	return json.Marshal(tokens)
}

// UnmarshalJSON decodes a token array.
func (l *LaneIndication) UnmarshalJSON(data []byte) error {
	var tokens []string
	if err := json.Unmarshal(data, &tokens); err != nil {
		return err
	}
	indications, err := ParseLaneIndications(tokens)
	if err != nil {
		return err
	}
	*l = indications
	return nil
}
