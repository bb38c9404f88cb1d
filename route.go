package waykit

import (
	"encoding/json"
	"fmt"

	"github.com/samirrijal/waykit/geo"
)

// RouteResponse is the top-level payload of a directions request.
type RouteResponse struct {
	// Code is "Ok" on success; any other value is an error condition
	// described by Message.
	Code      string     `json:"code"`
	Message   string     `json:"message,omitempty"`
	Routes    []Route    `json:"routes"`
	Waypoints []Waypoint `json:"waypoints,omitempty"`
}

// Route is one itinerary through the requested waypoints.
type Route struct {
	// Distance is the length of the route in meters.
	Distance float64 `json:"distance"`

	// Duration is the expected travel time in seconds.
	Duration float64 `json:"duration"`

	// Weight is the quantity the router minimized; WeightName says what
	// it measures.
	Weight     float64 `json:"weight,omitempty"`
	WeightName string  `json:"weight_name,omitempty"`

	// Geometry is the overview shape in whatever encoding the request
	// asked for. Use Coordinates to decode it.
	Geometry json.RawMessage `json:"geometry,omitempty"`

	Legs []RouteLeg `json:"legs"`
}

// Coordinates decodes the overview geometry according to the shape format
// the request was made with. The zero ShapeFormat means the default
// polyline encoding. A route without geometry yields nil.
func (r *Route) Coordinates(format ShapeFormat) ([]geo.Point, error) {
	if len(r.Geometry) == 0 {
		return nil, nil
	}
	switch format {
	case ShapeFormatPolyline, "":
		var encoded string
		if err := json.Unmarshal(r.Geometry, &encoded); err != nil {
			return nil, fmt.Errorf("decode geometry: %w", err)
		}
		return geo.DecodePolyline(encoded)
	case ShapeFormatPolyline6:
		var encoded string
		if err := json.Unmarshal(r.Geometry, &encoded); err != nil {
			return nil, fmt.Errorf("decode geometry: %w", err)
		}
		return geo.DecodePolyline6(encoded)
	case ShapeFormatGeoJSON:
		var line struct {
			Coordinates []geo.Point `json:"coordinates"`
		}
		if err := json.Unmarshal(r.Geometry, &line); err != nil {
			return nil, fmt.Errorf("decode geometry: %w", err)
		}
		return line.Coordinates, nil
	default:
		return nil, fmt.Errorf("unknown shape format %q", format)
	}
}

// RouteLeg is the stretch of a route between two consecutive
// leg-separating waypoints.
type RouteLeg struct {
	Distance float64     `json:"distance"`
	Duration float64     `json:"duration"`
	Summary  string      `json:"summary,omitempty"`
	Steps    []RouteStep `json:"steps,omitempty"`
}

// RouteStep is a single maneuver and the road stretch that follows it.
type RouteStep struct {
	Distance    float64         `json:"distance"`
	Duration    float64         `json:"duration"`
	Geometry    json.RawMessage `json:"geometry,omitempty"`
	Name        string          `json:"name,omitempty"`
	Ref         string          `json:"ref,omitempty"`
	Mode        string          `json:"mode,omitempty"`
	DrivingSide string          `json:"driving_side,omitempty"`
	Maneuver    StepManeuver    `json:"maneuver"`

	Intersections []Intersection `json:"intersections,omitempty"`

	// SpokenInstructions are the voice prompts for the step, from the
	// wire key voiceInstructions.
	SpokenInstructions []SpokenInstruction `json:"voiceInstructions,omitempty"`
}

// StepManeuver describes what to do at the start of a step.
type StepManeuver struct {
	Location      geo.Point `json:"location"`
	BearingBefore float64   `json:"bearing_before,omitempty"`
	BearingAfter  float64   `json:"bearing_after,omitempty"`
	Type          string    `json:"type,omitempty"`
	Modifier      string    `json:"modifier,omitempty"`
	Instruction   string    `json:"instruction,omitempty"`

	// ExitIndex counts roundabout exits, from the wire key exit.
	ExitIndex *int `json:"exit,omitempty"`
}

// Intersection is a road junction passed along a step.
type Intersection struct {
	Location geo.Point `json:"location"`

	// Bearings lists the headings of every road meeting here.
	Bearings []float64 `json:"bearings,omitempty"`

	// Entry flags, parallel to Bearings, mark the roads a vehicle may
	// legally enter.
	Entry []bool `json:"entry,omitempty"`

	// ApproachIndex and OutletIndex point into Bearings at the roads the
	// route arrives and leaves by; wire keys in and out.
	ApproachIndex *int `json:"in,omitempty"`
	OutletIndex   *int `json:"out,omitempty"`

	Lanes []Lane `json:"lanes,omitempty"`
}

// Lane is one marked lane at an intersection.
type Lane struct {
	Indications LaneIndication `json:"indications"`

	// Valid marks lanes the current maneuver can be completed from.
	Valid bool `json:"valid"`
}

// MatchResponse is the top-level payload of a map-matching request.
type MatchResponse struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`

	// Matchings are the road-network itineraries the trace may
	// correspond to.
	Matchings []Matching `json:"matchings"`

	// Tracepoints snap each input location onto the network. An entry is
	// nil where the matcher found no plausible road for the sample.
	Tracepoints []*Tracepoint `json:"tracepoints"`
}

// Matching is a route reconstructed from a location trace.
type Matching struct {
	Route

	// Confidence estimates, between 0 and 1, how likely the matching is
	// correct.
	Confidence float64 `json:"confidence"`
}

// Tracepoint is an input trace location snapped onto the road network.
type Tracepoint struct {
	Waypoint

	// MatchingIndex says which of the response's matchings the point
	// belongs to.
	MatchingIndex int

	// WaypointIndex is the point's position among the matching's leg
	// separators.
	WaypointIndex int

	// AlternativesCount is how many other matchings could have claimed
	// this point.
	AlternativesCount int
}

// UnmarshalJSON decodes the waypoint part of the document plus the
// matching bookkeeping around it.
func (t *Tracepoint) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &t.Waypoint); err != nil {
		return err
	}
	var doc struct {
		MatchingIndex     int `json:"matchings_index"`
		WaypointIndex     int `json:"waypoint_index"`
		AlternativesCount int `json:"alternatives_count"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	t.MatchingIndex = doc.MatchingIndex
	t.WaypointIndex = doc.WaypointIndex
	t.AlternativesCount = doc.AlternativesCount
	return nil
}

// MarshalJSON merges the waypoint document with the matching bookkeeping.
func (t Tracepoint) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(t.Waypoint)
	if err != nil {
		return nil, err
	}
	var merged map[string]any
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	merged["matchings_index"] = t.MatchingIndex
	merged["waypoint_index"] = t.WaypointIndex
	merged["alternatives_count"] = t.AlternativesCount
	return json.Marshal(merged)
}
