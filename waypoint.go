package waykit

import (
	"encoding/json"
	"math"

	"github.com/samirrijal/waykit/geo"
)

// Waypoint is a location a route must pass through, together with the
// constraints on how it may be approached. Negative accuracy and heading
// values mean unconstrained; NewWaypoint applies those defaults.
type Waypoint struct {
	// Coordinate is where the route must pass.
	Coordinate geo.Point

	// CoordinateAccuracy is the radius in meters within which the
	// coordinate may be snapped to the road network. Negative leaves the
	// snapping radius to the server.
	CoordinateAccuracy float64

	// Heading is the direction of travel through the waypoint, in degrees
	// clockwise from true north. Negative allows any direction.
	Heading float64

	// HeadingAccuracy is the maximum deviation from Heading, in degrees.
	// Values above 180 are clamped during serialization. Negative
	// disables the heading constraint.
	HeadingAccuracy float64

	// Name labels the waypoint in results. Empty means unnamed.
	Name string

	// AllowsArrivingOnOppositeSide permits arriving on the far side of
	// the road.
	AllowsArrivingOnOppositeSide bool

	// SeparatesLegs marks the waypoint as a boundary between two legs of
	// the result. The first and last waypoints separate legs regardless
	// of this flag.
	SeparatesLegs bool
}

// NewWaypoint returns a waypoint at the given coordinate with every
// constraint open.
func NewWaypoint(coordinate geo.Point) Waypoint {
	return Waypoint{
		Coordinate:                   coordinate,
		CoordinateAccuracy:           -1,
		Heading:                      -1,
		HeadingAccuracy:              -1,
		AllowsArrivingOnOppositeSide: true,
		SeparatesLegs:                true,
	}
}

// LocationFix is a positioning sample as reported by a location provider.
// Negative accuracy or heading values mean that reading is unusable.
type LocationFix struct {
	Coordinate         geo.Point
	HorizontalAccuracy float64
	TrueHeading        float64
	MagneticHeading    float64
}

// NewWaypointFromFix builds a waypoint from a raw location sample. The
// sample's horizontal accuracy carries over, and its true heading is
// preferred over the magnetic one.
func NewWaypointFromFix(fix LocationFix) Waypoint {
	w := NewWaypoint(fix.Coordinate)
	w.CoordinateAccuracy = fix.HorizontalAccuracy
	switch {
	case fix.TrueHeading >= 0:
		w.Heading = fix.TrueHeading
	case fix.MagneticHeading >= 0:
		w.Heading = fix.MagneticHeading
	}
	return w
}

// Equal reports whether the two waypoints have the same coordinate, name,
// and coordinate accuracy. Heading fields do not participate: the same
// stop approached from different directions is still the same stop.
func (w Waypoint) Equal(other Waypoint) bool {
	return w.Coordinate == other.Coordinate &&
		w.Name == other.Name &&
		w.CoordinateAccuracy == other.CoordinateAccuracy
}

// headingDescription renders the approach constraint as the
// "heading,tolerance" slot used in the bearings parameter, or "" when the
// heading or its accuracy is unconstrained.
func (w Waypoint) headingDescription() string {
	if w.Heading < 0 || w.HeadingAccuracy < 0 {
		return ""
	}
	heading := math.Mod(w.Heading, 360)
	tolerance := math.Min(w.HeadingAccuracy, 180)
	return formatFloat(heading) + "," + formatFloat(tolerance)
}

// waypointDocument is the JSON shape of a waypoint on the wire.
type waypointDocument struct {
	Location           *geo.Point `json:"location,omitempty"`
	CoordinateAccuracy *float64   `json:"coordinateAccuracy,omitempty"`
	Name               string     `json:"name,omitempty"`
}

// MarshalJSON encodes the waypoint's document form: the location always,
// the accuracy only when constrained, the name only when set.
func (w Waypoint) MarshalJSON() ([]byte, error) {
	doc := waypointDocument{Location: &w.Coordinate, Name: w.Name}
	if w.CoordinateAccuracy >= 0 {
		doc.CoordinateAccuracy = &w.CoordinateAccuracy
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes the document form. The location key is required;
// everything the document does not mention keeps its NewWaypoint default.
func (w *Waypoint) UnmarshalJSON(data []byte) error {
	var doc waypointDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.Location == nil {
		return &MissingFieldError{Field: "location"}
	}
	*w = NewWaypoint(*doc.Location)
	if doc.CoordinateAccuracy != nil {
		w.CoordinateAccuracy = *doc.CoordinateAccuracy
	}
	w.Name = doc.Name
	return nil
}
