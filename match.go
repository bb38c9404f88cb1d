package waykit

import (
	"encoding/json"
	"strconv"

	"github.com/samirrijal/waykit/geo"
)

// MatchOptions requests a map matching of a recorded location trace
// against the road network.
type MatchOptions struct {
	DirectionsOptions

	// ResamplesTraces asks the server to smooth the trace before matching
	// it. Resampling discards per-sample timestamps and headings, so it
	// suits dense, noisy traces.
	ResamplesTraces bool

	// WaypointIndices selects, by position in Waypoints, which trace
	// locations act as leg separators.
	//
	// Deprecated: set SeparatesLegs on the individual waypoints instead.
	// A non-nil set wins over the per-waypoint flags and is sent to the
	// service verbatim; entries must be valid positions in Waypoints and
	// include the first and last.
	WaypointIndices []int
}

// NewMatchOptions returns match options over the given trace waypoints
// with the default shaping knobs.
func NewMatchOptions(waypoints []Waypoint, profile Profile) *MatchOptions {
	return &MatchOptions{
		DirectionsOptions: DirectionsOptions{
			Waypoints:            waypoints,
			Profile:              profile,
			ShapeFormat:          ShapeFormatPolyline,
			RouteShapeResolution: ShapeResolutionLow,
		},
	}
}

// AbridgedPath is the request path relative to the API root, without the
// serialized waypoints.
func (o *MatchOptions) AbridgedPath() string {
	return "matching/v5/" + string(o.Profile)
}

// LegSeparators returns the waypoints that bound the legs of the result.
// The deprecated WaypointIndices set, when present, selects them by
// position; otherwise the per-waypoint SeparatesLegs flags apply as for
// any other request.
func (o *MatchOptions) LegSeparators() []Waypoint {
	if o.WaypointIndices != nil {
		return o.waypointsAt(o.WaypointIndices)
	}
	return o.DirectionsOptions.LegSeparators()
}

// URLQueryItems serializes the options as an ordered list of query
// parameters: the shared parameters, then tidy, then the deprecated
// waypoint indices when set. The waypoints parameter appears at most
// once; an explicit WaypointIndices set replaces the flag-derived form.
func (o *MatchOptions) URLQueryItems() []QueryItem {
	separatorIndices := o.legSeparatorIndices()
	if o.WaypointIndices != nil {
		separatorIndices = o.WaypointIndices
	}

	items := o.urlQueryItems(separatorIndices, o.WaypointIndices == nil)
	items = append(items, QueryItem{Name: "tidy", Value: strconv.FormatBool(o.ResamplesTraces)})
	if o.WaypointIndices != nil {
		items = append(items, QueryItem{Name: "waypoints", Value: joinIndices(o.WaypointIndices)})
	}
	return items
}

// Equal reports whether the two option sets describe the same matching
// request: same waypoints under waypoint equality, same profile, same
// request path, and the same resampling choice.
func (o *MatchOptions) Equal(other *MatchOptions) bool {
	if o == nil || other == nil {
		return o == other
	}
	if len(o.Waypoints) != len(other.Waypoints) {
		return false
	}
	for i := range o.Waypoints {
		if !o.Waypoints[i].Equal(other.Waypoints[i]) {
			return false
		}
	}
	return o.Profile == other.Profile &&
		o.AbridgedPath() == other.AbridgedPath() &&
		o.ResamplesTraces == other.ResamplesTraces
}

// matchDocument is the JSON request-document form of MatchOptions.
type matchDocument struct {
	Profile       *Profile    `json:"profile"`
	Coordinates   []geo.Point `json:"coordinates"`
	Tidy          *bool       `json:"tidy,omitempty"`
	WaypointNames []string    `json:"waypoint_names,omitempty"`
}

// MarshalJSON encodes the options as a request document: the profile, the
// bare coordinates, the resampling flag under its wire name tidy, and the
// waypoint names when any are set.
func (o *MatchOptions) MarshalJSON() ([]byte, error) {
	doc := matchDocument{
		Profile:     &o.Profile,
		Coordinates: make([]geo.Point, len(o.Waypoints)),
	}
	hasNames := false
	for i, w := range o.Waypoints {
		doc.Coordinates[i] = w.Coordinate
		if w.Name != "" {
			hasNames = true
		}
	}
	if hasNames {
		doc.WaypointNames = make([]string, len(o.Waypoints))
		for i, w := range o.Waypoints {
			doc.WaypointNames[i] = w.Name
		}
	}
	if o.ResamplesTraces {
		doc.Tidy = &o.ResamplesTraces
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes a request document. The profile and coordinates
// keys are required; tidy and waypoint_names are optional.
func (o *MatchOptions) UnmarshalJSON(data []byte) error {
	var doc matchDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.Profile == nil {
		return &MissingFieldError{Field: "profile"}
	}
	if doc.Coordinates == nil {
		return &MissingFieldError{Field: "coordinates"}
	}

	waypoints := make([]Waypoint, len(doc.Coordinates))
	for i, c := range doc.Coordinates {
		waypoints[i] = NewWaypoint(c)
	}
	for i, name := range doc.WaypointNames {
		if i >= len(waypoints) {
			break
		}
		waypoints[i].Name = name
	}

	decoded := NewMatchOptions(waypoints, *doc.Profile)
	if doc.Tidy != nil {
		decoded.ResamplesTraces = *doc.Tidy
	}
	*o = *decoded
	return nil
}
