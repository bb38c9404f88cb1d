package waykit

import (
	"strconv"
	"strings"
)

// Profile selects the mode of travel a request is optimized for. The
// predeclared values match the standard server profiles; self-hosted
// servers may define their own, so any string is accepted.
type Profile string

// Standard routing profiles.
const (
	ProfileDriving        Profile = "driving"
	ProfileDrivingTraffic Profile = "driving-traffic"
	ProfileWalking        Profile = "walking"
	ProfileCycling        Profile = "cycling"
)

// ShapeFormat selects the encoding of returned geometry.
type ShapeFormat string

const (
	// ShapeFormatPolyline is the default Polyline5 encoding.
	ShapeFormatPolyline ShapeFormat = "polyline"
	// ShapeFormatPolyline6 carries six decimal places of precision.
	ShapeFormatPolyline6 ShapeFormat = "polyline6"
	// ShapeFormatGeoJSON returns shapes as GeoJSON LineStrings.
	ShapeFormatGeoJSON ShapeFormat = "geojson"
)

// RouteShapeResolution selects how much detail the overview geometry of a
// result carries.
type RouteShapeResolution string

const (
	// ShapeResolutionNone omits the overview geometry entirely.
	ShapeResolutionNone RouteShapeResolution = "false"
	// ShapeResolutionLow returns a simplified overview geometry.
	ShapeResolutionLow RouteShapeResolution = "simplified"
	// ShapeResolutionFull returns the overview geometry at full detail.
	ShapeResolutionFull RouteShapeResolution = "full"
)

// QueryItem is a single query-string parameter. Serialization produces
// query items as an ordered list, not a map: tests and request signing
// depend on a stable parameter order.
type QueryItem struct {
	Name  string
	Value string
}

// DirectionsOptions carries the input shared by every request kind: the
// waypoints to visit in order, the routing profile, and the shaping of
// returned geometry.
//
// The service enforces its own bounds on waypoint count (at least two,
// at most twenty-five for most profiles); nothing is checked locally.
type DirectionsOptions struct {
	// Waypoints are visited in slice order.
	Waypoints []Waypoint

	// Profile is the mode of travel.
	Profile Profile

	// IncludesSteps requests turn-by-turn step objects in each leg.
	IncludesSteps bool

	// ShapeFormat is the geometry encoding; empty means polyline.
	ShapeFormat ShapeFormat

	// RouteShapeResolution is the overview detail; empty means
	// simplified.
	RouteShapeResolution RouteShapeResolution

	// Locale is a BCP 47 language tag for spoken instructions.
	Locale string
}

// AbridgedPath is the request path relative to the API root, without the
// serialized waypoints.
func (o *DirectionsOptions) AbridgedPath() string {
	return "directions/v5/" + string(o.Profile)
}

// LegSeparators returns the waypoints that bound the legs of the result:
// the first and last waypoints always, plus every interior waypoint whose
// SeparatesLegs flag is set.
func (o *DirectionsOptions) LegSeparators() []Waypoint {
	return o.waypointsAt(o.legSeparatorIndices())
}

// legSeparatorIndices is the index form of LegSeparators.
func (o *DirectionsOptions) legSeparatorIndices() []int {
	if len(o.Waypoints) == 0 {
		return nil
	}
	indices := []int{0}
	for i := 1; i < len(o.Waypoints)-1; i++ {
		if o.Waypoints[i].SeparatesLegs {
			indices = append(indices, i)
		}
	}
	if len(o.Waypoints) > 1 {
		indices = append(indices, len(o.Waypoints)-1)
	}
	return indices
}

func (o *DirectionsOptions) waypointsAt(indices []int) []Waypoint {
	waypoints := make([]Waypoint, len(indices))
	for i, idx := range indices {
		waypoints[i] = o.Waypoints[idx]
	}
	return waypoints
}

// URLQueryItems serializes the options as an ordered list of query
// parameters.
func (o *DirectionsOptions) URLQueryItems() []QueryItem {
	return o.urlQueryItems(o.legSeparatorIndices(), true)
}

// urlQueryItems builds the parameters shared by every request kind.
// separatorIndices identifies the leg-separating waypoints for the
// parameters that apply per separator rather than per waypoint, and
// emitSeparators controls whether the flag-derived waypoints parameter
// may be produced at all.
func (o *DirectionsOptions) urlQueryItems(separatorIndices []int, emitSeparators bool) []QueryItem {
	shapeFormat := o.ShapeFormat
	if shapeFormat == "" {
		shapeFormat = ShapeFormatPolyline
	}
	resolution := o.RouteShapeResolution
	if resolution == "" {
		resolution = ShapeResolutionLow
	}

	items := []QueryItem{
		{Name: "geometries", Value: string(shapeFormat)},
		{Name: "overview", Value: string(resolution)},
		{Name: "steps", Value: strconv.FormatBool(o.IncludesSteps)},
	}

	if o.Locale != "" {
		items = append(items, QueryItem{Name: "language", Value: o.Locale})
	}

	var constrainsHeading, constrainsAccuracy, restrictsApproach, hasNames bool
	for _, w := range o.Waypoints {
		if w.Heading >= 0 {
			constrainsHeading = true
		}
		if w.CoordinateAccuracy >= 0 {
			constrainsAccuracy = true
		}
		if !w.AllowsArrivingOnOppositeSide {
			restrictsApproach = true
		}
		if w.Name != "" {
			hasNames = true
		}
	}

	if constrainsHeading {
		slots := make([]string, len(o.Waypoints))
		for i, w := range o.Waypoints {
			slots[i] = w.headingDescription()
		}
		items = append(items, QueryItem{Name: "bearings", Value: strings.Join(slots, ";")})
	}

	if constrainsAccuracy {
		slots := make([]string, len(o.Waypoints))
		for i, w := range o.Waypoints {
			if w.CoordinateAccuracy < 0 {
				slots[i] = "unlimited"
			} else {
				slots[i] = formatFloat(w.CoordinateAccuracy)
			}
		}
		items = append(items, QueryItem{Name: "radiuses", Value: strings.Join(slots, ";")})
	}

	if restrictsApproach {
		slots := make([]string, len(o.Waypoints))
		for i, w := range o.Waypoints {
			if w.AllowsArrivingOnOppositeSide {
				slots[i] = "unrestricted"
			} else {
				slots[i] = "curb"
			}
		}
		items = append(items, QueryItem{Name: "approaches", Value: strings.Join(slots, ";")})
	}

	if hasNames {
		slots := make([]string, len(separatorIndices))
		for i, idx := range separatorIndices {
			slots[i] = o.Waypoints[idx].Name
		}
		items = append(items, QueryItem{Name: "waypoint_names", Value: strings.Join(slots, ";")})
	}

	if emitSeparators && o.hasInteriorNonSeparating() {
		items = append(items, QueryItem{Name: "waypoints", Value: joinIndices(separatorIndices)})
	}

	return items
}

// hasInteriorNonSeparating reports whether any waypoint between the first
// and last opts out of separating legs, the only situation in which the
// flag-derived waypoints parameter must be sent.
func (o *DirectionsOptions) hasInteriorNonSeparating() bool {
	for i := 1; i < len(o.Waypoints)-1; i++ {
		if !o.Waypoints[i].SeparatesLegs {
			return true
		}
	}
	return false
}

// coordinateValues renders the waypoints as the semicolon-separated
// "lon,lat" list that follows AbridgedPath in the request URL.
func (o *DirectionsOptions) coordinateValues() string {
	coords := make([]string, len(o.Waypoints))
	for i, w := range o.Waypoints {
		coords[i] = w.Coordinate.String()
	}
	return strings.Join(coords, ";")
}

// RouteOptions requests turn-by-turn routes through a waypoint sequence.
type RouteOptions struct {
	DirectionsOptions

	// IncludesAlternativeRoutes asks for alternatives beyond the primary
	// route.
	IncludesAlternativeRoutes bool

	// AllowsUTurnAtWaypoint permits u-turns at intermediate waypoints.
	AllowsUTurnAtWaypoint bool
}

// NewRouteOptions returns route options over the given waypoints with the
// default shaping knobs.
func NewRouteOptions(waypoints []Waypoint, profile Profile) *RouteOptions {
	return &RouteOptions{
		DirectionsOptions: DirectionsOptions{
			Waypoints:            waypoints,
			Profile:              profile,
			ShapeFormat:          ShapeFormatPolyline,
			RouteShapeResolution: ShapeResolutionLow,
		},
	}
}

// URLQueryItems serializes the options as an ordered list of query
// parameters: the shared parameters first, then the route-specific ones.
func (o *RouteOptions) URLQueryItems() []QueryItem {
	items := o.urlQueryItems(o.legSeparatorIndices(), true)
	return append(items,
		QueryItem{Name: "alternatives", Value: strconv.FormatBool(o.IncludesAlternativeRoutes)},
		QueryItem{Name: "continue_straight", Value: strconv.FormatBool(!o.AllowsUTurnAtWaypoint)},
	)
}

// joinIndices renders indices as the semicolon-separated list used by the
// waypoints parameter.
func joinIndices(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ";")
}

// formatFloat renders a value with the fewest digits that round-trip and
// never in exponent notation.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
