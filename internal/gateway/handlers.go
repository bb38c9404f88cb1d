package gateway

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/waykit"
	"github.com/samirrijal/waykit/geo"
	"github.com/samirrijal/waykit/internal/pkg/metrics"
)

// routeEnvelope is the gateway's reply to a route request. BBox frames the
// primary route's overview geometry.
type routeEnvelope struct {
	Routes    []waykit.Route    `json:"routes"`
	Waypoints []waykit.Waypoint `json:"waypoints,omitempty"`
	BBox      *geo.BoundingBox  `json:"bbox,omitempty"`
}

// matchEnvelope is the gateway's reply to a map-matching request.
type matchEnvelope struct {
	Matchings   []waykit.Matching    `json:"matchings"`
	Tracepoints []*waykit.Tracepoint `json:"tracepoints,omitempty"`
	BBox        *geo.BoundingBox     `json:"bbox,omitempty"`
}

// RouteHandler proxies a directions request.
// GET /v1/route?points=-2.935,43.263;-2.874,43.312&profile=driving&steps=true
func RouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		points, err := parsePoints(c.Query("points"))
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		if len(points) < 2 {
			return errBadRequest(c, "at least two points are required")
		}
		if max := deps.maxRouteWaypoints(); len(points) > max {
			return errBadRequest(c, fmt.Sprintf("maximum %d points allowed", max))
		}

		waypoints := make([]waykit.Waypoint, len(points))
		for i, p := range points {
			waypoints[i] = waykit.NewWaypoint(p)
		}
		if err := applyPointParams(c, waypoints); err != nil {
			return errBadRequest(c, err.Error())
		}

		format, err := shapeFormat(c.Query("geometries"))
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		resolution, err := shapeResolution(c.Query("overview"))
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		opts := waykit.NewRouteOptions(waypoints, deps.profileOr(c.Query("profile")))
		opts.IncludesSteps = c.QueryBool("steps", false)
		opts.IncludesAlternativeRoutes = c.QueryBool("alternatives", false)
		opts.AllowsUTurnAtWaypoint = c.QueryBool("uturns", false)
		opts.ShapeFormat = format
		opts.RouteShapeResolution = resolution
		opts.Locale = c.Query("language")

		if deps.Routing == nil {
			return errServiceUnavailable(c, "routing service not configured")
		}

		start := time.Now()
		resp, err := deps.Routing.Routes(c.UserContext(), opts)
		elapsed := time.Since(start)
		if err != nil {
			metrics.ObserveUpstream("routes", len(waypoints), elapsed, "error")
			LoggerFromCtx(c.UserContext()).Warn("routes upstream call failed",
				"error", err, "waypoints", len(waypoints))
			return upstreamError(c, err)
		}
		metrics.ObserveUpstream("routes", len(waypoints), elapsed, "ok")

		var primary *waykit.Route
		if len(resp.Routes) > 0 {
			primary = &resp.Routes[0]
		}
		return c.JSON(routeEnvelope{
			Routes:    resp.Routes,
			Waypoints: resp.Waypoints,
			BBox:      primaryBBox(primary, format),
		})
	}
}

// MatchHandler proxies a map-matching request.
// GET /v1/match?points=-2.935,43.263;-2.934,43.264&tidy=true
//
// The waypoints parameter (;-separated indices into points) is deprecated in
// favor of per-point separators flags; requests using it get RFC 8594
// deprecation headers.
func MatchHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		points, err := parsePoints(c.Query("points"))
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		if len(points) < 2 {
			return errBadRequest(c, "at least two points are required")
		}
		if max := deps.maxTracePoints(); len(points) > max {
			return errBadRequest(c, fmt.Sprintf("maximum %d points allowed", max))
		}

		waypoints := make([]waykit.Waypoint, len(points))
		for i, p := range points {
			waypoints[i] = waykit.NewWaypoint(p)
		}
		if err := applyPointParams(c, waypoints); err != nil {
			return errBadRequest(c, err.Error())
		}

		format, err := shapeFormat(c.Query("geometries"))
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		resolution, err := shapeResolution(c.Query("overview"))
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		opts := waykit.NewMatchOptions(waypoints, deps.profileOr(c.Query("profile")))
		opts.IncludesSteps = c.QueryBool("steps", false)
		opts.ResamplesTraces = c.QueryBool("tidy", false)
		opts.ShapeFormat = format
		opts.RouteShapeResolution = resolution
		opts.Locale = c.Query("language")

		if raw := c.Query("waypoints"); raw != "" {
			indices, err := parseIndices(raw, len(points))
			if err != nil {
				return errBadRequest(c, err.Error())
			}
			opts.WaypointIndices = indices
			MarkDeprecated(c, legacyWaypointsParam)
		}

		return forwardMatch(c, deps, opts)
	}
}

// MatchPostHandler accepts the match options as a JSON document, for traces
// too long to fit in a query string.
// POST /v1/match {"profile":"driving","coordinates":[[-2.935,43.263],...]}
func MatchPostHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var opts waykit.MatchOptions
		if err := json.Unmarshal(c.Body(), &opts); err != nil {
			return errBadRequest(c, err.Error())
		}
		if len(opts.Waypoints) < 2 {
			return errBadRequest(c, "at least two coordinates are required")
		}
		if max := deps.maxTracePoints(); len(opts.Waypoints) > max {
			return errBadRequest(c, fmt.Sprintf("maximum %d coordinates allowed", max))
		}

		return forwardMatch(c, deps, &opts)
	}
}

// forwardMatch sends the options upstream and shapes the reply.
func forwardMatch(c *fiber.Ctx, deps *Dependencies, opts *waykit.MatchOptions) error {
	if deps.Routing == nil {
		return errServiceUnavailable(c, "routing service not configured")
	}

	start := time.Now()
	resp, err := deps.Routing.Match(c.UserContext(), opts)
	elapsed := time.Since(start)
	if err != nil {
		metrics.ObserveUpstream("match", len(opts.Waypoints), elapsed, "error")
		LoggerFromCtx(c.UserContext()).Warn("match upstream call failed",
			"error", err, "waypoints", len(opts.Waypoints))
		return upstreamError(c, err)
	}
	metrics.ObserveUpstream("match", len(opts.Waypoints), elapsed, "ok")
	for _, m := range resp.Matchings {
		metrics.MatchingConfidence.Observe(m.Confidence)
	}

	var primary *waykit.Route
	if len(resp.Matchings) > 0 {
		primary = &resp.Matchings[0].Route
	}
	return c.JSON(matchEnvelope{
		Matchings:   resp.Matchings,
		Tracepoints: resp.Tracepoints,
		BBox:        primaryBBox(primary, opts.ShapeFormat),
	})
}

// primaryBBox frames a route's overview geometry. Routes without a decodable
// two-point shape get no box.
func primaryBBox(route *waykit.Route, format waykit.ShapeFormat) *geo.BoundingBox {
	if route == nil {
		return nil
	}
	points, err := route.Coordinates(format)
	if err != nil || len(points) < 2 {
		return nil
	}
	box := geo.NewBoundingBoxFromPoints(points)
	return &box
}

// parsePoints parses "lon,lat;lon,lat;..." into coordinates.
func parsePoints(raw string) ([]geo.Point, error) {
	if raw == "" {
		return nil, fmt.Errorf("points query parameter is required")
	}
	parts := strings.Split(raw, ";")
	points := make([]geo.Point, 0, len(parts))
	for i, part := range parts {
		lonlat := strings.Split(part, ",")
		if len(lonlat) != 2 {
			return nil, fmt.Errorf("point %d: want \"lon,lat\", got %q", i, part)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(lonlat[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("point %d: bad longitude %q", i, lonlat[0])
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(lonlat[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("point %d: bad latitude %q", i, lonlat[1])
		}
		points = append(points, geo.Point{Latitude: lat, Longitude: lon})
	}
	return points, nil
}

// applyPointParams folds the per-point query parameters into the waypoints.
// Each parameter is ;-separated and positional, one entry per point.
func applyPointParams(c *fiber.Ctx, waypoints []waykit.Waypoint) error {
	if raw := c.Query("names"); raw != "" {
		names := strings.Split(raw, ";")
		if len(names) != len(waypoints) {
			return fmt.Errorf("names lists %d entries for %d points", len(names), len(waypoints))
		}
		for i, name := range names {
			waypoints[i].Name = name
		}
	}

	if raw := c.Query("radiuses"); raw != "" {
		radiuses := strings.Split(raw, ";")
		if len(radiuses) != len(waypoints) {
			return fmt.Errorf("radiuses lists %d entries for %d points", len(radiuses), len(waypoints))
		}
		for i, r := range radiuses {
			// An empty slot or "unlimited" leaves the radius unconstrained.
			if r == "" || r == "unlimited" {
				continue
			}
			v, err := strconv.ParseFloat(r, 64)
			if err != nil || v < 0 {
				return fmt.Errorf("radius %d: %q is not a distance", i, r)
			}
			waypoints[i].CoordinateAccuracy = v
		}
	}

	if raw := c.Query("headings"); raw != "" {
		headings := strings.Split(raw, ";")
		if len(headings) != len(waypoints) {
			return fmt.Errorf("headings lists %d entries for %d points", len(headings), len(waypoints))
		}
		for i, h := range headings {
			if h == "" {
				continue
			}
			pair := strings.Split(h, ",")
			if len(pair) != 2 {
				return fmt.Errorf("heading %d: want \"angle,tolerance\", got %q", i, h)
			}
			angle, err := strconv.ParseFloat(pair[0], 64)
			if err != nil {
				return fmt.Errorf("heading %d: bad angle %q", i, pair[0])
			}
			tolerance, err := strconv.ParseFloat(pair[1], 64)
			if err != nil {
				return fmt.Errorf("heading %d: bad tolerance %q", i, pair[1])
			}
			waypoints[i].Heading = angle
			waypoints[i].HeadingAccuracy = tolerance
		}
	}

	if raw := c.Query("separators"); raw != "" {
		flags := strings.Split(raw, ";")
		if len(flags) != len(waypoints) {
			return fmt.Errorf("separators lists %d entries for %d points", len(flags), len(waypoints))
		}
		for i, f := range flags {
			v, err := strconv.ParseBool(f)
			if err != nil {
				return fmt.Errorf("separator %d: %q is not a boolean", i, f)
			}
			waypoints[i].SeparatesLegs = v
		}
	}

	return nil
}

// parseIndices parses ;-separated waypoint indices and validates the range.
func parseIndices(raw string, count int) ([]int, error) {
	parts := strings.Split(raw, ";")
	indices := make([]int, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("waypoints: %q is not an index", part)
		}
		if v < 0 || v >= count {
			return nil, fmt.Errorf("waypoints: index %d out of range for %d points", v, count)
		}
		indices = append(indices, v)
	}
	return indices, nil
}

func shapeFormat(raw string) (waykit.ShapeFormat, error) {
	switch raw {
	case "", "polyline":
		return waykit.ShapeFormatPolyline, nil
	case "polyline6":
		return waykit.ShapeFormatPolyline6, nil
	case "geojson":
		return waykit.ShapeFormatGeoJSON, nil
	}
	return "", fmt.Errorf("geometries must be polyline, polyline6, or geojson")
}

func shapeResolution(raw string) (waykit.RouteShapeResolution, error) {
	switch raw {
	case "", "simplified":
		return waykit.ShapeResolutionLow, nil
	case "false":
		return waykit.ShapeResolutionNone, nil
	case "full":
		return waykit.ShapeResolutionFull, nil
	}
	return "", fmt.Errorf("overview must be false, simplified, or full")
}
