package waykit_test

import (
	"reflect"
	"testing"

	"github.com/samirrijal/waykit"
	"github.com/samirrijal/waykit/geo"
)

var traceCoords = []geo.Point{
	{Latitude: 52.5163, Longitude: 13.3777},
	{Latitude: 52.52, Longitude: 13.39},
	{Latitude: 52.525, Longitude: 13.405},
	{Latitude: 52.53, Longitude: 13.42},
	{Latitude: 52.535, Longitude: 13.435},
}

// testWaypoints returns n default waypoints along a short Berlin trace.
func testWaypoints(t *testing.T, n int) []waykit.Waypoint {
	t.Helper()
	if n > len(traceCoords) {
		t.Fatalf("only %d trace coordinates available", len(traceCoords))
	}
	waypoints := make([]waykit.Waypoint, n)
	for i := range waypoints {
		waypoints[i] = waykit.NewWaypoint(traceCoords[i])
	}
	return waypoints
}

func queryValue(items []waykit.QueryItem, name string) (string, bool) {
	for _, item := range items {
		if item.Name == name {
			return item.Value, true
		}
	}
	return "", false
}

func queryCount(items []waykit.QueryItem, name string) int {
	count := 0
	for _, item := range items {
		if item.Name == name {
			count++
		}
	}
	return count
}

func TestRouteOptionsDefaultQueryItems(t *testing.T) {
	opts := waykit.NewRouteOptions(testWaypoints(t, 2), waykit.ProfileDriving)

	want := []waykit.QueryItem{
		{Name: "geometries", Value: "polyline"},
		{Name: "overview", Value: "simplified"},
		{Name: "steps", Value: "false"},
		{Name: "alternatives", Value: "false"},
		{Name: "continue_straight", Value: "true"},
	}
	if got := opts.URLQueryItems(); !reflect.DeepEqual(got, want) {
		t.Errorf("URLQueryItems() = %v, want %v", got, want)
	}
}

func TestRouteOptionsQueryItemsWithKnobs(t *testing.T) {
	opts := waykit.NewRouteOptions(testWaypoints(t, 2), waykit.ProfileCycling)
	opts.IncludesSteps = true
	opts.ShapeFormat = waykit.ShapeFormatPolyline6
	opts.RouteShapeResolution = waykit.ShapeResolutionFull
	opts.Locale = "es-ES"
	opts.IncludesAlternativeRoutes = true
	opts.AllowsUTurnAtWaypoint = true

	want := []waykit.QueryItem{
		{Name: "geometries", Value: "polyline6"},
		{Name: "overview", Value: "full"},
		{Name: "steps", Value: "true"},
		{Name: "language", Value: "es-ES"},
		{Name: "alternatives", Value: "true"},
		{Name: "continue_straight", Value: "false"},
	}
	if got := opts.URLQueryItems(); !reflect.DeepEqual(got, want) {
		t.Errorf("URLQueryItems() = %v, want %v", got, want)
	}
}

func TestLegSeparatorsForcesEndpoints(t *testing.T) {
	waypoints := testWaypoints(t, 4)
	waypoints[0].SeparatesLegs = false
	waypoints[1].SeparatesLegs = false
	waypoints[3].SeparatesLegs = false
	opts := waykit.NewRouteOptions(waypoints, waykit.ProfileDriving)

	separators := opts.LegSeparators()
	if len(separators) != 3 {
		t.Fatalf("got %d separators, want 3", len(separators))
	}
	// First and last stay regardless of their own flag; of the interior
	// waypoints only the separating one remains.
	if separators[0].Coordinate != waypoints[0].Coordinate ||
		separators[1].Coordinate != waypoints[2].Coordinate ||
		separators[2].Coordinate != waypoints[3].Coordinate {
		t.Errorf("separators = %v", separators)
	}
}

func TestLegSeparatorsSingleWaypoint(t *testing.T) {
	opts := waykit.NewRouteOptions(testWaypoints(t, 1), waykit.ProfileDriving)
	separators := opts.LegSeparators()
	if len(separators) != 1 {
		t.Fatalf("got %d separators for one waypoint, want 1", len(separators))
	}
}

func TestQueryItemsBearings(t *testing.T) {
	waypoints := testWaypoints(t, 3)
	waypoints[0].Heading = 90
	waypoints[0].HeadingAccuracy = 45
	waypoints[2].Heading = 450 // wraps to 90
	waypoints[2].HeadingAccuracy = 270 // clamps to 180
	opts := waykit.NewRouteOptions(waypoints, waykit.ProfileDriving)

	got, ok := queryValue(opts.URLQueryItems(), "bearings")
	if !ok {
		t.Fatal("bearings parameter missing")
	}
	if got != "90,45;;90,180" {
		t.Errorf("bearings = %q, want %q", got, "90,45;;90,180")
	}
}

func TestQueryItemsBearingsHeadingWithoutAccuracy(t *testing.T) {
	waypoints := testWaypoints(t, 2)
	waypoints[0].Heading = 90 // accuracy stays unconstrained
	opts := waykit.NewRouteOptions(waypoints, waykit.ProfileDriving)

	got, ok := queryValue(opts.URLQueryItems(), "bearings")
	if !ok {
		t.Fatal("bearings parameter missing")
	}
	// A heading without a tolerance serializes as an empty slot.
	if got != ";" {
		t.Errorf("bearings = %q, want %q", got, ";")
	}
}

func TestQueryItemsNoBearingsWhenUnconstrained(t *testing.T) {
	opts := waykit.NewRouteOptions(testWaypoints(t, 3), waykit.ProfileDriving)
	if _, ok := queryValue(opts.URLQueryItems(), "bearings"); ok {
		t.Error("bearings parameter present for unconstrained waypoints")
	}
}

func TestQueryItemsRadiuses(t *testing.T) {
	waypoints := testWaypoints(t, 3)
	waypoints[1].CoordinateAccuracy = 20.5
	waypoints[2].CoordinateAccuracy = 0
	opts := waykit.NewRouteOptions(waypoints, waykit.ProfileDriving)

	got, ok := queryValue(opts.URLQueryItems(), "radiuses")
	if !ok {
		t.Fatal("radiuses parameter missing")
	}
	if got != "unlimited;20.5;0" {
		t.Errorf("radiuses = %q, want %q", got, "unlimited;20.5;0")
	}
}

func TestQueryItemsApproaches(t *testing.T) {
	waypoints := testWaypoints(t, 3)
	waypoints[1].AllowsArrivingOnOppositeSide = false
	opts := waykit.NewRouteOptions(waypoints, waykit.ProfileDriving)

	got, ok := queryValue(opts.URLQueryItems(), "approaches")
	if !ok {
		t.Fatal("approaches parameter missing")
	}
	if got != "unrestricted;curb;unrestricted" {
		t.Errorf("approaches = %q, want %q", got, "unrestricted;curb;unrestricted")
	}
}

func TestQueryItemsWaypointNamesAndSeparators(t *testing.T) {
	waypoints := testWaypoints(t, 4)
	for i, name := range []string{"Mitte", "Hackescher Markt", "Alexanderplatz", "Friedrichshain"} {
		waypoints[i].Name = name
	}
	waypoints[1].SeparatesLegs = false
	opts := waykit.NewRouteOptions(waypoints, waykit.ProfileDriving)

	want := []waykit.QueryItem{
		{Name: "geometries", Value: "polyline"},
		{Name: "overview", Value: "simplified"},
		{Name: "steps", Value: "false"},
		{Name: "waypoint_names", Value: "Mitte;Alexanderplatz;Friedrichshain"},
		{Name: "waypoints", Value: "0;2;3"},
		{Name: "alternatives", Value: "false"},
		{Name: "continue_straight", Value: "true"},
	}
	if got := opts.URLQueryItems(); !reflect.DeepEqual(got, want) {
		t.Errorf("URLQueryItems() = %v, want %v", got, want)
	}
}

func TestQueryItemsNoSeparatorsWhenAllSeparate(t *testing.T) {
	opts := waykit.NewRouteOptions(testWaypoints(t, 4), waykit.ProfileDriving)
	if _, ok := queryValue(opts.URLQueryItems(), "waypoints"); ok {
		t.Error("waypoints parameter present although every waypoint separates legs")
	}
}

func TestAbridgedPath(t *testing.T) {
	route := waykit.NewRouteOptions(testWaypoints(t, 2), waykit.ProfileDriving)
	if got := route.AbridgedPath(); got != "directions/v5/driving" {
		t.Errorf("route AbridgedPath() = %q", got)
	}

	custom := waykit.NewRouteOptions(testWaypoints(t, 2), waykit.Profile("mapbox/driving-traffic"))
	if got := custom.AbridgedPath(); got != "directions/v5/mapbox/driving-traffic" {
		t.Errorf("custom profile AbridgedPath() = %q", got)
	}
}
