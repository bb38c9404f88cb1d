package waykit_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/samirrijal/waykit"
)

func TestMatchOptionsAbridgedPath(t *testing.T) {
	opts := waykit.NewMatchOptions(testWaypoints(t, 2), waykit.ProfileWalking)
	if got := opts.AbridgedPath(); got != "matching/v5/walking" {
		t.Errorf("AbridgedPath() = %q, want matching/v5/walking", got)
	}
}

func TestMatchOptionsQueryItemsTidy(t *testing.T) {
	opts := waykit.NewMatchOptions(testWaypoints(t, 2), waykit.ProfileDriving)

	items := opts.URLQueryItems()
	if got, _ := queryValue(items, "tidy"); got != "false" {
		t.Errorf("tidy = %q, want false", got)
	}

	opts.ResamplesTraces = true
	items = opts.URLQueryItems()
	if got, _ := queryValue(items, "tidy"); got != "true" {
		t.Errorf("tidy = %q, want true", got)
	}
	if n := queryCount(items, "tidy"); n != 1 {
		t.Errorf("tidy appears %d times, want once", n)
	}
}

func TestMatchOptionsDefaultQueryItems(t *testing.T) {
	opts := waykit.NewMatchOptions(testWaypoints(t, 3), waykit.ProfileDriving)

	want := []waykit.QueryItem{
		{Name: "geometries", Value: "polyline"},
		{Name: "overview", Value: "simplified"},
		{Name: "steps", Value: "false"},
		{Name: "tidy", Value: "false"},
	}
	if got := opts.URLQueryItems(); !reflect.DeepEqual(got, want) {
		t.Errorf("URLQueryItems() = %v, want %v", got, want)
	}
}

func TestMatchOptionsLegacyIndicesVerbatim(t *testing.T) {
	opts := waykit.NewMatchOptions(testWaypoints(t, 5), waykit.ProfileDriving)
	opts.WaypointIndices = []int{0, 2, 4}

	items := opts.URLQueryItems()
	got, ok := queryValue(items, "waypoints")
	if !ok {
		t.Fatal("waypoints parameter missing")
	}
	if got != "0;2;4" {
		t.Errorf("waypoints = %q, want 0;2;4", got)
	}
	// The explicit set is emitted after the shared parameters, and tidy
	// stays ahead of it.
	if items[len(items)-1].Name != "waypoints" {
		t.Errorf("last item = %v, want the waypoints parameter", items[len(items)-1])
	}
	if items[len(items)-2].Name != "tidy" {
		t.Errorf("second to last item = %v, want tidy", items[len(items)-2])
	}
}

func TestMatchOptionsLegacyIndicesWinOverFlags(t *testing.T) {
	waypoints := testWaypoints(t, 5)
	waypoints[1].SeparatesLegs = false
	waypoints[3].SeparatesLegs = false
	opts := waykit.NewMatchOptions(waypoints, waykit.ProfileDriving)
	opts.WaypointIndices = []int{0, 3, 4}

	items := opts.URLQueryItems()
	if n := queryCount(items, "waypoints"); n != 1 {
		t.Fatalf("waypoints appears %d times, want exactly once", n)
	}
	if got, _ := queryValue(items, "waypoints"); got != "0;3;4" {
		t.Errorf("waypoints = %q, want the explicit 0;3;4", got)
	}
}

func TestMatchOptionsFlagDerivedSeparators(t *testing.T) {
	waypoints := testWaypoints(t, 4)
	waypoints[2].SeparatesLegs = false
	opts := waykit.NewMatchOptions(waypoints, waykit.ProfileDriving)

	items := opts.URLQueryItems()
	if got, _ := queryValue(items, "waypoints"); got != "0;1;3" {
		t.Errorf("waypoints = %q, want flag-derived 0;1;3", got)
	}
	// Flag-derived separators keep their base position, before tidy.
	if items[len(items)-1].Name != "tidy" {
		t.Errorf("last item = %v, want tidy", items[len(items)-1])
	}
}

func TestMatchOptionsLegSeparators(t *testing.T) {
	waypoints := testWaypoints(t, 5)
	waypoints[1].SeparatesLegs = false
	opts := waykit.NewMatchOptions(waypoints, waykit.ProfileDriving)

	// Flag rule first: 0, 2, 3, 4.
	separators := opts.LegSeparators()
	if len(separators) != 4 {
		t.Fatalf("got %d separators, want 4", len(separators))
	}

	// The deprecated index set overrides the flags entirely.
	opts.WaypointIndices = []int{0, 1, 4}
	separators = opts.LegSeparators()
	if len(separators) != 3 {
		t.Fatalf("got %d separators with explicit indices, want 3", len(separators))
	}
	if separators[1].Coordinate != waypoints[1].Coordinate {
		t.Errorf("separators[1] = %v, want waypoint 1 despite its flag", separators[1])
	}
}

func TestMatchOptionsEqual(t *testing.T) {
	a := waykit.NewMatchOptions(testWaypoints(t, 3), waykit.ProfileDriving)
	b := waykit.NewMatchOptions(testWaypoints(t, 3), waykit.ProfileDriving)
	if !a.Equal(b) {
		t.Error("identical option sets should be equal")
	}

	// Heading adjustments do not affect equality.
	b.Waypoints[0].Heading = 180
	b.Waypoints[0].HeadingAccuracy = 20
	if !a.Equal(b) {
		t.Error("heading fields must not participate in equality")
	}

	// Neither does the deprecated index set.
	b.WaypointIndices = []int{0, 2}
	if !a.Equal(b) {
		t.Error("waypoint indices must not participate in equality")
	}

	b = waykit.NewMatchOptions(testWaypoints(t, 3), waykit.ProfileDriving)
	b.ResamplesTraces = true
	if a.Equal(b) {
		t.Error("differing resampling must break equality")
	}

	b = waykit.NewMatchOptions(testWaypoints(t, 3), waykit.ProfileCycling)
	if a.Equal(b) {
		t.Error("differing profile must break equality")
	}

	b = waykit.NewMatchOptions(testWaypoints(t, 2), waykit.ProfileDriving)
	if a.Equal(b) {
		t.Error("differing waypoint count must break equality")
	}

	b = waykit.NewMatchOptions(testWaypoints(t, 3), waykit.ProfileDriving)
	b.Waypoints[1].Name = "Hackescher Markt"
	if a.Equal(b) {
		t.Error("differing waypoint name must break equality")
	}
}

func TestMatchOptionsDocumentRoundTrip(t *testing.T) {
	opts := waykit.NewMatchOptions(testWaypoints(t, 3), waykit.ProfileDriving)
	opts.ResamplesTraces = true
	opts.Waypoints[0].Name = "start"

	data, err := json.Marshal(opts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded waykit.MatchOptions
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.Equal(opts) {
		t.Errorf("round-trip = %+v, want %+v", decoded, opts)
	}
	if !decoded.ResamplesTraces {
		t.Error("tidy flag lost in round-trip")
	}
	if decoded.Waypoints[0].Name != "start" {
		t.Errorf("waypoint name = %q, want start", decoded.Waypoints[0].Name)
	}
}

func TestMatchOptionsDocumentRequiredKeys(t *testing.T) {
	var opts waykit.MatchOptions

	err := json.Unmarshal([]byte(`{"coordinates":[[13.3777,52.5163]]}`), &opts)
	var missing *waykit.MissingFieldError
	if !errors.As(err, &missing) || missing.Field != "profile" {
		t.Errorf("missing profile: error = %v", err)
	}

	err = json.Unmarshal([]byte(`{"profile":"driving"}`), &opts)
	if !errors.As(err, &missing) || missing.Field != "coordinates" {
		t.Errorf("missing coordinates: error = %v", err)
	}
}

func TestMatchOptionsDocumentTidyRemap(t *testing.T) {
	payload := `{
		"profile": "driving",
		"coordinates": [[13.3777,52.5163],[13.39,52.52]],
		"tidy": true
	}`
	var opts waykit.MatchOptions
	if err := json.Unmarshal([]byte(payload), &opts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !opts.ResamplesTraces {
		t.Error("tidy key did not map onto ResamplesTraces")
	}
	if len(opts.Waypoints) != 2 {
		t.Fatalf("decoded %d waypoints, want 2", len(opts.Waypoints))
	}
	if opts.Waypoints[0].Coordinate != traceCoords[0] {
		t.Errorf("waypoint 0 = %v, want %v", opts.Waypoints[0].Coordinate, traceCoords[0])
	}
}
