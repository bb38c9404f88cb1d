package waykit_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/samirrijal/waykit"
	"github.com/samirrijal/waykit/geo"
)

var bilbao = geo.Point{Latitude: 43.263, Longitude: -2.935}

func TestNewWaypointDefaults(t *testing.T) {
	w := waykit.NewWaypoint(bilbao)

	if w.Coordinate != bilbao {
		t.Errorf("coordinate = %v, want %v", w.Coordinate, bilbao)
	}
	if w.CoordinateAccuracy != -1 || w.Heading != -1 || w.HeadingAccuracy != -1 {
		t.Errorf("sentinels = %v/%v/%v, want -1/-1/-1",
			w.CoordinateAccuracy, w.Heading, w.HeadingAccuracy)
	}
	if !w.AllowsArrivingOnOppositeSide {
		t.Error("AllowsArrivingOnOppositeSide should default to true")
	}
	if !w.SeparatesLegs {
		t.Error("SeparatesLegs should default to true")
	}
}

func TestNewWaypointFromFix(t *testing.T) {
	cases := []struct {
		name        string
		fix         waykit.LocationFix
		wantHeading float64
	}{
		{
			"true heading preferred",
			waykit.LocationFix{Coordinate: bilbao, HorizontalAccuracy: 5, TrueHeading: 90, MagneticHeading: 85},
			90,
		},
		{
			"magnetic fallback",
			waykit.LocationFix{Coordinate: bilbao, HorizontalAccuracy: 5, TrueHeading: -1, MagneticHeading: 85},
			85,
		},
		{
			"no usable heading",
			waykit.LocationFix{Coordinate: bilbao, HorizontalAccuracy: 5, TrueHeading: -1, MagneticHeading: -1},
			-1,
		},
	}
	for _, tc := range cases {
		w := waykit.NewWaypointFromFix(tc.fix)
		if w.Heading != tc.wantHeading {
			t.Errorf("%s: heading = %v, want %v", tc.name, w.Heading, tc.wantHeading)
		}
		if w.CoordinateAccuracy != tc.fix.HorizontalAccuracy {
			t.Errorf("%s: accuracy = %v, want %v", tc.name, w.CoordinateAccuracy, tc.fix.HorizontalAccuracy)
		}
	}
}

func TestWaypointEqual(t *testing.T) {
	base := waykit.NewWaypoint(bilbao)
	base.Name = "Abando"
	base.CoordinateAccuracy = 10

	same := base
	same.Heading = 270
	same.HeadingAccuracy = 45
	same.AllowsArrivingOnOppositeSide = false
	same.SeparatesLegs = false
	if !base.Equal(same) {
		t.Error("waypoints differing only in heading and flags should be equal")
	}

	renamed := base
	renamed.Name = "Casco Viejo"
	if base.Equal(renamed) {
		t.Error("waypoints with different names should not be equal")
	}

	moved := base
	moved.Coordinate = geo.Point{Latitude: 43.264, Longitude: -2.935}
	if base.Equal(moved) {
		t.Error("waypoints at different coordinates should not be equal")
	}

	lessAccurate := base
	lessAccurate.CoordinateAccuracy = 50
	if base.Equal(lessAccurate) {
		t.Error("waypoints with different accuracies should not be equal")
	}
}

func TestWaypointUnmarshal(t *testing.T) {
	var w waykit.Waypoint
	payload := `{"location":[-2.935,43.263],"name":"Abando","coordinateAccuracy":12.5}`
	if err := json.Unmarshal([]byte(payload), &w); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if w.Coordinate != bilbao {
		t.Errorf("coordinate = %v, want %v", w.Coordinate, bilbao)
	}
	if w.Name != "Abando" {
		t.Errorf("name = %q, want Abando", w.Name)
	}
	if w.CoordinateAccuracy != 12.5 {
		t.Errorf("accuracy = %v, want 12.5", w.CoordinateAccuracy)
	}
	// Everything the document does not carry keeps its default.
	if w.Heading != -1 || w.HeadingAccuracy != -1 {
		t.Errorf("heading defaults = %v/%v, want -1/-1", w.Heading, w.HeadingAccuracy)
	}
	if !w.SeparatesLegs {
		t.Error("decoded waypoint should separate legs by default")
	}
}

func TestWaypointUnmarshalOptionalKeys(t *testing.T) {
	var w waykit.Waypoint
	if err := json.Unmarshal([]byte(`{"location":[-2.935,43.263]}`), &w); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if w.Name != "" {
		t.Errorf("name = %q, want empty", w.Name)
	}
	if w.CoordinateAccuracy != -1 {
		t.Errorf("accuracy = %v, want -1", w.CoordinateAccuracy)
	}
}

func TestWaypointUnmarshalMissingLocation(t *testing.T) {
	var w waykit.Waypoint
	err := json.Unmarshal([]byte(`{"name":"Abando"}`), &w)
	if err == nil {
		t.Fatal("expected error for document without location")
	}
	var missing *waykit.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %T, want *MissingFieldError", err)
	}
	if missing.Field != "location" {
		t.Errorf("missing field = %q, want location", missing.Field)
	}
}

func TestWaypointMarshal(t *testing.T) {
	w := waykit.NewWaypoint(bilbao)
	data, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// Unconstrained accuracy and the empty name stay off the wire.
	const want = `{"location":[-2.935,43.263]}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}

	w.Name = "Abando"
	w.CoordinateAccuracy = 12.5
	data, err = json.Marshal(w)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	const wantFull = `{"location":[-2.935,43.263],"coordinateAccuracy":12.5,"name":"Abando"}`
	if string(data) != wantFull {
		t.Errorf("marshal = %s, want %s", data, wantFull)
	}
}
