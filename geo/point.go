// Package geo holds the geographic primitives shared by waykit requests
// and responses: WGS84 points, bounding boxes, and the polyline geometry
// codec used by directions-style APIs.
package geo

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Point is a WGS84 coordinate.
type Point struct {
	Latitude  float64
	Longitude float64
}

// String renders the point as "lon,lat", the order used in request paths
// and query parameters.
func (p Point) String() string {
	return formatCoordinate(p.Longitude) + "," + formatCoordinate(p.Latitude)
}

// MarshalJSON encodes the point as a [lon, lat] pair.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Longitude, p.Latitude})
}

// UnmarshalJSON decodes a [lon, lat] pair. Trailing elements, typically an
// altitude, are ignored.
func (p *Point) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) < 2 {
		return fmt.Errorf("coordinate pair has %d elements, need at least 2", len(pair))
	}
	p.Longitude = pair[0]
	p.Latitude = pair[1]
	return nil
}

// formatCoordinate renders a coordinate with the fewest digits that still
// round-trip, and never in exponent notation.
func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
