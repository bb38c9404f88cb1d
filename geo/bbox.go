package geo

// BoundingBox is a rectangular geographic area delimited by its southwest
// and northeast corners.
type BoundingBox struct {
	SouthWest Point
	NorthEast Point
}

// NewBoundingBox returns the box delimited by the given corners. The
// corners are stored as passed; nothing checks that southWest actually
// lies southwest of northEast.
func NewBoundingBox(southWest, northEast Point) BoundingBox {
	return BoundingBox{SouthWest: southWest, NorthEast: northEast}
}

// NewBoundingBoxFromCorners returns the box delimited by its northwest and
// southeast corners, recombined into the canonical southwest/northeast
// pair.
func NewBoundingBoxFromCorners(northWest, southEast Point) BoundingBox {
	return BoundingBox{
		SouthWest: Point{Latitude: southEast.Latitude, Longitude: northWest.Longitude},
		NorthEast: Point{Latitude: northWest.Latitude, Longitude: southEast.Longitude},
	}
}

// NewBoundingBoxFromPoints returns the smallest box containing every given
// point. It panics when given fewer than two points.
func NewBoundingBoxFromPoints(points []Point) BoundingBox {
	if len(points) < 2 {
		panic("geo: bounding box requires at least two points")
	}

	// Seed with inverted extrema so the first point improves every bound.
	minLat, maxLat := 90.0, -90.0
	minLon, maxLon := 180.0, -180.0
	for _, p := range points {
		if p.Latitude < minLat {
			minLat = p.Latitude
		}
		if p.Latitude > maxLat {
			maxLat = p.Latitude
		}
		if p.Longitude < minLon {
			minLon = p.Longitude
		}
		if p.Longitude > maxLon {
			maxLon = p.Longitude
		}
	}

	return BoundingBox{
		SouthWest: Point{Latitude: minLat, Longitude: minLon},
		NorthEast: Point{Latitude: maxLat, Longitude: maxLon},
	}
}

// Contains reports whether p lies within the box, edges included.
func (b BoundingBox) Contains(p Point) bool {
	return p.Latitude >= b.SouthWest.Latitude && p.Latitude <= b.NorthEast.Latitude &&
		p.Longitude >= b.SouthWest.Longitude && p.Longitude <= b.NorthEast.Longitude
}

// String renders the box as "swLon,swLat;neLon,neLat".
func (b BoundingBox) String() string {
	return b.SouthWest.String() + ";" + b.NorthEast.String()
}

// MarshalText implements encoding.TextMarshaler using the same form as
// String, so a box embedded in a JSON document appears as a single string.
func (b BoundingBox) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}
