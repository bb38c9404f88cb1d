package geo

import (
	"fmt"
	"math"
)

// DecodePolyline decodes a Google Polyline Algorithm string with five
// decimal places of precision (Polyline5), the default geometry encoding
// in directions responses.
func DecodePolyline(encoded string) ([]Point, error) {
	return decodePolyline(encoded, 1e5)
}

// DecodePolyline6 decodes a polyline string with six decimal places of
// precision (Polyline6).
func DecodePolyline6(encoded string) ([]Point, error) {
	return decodePolyline(encoded, 1e6)
}

func decodePolyline(encoded string, factor float64) ([]Point, error) {
	points := make([]Point, 0, len(encoded)/4+1)

	var lat, lon int
	index := 0
	for index < len(encoded) {
		dLat, next, err := decodeSigned(encoded, index)
		if err != nil {
			return nil, err
		}
		dLon, next, err := decodeSigned(encoded, next)
		if err != nil {
			return nil, err
		}
		index = next

		lat += dLat
		lon += dLon
		// Dividing by the exactly-representable factor rounds once, so
		// each coordinate is the float64 nearest its decimal value.
		points = append(points, Point{
			Latitude:  float64(lat) / factor,
			Longitude: float64(lon) / factor,
		})
	}

	return points, nil
}

// decodeSigned reads one zigzag-encoded value starting at index and
// returns it along with the index of the next value.
func decodeSigned(encoded string, index int) (int, int, error) {
	result, shift := 0, 0
	for {
		if index >= len(encoded) {
			return 0, 0, fmt.Errorf("polyline truncated at byte %d", index)
		}
		c := encoded[index]
		if c < 63 || c > 126 {
			return 0, 0, fmt.Errorf("invalid polyline character %q at byte %d", c, index)
		}
		index++

		b := int(c) - 63
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}
	return (result >> 1) ^ (-(result & 1)), index, nil
}

// EncodePolyline encodes points as a Polyline5 string.
func EncodePolyline(points []Point) string {
	return encodePolyline(points, 1e5)
}

// EncodePolyline6 encodes points as a Polyline6 string.
func EncodePolyline6(points []Point) string {
	return encodePolyline(points, 1e6)
}

func encodePolyline(points []Point, factor float64) string {
	out := make([]byte, 0, len(points)*6)

	var prevLat, prevLon int
	for _, p := range points {
		lat := int(math.Round(p.Latitude * factor))
		lon := int(math.Round(p.Longitude * factor))
		out = appendSigned(out, lat-prevLat)
		out = appendSigned(out, lon-prevLon)
		prevLat, prevLon = lat, lon
	}

	return string(out)
}

// appendSigned appends the zigzag encoding of value to dst.
func appendSigned(dst []byte, value int) []byte {
	s := value << 1
	if value < 0 {
		s = ^s
	}
	for s >= 0x20 {
		dst = append(dst, byte((0x20|(s&0x1f))+63))
		s >>= 5
	}
	return append(dst, byte(s+63))
}
