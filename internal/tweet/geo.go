package tweet

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sanity-io/pathdoc"
)

// LatLon is a position in decimal degrees.
type LatLon struct {
	Lat float64
	Lon float64
}

// DefaultLocation is used when a record carries no coordinates.
var DefaultLocation = LatLon{Lat: -34.918, Lon: 138.604}

func (ll LatLon) String() string {
	return strconv.FormatFloat(ll.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(ll.Lon, 'f', -1, 64)
}

// point builds a GeoJSON-like Point with the coordinates in the given order.
func point(first, second float64) (*pathdoc.Object, error) {
	coords, err := pathdoc.FloatNumber(first)
	if err != nil {
		return nil, err
	}
	coords2, err := pathdoc.FloatNumber(second)
	if err != nil {
		return nil, err
	}
	obj := pathdoc.NewObject()
	obj.Set("coordinates", []interface{}{coords, coords2})
	obj.Set("type", "Point")
	return obj, nil
}

// SetGeo writes the position twice, in the two conventions posts carry:
// geo as [lat, lon] and coordinates as [lon, lat].
func SetGeo(doc *pathdoc.Document, ll LatLon) error {
	if err := ll.validate(); err != nil {
		return err
	}
	geo, err := point(ll.Lat, ll.Lon)
	if err != nil {
		return err
	}
	coords, err := point(ll.Lon, ll.Lat)
	if err != nil {
		return err
	}
	if err := doc.Set(PathGeo, geo); err != nil {
		return err
	}
	return doc.Set(PathCoords, coords)
}

// ClearGeo sets geo and coordinates to null.
func ClearGeo(doc *pathdoc.Document) error {
	if err := doc.Set(PathGeo, nil); err != nil {
		return err
	}
	return doc.Set(PathCoords, nil)
}

// LookupGeo reads the position from coordinates.coordinates, where the
// longitude comes first. It returns fallback and false when the record has
// no usable coordinates.
func LookupGeo(doc *pathdoc.Document, fallback LatLon) (LatLon, bool) {
	lon, okLon := number(doc, PathCoords+".coordinates.[0]")
	lat, okLat := number(doc, PathCoords+".coordinates.[1]")
	if !okLon || !okLat {
		return fallback, false
	}
	return LatLon{Lat: lat, Lon: lon}, true
}

func number(doc *pathdoc.Document, path string) (float64, bool) {
	value, err := doc.Lookup(path)
	if err != nil {
		return 0, false
	}
	n, ok := value.(pathdoc.Number)
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	return f, err == nil
}

// ParseError reports invalid coordinate text. Offset is the byte offset of
// the offending part, or -1.
type ParseError struct {
	Text   string
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Text, e.Reason)
}

// ParseLatLon parses "lat,lon" with latitude in [-90, 90] and longitude in
// [-180, 180].
func ParseLatLon(text string) (LatLon, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 2 {
		offset := -1
		if len(parts) > 2 {
			offset = len(parts[0]) + 1 + len(parts[1])
		}
		return LatLon{}, &ParseError{Text: text, Offset: offset, Reason: "wrong number of commas"}
	}

	lat, err := ParseBounded(parts[0], -90, 90)
	if err != nil {
		return LatLon{}, &ParseError{Text: text, Offset: 0, Reason: "latitude: " + err.(*ParseError).Reason}
	}

	lonOffset := len(parts[0]) + 1
	lon, err := ParseBounded(parts[1], -180, 180)
	if err != nil {
		return LatLon{}, &ParseError{Text: text, Offset: lonOffset, Reason: "longitude: " + err.(*ParseError).Reason}
	}

	return LatLon{Lat: lat, Lon: lon}, nil
}

// ParseBounded parses a decimal number and checks it lies in [lower, upper].
// It panics if lower > upper.
func ParseBounded(text string, lower, upper float64) (float64, error) {
	if lower > upper {
		panic(fmt.Sprintf("lower bound %v must not exceed upper bound %v", lower, upper))
	}

	d, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(d) {
		return 0, &ParseError{Text: text, Offset: 0, Reason: "not a valid number"}
	}
	if d < lower || d > upper {
		return 0, &ParseError{Text: text, Offset: 0, Reason: fmt.Sprintf("must be in [%v,%v]", lower, upper)}
	}

	return d, nil
}

func (ll LatLon) validate() error {
	if !(ll.Lat >= -90 && ll.Lat <= 90 && ll.Lon >= -180 && ll.Lon <= 180) {
		return &ParseError{Text: ll.String(), Offset: -1, Reason: "position out of range"}
	}
	return nil
}
