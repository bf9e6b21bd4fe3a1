package entity

import (
	"regexp"
	"strings"
)

// Format identifies how an input line was read.
type Format string

const (
	FormatLatLon  Format = "LatLon"
	FormatGeohash Format = "Geohash"
	FormatWKT     Format = "WKT"
	FormatGeoJSON Format = "GeoJSON"
)

var (
	// latitude first, longitude second
	latLonRe = regexp.MustCompile(`^-?\d+(\.\d+)?\s*,\s*-?\d+(\.\d+)?$`)

	// base32 geohash alphabet: digits plus lowercase letters minus a, i, l, o
	geohashRe = regexp.MustCompile(`^[0-9b-hjkmnp-z]+$`)

	wktRe = regexp.MustCompile(`^(?i:POINT|LINESTRING|POLYGON|MULTIPOINT|MULTILINESTRING|MULTIPOLYGON|GEOMETRYCOLLECTION)\b`)
)

// Detect reports the format of a single trimmed input line. Detection order
// matters: a bare token like "7" is a geohash, never a coordinate, and a
// coordinate pair always needs its comma.
func Detect(line string) (Format, bool) {
	switch {
	case latLonRe.MatchString(line):
		return FormatLatLon, true
	case geohashRe.MatchString(line):
		return FormatGeohash, true
	case wktRe.MatchString(line):
		return FormatWKT, true
	case strings.HasPrefix(line, "{"):
		return FormatGeoJSON, true
	}
	return "", false
}
