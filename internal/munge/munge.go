// Package munge coerces arbitrary JSON objects into GeoJSON Features.
//
// Three shapes are recognized, tried in order: a valid Feature (re-emitted
// normalized), an object carrying a "geometry" member (other members become
// properties), and an object carrying latitude/longitude members under common
// or lightly misspelled key names (becomes a Point Feature).
package munge

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrNoMapping means the object carried nothing recognizable as geography.
var ErrNoMapping = errors.New("no geographic mapping found")

var (
	latKeys = []string{"latitude", "lat"}
	lonKeys = []string{"longitude", "lon", "lng", "long"}
)

// maxKeyTypos is the Levenshtein budget for matching coordinate key names,
// so "lattitude" still counts as latitude.
const maxKeyTypos = 1

// ToFeature converts one JSON object line into a GeoJSON Feature.
func ToFeature(line string) (*geojson.Feature, error) {
	dec := json.NewDecoder(strings.NewReader(line))
	dec.UseNumber()

	var obj map[string]interface{}
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("munge: not a JSON object: %w", err)
	}

	if t, ok := obj["type"].(string); ok && t == "Feature" {
		f, err := geojson.UnmarshalFeature([]byte(line))
		if err != nil {
			return nil, fmt.Errorf("munge: invalid Feature: %w", err)
		}
		return f, nil
	}

	if rawGeom, ok := obj["geometry"].(map[string]interface{}); ok {
		return geometryMemberFeature(obj, rawGeom)
	}

	if f, ok := coordinateFeature(obj); ok {
		return f, nil
	}

	return nil, fmt.Errorf("%w in %s", ErrNoMapping, line)
}

func geometryMemberFeature(obj, rawGeom map[string]interface{}) (*geojson.Feature, error) {
	buf, err := json.Marshal(rawGeom)
	if err != nil {
		return nil, fmt.Errorf("munge: re-encoding geometry member: %w", err)
	}
	geom, err := geojson.UnmarshalGeometry(buf)
	if err != nil {
		return nil, fmt.Errorf("munge: invalid geometry member: %w", err)
	}

	f := geojson.NewFeature(geom.Geometry())
	for k, v := range obj {
		if k == "geometry" {
			continue
		}
		f.Properties[k] = v
	}
	return f, nil
}

// coordinateFeature looks for latitude and longitude members among the
// object's keys. Only keys whose values parse as numbers are candidates.
func coordinateFeature(obj map[string]interface{}) (*geojson.Feature, bool) {
	numeric := make(map[string]float64)
	keys := make([]string, 0, len(obj))
	for k, v := range obj {
		if f, ok := coordValue(v); ok {
			numeric[k] = f
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	latKey, ok := matchKey(keys, latKeys, "")
	if !ok {
		return nil, false
	}
	lonKey, ok := matchKey(keys, lonKeys, latKey)
	if !ok {
		return nil, false
	}

	f := geojson.NewFeature(orb.Point{numeric[lonKey], numeric[latKey]})
	for k, v := range obj {
		if k == latKey || k == lonKey {
			continue
		}
		f.Properties[k] = v
	}
	return f, true
}

// matchKey picks the key closest to any of the candidate names, exact
// matches first, within the typo budget. taken is excluded so the latitude
// key cannot double as the longitude key.
func matchKey(keys, candidates []string, taken string) (string, bool) {
	best := ""
	bestScore := maxKeyTypos + 1
	for _, k := range keys {
		if k == taken {
			continue
		}
		lower := strings.ToLower(k)
		for _, c := range candidates {
			if score := levenshtein.ComputeDistance(lower, c); score < bestScore {
				best, bestScore = k, score
			}
		}
	}
	return best, bestScore <= maxKeyTypos
}

func coordValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}
