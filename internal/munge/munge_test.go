package munge

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func TestToFeaturePassesThroughValidFeature(t *testing.T) {
	t.Parallel()

	line := `{"type":"Feature","id":9,"geometry":{"type":"Point","coordinates":[-118.3,34.1]},"properties":{"name":"hq"}}`
	f, err := ToFeature(line)
	require.NoError(t, err)
	require.Equal(t, orb.Point{-118.3, 34.1}, f.Geometry)
	require.Equal(t, "hq", f.Properties["name"])
	require.EqualValues(t, 9, f.ID)
}

func TestToFeatureRejectsInvalidFeature(t *testing.T) {
	t.Parallel()

	_, err := ToFeature(`{"type":"Feature","geometry":{"type":"Point"}}`)
	require.Error(t, err)
}

func TestToFeatureLiftsGeometryMember(t *testing.T) {
	t.Parallel()

	line := `{"geometry":{"type":"Point","coordinates":[-118.3,34.1]},"name":"hq","rank":2}`
	f, err := ToFeature(line)
	require.NoError(t, err)
	require.Equal(t, orb.Point{-118.3, 34.1}, f.Geometry)
	require.Equal(t, "hq", f.Properties["name"])
	require.Equal(t, json.Number("2"), f.Properties["rank"])
	require.NotContains(t, f.Properties, "geometry")
}

func TestToFeatureRejectsBadGeometryMember(t *testing.T) {
	t.Parallel()

	_, err := ToFeature(`{"geometry":{"type":"Nope"}}`)
	require.Error(t, err)
}

func TestToFeatureCoordinateKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
	}{
		{"exact", `{"lat":34.1,"lon":-118.3,"name":"LA"}`},
		{"long names", `{"latitude":34.1,"longitude":-118.3,"name":"LA"}`},
		{"lng variant", `{"lat":34.1,"lng":-118.3,"name":"LA"}`},
		{"typo tolerated", `{"lattitude":34.1,"longitude":-118.3,"name":"LA"}`},
		{"mixed case", `{"Lat":34.1,"LON":-118.3,"name":"LA"}`},
		{"numeric strings", `{"lat":"34.1","lon":"-118.3","name":"LA"}`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f, err := ToFeature(tc.line)
			require.NoError(t, err)
			require.Equal(t, orb.Point{-118.3, 34.1}, f.Geometry)
			require.Equal(t, "LA", f.Properties["name"])
		})
	}
}

func TestToFeatureConsumedKeysLeaveProperties(t *testing.T) {
	t.Parallel()

	f, err := ToFeature(`{"lat":34.1,"lon":-118.3,"elev":120}`)
	require.NoError(t, err)
	require.Equal(t, json.Number("120"), f.Properties["elev"])
	require.NotContains(t, f.Properties, "lat")
	require.NotContains(t, f.Properties, "lon")
}

func TestToFeaturePrefersExactKeyOverAlias(t *testing.T) {
	t.Parallel()

	// Both names qualify; the shorter exact match wins and the other stays
	// a plain property.
	f, err := ToFeature(`{"lat":1,"latitude":99,"lon":2}`)
	require.NoError(t, err)
	require.Equal(t, orb.Point{2, 1}, f.Geometry)
	require.Contains(t, f.Properties, "latitude")
}

func TestToFeatureIgnoresNonNumericCoordinateValues(t *testing.T) {
	t.Parallel()

	_, err := ToFeature(`{"lat":true,"lon":-118.3}`)
	require.ErrorIs(t, err, ErrNoMapping)
}

func TestToFeatureNoMapping(t *testing.T) {
	t.Parallel()

	_, err := ToFeature(`{"name":"no geography here"}`)
	require.ErrorIs(t, err, ErrNoMapping)
}

func TestToFeatureRejectsNonObjects(t *testing.T) {
	t.Parallel()

	for _, line := range []string{`[1,2]`, `"text"`, `{`, ``} {
		_, err := ToFeature(line)
		require.Error(t, err, "line %q", line)
	}
}
