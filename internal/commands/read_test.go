package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	t.Parallel()

	in := "34.1,-118.3\n" +
		"9q5\n" +
		"POINT (-118.3 34.1)\n" +
		"\n" +
		`{"type":"Point","coordinates":[-118.3,34.1]}` + "\n"

	env, out := testEnv(in)
	require.NoError(t, Read(context.Background(), env, nil))

	require.Equal(t, []string{
		"LatLon: 34.1,-118.3",
		"Geohash: 9q5",
		"WKT: POINT (-118.3 34.1)",
		`GeoJSON: {"type":"Point","coordinates":[-118.3,34.1]}`,
	}, outLines(out))
}

func TestReadBareNumberIsGeohash(t *testing.T) {
	t.Parallel()

	env, out := testEnv("7\n")
	require.NoError(t, Read(context.Background(), env, nil))
	require.Equal(t, []string{"Geohash: 7"}, outLines(out))
}

func TestReadRejectsArguments(t *testing.T) {
	t.Parallel()

	env, _ := testEnv("")
	var ue *UsageError
	require.ErrorAs(t, Read(context.Background(), env, []string{"x"}), &ue)
}
