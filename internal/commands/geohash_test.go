package commands

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geoq-cli/geoq/internal/geohash"
)

func TestGeohashPoint(t *testing.T) {
	t.Parallel()

	env, out := testEnv("57.64911,10.40744\n")
	require.NoError(t, Geohash(context.Background(), env, []string{"point", "11"}))
	require.Equal(t, []string{"u4pruydqqvj"}, outLines(out))
}

func TestGeohashPointRejectsNonPoints(t *testing.T) {
	t.Parallel()

	env, _ := testEnv("POLYGON ((0 0, 1 0, 1 1, 0 0))\n")
	err := Geohash(context.Background(), env, []string{"point", "4"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Point entities")
}

func TestGeohashLevelValidation(t *testing.T) {
	t.Parallel()

	var ue *UsageError
	for _, level := range []string{"0", "13", "-1", "four", ""} {
		env, _ := testEnv("")
		err := Geohash(context.Background(), env, []string{"point", level})
		require.ErrorAs(t, err, &ue, "level %q", level)
	}
}

func TestGeohashCovering(t *testing.T) {
	t.Parallel()

	env, out := testEnv("POLYGON ((-1 -1, 1 -1, 1 1, -1 1, -1 -1))\n")
	require.NoError(t, Geohash(context.Background(), env, []string{"covering", "1"}))

	// The four level-1 cells meeting at the origin, in alphabet order.
	require.Equal(t, []string{"7", "e", "k", "s"}, outLines(out))
}

func TestGeohashCoveringOriginal(t *testing.T) {
	t.Parallel()

	env, out := testEnv("POLYGON ((-1 -1, 1 -1, 1 1, -1 1, -1 -1))\n")
	require.NoError(t, Geohash(context.Background(), env, []string{"covering", "-o", "1"}))

	require.Equal(t, []string{
		"POLYGON ((-1 -1, 1 -1, 1 1, -1 1, -1 -1))",
		"7", "e", "k", "s",
	}, outLines(out))
}

func TestGeohashCoveringRespectsCap(t *testing.T) {
	t.Parallel()

	env, _ := testEnv("POLYGON ((-10 -10, 10 -10, 10 10, -10 10, -10 -10))\n")
	env.Config.Geohash.MaxCovering = 3

	err := Geohash(context.Background(), env, []string{"covering", "6"})
	require.ErrorIs(t, err, geohash.ErrCoveringTooLarge)
}

func TestGeohashChildren(t *testing.T) {
	t.Parallel()

	env, out := testEnv("9q5\n")
	require.NoError(t, Geohash(context.Background(), env, []string{"children"}))

	lines := outLines(out)
	require.Len(t, lines, 32)
	for i, c := range geohash.Base32Alphabet {
		require.Equal(t, "9q5"+string(c), lines[i])
	}
}

func TestGeohashChildrenRejectsNonGeohash(t *testing.T) {
	t.Parallel()

	env, _ := testEnv("34.1,-118.3\n")
	err := Geohash(context.Background(), env, []string{"children"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "geohash entities")
}

func TestGeohashNeighbors(t *testing.T) {
	t.Parallel()

	env, out := testEnv("9q5\n")
	require.NoError(t, Geohash(context.Background(), env, []string{"neighbors"}))

	lines := outLines(out)
	require.Len(t, lines, 9)
	require.Equal(t, "9q5", lines[0], "the hash itself comes first")
	for _, l := range lines {
		require.Len(t, l, 3)
	}
}

func TestGeohashNeighborsExclude(t *testing.T) {
	t.Parallel()

	env, out := testEnv("9q5\n")
	require.NoError(t, Geohash(context.Background(), env, []string{"neighbors", "-e"}))

	lines := outLines(out)
	require.Len(t, lines, 8)
	require.NotContains(t, lines, "9q5")
}

func TestGeohashRoots(t *testing.T) {
	t.Parallel()

	env, out := testEnv("")
	require.NoError(t, Geohash(context.Background(), env, []string{"roots"}))

	lines := outLines(out)
	require.Len(t, lines, 32)
	require.Equal(t, "0", lines[0])
	require.Equal(t, "z", lines[31])
}

func TestGeohashEncodeLong(t *testing.T) {
	t.Parallel()

	v := uint64(1702789509802100)
	env, out := testEnv(strconv.FormatUint(v, 10) + "\n\n")
	require.NoError(t, Geohash(context.Background(), env, []string{"encode-long"}))

	lines := outLines(out)
	require.Len(t, lines, 1, "blank lines are skipped")
	require.Equal(t, geohash.EncodeLong(v), lines[0])
	require.Len(t, lines[0], 12)
}

func TestGeohashEncodeLongRejectsGarbage(t *testing.T) {
	t.Parallel()

	env, _ := testEnv("pizza\n")
	err := Geohash(context.Background(), env, []string{"encode-long"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "pizza")
}

func TestGeohashUnknownSubcommand(t *testing.T) {
	t.Parallel()

	env, _ := testEnv("")
	var ue *UsageError
	require.ErrorAs(t, Geohash(context.Background(), env, []string{"bogus"}), &ue)
}
