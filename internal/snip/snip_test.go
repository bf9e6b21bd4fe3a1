package snip

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snips.db")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestSaveShowRoundTrip(t *testing.T) {
	t.Parallel()

	store, _ := openTestStore(t)
	ctx := context.Background()

	body := `{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]},"properties":{}}` + "\n"
	saved, err := store.Save(ctx, "parks", body, 1)
	require.NoError(t, err)
	require.Equal(t, "parks", saved.Name)
	require.Equal(t, 1, saved.Count)
	_, err = uuid.Parse(saved.ID)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().UTC(), saved.CreatedAt, time.Minute)

	got, err := store.Show(ctx, "parks")
	require.NoError(t, err)
	require.Equal(t, body, got.Body)
	require.Equal(t, saved.ID, got.ID)
}

func TestSaveUpsertsByName(t *testing.T) {
	t.Parallel()

	store, _ := openTestStore(t)
	ctx := context.Background()

	first, err := store.Save(ctx, "route", "old\n", 1)
	require.NoError(t, err)
	second, err := store.Save(ctx, "route", "new\nnewer\n", 2)
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "new\nnewer\n", second.Body)
	require.Equal(t, 2, second.Count)

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestListOrdersByName(t *testing.T) {
	t.Parallel()

	store, _ := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"zebra", "alpha", "mid"} {
		_, err := store.Save(ctx, name, "body\n", 1)
		require.NoError(t, err)
	}

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "alpha", all[0].Name)
	require.Equal(t, "mid", all[1].Name)
	require.Equal(t, "zebra", all[2].Name)
}

func TestShowMissing(t *testing.T) {
	t.Parallel()

	store, _ := openTestStore(t)
	_, err := store.Show(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	store, _ := openTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, "tmp", "body\n", 1)
	require.NoError(t, err)
	require.NoError(t, store.Remove(ctx, "tmp"))

	_, err = store.Show(ctx, "tmp")
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, store.Remove(ctx, "tmp"), ErrNotFound)
}

func TestReopenKeepsData(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "snips.db")
	store, err := Open(path)
	require.NoError(t, err)
	_, err = store.Save(context.Background(), "keep", "body\n", 1)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Show(context.Background(), "keep")
	require.NoError(t, err)
	require.Equal(t, "body\n", got.Body)
}
