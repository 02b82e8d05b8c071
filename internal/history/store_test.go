package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/abelbrown/movierec/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestRecordAndRecent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	first, err := st.Record(ctx, "Inception (2010)", []api.Recommendation{
		{Title: "The Dark Knight (2008)", Similarity: 0.873},
		{Title: "Interstellar (2014)", Similarity: 0.812},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	_, err = st.Record(ctx, "Toy Story (1995)", []api.Recommendation{{Title: "Toy Story 2 (1999)", Similarity: 0.902}})
	require.NoError(t, err)

	entries, err := st.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Toy Story (1995)", entries[0].MovieName, "newest first")
	assert.Equal(t, "Inception (2010)", entries[1].MovieName)
	assert.Equal(t, first.ID, entries[1].ID)
	require.Len(t, entries[1].Results, 2)
	assert.Equal(t, "The Dark Knight (2008)", entries[1].Results[0].Title)
	assert.InDelta(t, 0.873, entries[1].Results[0].Similarity, 1e-9)
	assert.Equal(t, first.CreatedAt, entries[1].CreatedAt)
}

func TestRecentLimit(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		_, err := st.Record(ctx, name, nil)
		require.NoError(t, err)
	}

	entries, err := st.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "c", entries[0].MovieName)
	assert.Equal(t, "b", entries[1].MovieName)
	assert.NotNil(t, entries[0].Results)
}

func TestByMovie(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, err := st.Record(ctx, "Heat (1995)", nil)
	require.NoError(t, err)
	_, err = st.Record(ctx, "Memento (2000)", nil)
	require.NoError(t, err)
	_, err = st.Record(ctx, "Heat (1995)", nil)
	require.NoError(t, err)

	entries, err := st.ByMovie(ctx, "Heat (1995)", 10)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCountAndClear(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	n, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	for i := 0; i < 3; i++ {
		_, err := st.Record(ctx, "Heat (1995)", nil)
		require.NoError(t, err)
	}

	n, err = st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	removed, err := st.Clear(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, removed)

	n, err = st.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReopenFileKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	st, err := Open(path)
	require.NoError(t, err)
	_, err = st.Record(ctx, "Inception (2010)", nil)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	// Migrations already applied; reopening must not fail.
	st, err = Open(path)
	require.NoError(t, err)
	defer st.Close()

	n, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
