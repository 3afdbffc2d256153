package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegehub/cms-api/utils/cache"
)

func setupTestStore(t *testing.T) *Store {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(cache.NewRedisCacheFromClient(client), time.Hour)
}

func TestNilStoreDegradesGracefully(t *testing.T) {
	var store *Store = NewStore(nil, time.Hour)
	require.Nil(t, store)

	ctx := context.Background()

	// All operations on a nil store are no-ops, not panics
	data, err := store.Get(ctx, "sid")
	assert.NoError(t, err)
	assert.Nil(t, data.SelectedCollegeID)

	assert.NoError(t, store.SetSelectedCollege(ctx, "sid", 5))
	assert.NoError(t, store.ClearSelectedCollege(ctx, "sid"))
	assert.NoError(t, store.Delete(ctx, "sid"))
}

func TestSelectedCollegeRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	data, err := store.Get(ctx, "jti-1")
	require.NoError(t, err)
	assert.Nil(t, data.SelectedCollegeID)

	require.NoError(t, store.SetSelectedCollege(ctx, "jti-1", 7))

	data, err = store.Get(ctx, "jti-1")
	require.NoError(t, err)
	require.NotNil(t, data.SelectedCollegeID)
	assert.Equal(t, uint(7), *data.SelectedCollegeID)

	// Overwrite with a different college
	require.NoError(t, store.SetSelectedCollege(ctx, "jti-1", 12))
	data, err = store.Get(ctx, "jti-1")
	require.NoError(t, err)
	require.NotNil(t, data.SelectedCollegeID)
	assert.Equal(t, uint(12), *data.SelectedCollegeID)
}

func TestSessionsAreIsolatedByID(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetSelectedCollege(ctx, "jti-a", 1))
	require.NoError(t, store.SetSelectedCollege(ctx, "jti-b", 2))

	a, err := store.Get(ctx, "jti-a")
	require.NoError(t, err)
	b, err := store.Get(ctx, "jti-b")
	require.NoError(t, err)

	require.NotNil(t, a.SelectedCollegeID)
	require.NotNil(t, b.SelectedCollegeID)
	assert.Equal(t, uint(1), *a.SelectedCollegeID)
	assert.Equal(t, uint(2), *b.SelectedCollegeID)
}

func TestClearSelectedCollege(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetSelectedCollege(ctx, "jti-1", 7))
	require.NoError(t, store.ClearSelectedCollege(ctx, "jti-1"))

	data, err := store.Get(ctx, "jti-1")
	require.NoError(t, err)
	assert.Nil(t, data.SelectedCollegeID)
}

func TestDeleteEndsSession(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetSelectedCollege(ctx, "jti-1", 7))
	require.NoError(t, store.Delete(ctx, "jti-1"))

	data, err := store.Get(ctx, "jti-1")
	require.NoError(t, err)
	assert.Nil(t, data.SelectedCollegeID)
}

func TestEmptySessionIDIsNoOp(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	assert.NoError(t, store.SetSelectedCollege(ctx, "", 7))
	data, err := store.Get(ctx, "")
	assert.NoError(t, err)
	assert.Nil(t, data.SelectedCollegeID)
}
