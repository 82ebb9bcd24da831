package overlay

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workbridge-workers/internal/common/database"
	"workbridge-workers/internal/common/logger"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := &database.RedisClient{
		Client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	}
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, time.Hour, logger.NewTestLogger(t)), mr
}

func TestRedisStoreSetGet(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "interview_proposal_app-001")
	require.NoError(t, err)
	assert.False(t, ok, "missing key is not an error")

	require.NoError(t, store.Set(ctx, "interview_proposal_app-001", `{"time":"14:00"}`))

	val, ok, err := store.Get(ctx, "interview_proposal_app-001")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"time":"14:00"}`, val)
}

func TestRedisStoreTTL(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "acceptance_guide_app-001", "{}"))
	ttl := mr.TTL("acceptance_guide_app-001")
	assert.Equal(t, time.Hour, ttl)

	mr.FastForward(2 * time.Hour)
	_, ok, err := store.Get(ctx, "acceptance_guide_app-001")
	require.NoError(t, err)
	assert.False(t, ok, "entry expires after the ttl")
}

func TestRedisStoreDelete(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "first_work_date_confirmed_app-001", "true"))
	require.NoError(t, store.Delete(ctx, "first_work_date_confirmed_app-001", "never_existed"))

	_, ok, err := store.Get(ctx, "first_work_date_confirmed_app-001")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreDeleteNoKeys(t *testing.T) {
	store, _ := newTestRedisStore(t)
	assert.NoError(t, store.Delete(context.Background()))
}

func TestRedisStoreGetConnectionError(t *testing.T) {
	store, mr := newTestRedisStore(t)
	mr.Close()

	_, _, err := store.Get(context.Background(), "saved_applicants")
	assert.Error(t, err)
}
