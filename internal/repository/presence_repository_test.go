package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestPresenceRepository(t *testing.T) {
	mr, client := newTestRedis(t)
	repo := NewPresenceRepository(client, time.Hour)
	ctx := context.Background()
	orgID, other := uuid.New(), uuid.New()
	ana, bia := uuid.New(), uuid.New()

	require.NoError(t, repo.Set(ctx, orgID, ana, "online"))
	require.NoError(t, repo.Set(ctx, orgID, bia, "busy"))
	require.NoError(t, repo.Set(ctx, other, ana, "online"))

	statuses, err := repo.List(ctx, orgID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{ana.String(): "online", bia.String(): "busy"}, statuses)
	assert.Equal(t, time.Hour, mr.TTL(presenceKey(orgID)))

	require.NoError(t, repo.Remove(ctx, orgID, bia))
	statuses, err = repo.List(ctx, orgID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{ana.String(): "online"}, statuses)

	mr.FastForward(2 * time.Hour)
	statuses, err = repo.List(ctx, orgID)
	require.NoError(t, err)
	assert.Empty(t, statuses)
}
