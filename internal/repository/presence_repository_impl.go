package repository

import (
	"context"
	"fmt"
	"time"

	domainRepo "clinic-agenda/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type presenceRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPresenceRepository stores presence as one Redis hash per organization.
// The hash expires after ttl without updates so stale statuses do not linger
// when every socket of an organization dies without a clean disconnect.
func NewPresenceRepository(client *redis.Client, ttl time.Duration) domainRepo.PresenceRepository {
	return &presenceRepository{client: client, ttl: ttl}
}

func presenceKey(organizationID uuid.UUID) string {
	return fmt.Sprintf("presence:org:%s", organizationID)
}

func (r *presenceRepository) Set(ctx context.Context, organizationID, userID uuid.UUID, status string) error {
	key := presenceKey(organizationID)
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, userID.String(), status)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *presenceRepository) Remove(ctx context.Context, organizationID, userID uuid.UUID) error {
	return r.client.HDel(ctx, presenceKey(organizationID), userID.String()).Err()
}

func (r *presenceRepository) List(ctx context.Context, organizationID uuid.UUID) (map[string]string, error) {
	return r.client.HGetAll(ctx, presenceKey(organizationID)).Result()
}
