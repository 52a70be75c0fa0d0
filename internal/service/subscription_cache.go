package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrOrganizationNotFound = errors.New("organization not found")

const subscriptionKeyPrefix = "subscription:"

// SubscriptionCache resolves an organization's subscription status, caching it in Redis
type SubscriptionCache interface {
	Status(ctx context.Context, organizationID uuid.UUID) (entity.SubscriptionStatus, error)
	Invalidate(ctx context.Context, organizationID uuid.UUID) error
}

type subscriptionCache struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger
	orgRepo     repository.OrganizationRepository
	ttl         time.Duration
}

func NewSubscriptionCache(db *gorm.DB, redisClient *redis.Client, log *logrus.Logger, orgRepo repository.OrganizationRepository, ttl time.Duration) SubscriptionCache {
	return &subscriptionCache{
		db:          db,
		redisClient: redisClient,
		log:         log,
		orgRepo:     orgRepo,
		ttl:         ttl,
	}
}

func subscriptionKey(organizationID uuid.UUID) string {
	return fmt.Sprintf("%s%s", subscriptionKeyPrefix, organizationID)
}

func (c *subscriptionCache) Status(ctx context.Context, organizationID uuid.UUID) (entity.SubscriptionStatus, error) {
	cached, err := c.redisClient.Get(ctx, subscriptionKey(organizationID)).Result()
	switch {
	case err == nil:
		return entity.SubscriptionStatus(cached), nil
	case !errors.Is(err, redis.Nil):
		// Redis down: the database stays authoritative
		c.log.Warnf("Failed to read subscription cache: %+v", err)
	}

	org, err := c.orgRepo.FindByID(ctx, c.db, organizationID)
	if err != nil {
		c.log.Warnf("Failed to find organization: %+v", err)
		return "", err
	}
	if org == nil {
		return "", ErrOrganizationNotFound
	}

	if err := c.redisClient.Set(ctx, subscriptionKey(organizationID), string(org.SubscriptionStatus), c.ttl).Err(); err != nil {
		c.log.Warnf("Failed to write subscription cache: %+v", err)
	}
	return org.SubscriptionStatus, nil
}

func (c *subscriptionCache) Invalidate(ctx context.Context, organizationID uuid.UUID) error {
	return c.redisClient.Del(ctx, subscriptionKey(organizationID)).Err()
}
