package service

import (
	"context"
	"testing"
	"time"

	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionCache_ReadThrough(t *testing.T) {
	db, mock := newMockDB(t)
	mr, client := newTestRedis(t)
	cache := NewSubscriptionCache(db, client, newTestLogger(), repository.NewOrganizationRepository(), 5*time.Minute)
	orgID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "organizations" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "subscription_status"}).AddRow(orgID.String(), "Clínica", "active"))

	status, err := cache.Status(context.Background(), orgID)
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionActive, status)
	assert.Equal(t, 5*time.Minute, mr.TTL(subscriptionKey(orgID)))

	// served from redis, no query expected
	status, err = cache.Status(context.Background(), orgID)
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionActive, status)

	require.NoError(t, cache.Invalidate(context.Background(), orgID))
	mock.ExpectQuery(`SELECT \* FROM "organizations" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "subscription_status"}).AddRow(orgID.String(), "Clínica", "past_due"))

	status, err = cache.Status(context.Background(), orgID)
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionPastDue, status)
	assert.False(t, status.IsEntitled())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionCache_UnknownOrganization(t *testing.T) {
	db, mock := newMockDB(t)
	_, client := newTestRedis(t)
	cache := NewSubscriptionCache(db, client, newTestLogger(), repository.NewOrganizationRepository(), time.Minute)

	mock.ExpectQuery(`SELECT \* FROM "organizations"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := cache.Status(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrOrganizationNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionCache_RedisDownFallsBackToDatabase(t *testing.T) {
	db, mock := newMockDB(t)
	mr, client := newTestRedis(t)
	cache := NewSubscriptionCache(db, client, newTestLogger(), repository.NewOrganizationRepository(), time.Minute)
	orgID := uuid.New()
	mr.Close()

	mock.ExpectQuery(`SELECT \* FROM "organizations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "subscription_status"}).AddRow(orgID.String(), "trialing"))

	status, err := cache.Status(context.Background(), orgID)
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionTrialing, status)
	require.NoError(t, mock.ExpectationsWereMet())
}
