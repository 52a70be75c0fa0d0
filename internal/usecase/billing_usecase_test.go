package usecase

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/pkg/webhook"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testWebhookSecret = "whsec_test"

type fakeOrganizationRepository struct {
	items   map[uuid.UUID]*entity.Organization
	deleted []uuid.UUID
}

func newFakeOrganizationRepository(items ...*entity.Organization) *fakeOrganizationRepository {
	r := &fakeOrganizationRepository{items: map[uuid.UUID]*entity.Organization{}}
	for _, o := range items {
		r.items[o.ID] = o
	}
	return r
}

func (r *fakeOrganizationRepository) Create(ctx context.Context, db *gorm.DB, org *entity.Organization) error {
	if org.ID == uuid.Nil {
		org.ID = uuid.New()
	}
	r.items[org.ID] = org
	return nil
}

func (r *fakeOrganizationRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Organization, error) {
	return r.items[id], nil
}

func (r *fakeOrganizationRepository) FindByIDs(ctx context.Context, db *gorm.DB, ids []uuid.UUID) ([]entity.Organization, error) {
	var out []entity.Organization
	for _, id := range ids {
		if o, ok := r.items[id]; ok {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrganizationRepository) FindByStripeCustomerID(ctx context.Context, db *gorm.DB, customerID string) (*entity.Organization, error) {
	for _, o := range r.items {
		if o.StripeCustomerID != nil && *o.StripeCustomerID == customerID {
			return o, nil
		}
	}
	return nil, nil
}

func (r *fakeOrganizationRepository) UpdateSubscription(ctx context.Context, db *gorm.DB, org *entity.Organization) error {
	r.items[org.ID] = org
	return nil
}

func (r *fakeOrganizationRepository) FindCanceledBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) ([]entity.Organization, error) {
	var out []entity.Organization
	for _, o := range r.items {
		if o.SubscriptionStatus == entity.SubscriptionCanceled && o.CanceledAt != nil && o.CanceledAt.Before(cutoff) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrganizationRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	if _, ok := r.items[id]; !ok {
		return 0, nil
	}
	delete(r.items, id)
	r.deleted = append(r.deleted, id)
	return 1, nil
}

type fakeSubscriptionCache struct {
	statuses    map[uuid.UUID]entity.SubscriptionStatus
	invalidated []uuid.UUID
}

func (c *fakeSubscriptionCache) Status(ctx context.Context, organizationID uuid.UUID) (entity.SubscriptionStatus, error) {
	return c.statuses[organizationID], nil
}

func (c *fakeSubscriptionCache) Invalidate(ctx context.Context, organizationID uuid.UUID) error {
	c.invalidated = append(c.invalidated, organizationID)
	return nil
}

func signedPayload(payload string) ([]byte, string) {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	return []byte(payload), fmt.Sprintf("t=%s,v1=%s", ts, webhook.ComputeStripeSignature([]byte(payload), ts, testWebhookSecret))
}

func subscriptionEvent(eventType, customer, status, orgID string) string {
	return fmt.Sprintf(`{"id":"evt_1","type":%q,"data":{"object":{"id":"sub_1","customer":%q,"status":%q,"metadata":{"organization_id":%q}}}}`,
		eventType, customer, status, orgID)
}

func TestHandleStripeWebhook_AppliesStatus(t *testing.T) {
	db, mock := newMockDB(t)
	org := &entity.Organization{ID: uuid.New(), Name: "Clínica", SubscriptionStatus: entity.SubscriptionTrialing}
	orgs := newFakeOrganizationRepository(org)
	cache := &fakeSubscriptionCache{}
	audit := &fakeAuditService{}
	uc := NewBillingUsecase(db, newTestLogger(), orgs, audit, cache, nil, testWebhookSecret)

	mock.ExpectBegin()
	mock.ExpectCommit()
	payload, sig := signedPayload(subscriptionEvent("customer.subscription.updated", "cus_1", "active", org.ID.String()))
	result, err := uc.HandleStripeWebhook(context.Background(), payload, sig)
	require.NoError(t, err)
	assert.True(t, result.Handled)
	assert.Equal(t, "evt_1", result.EventID)
	assert.Equal(t, entity.SubscriptionActive, org.SubscriptionStatus)
	require.NotNil(t, org.StripeCustomerID)
	assert.Equal(t, "cus_1", *org.StripeCustomerID)
	assert.Nil(t, org.CanceledAt)
	assert.Equal(t, []uuid.UUID{org.ID}, cache.invalidated)
	assert.Equal(t, []string{entity.AuditActionSubscriptionUpdate}, audit.actions())

	// later events resolve the organization by customer id alone
	mock.ExpectBegin()
	mock.ExpectCommit()
	payload, sig = signedPayload(subscriptionEvent("customer.subscription.deleted", "cus_1", "active", ""))
	result, err = uc.HandleStripeWebhook(context.Background(), payload, sig)
	require.NoError(t, err)
	assert.True(t, result.Handled)
	assert.Equal(t, entity.SubscriptionCanceled, org.SubscriptionStatus)
	assert.NotNil(t, org.CanceledAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleStripeWebhook_Rejections(t *testing.T) {
	db, mock := newMockDB(t)
	uc := NewBillingUsecase(db, newTestLogger(), newFakeOrganizationRepository(), &fakeAuditService{}, &fakeSubscriptionCache{}, nil, testWebhookSecret)

	payload, _ := signedPayload(subscriptionEvent("customer.subscription.updated", "cus_1", "active", ""))
	_, err := uc.HandleStripeWebhook(context.Background(), payload, "t=1,v1=deadbeef")
	assert.ErrorIs(t, err, ErrInvalidSignature)

	payload, sig := signedPayload(`not json`)
	_, err = uc.HandleStripeWebhook(context.Background(), payload, sig)
	assert.ErrorIs(t, err, ErrInvalidPayload)

	payload, sig = signedPayload(`{"id":"evt_2","type":"invoice.paid","data":{"object":{}}}`)
	result, err := uc.HandleStripeWebhook(context.Background(), payload, sig)
	require.NoError(t, err)
	assert.False(t, result.Handled)

	mock.ExpectBegin()
	mock.ExpectRollback()
	payload, sig = signedPayload(subscriptionEvent("customer.subscription.updated", "cus_unknown", "active", uuid.NewString()))
	result, err = uc.HandleStripeWebhook(context.Background(), payload, sig)
	require.NoError(t, err)
	assert.False(t, result.Handled)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStripeStatus(t *testing.T) {
	tests := map[string]entity.SubscriptionStatus{
		"active":             entity.SubscriptionActive,
		"trialing":           entity.SubscriptionTrialing,
		"past_due":           entity.SubscriptionPastDue,
		"incomplete_expired": entity.SubscriptionCanceled,
		"paused":             entity.SubscriptionUnpaid,
	}
	for in, want := range tests {
		assert.Equal(t, want, stripeStatus(in), in)
	}
}
