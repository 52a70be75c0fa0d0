package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/domain/repository"
	"clinic-agenda/internal/service"
	"clinic-agenda/internal/tenancy"
	"clinic-agenda/pkg/metrics"
	"clinic-agenda/pkg/webhook"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	stripeSubscriptionCreated = "customer.subscription.created"
	stripeSubscriptionUpdated = "customer.subscription.updated"
	stripeSubscriptionDeleted = "customer.subscription.deleted"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrInvalidPayload   = errors.New("invalid webhook payload")
)

type BillingUsecase interface {
	// HandleStripeWebhook verifies and applies a subscription event. Events that do not
	// concern a known organization are acknowledged without changes.
	HandleStripeWebhook(ctx context.Context, payload []byte, signature string) (*dto.WebhookResult, error)
}

type billingUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	orgRepo           repository.OrganizationRepository
	auditService      service.AuditService
	subscriptionCache service.SubscriptionCache
	metrics           *metrics.Collector
	secret            string
	now               func() time.Time
}

func NewBillingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	orgRepo repository.OrganizationRepository,
	auditService service.AuditService,
	subscriptionCache service.SubscriptionCache,
	m *metrics.Collector,
	secret string,
) BillingUsecase {
	return &billingUsecase{
		db:                db,
		log:               log,
		orgRepo:           orgRepo,
		auditService:      auditService,
		subscriptionCache: subscriptionCache,
		metrics:           m,
		secret:            secret,
		now:               time.Now,
	}
}

func (u *billingUsecase) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) (*dto.WebhookResult, error) {
	if err := webhook.VerifyStripeSignature(payload, signature, u.secret, webhook.DefaultTolerance, u.now()); err != nil {
		u.log.Warnf("Rejected stripe webhook: %v", err)
		u.metrics.WebhookEvent("unknown", "rejected")
		return nil, ErrInvalidSignature
	}

	var evt dto.StripeEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		u.metrics.WebhookEvent("unknown", "invalid")
		return nil, ErrInvalidPayload
	}

	result := &dto.WebhookResult{EventID: evt.ID}
	switch evt.Type {
	case stripeSubscriptionCreated, stripeSubscriptionUpdated, stripeSubscriptionDeleted:
	default:
		u.metrics.WebhookEvent(evt.Type, "ignored")
		return result, nil
	}

	handled, err := u.applySubscription(ctx, &evt)
	if err != nil {
		u.metrics.WebhookEvent(evt.Type, "error")
		return nil, err
	}
	result.Handled = handled
	if handled {
		u.metrics.WebhookEvent(evt.Type, "applied")
	} else {
		u.metrics.WebhookEvent(evt.Type, "unmatched")
	}
	return result, nil
}

func (u *billingUsecase) applySubscription(ctx context.Context, evt *dto.StripeEvent) (bool, error) {
	sub := evt.Data.Object

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	org, err := u.findOrganization(ctx, tx, &sub)
	if err != nil {
		return false, err
	}
	if org == nil {
		u.log.WithFields(logrus.Fields{
			"event_id": evt.ID,
			"customer": sub.Customer,
		}).Warn("Stripe subscription event for unknown organization")
		return false, nil
	}

	oldStatus := org.SubscriptionStatus
	status := stripeStatus(sub.Status)
	if evt.Type == stripeSubscriptionDeleted {
		status = entity.SubscriptionCanceled
	}

	org.SubscriptionStatus = status
	if sub.Customer != "" {
		customer := sub.Customer
		org.StripeCustomerID = &customer
	}
	if sub.ID != "" {
		subscriptionID := sub.ID
		org.StripeSubscriptionID = &subscriptionID
	}
	if status == entity.SubscriptionCanceled {
		canceledAt := u.now().UTC()
		if sub.CanceledAt != nil {
			canceledAt = time.Unix(*sub.CanceledAt, 0).UTC()
		}
		org.CanceledAt = &canceledAt
	} else {
		org.CanceledAt = nil
	}

	if err := u.orgRepo.UpdateSubscription(ctx, tx, org); err != nil {
		u.log.Warnf("Failed to update subscription: %+v", err)
		return false, err
	}

	scope := tenancy.Scope{OrganizationID: org.ID}
	if err := u.auditService.LogUpdate(ctx, tx, scope, entity.AuditActionSubscriptionUpdate, "organization", org.ID.String(), oldStatus, status); err != nil {
		return false, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return false, err
	}

	if err := u.subscriptionCache.Invalidate(ctx, org.ID); err != nil {
		u.log.Warnf("Failed to invalidate subscription cache: %+v", err)
	}
	u.log.Infof("Organization %s subscription %s -> %s", org.ID, oldStatus, status)
	return true, nil
}

// findOrganization prefers the organization_id metadata and falls back to the customer id
func (u *billingUsecase) findOrganization(ctx context.Context, tx *gorm.DB, sub *dto.StripeSubscription) (*entity.Organization, error) {
	if raw := sub.Metadata["organization_id"]; raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			org, err := u.orgRepo.FindByID(ctx, tx, id)
			if err != nil {
				u.log.Warnf("Failed to find organization: %+v", err)
				return nil, err
			}
			if org != nil {
				return org, nil
			}
		}
	}
	if sub.Customer == "" {
		return nil, nil
	}
	org, err := u.orgRepo.FindByStripeCustomerID(ctx, tx, sub.Customer)
	if err != nil {
		u.log.Warnf("Failed to find organization by customer: %+v", err)
		return nil, err
	}
	return org, nil
}

func stripeStatus(status string) entity.SubscriptionStatus {
	switch entity.SubscriptionStatus(status) {
	case entity.SubscriptionTrialing, entity.SubscriptionActive, entity.SubscriptionPastDue,
		entity.SubscriptionCanceled, entity.SubscriptionUnpaid, entity.SubscriptionIncomplete:
		return entity.SubscriptionStatus(status)
	case "incomplete_expired":
		return entity.SubscriptionCanceled
	default:
		// paused and future states lose access until Stripe says otherwise
		return entity.SubscriptionUnpaid
	}
}
