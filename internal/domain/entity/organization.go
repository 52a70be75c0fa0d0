package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionStatus mirrors the Stripe subscription lifecycle
type SubscriptionStatus string

const (
	SubscriptionTrialing   SubscriptionStatus = "trialing"
	SubscriptionActive     SubscriptionStatus = "active"
	SubscriptionPastDue    SubscriptionStatus = "past_due"
	SubscriptionCanceled   SubscriptionStatus = "canceled"
	SubscriptionUnpaid     SubscriptionStatus = "unpaid"
	SubscriptionIncomplete SubscriptionStatus = "incomplete"
)

// IsEntitled reports whether the organization may use the scheduling features
func (s SubscriptionStatus) IsEntitled() bool {
	return s == SubscriptionActive || s == SubscriptionTrialing
}

// Organization is the tenant every other row belongs to
type Organization struct {
	ID                   uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Name                 string             `gorm:"type:varchar(255);not null" json:"name"`
	SubscriptionStatus   SubscriptionStatus `gorm:"type:varchar(32);not null" json:"subscription_status"`
	StripeCustomerID     *string            `gorm:"type:varchar(255)" json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID *string            `gorm:"type:varchar(255)" json:"stripe_subscription_id,omitempty"`
	CanceledAt           *time.Time         `json:"canceled_at,omitempty"`
	CreatedAt            time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Organization) TableName() string {
	return "organizations"
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.SubscriptionStatus == "" {
		o.SubscriptionStatus = SubscriptionTrialing
	}
	return nil
}
