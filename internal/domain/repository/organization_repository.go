package repository

import (
	"context"
	"time"

	"clinic-agenda/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrganizationRepository interface {
	Create(ctx context.Context, db *gorm.DB, org *entity.Organization) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Organization, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []uuid.UUID) ([]entity.Organization, error)
	FindByStripeCustomerID(ctx context.Context, db *gorm.DB, customerID string) (*entity.Organization, error)
	UpdateSubscription(ctx context.Context, db *gorm.DB, org *entity.Organization) error
	FindCanceledBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) ([]entity.Organization, error)
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}
