package repository

import (
	"context"
	"errors"
	"time"

	"clinic-agenda/internal/domain/entity"
	domainRepo "clinic-agenda/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type organizationRepository struct{}

func NewOrganizationRepository() domainRepo.OrganizationRepository {
	return &organizationRepository{}
}

func (r *organizationRepository) Create(ctx context.Context, db *gorm.DB, org *entity.Organization) error {
	return db.WithContext(ctx).Create(org).Error
}

func (r *organizationRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Organization, error) {
	var org entity.Organization
	err := db.WithContext(ctx).Where("id = ?", id).First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) FindByIDs(ctx context.Context, db *gorm.DB, ids []uuid.UUID) ([]entity.Organization, error) {
	var orgs []entity.Organization
	if len(ids) == 0 {
		return orgs, nil
	}
	err := db.WithContext(ctx).Where("id IN ?", ids).Order("name ASC").Find(&orgs).Error
	if err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *organizationRepository) FindByStripeCustomerID(ctx context.Context, db *gorm.DB, customerID string) (*entity.Organization, error) {
	var org entity.Organization
	err := db.WithContext(ctx).Where("stripe_customer_id = ?", customerID).First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) UpdateSubscription(ctx context.Context, db *gorm.DB, org *entity.Organization) error {
	return db.WithContext(ctx).Model(org).
		Select("subscription_status", "stripe_customer_id", "stripe_subscription_id", "canceled_at", "updated_at").
		Updates(org).Error
}

func (r *organizationRepository) FindCanceledBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) ([]entity.Organization, error) {
	var orgs []entity.Organization
	err := db.WithContext(ctx).
		Where("subscription_status = ? AND canceled_at < ?", entity.SubscriptionCanceled, cutoff).
		Find(&orgs).Error
	if err != nil {
		return nil, err
	}
	return orgs, nil
}

// Delete removes the organization; every tenant row cascades with it
func (r *organizationRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Organization{})
	return result.RowsAffected, result.Error
}
