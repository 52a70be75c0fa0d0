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

type memberRepository struct{}

func NewMemberRepository() domainRepo.MemberRepository {
	return &memberRepository{}
}

func (r *memberRepository) Create(ctx context.Context, db *gorm.DB, member *entity.Member) error {
	return db.WithContext(ctx).Create(member).Error
}

func (r *memberRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Member, error) {
	var member entity.Member
	err := db.WithContext(ctx).Where("id = ?", id).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindByUserAndOrganization(ctx context.Context, db *gorm.DB, userID, organizationID uuid.UUID) (*entity.Member, error) {
	var member entity.Member
	err := db.WithContext(ctx).
		Where("user_id = ? AND organization_id = ?", userID, organizationID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]entity.Member, error) {
	var members []entity.Member
	err := db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, entity.StatusActive).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *memberRepository) FindByOrganization(ctx context.Context, db *gorm.DB, organizationID uuid.UUID) ([]entity.Member, error) {
	var members []entity.Member
	err := db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *memberRepository) Update(ctx context.Context, db *gorm.DB, member *entity.Member) error {
	return db.WithContext(ctx).Save(member).Error
}

func (r *memberRepository) ExpireInvitations(ctx context.Context, db *gorm.DB, invitedBefore time.Time) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Member{}).
		Where("status = ? AND invited_at < ?", entity.StatusInvited, invitedBefore).
		Updates(map[string]interface{}{
			"status":            entity.StatusInactive,
			"invite_token_hash": nil,
		})
	return result.RowsAffected, result.Error
}
