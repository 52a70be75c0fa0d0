package repository

import (
	"context"
	"time"

	"clinic-agenda/internal/domain/entity"
	domainRepo "clinic-agenda/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type outboxRepository struct{}

func NewOutboxRepository() domainRepo.OutboxRepository {
	return &outboxRepository{}
}

func (r *outboxRepository) Insert(ctx context.Context, db *gorm.DB, event *entity.OutboxEvent) error {
	return db.WithContext(ctx).Create(event).Error
}

func (r *outboxRepository) FetchPending(ctx context.Context, db *gorm.DB, limit int) ([]entity.OutboxEvent, error) {
	var events []entity.OutboxEvent
	err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *outboxRepository) MarkPublished(ctx context.Context, db *gorm.DB, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return db.WithContext(ctx).Model(&entity.OutboxEvent{}).
		Where("id IN ?", ids).
		Update("published_at", at).Error
}

func (r *outboxRepository) DeletePublishedBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.WithContext(ctx).
		Where("published_at IS NOT NULL AND published_at < ?", cutoff).
		Delete(&entity.OutboxEvent{})
	return result.RowsAffected, result.Error
}
