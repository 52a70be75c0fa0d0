package repository

import (
	"context"
	"time"

	"clinic-agenda/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OutboxRepository interface {
	Insert(ctx context.Context, db *gorm.DB, event *entity.OutboxEvent) error
	// FetchPending locks up to limit unpublished events; call inside a transaction
	FetchPending(ctx context.Context, db *gorm.DB, limit int) ([]entity.OutboxEvent, error)
	MarkPublished(ctx context.Context, db *gorm.DB, ids []uuid.UUID, at time.Time) error
	DeletePublishedBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error)
}
