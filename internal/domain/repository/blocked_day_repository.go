package repository

import (
	"context"

	"clinic-agenda/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlockedDayRepository interface {
	Create(ctx context.Context, db *gorm.DB, blockedDay *entity.BlockedDay) error
	FindAll(ctx context.Context, db *gorm.DB, organizationID uuid.UUID, filter *entity.BlockedDayFilter) ([]entity.BlockedDay, error)
	FindCovering(ctx context.Context, db *gorm.DB, organizationID, professionalID uuid.UUID, day string) (*entity.BlockedDay, error)
	Delete(ctx context.Context, db *gorm.DB, organizationID, id uuid.UUID) (int64, error)
}
