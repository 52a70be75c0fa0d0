package repository

import (
	"context"

	"clinic-agenda/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HolidayRepository interface {
	Create(ctx context.Context, db *gorm.DB, holiday *entity.Holiday) error
	FindByYear(ctx context.Context, db *gorm.DB, organizationID uuid.UUID, year int) ([]entity.Holiday, error)
	Delete(ctx context.Context, db *gorm.DB, organizationID, id uuid.UUID) (int64, error)
	// SeedFromCalendar copies the global holiday calendar into the organization
	SeedFromCalendar(ctx context.Context, db *gorm.DB, organizationID uuid.UUID) (int64, error)
}
