package repository

import (
	"context"

	"clinic-agenda/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfessionalRepository interface {
	Create(ctx context.Context, db *gorm.DB, professional *entity.Professional) error
	FindByID(ctx context.Context, db *gorm.DB, organizationID, id uuid.UUID) (*entity.Professional, error)
	FindByIDs(ctx context.Context, db *gorm.DB, organizationID uuid.UUID, ids []uuid.UUID) ([]entity.Professional, error)
	FindByUserID(ctx context.Context, db *gorm.DB, organizationID, userID uuid.UUID) (*entity.Professional, error)
	FindByEmail(ctx context.Context, db *gorm.DB, organizationID uuid.UUID, email string) (*entity.Professional, error)
	FindAll(ctx context.Context, db *gorm.DB, organizationID uuid.UUID) ([]entity.Professional, error)
	Update(ctx context.Context, db *gorm.DB, professional *entity.Professional) error
	Delete(ctx context.Context, db *gorm.DB, organizationID, id uuid.UUID) (int64, error)
}
