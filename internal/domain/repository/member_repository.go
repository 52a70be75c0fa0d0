package repository

import (
	"context"
	"time"

	"clinic-agenda/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberRepository interface {
	Create(ctx context.Context, db *gorm.DB, member *entity.Member) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Member, error)
	FindByUserAndOrganization(ctx context.Context, db *gorm.DB, userID, organizationID uuid.UUID) (*entity.Member, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]entity.Member, error)
	FindByOrganization(ctx context.Context, db *gorm.DB, organizationID uuid.UUID) ([]entity.Member, error)
	Update(ctx context.Context, db *gorm.DB, member *entity.Member) error
	ExpireInvitations(ctx context.Context, db *gorm.DB, invitedBefore time.Time) (int64, error)
}
