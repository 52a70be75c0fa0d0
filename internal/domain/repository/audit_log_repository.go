package repository

import (
	"context"

	"clinic-agenda/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error
	FindByOrganization(ctx context.Context, db *gorm.DB, organizationID uuid.UUID, limit, offset int) ([]entity.AuditLog, int64, error)
}
