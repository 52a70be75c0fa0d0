package repository

import (
	"context"

	"clinic-agenda/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, organizationID, id uuid.UUID) (*entity.Appointment, error)
	FindAll(ctx context.Context, db *gorm.DB, organizationID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	// FindActiveInRange returns the professional's appointments whose day lies in
	// [startDate, endDate] and whose status still occupies the agenda.
	FindActiveInRange(ctx context.Context, db *gorm.DB, organizationID, professionalID uuid.UUID, startDate, endDate string) ([]entity.Appointment, error)
	Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	UpdateStatus(ctx context.Context, db *gorm.DB, organizationID, id uuid.UUID, status entity.AppointmentStatus) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, organizationID, id uuid.UUID) (int64, error)
}
