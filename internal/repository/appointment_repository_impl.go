package repository

import (
	"context"
	"errors"

	"clinic-agenda/internal/domain/entity"
	domainRepo "clinic-agenda/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Omit("Patient", "Professional").Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, db *gorm.DB, organizationID, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.WithContext(ctx).
		Preload("Patient").Preload("Professional").
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// FindAll returns the organization's appointments ordered by start time.
// Supports optional filters: professional, patient, status and day range.
func (r *appointmentRepository) FindAll(ctx context.Context, db *gorm.DB, organizationID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.WithContext(ctx).Where("organization_id = ?", organizationID)

	if filter != nil {
		if filter.ProfessionalID != nil {
			query = query.Where("professional_id = ?", *filter.ProfessionalID)
		}
		if filter.PatientID != nil {
			query = query.Where("patient_id = ?", *filter.PatientID)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.StartDate != "" {
			query = query.Where("start_time::date >= ?", filter.StartDate)
		}
		if filter.EndDate != "" {
			query = query.Where("start_time::date <= ?", filter.EndDate)
		}
	}

	err := query.
		Preload("Patient").Preload("Professional").
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindActiveInRange(ctx context.Context, db *gorm.DB, organizationID, professionalID uuid.UUID, startDate, endDate string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Where("organization_id = ? AND professional_id = ?", organizationID, professionalID).
		Where("start_time::date BETWEEN ? AND ?", startDate, endDate).
		Where("status NOT IN ?", entity.InactiveAppointmentStatuses).
		Preload("Patient").Preload("Professional").
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Omit("Patient", "Professional").Save(appointment).Error
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, db *gorm.DB, organizationID, id uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("organization_id = ? AND id = ?", organizationID, id).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Delete(ctx context.Context, db *gorm.DB, organizationID, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}
