package repository

import (
	"context"
	"fmt"

	"clinic-agenda/internal/domain/entity"
	domainRepo "clinic-agenda/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type holidayRepository struct{}

func NewHolidayRepository() domainRepo.HolidayRepository {
	return &holidayRepository{}
}

func (r *holidayRepository) Create(ctx context.Context, db *gorm.DB, holiday *entity.Holiday) error {
	return db.WithContext(ctx).Create(holiday).Error
}

func (r *holidayRepository) FindByYear(ctx context.Context, db *gorm.DB, organizationID uuid.UUID, year int) ([]entity.Holiday, error) {
	var holidays []entity.Holiday
	err := db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Where("date BETWEEN ? AND ?", fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year)).
		Order("date ASC").
		Find(&holidays).Error
	if err != nil {
		return nil, err
	}
	return holidays, nil
}

func (r *holidayRepository) Delete(ctx context.Context, db *gorm.DB, organizationID, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		Delete(&entity.Holiday{})
	return result.RowsAffected, result.Error
}

func (r *holidayRepository) SeedFromCalendar(ctx context.Context, db *gorm.DB, organizationID uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Exec(`
		INSERT INTO holidays (id, organization_id, date, name, type, created_at)
		SELECT gen_random_uuid(), ?, c.date, c.name, c.type, NOW()
		FROM holiday_calendar c
		ON CONFLICT (organization_id, date, type) DO NOTHING`, organizationID)
	return result.RowsAffected, result.Error
}
