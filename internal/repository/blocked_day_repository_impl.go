package repository

import (
	"context"
	"errors"

	"clinic-agenda/internal/domain/entity"
	domainRepo "clinic-agenda/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type blockedDayRepository struct{}

func NewBlockedDayRepository() domainRepo.BlockedDayRepository {
	return &blockedDayRepository{}
}

func (r *blockedDayRepository) Create(ctx context.Context, db *gorm.DB, blockedDay *entity.BlockedDay) error {
	return db.WithContext(ctx).Create(blockedDay).Error
}

// FindAll returns blocked days overlapping the filter range
func (r *blockedDayRepository) FindAll(ctx context.Context, db *gorm.DB, organizationID uuid.UUID, filter *entity.BlockedDayFilter) ([]entity.BlockedDay, error) {
	var blockedDays []entity.BlockedDay
	query := db.WithContext(ctx).Where("organization_id = ?", organizationID)

	if filter != nil {
		if filter.ProfessionalID != nil {
			query = query.Where("professional_id = ?", *filter.ProfessionalID)
		}
		if filter.EndDate != "" {
			query = query.Where("start_date <= ?", filter.EndDate)
		}
		if filter.StartDate != "" {
			query = query.Where("end_date >= ?", filter.StartDate)
		}
	}

	err := query.Order("start_date ASC").Find(&blockedDays).Error
	if err != nil {
		return nil, err
	}
	return blockedDays, nil
}

func (r *blockedDayRepository) FindCovering(ctx context.Context, db *gorm.DB, organizationID, professionalID uuid.UUID, day string) (*entity.BlockedDay, error) {
	var blockedDay entity.BlockedDay
	err := db.WithContext(ctx).
		Where("organization_id = ? AND professional_id = ?", organizationID, professionalID).
		Where("start_date <= ? AND end_date >= ?", day, day).
		First(&blockedDay).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &blockedDay, nil
}

func (r *blockedDayRepository) Delete(ctx context.Context, db *gorm.DB, organizationID, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		Delete(&entity.BlockedDay{})
	return result.RowsAffected, result.Error
}
