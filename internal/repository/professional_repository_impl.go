package repository

import (
	"context"
	"errors"

	"clinic-agenda/internal/domain/entity"
	domainRepo "clinic-agenda/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type professionalRepository struct{}

func NewProfessionalRepository() domainRepo.ProfessionalRepository {
	return &professionalRepository{}
}

func (r *professionalRepository) Create(ctx context.Context, db *gorm.DB, professional *entity.Professional) error {
	return db.WithContext(ctx).Create(professional).Error
}

func (r *professionalRepository) FindByID(ctx context.Context, db *gorm.DB, organizationID, id uuid.UUID) (*entity.Professional, error) {
	return r.first(db.WithContext(ctx).Where("organization_id = ? AND id = ?", organizationID, id))
}

func (r *professionalRepository) FindByUserID(ctx context.Context, db *gorm.DB, organizationID, userID uuid.UUID) (*entity.Professional, error) {
	return r.first(db.WithContext(ctx).Where("organization_id = ? AND user_id = ?", organizationID, userID))
}

func (r *professionalRepository) FindByEmail(ctx context.Context, db *gorm.DB, organizationID uuid.UUID, email string) (*entity.Professional, error) {
	return r.first(db.WithContext(ctx).Where("organization_id = ? AND LOWER(email) = LOWER(?)", organizationID, email))
}

func (r *professionalRepository) first(query *gorm.DB) (*entity.Professional, error) {
	var professional entity.Professional
	err := query.First(&professional).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &professional, nil
}

func (r *professionalRepository) FindByIDs(ctx context.Context, db *gorm.DB, organizationID uuid.UUID, ids []uuid.UUID) ([]entity.Professional, error) {
	var professionals []entity.Professional
	if len(ids) == 0 {
		return professionals, nil
	}
	err := db.WithContext(ctx).
		Where("organization_id = ? AND id IN ?", organizationID, ids).
		Find(&professionals).Error
	if err != nil {
		return nil, err
	}
	return professionals, nil
}

func (r *professionalRepository) FindAll(ctx context.Context, db *gorm.DB, organizationID uuid.UUID) ([]entity.Professional, error) {
	var professionals []entity.Professional
	err := db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("name ASC").
		Find(&professionals).Error
	if err != nil {
		return nil, err
	}
	return professionals, nil
}

func (r *professionalRepository) Update(ctx context.Context, db *gorm.DB, professional *entity.Professional) error {
	return db.WithContext(ctx).Save(professional).Error
}

func (r *professionalRepository) Delete(ctx context.Context, db *gorm.DB, organizationID, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		Delete(&entity.Professional{})
	return result.RowsAffected, result.Error
}
