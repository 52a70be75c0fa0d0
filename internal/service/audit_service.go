package service

import (
	"context"

	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/domain/repository"
	"clinic-agenda/internal/tenancy"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditService interface {
	LogCreate(ctx context.Context, tx *gorm.DB, scope tenancy.Scope, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, tx *gorm.DB, scope tenancy.Scope, action string, entityName string, entityID string, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, tx *gorm.DB, scope tenancy.Scope, action string, entityName string, entityID string, oldValue interface{}) error
	// Log writes an entry with caller-provided metadata
	Log(ctx context.Context, tx *gorm.DB, scope tenancy.Scope, action string, metadata entity.JSON) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, scope tenancy.Scope, action string, entityName string, entityID string, newValue interface{}) error {
	return s.Log(ctx, tx, scope, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": nil,
		"new_value": newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, scope tenancy.Scope, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.Log(ctx, tx, scope, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	})
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, tx *gorm.DB, scope tenancy.Scope, action string, entityName string, entityID string, oldValue interface{}) error {
	return s.Log(ctx, tx, scope, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": nil,
	})
}

func (s *auditService) Log(ctx context.Context, tx *gorm.DB, scope tenancy.Scope, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		OrganizationID: scope.OrganizationID,
		UserID:         scope.UserRef(),
		Action:         action,
		Metadata:       metadata,
	}

	if err := s.auditRepo.Create(ctx, tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
