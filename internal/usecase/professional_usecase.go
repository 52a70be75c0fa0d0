package usecase

import (
	"context"
	"errors"
	"strings"

	"clinic-agenda/internal/converter"
	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/domain/repository"
	"clinic-agenda/internal/service"
	"clinic-agenda/internal/tenancy"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrProfessionalNotFound    = errors.New("professional not found")
	ErrProfessionalEmailExists = errors.New("a professional with this email already exists")
)

type ProfessionalUsecase interface {
	ListProfessionals(ctx context.Context, scope tenancy.Scope) (*dto.ListResponse[dto.ProfessionalResponse], error)
	GetProfessional(ctx context.Context, scope tenancy.Scope, id uuid.UUID) (*dto.ProfessionalResponse, error)
	CreateProfessional(ctx context.Context, scope tenancy.Scope, req *dto.CreateProfessionalRequest) (*dto.ProfessionalResponse, error)
	UpdateProfessional(ctx context.Context, scope tenancy.Scope, id uuid.UUID, req *dto.UpdateProfessionalRequest) (*dto.ProfessionalResponse, error)
	DeleteProfessional(ctx context.Context, scope tenancy.Scope, id uuid.UUID) error
}

type professionalUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	professionalRepo repository.ProfessionalRepository
	auditService     service.AuditService
}

func NewProfessionalUsecase(db *gorm.DB, log *logrus.Logger, professionalRepo repository.ProfessionalRepository, auditService service.AuditService) ProfessionalUsecase {
	return &professionalUsecase{
		db:               db,
		log:              log,
		professionalRepo: professionalRepo,
		auditService:     auditService,
	}
}

func (u *professionalUsecase) ListProfessionals(ctx context.Context, scope tenancy.Scope) (*dto.ListResponse[dto.ProfessionalResponse], error) {
	professionals, err := u.professionalRepo.FindAll(ctx, u.db, scope.OrganizationID)
	if err != nil {
		u.log.Warnf("Failed to find professionals: %+v", err)
		return nil, err
	}
	return dto.NewListResponse(converter.ProfessionalsToResponses(professionals)), nil
}

func (u *professionalUsecase) GetProfessional(ctx context.Context, scope tenancy.Scope, id uuid.UUID) (*dto.ProfessionalResponse, error) {
	professional, err := u.professionalRepo.FindByID(ctx, u.db, scope.OrganizationID, id)
	if err != nil {
		u.log.Warnf("Failed to find professional: %+v", err)
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}
	return converter.ProfessionalToResponse(professional), nil
}

func (u *professionalUsecase) CreateProfessional(ctx context.Context, scope tenancy.Scope, req *dto.CreateProfessionalRequest) (*dto.ProfessionalResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != "" {
		existing, err := u.professionalRepo.FindByEmail(ctx, tx, scope.OrganizationID, email)
		if err != nil {
			u.log.Warnf("Failed to find professional by email: %+v", err)
			return nil, err
		}
		if existing != nil {
			return nil, ErrProfessionalEmailExists
		}
	}

	professional := &entity.Professional{
		OrganizationID:      scope.OrganizationID,
		Name:                req.Name,
		Email:               email,
		RoleType:            req.RoleType,
		Color:               req.Color,
		AppointmentDuration: req.AppointmentDuration,
	}
	if err := u.professionalRepo.Create(ctx, tx, professional); err != nil {
		u.log.Warnf("Failed to create professional: %+v", err)
		return nil, err
	}

	response := converter.ProfessionalToResponse(professional)
	if err := u.auditService.LogCreate(ctx, tx, scope, entity.AuditActionProfessionalCreate, "professional", professional.ID.String(), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	return response, nil
}

func (u *professionalUsecase) UpdateProfessional(ctx context.Context, scope tenancy.Scope, id uuid.UUID, req *dto.UpdateProfessionalRequest) (*dto.ProfessionalResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	professional, err := u.professionalRepo.FindByID(ctx, tx, scope.OrganizationID, id)
	if err != nil {
		u.log.Warnf("Failed to find professional: %+v", err)
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}
	oldValue := converter.ProfessionalToResponse(professional)

	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email != professional.Email {
			existing, err := u.professionalRepo.FindByEmail(ctx, tx, scope.OrganizationID, email)
			if err != nil {
				u.log.Warnf("Failed to find professional by email: %+v", err)
				return nil, err
			}
			if existing != nil && existing.ID != professional.ID {
				return nil, ErrProfessionalEmailExists
			}
			professional.Email = email
		}
	}
	if req.Name != "" {
		professional.Name = req.Name
	}
	if req.RoleType != "" {
		professional.RoleType = req.RoleType
	}
	if req.Color != "" {
		professional.Color = req.Color
	}
	if req.AppointmentDuration > 0 {
		professional.AppointmentDuration = req.AppointmentDuration
	}
	if req.Status != "" {
		professional.Status = req.Status
	}

	if err := u.professionalRepo.Update(ctx, tx, professional); err != nil {
		u.log.Warnf("Failed to update professional: %+v", err)
		return nil, err
	}

	response := converter.ProfessionalToResponse(professional)
	if err := u.auditService.LogUpdate(ctx, tx, scope, entity.AuditActionProfessionalUpdate, "professional", id.String(), oldValue, response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	return response, nil
}

func (u *professionalUsecase) DeleteProfessional(ctx context.Context, scope tenancy.Scope, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	professional, err := u.professionalRepo.FindByID(ctx, tx, scope.OrganizationID, id)
	if err != nil {
		u.log.Warnf("Failed to find professional: %+v", err)
		return err
	}
	if professional == nil {
		return ErrProfessionalNotFound
	}
	// the account owner keeps their professional profile
	if professional.UserID != nil && *professional.UserID == scope.UserID {
		return ErrForbidden
	}

	if _, err := u.professionalRepo.Delete(ctx, tx, scope.OrganizationID, id); err != nil {
		u.log.Warnf("Failed to delete professional: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, scope, entity.AuditActionProfessionalDelete, "professional", id.String(), converter.ProfessionalToResponse(professional)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}
