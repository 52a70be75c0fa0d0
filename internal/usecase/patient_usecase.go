package usecase

import (
	"context"
	"strings"
	"time"

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

type PatientUsecase interface {
	ListPatients(ctx context.Context, scope tenancy.Scope, search string) (*dto.ListResponse[dto.PatientResponse], error)
	GetPatient(ctx context.Context, scope tenancy.Scope, id uuid.UUID) (*dto.PatientResponse, error)
	CreatePatient(ctx context.Context, scope tenancy.Scope, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	UpdatePatient(ctx context.Context, scope tenancy.Scope, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, scope tenancy.Scope, id uuid.UUID) error
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewPatientUsecase(db *gorm.DB, log *logrus.Logger, patientRepo repository.PatientRepository, auditService service.AuditService) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *patientUsecase) ListPatients(ctx context.Context, scope tenancy.Scope, search string) (*dto.ListResponse[dto.PatientResponse], error) {
	patients, err := u.patientRepo.FindAll(ctx, u.db, scope.OrganizationID, strings.TrimSpace(search))
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, err
	}
	return dto.NewListResponse(converter.PatientsToResponses(patients)), nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, scope tenancy.Scope, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, scope.OrganizationID, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) CreatePatient(ctx context.Context, scope tenancy.Scope, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient := &entity.Patient{
		OrganizationID:  scope.OrganizationID,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		BirthDate:       birthDate,
		Temperature:     req.Temperature,
		Temperament:     req.Temperament,
		Motivation:      req.Motivation,
		ConscienceLevel: req.ConscienceLevel,
		Notes:           req.Notes,
	}
	if err := u.patientRepo.Create(ctx, tx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	response := converter.PatientToResponse(patient)
	if err := u.auditService.LogCreate(ctx, tx, scope, entity.AuditActionPatientCreate, "patient", patient.ID.String(), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	return response, nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, scope tenancy.Scope, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(ctx, tx, scope.OrganizationID, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	oldValue := converter.PatientToResponse(patient)

	if req.BirthDate != nil {
		birthDate, err := parseBirthDate(*req.BirthDate)
		if err != nil {
			return nil, err
		}
		patient.BirthDate = birthDate
	}
	setIfPresent(&patient.Name, req.Name)
	setIfPresent(&patient.Email, req.Email)
	setIfPresent(&patient.Phone, req.Phone)
	setIfPresent(&patient.Temperature, req.Temperature)
	setIfPresent(&patient.Temperament, req.Temperament)
	setIfPresent(&patient.Motivation, req.Motivation)
	setIfPresent(&patient.ConscienceLevel, req.ConscienceLevel)
	setIfPresent(&patient.Notes, req.Notes)

	if err := u.patientRepo.Update(ctx, tx, patient); err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	response := converter.PatientToResponse(patient)
	if err := u.auditService.LogUpdate(ctx, tx, scope, entity.AuditActionPatientUpdate, "patient", id.String(), oldValue, response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	return response, nil
}

func (u *patientUsecase) DeletePatient(ctx context.Context, scope tenancy.Scope, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.patientRepo.Delete(ctx, tx, scope.OrganizationID, id)
	if err != nil {
		u.log.Warnf("Failed to delete patient: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrPatientNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, scope, entity.AuditActionPatientDelete, "patient", id.String(), nil); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

// parseBirthDate treats an empty string as "no birth date"
func parseBirthDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := entity.ParseDate(raw)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}

func setIfPresent(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
