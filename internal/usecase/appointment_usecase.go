package usecase

import (
	"context"
	"errors"

	"clinic-agenda/internal/converter"
	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/domain/repository"
	"clinic-agenda/internal/service"
	"clinic-agenda/internal/tenancy"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrInvalidStatus       = errors.New("invalid appointment status")
	ErrInvalidDateTime     = errors.New("invalid date or time, use YYYY-MM-DD and HH:MM")
	ErrDayBlocked          = errors.New("professional is unavailable on this date")
)

type AppointmentUsecase interface {
	ListAppointments(ctx context.Context, scope tenancy.Scope, query *dto.AppointmentQuery) (*dto.ListResponse[dto.AppointmentResponse], error)
	GetAppointment(ctx context.Context, scope tenancy.Scope, id uuid.UUID) (*dto.AppointmentResponse, error)
	CreateAppointment(ctx context.Context, scope tenancy.Scope, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateAppointment(ctx context.Context, scope tenancy.Scope, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, scope tenancy.Scope, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, scope tenancy.Scope, id uuid.UUID) error
}

type appointmentUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	appointmentRepo  repository.AppointmentRepository
	patientRepo      repository.PatientRepository
	professionalRepo repository.ProfessionalRepository
	blockedDayRepo   repository.BlockedDayRepository
	auditService     service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	professionalRepo repository.ProfessionalRepository,
	blockedDayRepo repository.BlockedDayRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:               db,
		log:              log,
		appointmentRepo:  appointmentRepo,
		patientRepo:      patientRepo,
		professionalRepo: professionalRepo,
		blockedDayRepo:   blockedDayRepo,
		auditService:     auditService,
	}
}

func (u *appointmentUsecase) ListAppointments(ctx context.Context, scope tenancy.Scope, query *dto.AppointmentQuery) (*dto.ListResponse[dto.AppointmentResponse], error) {
	filter := &entity.AppointmentFilter{}
	if query != nil {
		professionalID, err := parseOptionalID(query.ProfessionalID)
		if err != nil {
			return nil, err
		}
		patientID, err := parseOptionalID(query.PatientID)
		if err != nil {
			return nil, err
		}
		status := entity.AppointmentStatus(query.Status)
		if status != "" && !status.IsValid() {
			return nil, ErrInvalidStatus
		}
		filter.ProfessionalID = professionalID
		filter.PatientID = patientID
		filter.Status = status
		filter.StartDate = query.Start
		filter.EndDate = query.End
	}

	appointments, err := u.appointmentRepo.FindAll(ctx, u.db, scope.OrganizationID, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return dto.NewListResponse(converter.AppointmentsToResponses(appointments)), nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, scope tenancy.Scope, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, scope.OrganizationID, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, scope tenancy.Scope, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, ErrInvalidID
	}
	professionalID, err := parseOptionalID(req.ProfessionalID)
	if err != nil {
		return nil, err
	}

	status := entity.AppointmentStatus(req.Status)
	if status == "" {
		status = entity.AppointmentScheduled
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(ctx, tx, scope.OrganizationID, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	var professional *entity.Professional
	if professionalID != nil {
		professional, err = u.professionalRepo.FindByID(ctx, tx, scope.OrganizationID, *professionalID)
		if err != nil {
			u.log.Warnf("Failed to find professional: %+v", err)
			return nil, err
		}
		if professional == nil {
			return nil, ErrProfessionalNotFound
		}
	}

	duration := req.Duration
	if duration <= 0 {
		duration = entity.DefaultAppointmentDuration
		if professional != nil && professional.AppointmentDuration > 0 {
			duration = professional.AppointmentDuration
		}
	}

	appointment := &entity.Appointment{
		OrganizationID: scope.OrganizationID,
		PatientID:      patientID,
		ProfessionalID: professionalID,
		Status:         status,
		Notes:          req.Notes,
	}
	if req.Price != nil {
		appointment.Price = decimal.NewNullDecimal(*req.Price)
	}
	if err := appointment.Schedule(req.Date, req.Time, duration); err != nil {
		return nil, ErrInvalidDateTime
	}

	if err := u.ensureDayAvailable(ctx, tx, scope.OrganizationID, appointment); err != nil {
		return nil, err
	}

	if err := u.appointmentRepo.Create(ctx, tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, mapAppointmentReferenceError(err)
	}

	appointment.Patient = patient
	appointment.Professional = professional
	response := converter.AppointmentToResponse(appointment)

	if err := u.auditService.LogCreate(ctx, tx, scope, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, scope tenancy.Scope, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(ctx, tx, scope.OrganizationID, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	oldValue := converter.AppointmentToResponse(appointment)
	wasActive := appointment.Status.IsActive()

	if req.PatientID != "" {
		patientID, err := uuid.Parse(req.PatientID)
		if err != nil {
			return nil, ErrInvalidID
		}
		patient, err := u.patientRepo.FindByID(ctx, tx, scope.OrganizationID, patientID)
		if err != nil {
			u.log.Warnf("Failed to find patient: %+v", err)
			return nil, err
		}
		if patient == nil {
			return nil, ErrPatientNotFound
		}
		appointment.PatientID = patientID
		appointment.Patient = patient
	}

	if req.ProfessionalID != "" {
		professionalID, err := uuid.Parse(req.ProfessionalID)
		if err != nil {
			return nil, ErrInvalidID
		}
		professional, err := u.professionalRepo.FindByID(ctx, tx, scope.OrganizationID, professionalID)
		if err != nil {
			u.log.Warnf("Failed to find professional: %+v", err)
			return nil, err
		}
		if professional == nil {
			return nil, ErrProfessionalNotFound
		}
		appointment.ProfessionalID = &professionalID
		appointment.Professional = professional
	}

	if req.Status != "" {
		status := entity.AppointmentStatus(req.Status)
		if !status.IsValid() {
			return nil, ErrInvalidStatus
		}
		appointment.Status = status
	}
	if req.Price != nil {
		appointment.Price = decimal.NewNullDecimal(*req.Price)
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}

	reactivated := !wasActive && appointment.Status.IsActive()
	rescheduled := req.Date != "" || req.Time != "" || req.Duration > 0 || req.ProfessionalID != ""
	if rescheduled || reactivated {
		date, clock, duration := appointment.Date(), appointment.Clock(), appointment.Duration
		if req.Date != "" {
			date = req.Date
		}
		if req.Time != "" {
			clock = req.Time
		}
		if req.Duration > 0 {
			duration = req.Duration
		}
		if err := appointment.Schedule(date, clock, duration); err != nil {
			return nil, ErrInvalidDateTime
		}
		if err := u.ensureDayAvailable(ctx, tx, scope.OrganizationID, appointment); err != nil {
			return nil, err
		}
	}

	if err := u.appointmentRepo.Update(ctx, tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, mapAppointmentReferenceError(err)
	}

	response := converter.AppointmentToResponse(appointment)
	if err := u.auditService.LogUpdate(ctx, tx, scope, entity.AuditActionAppointmentUpdate, "appointment", id.String(), oldValue, response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *appointmentUsecase) UpdateStatus(ctx context.Context, scope tenancy.Scope, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	status := entity.AppointmentStatus(req.Status)
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(ctx, tx, scope.OrganizationID, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	oldStatus := appointment.Status
	appointment.Status = status
	if !oldStatus.IsActive() && status.IsActive() {
		if err := u.ensureDayAvailable(ctx, tx, scope.OrganizationID, appointment); err != nil {
			return nil, err
		}
	}

	if _, err := u.appointmentRepo.UpdateStatus(ctx, tx, scope.OrganizationID, id, status); err != nil {
		u.log.Warnf("Failed to update appointment status: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, scope, entity.AuditActionAppointmentStatus, "appointment", id.String(), oldStatus, status); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, scope tenancy.Scope, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.Delete(ctx, tx, scope.OrganizationID, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointment: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, scope, entity.AuditActionAppointmentDelete, "appointment", id.String(), nil); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

// mapAppointmentReferenceError translates a foreign key violation raised when the
// patient or professional was removed between lookup and write.
func mapAppointmentReferenceError(err error) error {
	switch {
	case isForeignKeyError(err, "patient_id"):
		return ErrPatientNotFound
	case isForeignKeyError(err, "professional_id"):
		return ErrProfessionalNotFound
	}
	return err
}

// ensureDayAvailable rejects appointments on a day the professional has blocked.
// Holidays are informational and never block.
func (u *appointmentUsecase) ensureDayAvailable(ctx context.Context, tx *gorm.DB, organizationID uuid.UUID, appointment *entity.Appointment) error {
	if appointment.ProfessionalID == nil || !appointment.Status.IsActive() {
		return nil
	}
	blocked, err := u.blockedDayRepo.FindCovering(ctx, tx, organizationID, *appointment.ProfessionalID, appointment.Date())
	if err != nil {
		u.log.Warnf("Failed to check blocked days: %+v", err)
		return err
	}
	if blocked != nil {
		return ErrDayBlocked
	}
	return nil
}
