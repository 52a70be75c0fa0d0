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
	"clinic-agenda/pkg/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBlockedDayNotFound = errors.New("blocked day not found")
	ErrInvalidDateRange   = errors.New("start date must not be after end date")
)

type BlockedDayUsecase interface {
	// CreateBlockedDay blocks the range unless active appointments fall inside it
	// and the caller did not confirm; in that case the conflicts are returned and
	// nothing is written. Appointments are never modified.
	CreateBlockedDay(ctx context.Context, scope tenancy.Scope, req *dto.CreateBlockedDayRequest) (*dto.CreateBlockedDayResult, error)
	ListBlockedDays(ctx context.Context, scope tenancy.Scope, query *dto.BlockedDayQuery) (*dto.ListResponse[dto.BlockedDayResponse], error)
	DeleteBlockedDay(ctx context.Context, scope tenancy.Scope, id uuid.UUID) error
}

type blockedDayUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	blockedDayRepo   repository.BlockedDayRepository
	appointmentRepo  repository.AppointmentRepository
	professionalRepo repository.ProfessionalRepository
	auditService     service.AuditService
	metrics          *metrics.Collector
}

func NewBlockedDayUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	blockedDayRepo repository.BlockedDayRepository,
	appointmentRepo repository.AppointmentRepository,
	professionalRepo repository.ProfessionalRepository,
	auditService service.AuditService,
	m *metrics.Collector,
) BlockedDayUsecase {
	return &blockedDayUsecase{
		db:               db,
		log:              log,
		blockedDayRepo:   blockedDayRepo,
		appointmentRepo:  appointmentRepo,
		professionalRepo: professionalRepo,
		auditService:     auditService,
		metrics:          m,
	}
}

func (u *blockedDayUsecase) CreateBlockedDay(ctx context.Context, scope tenancy.Scope, req *dto.CreateBlockedDayRequest) (*dto.CreateBlockedDayResult, error) {
	professionalID, err := uuid.Parse(req.ProfessionalID)
	if err != nil {
		return nil, ErrInvalidID
	}

	startDate, err := entity.ParseDate(req.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	endDate, err := entity.ParseDate(req.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if startDate.After(endDate) {
		return nil, ErrInvalidDateRange
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	professional, err := u.professionalRepo.FindByID(ctx, tx, scope.OrganizationID, professionalID)
	if err != nil {
		u.log.Warnf("Failed to find professional: %+v", err)
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}

	// No lock is taken: an appointment created between this check and the
	// insert below is not reported.
	conflicts, err := u.appointmentRepo.FindActiveInRange(ctx, tx, scope.OrganizationID, professionalID, req.StartDate, req.EndDate)
	if err != nil {
		u.log.Warnf("Failed to check appointment conflicts: %+v", err)
		return nil, err
	}

	if len(conflicts) > 0 && !req.ConfirmConflicts {
		u.metrics.BlockedDayOutcome("conflict")
		return &dto.CreateBlockedDayResult{
			Conflict: &dto.ConflictResponse{
				Conflicts:            converter.AppointmentsToResponses(conflicts),
				RequiresConfirmation: true,
			},
		}, nil
	}

	blockedDay := &entity.BlockedDay{
		OrganizationID: scope.OrganizationID,
		ProfessionalID: professionalID,
		StartDate:      startDate,
		EndDate:        endDate,
		Reason:         req.Reason,
	}
	if err := u.blockedDayRepo.Create(ctx, tx, blockedDay); err != nil {
		u.log.Warnf("Failed to create blocked day: %+v", err)
		if isForeignKeyError(err, "professional_id") {
			return nil, ErrProfessionalNotFound
		}
		return nil, err
	}

	overridden := make([]string, len(conflicts))
	for i, c := range conflicts {
		overridden[i] = c.ID.String()
	}
	if err := u.auditService.Log(ctx, tx, scope, entity.AuditActionBlockedDayCreate, entity.JSON{
		"entity":               "blocked_day",
		"entity_id":            blockedDay.ID.String(),
		"professional_id":      professionalID.String(),
		"start_date":           req.StartDate,
		"end_date":             req.EndDate,
		"overridden_conflicts": overridden,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if len(conflicts) > 0 {
		u.metrics.BlockedDayOutcome("overridden")
		u.log.Infof("Blocked day %s created over %d conflicting appointments", blockedDay.ID, len(conflicts))
	} else {
		u.metrics.BlockedDayOutcome("created")
	}

	return &dto.CreateBlockedDayResult{BlockedDay: converter.BlockedDayToResponse(blockedDay)}, nil
}

func (u *blockedDayUsecase) ListBlockedDays(ctx context.Context, scope tenancy.Scope, query *dto.BlockedDayQuery) (*dto.ListResponse[dto.BlockedDayResponse], error) {
	filter := &entity.BlockedDayFilter{}
	if query != nil {
		professionalID, err := parseOptionalID(query.ProfessionalID)
		if err != nil {
			return nil, err
		}
		filter.ProfessionalID = professionalID
		filter.StartDate = query.Start
		filter.EndDate = query.End
	}

	blockedDays, err := u.blockedDayRepo.FindAll(ctx, u.db, scope.OrganizationID, filter)
	if err != nil {
		u.log.Warnf("Failed to find blocked days: %+v", err)
		return nil, err
	}

	return dto.NewListResponse(converter.BlockedDaysToResponses(blockedDays)), nil
}

func (u *blockedDayUsecase) DeleteBlockedDay(ctx context.Context, scope tenancy.Scope, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.blockedDayRepo.Delete(ctx, tx, scope.OrganizationID, id)
	if err != nil {
		u.log.Warnf("Failed to delete blocked day: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrBlockedDayNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, scope, entity.AuditActionBlockedDayDelete, "blocked_day", id.String(), nil); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}
