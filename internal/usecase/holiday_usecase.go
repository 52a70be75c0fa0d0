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
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrHolidayNotFound = errors.New("holiday not found")
	ErrHolidayExists   = errors.New("holiday already exists for this date and type")
	ErrInvalidYear     = errors.New("invalid year")
)

type HolidayUsecase interface {
	ListHolidays(ctx context.Context, scope tenancy.Scope, year int) (*dto.ListResponse[dto.HolidayResponse], error)
	CreateHoliday(ctx context.Context, scope tenancy.Scope, req *dto.CreateHolidayRequest) (*dto.HolidayResponse, error)
	DeleteHoliday(ctx context.Context, scope tenancy.Scope, id uuid.UUID) error
}

type holidayUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	holidayRepo  repository.HolidayRepository
	auditService service.AuditService
}

func NewHolidayUsecase(db *gorm.DB, log *logrus.Logger, holidayRepo repository.HolidayRepository, auditService service.AuditService) HolidayUsecase {
	return &holidayUsecase{
		db:           db,
		log:          log,
		holidayRepo:  holidayRepo,
		auditService: auditService,
	}
}

func (u *holidayUsecase) ListHolidays(ctx context.Context, scope tenancy.Scope, year int) (*dto.ListResponse[dto.HolidayResponse], error) {
	if year < 1900 || year > 9999 {
		return nil, ErrInvalidYear
	}

	holidays, err := u.holidayRepo.FindByYear(ctx, u.db, scope.OrganizationID, year)
	if err != nil {
		u.log.Warnf("Failed to find holidays: %+v", err)
		return nil, err
	}

	return dto.NewListResponse(converter.HolidaysToResponses(holidays)), nil
}

func (u *holidayUsecase) CreateHoliday(ctx context.Context, scope tenancy.Scope, req *dto.CreateHolidayRequest) (*dto.HolidayResponse, error) {
	date, err := entity.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	holiday := &entity.Holiday{
		OrganizationID: scope.OrganizationID,
		Date:           date,
		Name:           req.Name,
		Type:           req.Type,
	}
	if holiday.Type == "" {
		holiday.Type = entity.HolidayTypeLocal
	}

	if err := u.holidayRepo.Create(ctx, tx, holiday); err != nil {
		if isDuplicateKeyError(err, "holidays") {
			return nil, ErrHolidayExists
		}
		u.log.Warnf("Failed to create holiday: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, scope, entity.AuditActionHolidayCreate, "holiday", holiday.ID.String(), converter.HolidayToResponse(holiday)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.HolidayToResponse(holiday), nil
}

func (u *holidayUsecase) DeleteHoliday(ctx context.Context, scope tenancy.Scope, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.holidayRepo.Delete(ctx, tx, scope.OrganizationID, id)
	if err != nil {
		u.log.Warnf("Failed to delete holiday: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrHolidayNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, scope, entity.AuditActionHolidayDelete, "holiday", id.String(), nil); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}
