package usecase

import (
	"context"
	"testing"

	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeHolidayRepository struct {
	items  []*entity.Holiday
	seeded []uuid.UUID
}

func (r *fakeHolidayRepository) Create(ctx context.Context, db *gorm.DB, h *entity.Holiday) error {
	for _, existing := range r.items {
		if existing.OrganizationID == h.OrganizationID && existing.Date.Equal(h.Date) && existing.Type == h.Type {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_holidays_org_date_type"}
		}
	}
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	r.items = append(r.items, h)
	return nil
}

func (r *fakeHolidayRepository) FindByYear(ctx context.Context, db *gorm.DB, organizationID uuid.UUID, year int) ([]entity.Holiday, error) {
	var out []entity.Holiday
	for _, h := range r.items {
		if h.OrganizationID == organizationID && h.Date.Year() == year {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (r *fakeHolidayRepository) Delete(ctx context.Context, db *gorm.DB, organizationID, id uuid.UUID) (int64, error) {
	for i, h := range r.items {
		if h.ID == id && h.OrganizationID == organizationID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeHolidayRepository) SeedFromCalendar(ctx context.Context, db *gorm.DB, organizationID uuid.UUID) (int64, error) {
	r.seeded = append(r.seeded, organizationID)
	return 24, nil
}

func TestCreateHoliday_DefaultTypeAndDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	scope := newScope("admin")
	repo := &fakeHolidayRepository{}
	audit := &fakeAuditService{}
	uc := NewHolidayUsecase(db, newTestLogger(), repo, audit)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := uc.CreateHoliday(context.Background(), scope, &dto.CreateHolidayRequest{Date: "2026-08-15", Name: "Aniversário da cidade"})
	require.NoError(t, err)
	assert.Equal(t, entity.HolidayTypeLocal, resp.Type)
	assert.Equal(t, "2026-08-15", resp.Date)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = uc.CreateHoliday(context.Background(), scope, &dto.CreateHolidayRequest{Date: "2026-08-15", Name: "Outro", Type: entity.HolidayTypeLocal})
	assert.ErrorIs(t, err, ErrHolidayExists)

	// same date with another type is a different holiday
	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = uc.CreateHoliday(context.Background(), scope, &dto.CreateHolidayRequest{Date: "2026-08-15", Name: "Assunção", Type: entity.HolidayTypeNational})
	require.NoError(t, err)

	assert.Len(t, audit.calls, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListHolidays(t *testing.T) {
	db, mock := newMockDB(t)
	scope := newScope("member")
	d2026, _ := entity.ParseDate("2026-12-25")
	d2027, _ := entity.ParseDate("2027-01-01")
	repo := &fakeHolidayRepository{items: []*entity.Holiday{
		{ID: uuid.New(), OrganizationID: scope.OrganizationID, Date: d2026, Name: "Natal", Type: entity.HolidayTypeNational},
		{ID: uuid.New(), OrganizationID: scope.OrganizationID, Date: d2027, Name: "Confraternização", Type: entity.HolidayTypeNational},
		{ID: uuid.New(), OrganizationID: uuid.New(), Date: d2026, Name: "Natal", Type: entity.HolidayTypeNational},
	}}
	uc := NewHolidayUsecase(db, newTestLogger(), repo, &fakeAuditService{})

	resp, err := uc.ListHolidays(context.Background(), scope, 2026)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Natal", resp.Items[0].Name)

	_, err = uc.ListHolidays(context.Background(), scope, 0)
	assert.ErrorIs(t, err, ErrInvalidYear)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateHoliday_InvalidDate(t *testing.T) {
	db, _ := newMockDB(t)
	uc := NewHolidayUsecase(db, newTestLogger(), &fakeHolidayRepository{}, &fakeAuditService{})

	_, err := uc.CreateHoliday(context.Background(), newScope("owner"), &dto.CreateHolidayRequest{Date: "15/08/2026", Name: "x"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}
