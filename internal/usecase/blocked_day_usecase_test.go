package usecase

import (
	"context"
	"errors"
	"testing"

	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAppointmentRepository struct {
	items         map[uuid.UUID]*entity.Appointment
	created       []*entity.Appointment
	updated       int
	statusUpdated int
	createErr     error
}

func newFakeAppointmentRepository(items ...*entity.Appointment) *fakeAppointmentRepository {
	r := &fakeAppointmentRepository{items: map[uuid.UUID]*entity.Appointment{}}
	for _, a := range items {
		r.items[a.ID] = a
	}
	return r
}

func (r *fakeAppointmentRepository) Create(ctx context.Context, db *gorm.DB, a *entity.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.items[a.ID] = a
	r.created = append(r.created, a)
	return nil
}

func (r *fakeAppointmentRepository) FindByID(ctx context.Context, db *gorm.DB, organizationID, id uuid.UUID) (*entity.Appointment, error) {
	a, ok := r.items[id]
	if !ok || a.OrganizationID != organizationID {
		return nil, nil
	}
	return a, nil
}

func (r *fakeAppointmentRepository) FindAll(ctx context.Context, db *gorm.DB, organizationID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range r.items {
		if a.OrganizationID == organizationID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepository) FindActiveInRange(ctx context.Context, db *gorm.DB, organizationID, professionalID uuid.UUID, startDate, endDate string) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range r.items {
		if a.OrganizationID != organizationID || a.ProfessionalID == nil || *a.ProfessionalID != professionalID {
			continue
		}
		if day := a.Date(); day >= startDate && day <= endDate && a.Status.IsActive() {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepository) Update(ctx context.Context, db *gorm.DB, a *entity.Appointment) error {
	r.items[a.ID] = a
	r.updated++
	return nil
}

func (r *fakeAppointmentRepository) UpdateStatus(ctx context.Context, db *gorm.DB, organizationID, id uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	a, ok := r.items[id]
	if !ok || a.OrganizationID != organizationID {
		return 0, nil
	}
	a.Status = status
	r.statusUpdated++
	return 1, nil
}

func (r *fakeAppointmentRepository) Delete(ctx context.Context, db *gorm.DB, organizationID, id uuid.UUID) (int64, error) {
	if a, ok := r.items[id]; ok && a.OrganizationID == organizationID {
		delete(r.items, id)
		return 1, nil
	}
	return 0, nil
}

type fakeBlockedDayRepository struct {
	items     []*entity.BlockedDay
	createErr error
}

func (r *fakeBlockedDayRepository) Create(ctx context.Context, db *gorm.DB, b *entity.BlockedDay) error {
	if r.createErr != nil {
		return r.createErr
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.items = append(r.items, b)
	return nil
}

func (r *fakeBlockedDayRepository) FindAll(ctx context.Context, db *gorm.DB, organizationID uuid.UUID, filter *entity.BlockedDayFilter) ([]entity.BlockedDay, error) {
	var out []entity.BlockedDay
	for _, b := range r.items {
		if b.OrganizationID == organizationID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBlockedDayRepository) FindCovering(ctx context.Context, db *gorm.DB, organizationID, professionalID uuid.UUID, day string) (*entity.BlockedDay, error) {
	t, err := entity.ParseDate(day)
	if err != nil {
		return nil, err
	}
	for _, b := range r.items {
		if b.OrganizationID == organizationID && b.ProfessionalID == professionalID && b.Covers(t) {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBlockedDayRepository) Delete(ctx context.Context, db *gorm.DB, organizationID, id uuid.UUID) (int64, error) {
	for i, b := range r.items {
		if b.ID == id && b.OrganizationID == organizationID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func newAppointment(t *testing.T, orgID uuid.UUID, professionalID *uuid.UUID, date, clock string, status entity.AppointmentStatus) *entity.Appointment {
	t.Helper()
	a := &entity.Appointment{ID: uuid.New(), OrganizationID: orgID, PatientID: uuid.New(), ProfessionalID: professionalID, Status: status}
	require.NoError(t, a.Schedule(date, clock, 50))
	return a
}

type blockedDayFixture struct {
	usecase      BlockedDayUsecase
	blockedDays  *fakeBlockedDayRepository
	audit        *fakeAuditService
	professional *entity.Professional
}

func newBlockedDayFixture(t *testing.T, db *gorm.DB, orgID uuid.UUID, appointments ...*entity.Appointment) *blockedDayFixture {
	professional := &entity.Professional{ID: uuid.New(), OrganizationID: orgID, Name: "Dra. Ana"}
	for _, a := range appointments {
		if a.ProfessionalID == nil {
			a.ProfessionalID = &professional.ID
		}
	}
	f := &blockedDayFixture{
		blockedDays:  &fakeBlockedDayRepository{},
		audit:        &fakeAuditService{},
		professional: professional,
	}
	f.usecase = NewBlockedDayUsecase(db, newTestLogger(), f.blockedDays, newFakeAppointmentRepository(appointments...),
		newFakeProfessionalRepository(professional), f.audit, nil)
	return f
}

func TestCreateBlockedDay_NoConflicts(t *testing.T) {
	db, mock := newMockDB(t)
	scope := newScope("owner")
	f := newBlockedDayFixture(t, db, scope.OrganizationID)

	mock.ExpectBegin()
	mock.ExpectCommit()

	result, err := f.usecase.CreateBlockedDay(context.Background(), scope, &dto.CreateBlockedDayRequest{
		ProfessionalID: f.professional.ID.String(),
		StartDate:      "2026-03-01",
		EndDate:        "2026-03-05",
		Reason:         "Congresso",
	})
	require.NoError(t, err)
	require.NotNil(t, result.BlockedDay)
	assert.Nil(t, result.Conflict)
	assert.Equal(t, "2026-03-01", result.BlockedDay.StartDate)
	assert.Equal(t, "2026-03-05", result.BlockedDay.EndDate)
	assert.Len(t, f.blockedDays.items, 1)
	assert.Equal(t, []string{entity.AuditActionBlockedDayCreate}, f.audit.actions())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBlockedDay_ConflictThenConfirm(t *testing.T) {
	db, mock := newMockDB(t)
	scope := newScope("owner")

	inside := newAppointment(t, scope.OrganizationID, nil, "2026-03-03", "10:00", entity.AppointmentScheduled)
	cancelled := newAppointment(t, scope.OrganizationID, nil, "2026-03-04", "09:00", entity.AppointmentCancelled)
	outside := newAppointment(t, scope.OrganizationID, nil, "2026-03-06", "09:00", entity.AppointmentConfirmed)
	f := newBlockedDayFixture(t, db, scope.OrganizationID, inside, cancelled, outside)

	req := &dto.CreateBlockedDayRequest{
		ProfessionalID: f.professional.ID.String(),
		StartDate:      "2026-03-01",
		EndDate:        "2026-03-05",
		Reason:         "Férias",
	}

	mock.ExpectBegin()
	mock.ExpectRollback()

	result, err := f.usecase.CreateBlockedDay(context.Background(), scope, req)
	require.NoError(t, err)
	require.NotNil(t, result.Conflict)
	assert.Nil(t, result.BlockedDay)
	assert.True(t, result.Conflict.RequiresConfirmation)
	require.Len(t, result.Conflict.Conflicts, 1)
	assert.Equal(t, inside.ID, result.Conflict.Conflicts[0].ID)
	assert.Equal(t, "2026-03-03", result.Conflict.Conflicts[0].Date)
	assert.Empty(t, f.blockedDays.items)
	assert.Empty(t, f.audit.calls)

	mock.ExpectBegin()
	mock.ExpectCommit()

	req.ConfirmConflicts = true
	result, err = f.usecase.CreateBlockedDay(context.Background(), scope, req)
	require.NoError(t, err)
	require.NotNil(t, result.BlockedDay)
	assert.Len(t, f.blockedDays.items, 1)
	assert.Equal(t, entity.AppointmentScheduled, inside.Status)

	require.Len(t, f.audit.calls, 1)
	assert.Equal(t, []string{inside.ID.String()}, f.audit.calls[0].metadata["overridden_conflicts"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBlockedDay_Validation(t *testing.T) {
	db, _ := newMockDB(t)
	scope := newScope("owner")
	f := newBlockedDayFixture(t, db, scope.OrganizationID)

	tests := []struct {
		name string
		req  dto.CreateBlockedDayRequest
		want error
	}{
		{"bad professional id", dto.CreateBlockedDayRequest{ProfessionalID: "x", StartDate: "2026-03-01", EndDate: "2026-03-02"}, ErrInvalidID},
		{"bad start date", dto.CreateBlockedDayRequest{ProfessionalID: uuid.NewString(), StartDate: "2026-13-01", EndDate: "2026-03-02"}, ErrInvalidDate},
		{"inverted range", dto.CreateBlockedDayRequest{ProfessionalID: uuid.NewString(), StartDate: "2026-03-05", EndDate: "2026-03-01"}, ErrInvalidDateRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.usecase.CreateBlockedDay(context.Background(), scope, &tt.req)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestCreateBlockedDay_ProfessionalFromOtherOrganization(t *testing.T) {
	db, mock := newMockDB(t)
	scope := newScope("owner")
	f := newBlockedDayFixture(t, db, uuid.New())

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := f.usecase.CreateBlockedDay(context.Background(), scope, &dto.CreateBlockedDayRequest{
		ProfessionalID: f.professional.ID.String(),
		StartDate:      "2026-03-01",
		EndDate:        "2026-03-01",
	})
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBlockedDay_ProfessionalRemovedBeforeInsert(t *testing.T) {
	db, mock := newMockDB(t)
	scope := newScope("owner")
	f := newBlockedDayFixture(t, db, scope.OrganizationID)
	f.blockedDays.createErr = &pgconn.PgError{Code: "23503", ConstraintName: "blocked_days_professional_id_fkey"}

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := f.usecase.CreateBlockedDay(context.Background(), scope, &dto.CreateBlockedDayRequest{
		ProfessionalID: f.professional.ID.String(),
		StartDate:      "2026-03-01",
		EndDate:        "2026-03-01",
	})
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
	assert.Empty(t, f.audit.actions())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBlockedDay(t *testing.T) {
	db, mock := newMockDB(t)
	scope := newScope("admin")
	f := newBlockedDayFixture(t, db, scope.OrganizationID)
	block := &entity.BlockedDay{ID: uuid.New(), OrganizationID: scope.OrganizationID, ProfessionalID: f.professional.ID}
	f.blockedDays.items = append(f.blockedDays.items, block)

	mock.ExpectBegin()
	mock.ExpectCommit()
	require.NoError(t, f.usecase.DeleteBlockedDay(context.Background(), scope, block.ID))
	assert.Empty(t, f.blockedDays.items)

	mock.ExpectBegin()
	mock.ExpectRollback()
	assert.ErrorIs(t, f.usecase.DeleteBlockedDay(context.Background(), scope, block.ID), ErrBlockedDayNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
