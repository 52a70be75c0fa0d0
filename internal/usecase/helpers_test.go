package usecase

import (
	"context"
	"io"
	"testing"

	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/tenancy"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newScope(role string) tenancy.Scope {
	return tenancy.Scope{OrganizationID: uuid.New(), UserID: uuid.New(), Email: "owner@clinic.test", Role: role}
}

type auditCall struct {
	action   string
	metadata entity.JSON
}

type fakeAuditService struct {
	calls []auditCall
	err   error
}

func (f *fakeAuditService) record(action string, metadata entity.JSON) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, auditCall{action: action, metadata: metadata})
	return nil
}

func (f *fakeAuditService) LogCreate(ctx context.Context, tx *gorm.DB, scope tenancy.Scope, action, entityName, entityID string, newValue interface{}) error {
	return f.record(action, entity.JSON{"entity": entityName, "entity_id": entityID})
}

func (f *fakeAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, scope tenancy.Scope, action, entityName, entityID string, oldValue, newValue interface{}) error {
	return f.record(action, entity.JSON{"entity": entityName, "entity_id": entityID})
}

func (f *fakeAuditService) LogDelete(ctx context.Context, tx *gorm.DB, scope tenancy.Scope, action, entityName, entityID string, oldValue interface{}) error {
	return f.record(action, entity.JSON{"entity": entityName, "entity_id": entityID})
}

func (f *fakeAuditService) Log(ctx context.Context, tx *gorm.DB, scope tenancy.Scope, action string, metadata entity.JSON) error {
	return f.record(action, metadata)
}

func (f *fakeAuditService) actions() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.action
	}
	return out
}

// fakeProfessionalRepository keeps professionals in memory keyed by id
type fakeProfessionalRepository struct {
	items map[uuid.UUID]*entity.Professional
}

func newFakeProfessionalRepository(items ...*entity.Professional) *fakeProfessionalRepository {
	r := &fakeProfessionalRepository{items: map[uuid.UUID]*entity.Professional{}}
	for _, p := range items {
		r.items[p.ID] = p
	}
	return r
}

func (r *fakeProfessionalRepository) Create(ctx context.Context, db *gorm.DB, p *entity.Professional) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.items[p.ID] = p
	return nil
}

func (r *fakeProfessionalRepository) FindByID(ctx context.Context, db *gorm.DB, organizationID, id uuid.UUID) (*entity.Professional, error) {
	p, ok := r.items[id]
	if !ok || p.OrganizationID != organizationID {
		return nil, nil
	}
	return p, nil
}

func (r *fakeProfessionalRepository) FindByIDs(ctx context.Context, db *gorm.DB, organizationID uuid.UUID, ids []uuid.UUID) ([]entity.Professional, error) {
	var out []entity.Professional
	for _, id := range ids {
		if p, ok := r.items[id]; ok && p.OrganizationID == organizationID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProfessionalRepository) FindByUserID(ctx context.Context, db *gorm.DB, organizationID, userID uuid.UUID) (*entity.Professional, error) {
	for _, p := range r.items {
		if p.OrganizationID == organizationID && p.UserID != nil && *p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProfessionalRepository) FindByEmail(ctx context.Context, db *gorm.DB, organizationID uuid.UUID, email string) (*entity.Professional, error) {
	for _, p := range r.items {
		if p.OrganizationID == organizationID && p.Email == email {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProfessionalRepository) FindAll(ctx context.Context, db *gorm.DB, organizationID uuid.UUID) ([]entity.Professional, error) {
	var out []entity.Professional
	for _, p := range r.items {
		if p.OrganizationID == organizationID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProfessionalRepository) Update(ctx context.Context, db *gorm.DB, p *entity.Professional) error {
	r.items[p.ID] = p
	return nil
}

func (r *fakeProfessionalRepository) Delete(ctx context.Context, db *gorm.DB, organizationID, id uuid.UUID) (int64, error) {
	if p, ok := r.items[id]; ok && p.OrganizationID == organizationID {
		delete(r.items, id)
		return 1, nil
	}
	return 0, nil
}
