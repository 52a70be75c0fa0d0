package usecase

import (
	"context"
	"testing"

	"clinic-agenda/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAuditLogRepository struct {
	logs              []entity.AuditLog
	gotLimit, gotSkip int
}

func (r *fakeAuditLogRepository) Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error {
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeAuditLogRepository) FindByOrganization(ctx context.Context, db *gorm.DB, organizationID uuid.UUID, limit, offset int) ([]entity.AuditLog, int64, error) {
	r.gotLimit, r.gotSkip = limit, offset
	var out []entity.AuditLog
	for _, l := range r.logs {
		if l.OrganizationID == organizationID {
			out = append(out, l)
		}
	}
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func TestAuditLogUsecase_ListAuditLogs(t *testing.T) {
	scope := newScope(entity.MemberRoleAdmin)
	repo := &fakeAuditLogRepository{}
	for i := 0; i < 3; i++ {
		repo.logs = append(repo.logs, entity.AuditLog{ID: uuid.New(), OrganizationID: scope.OrganizationID, Action: entity.AuditActionPatientCreate})
	}
	repo.logs = append(repo.logs, entity.AuditLog{ID: uuid.New(), OrganizationID: uuid.New(), Action: entity.AuditActionPatientCreate})
	uc := NewAuditLogUsecase(nil, newTestLogger(), repo)

	page, err := uc.ListAuditLogs(context.Background(), scope, 0, -4)
	require.NoError(t, err)
	assert.Equal(t, 50, page.Limit)
	assert.Equal(t, 0, page.Offset)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Logs, 3)

	page, err = uc.ListAuditLogs(context.Background(), scope, 10000, 2)
	require.NoError(t, err)
	assert.Equal(t, 500, repo.gotLimit)
	assert.Equal(t, 2, repo.gotSkip)
	assert.Len(t, page.Logs, 1)
	assert.Equal(t, int64(3), page.Total)
}
