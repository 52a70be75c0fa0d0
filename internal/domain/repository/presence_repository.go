package repository

import (
	"context"

	"github.com/google/uuid"
)

// PresenceRepository keeps the online status of users per organization
type PresenceRepository interface {
	Set(ctx context.Context, organizationID, userID uuid.UUID, status string) error
	Remove(ctx context.Context, organizationID, userID uuid.UUID) error
	List(ctx context.Context, organizationID uuid.UUID) (map[string]string, error)
}
