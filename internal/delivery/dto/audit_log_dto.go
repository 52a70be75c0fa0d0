package dto

import (
	"time"

	"clinic-agenda/internal/domain/entity"

	"github.com/google/uuid"
)

// Response DTOs

type AuditLogResponse struct {
	ID        uuid.UUID   `json:"id"`
	UserID    *uuid.UUID  `json:"userId,omitempty"`
	Action    string      `json:"action"`
	Metadata  entity.JSON `json:"metadata,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// AuditLogPage is one offset page of an organization's audit trail
type AuditLogPage struct {
	Logs   []AuditLogResponse
	Total  int64
	Limit  int
	Offset int
}
