package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateBlockedDayRequest struct {
	ProfessionalID   string `json:"professionalId" validate:"required,uuid"`
	StartDate        string `json:"startDate" validate:"required,date"` // Format: YYYY-MM-DD
	EndDate          string `json:"endDate" validate:"required,date"`   // Format: YYYY-MM-DD
	Reason           string `json:"reason" validate:"required,max=500"`
	ConfirmConflicts bool   `json:"confirmConflicts"`
}

type BlockedDayQuery struct {
	ProfessionalID string `validate:"omitempty,uuid"`
	Start          string `validate:"omitempty,date"`
	End            string `validate:"omitempty,date"`
}

// Response DTOs

type BlockedDayResponse struct {
	ID             uuid.UUID `json:"id"`
	ProfessionalID uuid.UUID `json:"professionalId"`
	StartDate      string    `json:"startDate"`
	EndDate        string    `json:"endDate"`
	Reason         string    `json:"reason"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ConflictResponse is returned instead of creating the block when active
// appointments fall inside the requested range
type ConflictResponse struct {
	Conflicts            []AppointmentResponse `json:"conflicts"`
	RequiresConfirmation bool                  `json:"requiresConfirmation"`
}

// CreateBlockedDayResult holds either the created block or the conflicts
type CreateBlockedDayResult struct {
	BlockedDay *BlockedDayResponse
	Conflict   *ConflictResponse
}
