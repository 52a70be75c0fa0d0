package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateHolidayRequest struct {
	Date string `json:"date" validate:"required,date"` // Format: YYYY-MM-DD
	Name string `json:"name" validate:"required,max=255"`
	Type string `json:"type" validate:"omitempty,oneof=national local"`
}

// Response DTOs

type HolidayResponse struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}
