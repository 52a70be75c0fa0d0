package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateProfessionalRequest struct {
	Name                string `json:"name" validate:"required,max=255"`
	Email               string `json:"email" validate:"omitempty,email"`
	RoleType            string `json:"roleType" validate:"omitempty,oneof=clinical administrative"`
	Color               string `json:"color" validate:"omitempty,max=16"`
	AppointmentDuration int    `json:"appointmentDuration" validate:"omitempty,gt=0,lte=1440"`
}

type UpdateProfessionalRequest struct {
	Name                string `json:"name" validate:"omitempty,max=255"`
	Email               string `json:"email" validate:"omitempty,email"`
	RoleType            string `json:"roleType" validate:"omitempty,oneof=clinical administrative"`
	Color               string `json:"color" validate:"omitempty,max=16"`
	AppointmentDuration int    `json:"appointmentDuration" validate:"omitempty,gt=0,lte=1440"`
	Status              string `json:"status" validate:"omitempty,oneof=active invited inactive"`
}

// Response DTOs

type ProfessionalResponse struct {
	ID                  uuid.UUID  `json:"id"`
	UserID              *uuid.UUID `json:"userId,omitempty"`
	Name                string     `json:"name"`
	Email               string     `json:"email,omitempty"`
	RoleType            string     `json:"roleType"`
	Color               string     `json:"color,omitempty"`
	AppointmentDuration int        `json:"appointmentDuration"`
	Status              string     `json:"status"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}
