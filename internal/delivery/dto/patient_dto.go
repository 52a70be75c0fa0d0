package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	Name            string `json:"name" validate:"required,max=255"`
	Email           string `json:"email" validate:"omitempty,email"`
	Phone           string `json:"phone" validate:"omitempty,max=50"`
	BirthDate       string `json:"birthDate" validate:"omitempty,date"`
	Temperature     string `json:"temperature" validate:"omitempty,max=32"`
	Temperament     string `json:"temperament" validate:"omitempty,max=64"`
	Motivation      string `json:"motivation"`
	ConscienceLevel string `json:"conscienceLevel" validate:"omitempty,max=64"`
	Notes           string `json:"notes"`
}

type UpdatePatientRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Phone           *string `json:"phone" validate:"omitempty,max=50"`
	BirthDate       *string `json:"birthDate" validate:"omitempty,date"`
	Temperature     *string `json:"temperature" validate:"omitempty,max=32"`
	Temperament     *string `json:"temperament" validate:"omitempty,max=64"`
	Motivation      *string `json:"motivation"`
	ConscienceLevel *string `json:"conscienceLevel" validate:"omitempty,max=64"`
	Notes           *string `json:"notes"`
}

// Response DTOs

type PatientResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	BirthDate       string    `json:"birthDate,omitempty"`
	Temperature     string    `json:"temperature,omitempty"`
	Temperament     string    `json:"temperament,omitempty"`
	Motivation      string    `json:"motivation,omitempty"`
	ConscienceLevel string    `json:"conscienceLevel,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
