package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID      string           `json:"patientId" validate:"required,uuid"`
	ProfessionalID string           `json:"professionalId" validate:"omitempty,uuid"`
	Date           string           `json:"date" validate:"required,date"`  // Format: YYYY-MM-DD
	Time           string           `json:"time" validate:"required,clock"` // Format: HH:MM
	Duration       int              `json:"duration" validate:"omitempty,gt=0,lte=1440"`
	Status         string           `json:"status" validate:"omitempty,oneof=agendado confirmado aguardando em_atendimento finalizado faltou cancelado"`
	Price          *decimal.Decimal `json:"price"`
	Notes          string           `json:"notes" validate:"max=5000"`
}

type UpdateAppointmentRequest struct {
	PatientID      string           `json:"patientId" validate:"omitempty,uuid"`
	ProfessionalID string           `json:"professionalId" validate:"omitempty,uuid"`
	Date           string           `json:"date" validate:"omitempty,date"`
	Time           string           `json:"time" validate:"omitempty,clock"`
	Duration       int              `json:"duration" validate:"omitempty,gt=0,lte=1440"`
	Status         string           `json:"status" validate:"omitempty,oneof=agendado confirmado aguardando em_atendimento finalizado faltou cancelado"`
	Price          *decimal.Decimal `json:"price"`
	Notes          *string          `json:"notes" validate:"omitempty,max=5000"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=agendado confirmado aguardando em_atendimento finalizado faltou cancelado"`
}

type AppointmentQuery struct {
	ProfessionalID string `validate:"omitempty,uuid"`
	PatientID      string `validate:"omitempty,uuid"`
	Status         string `validate:"omitempty,oneof=agendado confirmado aguardando em_atendimento finalizado faltou cancelado"`
	Start          string `validate:"omitempty,date"`
	End            string `validate:"omitempty,date"`
}

// Response DTOs

type AppointmentResponse struct {
	ID               uuid.UUID        `json:"id"`
	PatientID        uuid.UUID        `json:"patientId"`
	PatientName      string           `json:"patientName,omitempty"`
	ProfessionalID   *uuid.UUID       `json:"professionalId,omitempty"`
	ProfessionalName string           `json:"professionalName,omitempty"`
	Date             string           `json:"date"`
	Time             string           `json:"time"`
	EndTime          string           `json:"endTime"`
	StartAt          string           `json:"startAt"` // naive wall clock, no offset
	EndAt            string           `json:"endAt"`
	Duration         int              `json:"duration"`
	Status           string           `json:"status"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}
