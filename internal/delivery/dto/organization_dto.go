package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateOrganizationRequest struct {
	Name             string `json:"name" validate:"required,max=255"`
	ProfessionalName string `json:"professionalName" validate:"omitempty,max=255"`
}

type CreateInvitationRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=255"`
	Role     string `json:"role" validate:"omitempty,oneof=admin member"`
	RoleType string `json:"roleType" validate:"omitempty,oneof=clinical administrative"`
}

type AcceptInvitationRequest struct {
	InvitationID string `json:"invitationId" validate:"required,uuid"`
	Token        string `json:"token" validate:"required"`
}

// Response DTOs

type OrganizationResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	SubscriptionStatus string    `json:"subscriptionStatus"`
	Role               string    `json:"role,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

type MemberResponse struct {
	ID         uuid.UUID  `json:"id"`
	UserID     *uuid.UUID `json:"userId,omitempty"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Status     string     `json:"status"`
	InvitedAt  *time.Time `json:"invitedAt,omitempty"`
	AcceptedAt *time.Time `json:"acceptedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// InvitationResponse carries the one-time token; only its hash is stored
type InvitationResponse struct {
	InvitationID   uuid.UUID `json:"invitationId"`
	ProfessionalID uuid.UUID `json:"professionalId"`
	Email          string    `json:"email"`
	Token          string    `json:"token"`
}
