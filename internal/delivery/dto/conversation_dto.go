package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateConversationRequest struct {
	Type            string   `json:"type" validate:"required,oneof=direct group"`
	Name            string   `json:"name" validate:"required_if=Type group,max=255"`
	ProfessionalIDs []string `json:"professionalIds" validate:"required,min=1,dive,uuid"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=10000"`
	TempID  string `json:"tempId" validate:"omitempty,max=100"`
}

type MessageQuery struct {
	Limit  int
	Before *time.Time
}

// Response DTOs

type ConversationMemberResponse struct {
	ProfessionalID uuid.UUID  `json:"professionalId"`
	UserID         *uuid.UUID `json:"userId,omitempty"`
	Name           string     `json:"name,omitempty"`
}

type ConversationResponse struct {
	ID        uuid.UUID                    `json:"id"`
	Type      string                       `json:"type"`
	Name      string                       `json:"name,omitempty"`
	CreatedBy *uuid.UUID                   `json:"createdBy,omitempty"`
	Members   []ConversationMemberResponse `json:"members"`
	CreatedAt time.Time                    `json:"createdAt"`
	UpdatedAt time.Time                    `json:"updatedAt"`
}

type MessageResponse struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversationId"`
	SenderID       uuid.UUID `json:"senderId"`
	Content        string    `json:"content"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
	TempID         string    `json:"tempId,omitempty"`
}

type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}
