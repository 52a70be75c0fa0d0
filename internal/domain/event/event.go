// Package event defines the realtime events exchanged over the socket relay.
package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Socket event names
const (
	JoinRoom       = "join_room"
	SendMessage    = "send_message"
	ReceiveMessage = "receive_message"
	UpdateStatus   = "update_status"
	StatusChange   = "status_change"
	Error          = "error"
)

// Presence statuses
const (
	StatusOnline  = "online"
	StatusBusy    = "busy"
	StatusOffline = "offline"
)

func IsValidStatus(status string) bool {
	switch status {
	case StatusOnline, StatusBusy, StatusOffline:
		return true
	}
	return false
}

// Envelope is the wire frame of every socket message
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// NewEnvelope encodes data and wraps it under the given event name
func NewEnvelope(name string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: name, Data: raw})
}

// Publisher delivers encoded envelopes to connected sockets
type Publisher interface {
	// PublishToRooms sends the frame to every socket joined to any of the rooms
	PublishToRooms(organizationID uuid.UUID, rooms []string, frame []byte)
	// PublishToOrganization sends the frame to every socket of the organization
	PublishToOrganization(organizationID uuid.UUID, frame []byte)
}

// RoomForUser is the room every socket of a user joins
func RoomForUser(userID uuid.UUID) string {
	return userID.String()
}

// MessagePayload is the body of receive_message
type MessagePayload struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversationId"`
	SenderID       uuid.UUID `json:"senderId"`
	Content        string    `json:"content"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
	TempID         string    `json:"tempId,omitempty"`
}

// StatusPayload is the body of status_change
type StatusPayload struct {
	UserID         uuid.UUID `json:"userId"`
	OrganizationID uuid.UUID `json:"organizationId"`
	Status         string    `json:"status"`
}

// SendMessageRequest is the body of send_message
type SendMessageRequest struct {
	ConversationID string `json:"conversationId"`
	Content        string `json:"content"`
	TempID         string `json:"tempId,omitempty"`
}

// UpdateStatusRequest is the body of update_status
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// JoinRoomRequest is the body of join_room
type JoinRoomRequest struct {
	Room string `json:"room"`
}

// ErrorPayload is the body of error
type ErrorPayload struct {
	Message string `json:"message"`
	TempID  string `json:"tempId,omitempty"`
}
