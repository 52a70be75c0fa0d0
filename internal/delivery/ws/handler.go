package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/event"
	"clinic-agenda/internal/tenancy"
	"clinic-agenda/internal/usecase"
	"clinic-agenda/pkg/metrics"
	"clinic-agenda/pkg/response"

	"github.com/google/uuid"
	gorillawebsocket "github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Handler upgrades authenticated requests and routes inbound socket events.
// Authentication and organization membership are enforced by the middleware
// chain in front of it.
type Handler struct {
	hub                 *Hub
	log                 *logrus.Logger
	conversationUsecase usecase.ConversationUsecase
	presenceUsecase     usecase.PresenceUsecase
	metrics             *metrics.Collector
	upgrader            gorillawebsocket.Upgrader
}

func NewHandler(
	hub *Hub,
	log *logrus.Logger,
	conversationUsecase usecase.ConversationUsecase,
	presenceUsecase usecase.PresenceUsecase,
	m *metrics.Collector,
	checkOrigin func(origin string) bool,
) *Handler {
	return &Handler{
		hub:                 hub,
		log:                 log,
		conversationUsecase: conversationUsecase,
		presenceUsecase:     presenceUsecase,
		metrics:             m,
		upgrader: gorillawebsocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return checkOrigin == nil || checkOrigin(r.Header.Get("Origin"))
			},
		},
	}
}

// ServeHTTP blocks for the lifetime of the socket
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	scope, ok := tenancy.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Organization membership is required")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnf("Failed to upgrade websocket: %v", err)
		return
	}
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	client := NewClient(scope, conn)
	h.Serve(r.Context(), client)
}

// Serve registers the client, pumps its frames and cleans up when the peer goes away
func (h *Handler) Serve(ctx context.Context, client *Client) {
	h.hub.Register(client)
	h.metrics.SocketConnected()
	h.log.WithFields(logrus.Fields{
		"client_id":       client.ID,
		"organization_id": client.Scope.OrganizationID,
		"user_id":         client.Scope.UserID,
	}).Debug("socket connected")

	go client.writePump()

	if _, err := h.presenceUsecase.UpdateStatus(ctx, client.Scope, event.StatusOnline); err != nil {
		h.log.Warnf("Failed to publish online status: %+v", err)
	}

	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			break
		}
		h.dispatch(ctx, client, raw)
	}

	h.hub.Unregister(client)
	h.metrics.SocketDisconnected()

	// other tabs of the same user keep the status alive
	if h.hub.RoomCount(client.Scope.OrganizationID, ownRoom(client.Scope)) == 0 {
		if _, err := h.presenceUsecase.UpdateStatus(context.WithoutCancel(ctx), client.Scope, event.StatusOffline); err != nil {
			h.log.Warnf("Failed to publish offline status: %+v", err)
		}
	}
}

func (h *Handler) dispatch(ctx context.Context, client *Client, raw []byte) {
	var envelope event.Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		h.sendError(client, "invalid frame", "")
		return
	}

	switch envelope.Event {
	case event.JoinRoom:
		var req event.JoinRoomRequest
		if err := json.Unmarshal(envelope.Data, &req); err != nil {
			h.sendError(client, "invalid join_room payload", "")
			return
		}
		if req.Room != ownRoom(client.Scope) {
			h.sendError(client, "cannot join another user's room", "")
			return
		}
		h.hub.Join(client, req.Room)

	case event.SendMessage:
		var req event.SendMessageRequest
		if err := json.Unmarshal(envelope.Data, &req); err != nil {
			h.sendError(client, "invalid send_message payload", "")
			return
		}
		conversationID, err := uuid.Parse(req.ConversationID)
		if err != nil {
			h.sendError(client, "invalid conversation id", req.TempID)
			return
		}
		// the echo to the sender arrives through the outbox like every other member
		_, err = h.conversationUsecase.SendMessage(ctx, client.Scope, conversationID, &dto.SendMessageRequest{
			Content: req.Content,
			TempID:  req.TempID,
		})
		if err != nil {
			h.sendError(client, sendErrorMessage(err), req.TempID)
			if !isClientError(err) {
				h.log.Warnf("Failed to send socket message: %+v", err)
			}
		}

	case event.UpdateStatus:
		var req event.UpdateStatusRequest
		if err := json.Unmarshal(envelope.Data, &req); err != nil {
			h.sendError(client, "invalid update_status payload", "")
			return
		}
		if _, err := h.presenceUsecase.UpdateStatus(ctx, client.Scope, req.Status); err != nil {
			h.sendError(client, err.Error(), "")
		}

	default:
		h.sendError(client, "unknown event", "")
	}
}

func (h *Handler) sendError(client *Client, message, tempID string) {
	frame, err := event.NewEnvelope(event.Error, event.ErrorPayload{Message: message, TempID: tempID})
	if err != nil {
		return
	}
	client.enqueue(frame)
}

func isClientError(err error) bool {
	return errors.Is(err, usecase.ErrConversationNotFound) ||
		errors.Is(err, usecase.ErrNoProfessionalLink) ||
		errors.Is(err, usecase.ErrEmptyMessage)
}

func sendErrorMessage(err error) string {
	if isClientError(err) {
		return err.Error()
	}
	return "failed to send message"
}
