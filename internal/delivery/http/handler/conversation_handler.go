package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/usecase"
	"clinic-agenda/pkg/response"
	"clinic-agenda/pkg/validator"
)

type ConversationHandler struct {
	conversationUsecase usecase.ConversationUsecase
	validator           *validator.CustomValidator
}

func NewConversationHandler(conversationUsecase usecase.ConversationUsecase, validator *validator.CustomValidator) *ConversationHandler {
	return &ConversationHandler{
		conversationUsecase: conversationUsecase,
		validator:           validator,
	}
}

func (h *ConversationHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}

	conversations, err := h.conversationUsecase.ListConversations(r.Context(), scope)
	if err != nil {
		h.writeError(w, err, "Failed to get conversations")
		return
	}

	response.Success(w, http.StatusOK, "Conversations retrieved successfully", conversations)
}

func (h *ConversationHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}

	var req dto.CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	conversation, err := h.conversationUsecase.CreateConversation(r.Context(), scope, &req)
	if err != nil {
		h.writeError(w, err, "Failed to create conversation")
		return
	}

	response.Success(w, http.StatusCreated, "Conversation created successfully", conversation)
}

func (h *ConversationHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "conversation")
	if !ok {
		return
	}

	query := &dto.MessageQuery{Limit: queryInt(r, "limit", 0)}
	if raw := r.URL.Query().Get("before"); raw != "" {
		before, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			response.BadRequest(w, "Invalid before cursor, use RFC 3339")
			return
		}
		query.Before = &before
	}

	messages, err := h.conversationUsecase.ListMessages(r.Context(), scope, id, query)
	if err != nil {
		h.writeError(w, err, "Failed to get messages")
		return
	}

	response.Success(w, http.StatusOK, "Messages retrieved successfully", messages)
}

func (h *ConversationHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "conversation")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	message, err := h.conversationUsecase.SendMessage(r.Context(), scope, id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to send message")
		return
	}

	response.Success(w, http.StatusCreated, "Message sent successfully", message)
}

func (h *ConversationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "conversation")
	if !ok {
		return
	}

	result, err := h.conversationUsecase.MarkRead(r.Context(), scope, id)
	if err != nil {
		h.writeError(w, err, "Failed to mark messages as read")
		return
	}

	response.Success(w, http.StatusOK, "Messages marked as read", result)
}

func (h *ConversationHandler) writeError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, usecase.ErrConversationNotFound):
		response.NotFound(w, "Conversation not found")
	case errors.Is(err, usecase.ErrNoProfessionalLink):
		response.Forbidden(w, "You have no professional profile in this organization")
	case errors.Is(err, usecase.ErrProfessionalNotFound):
		response.NotFound(w, "Professional not found")
	case errors.Is(err, usecase.ErrInvalidConversation), errors.Is(err, usecase.ErrInvalidID),
		errors.Is(err, usecase.ErrEmptyMessage):
		response.BadRequest(w, err.Error())
	default:
		response.DatabaseError(w, message, err)
	}
}
