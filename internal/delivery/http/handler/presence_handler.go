package handler

import (
	"net/http"

	"clinic-agenda/internal/usecase"
	"clinic-agenda/pkg/response"
)

type PresenceHandler struct {
	presenceUsecase usecase.PresenceUsecase
}

func NewPresenceHandler(presenceUsecase usecase.PresenceUsecase) *PresenceHandler {
	return &PresenceHandler{
		presenceUsecase: presenceUsecase,
	}
}

func (h *PresenceHandler) ListPresence(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}

	presence, err := h.presenceUsecase.ListPresence(r.Context(), scope)
	if err != nil {
		response.InternalServerError(w, "Failed to get presence")
		return
	}

	response.Success(w, http.StatusOK, "Presence retrieved successfully", presence)
}
