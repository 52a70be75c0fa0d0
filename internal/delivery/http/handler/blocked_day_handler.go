package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/usecase"
	"clinic-agenda/pkg/response"
	"clinic-agenda/pkg/validator"
)

type BlockedDayHandler struct {
	blockedDayUsecase usecase.BlockedDayUsecase
	validator         *validator.CustomValidator
}

func NewBlockedDayHandler(blockedDayUsecase usecase.BlockedDayUsecase, validator *validator.CustomValidator) *BlockedDayHandler {
	return &BlockedDayHandler{
		blockedDayUsecase: blockedDayUsecase,
		validator:         validator,
	}
}

func (h *BlockedDayHandler) CreateBlockedDay(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}

	var req dto.CreateBlockedDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.blockedDayUsecase.CreateBlockedDay(r.Context(), scope, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidID), errors.Is(err, usecase.ErrInvalidDate):
			response.BadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrInvalidDateRange):
			response.BadRequest(w, "Start date must not be after end date")
		case errors.Is(err, usecase.ErrProfessionalNotFound):
			response.NotFound(w, "Professional not found")
		default:
			response.DatabaseError(w, "Failed to create blocked day", err)
		}
		return
	}

	if result.Conflict != nil {
		response.Success(w, http.StatusOK, "Appointments found in the requested period", result.Conflict)
		return
	}

	response.Success(w, http.StatusCreated, "Blocked day created successfully", result.BlockedDay)
}

func (h *BlockedDayHandler) ListBlockedDays(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := dto.BlockedDayQuery{
		ProfessionalID: query.Get("professionalId"),
		Start:          query.Get("start"),
		End:            query.Get("end"),
	}
	if err := h.validator.Validate(&filter); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	blockedDays, err := h.blockedDayUsecase.ListBlockedDays(r.Context(), scope, &filter)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidID) {
			response.BadRequest(w, "Invalid professional ID")
			return
		}
		response.DatabaseError(w, "Failed to get blocked days", err)
		return
	}

	response.Success(w, http.StatusOK, "Blocked days retrieved successfully", blockedDays)
}

func (h *BlockedDayHandler) DeleteBlockedDay(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "blocked day")
	if !ok {
		return
	}

	if err := h.blockedDayUsecase.DeleteBlockedDay(r.Context(), scope, id); err != nil {
		if errors.Is(err, usecase.ErrBlockedDayNotFound) {
			response.NotFound(w, "Blocked day not found")
			return
		}
		response.DatabaseError(w, "Failed to delete blocked day", err)
		return
	}

	response.Success(w, http.StatusOK, "Blocked day deleted successfully", nil)
}
