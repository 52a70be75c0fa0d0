package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/usecase"
	"clinic-agenda/pkg/response"
	"clinic-agenda/pkg/validator"
)

type HolidayHandler struct {
	holidayUsecase usecase.HolidayUsecase
	validator      *validator.CustomValidator
}

func NewHolidayHandler(holidayUsecase usecase.HolidayUsecase, validator *validator.CustomValidator) *HolidayHandler {
	return &HolidayHandler{
		holidayUsecase: holidayUsecase,
		validator:      validator,
	}
}

func (h *HolidayHandler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}

	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid year")
			return
		}
		year = parsed
	}

	holidays, err := h.holidayUsecase.ListHolidays(r.Context(), scope, year)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidYear) {
			response.BadRequest(w, "Invalid year")
			return
		}
		response.DatabaseError(w, "Failed to get holidays", err)
		return
	}

	response.Success(w, http.StatusOK, "Holidays retrieved successfully", holidays)
}

func (h *HolidayHandler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}

	var req dto.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	holiday, err := h.holidayUsecase.CreateHoliday(r.Context(), scope, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidDate):
			response.BadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrHolidayExists):
			response.Conflict(w, "Holiday already exists for this date")
		default:
			response.DatabaseError(w, "Failed to create holiday", err)
		}
		return
	}

	response.Success(w, http.StatusCreated, "Holiday created successfully", holiday)
}

func (h *HolidayHandler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "holiday")
	if !ok {
		return
	}

	if err := h.holidayUsecase.DeleteHoliday(r.Context(), scope, id); err != nil {
		if errors.Is(err, usecase.ErrHolidayNotFound) {
			response.NotFound(w, "Holiday not found")
			return
		}
		response.DatabaseError(w, "Failed to delete holiday", err)
		return
	}

	response.Success(w, http.StatusOK, "Holiday deleted successfully", nil)
}
