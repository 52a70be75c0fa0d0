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

type OrganizationHandler struct {
	organizationUsecase usecase.OrganizationUsecase
	validator           *validator.CustomValidator
}

func NewOrganizationHandler(organizationUsecase usecase.OrganizationUsecase, validator *validator.CustomValidator) *OrganizationHandler {
	return &OrganizationHandler{
		organizationUsecase: organizationUsecase,
		validator:           validator,
	}
}

func (h *OrganizationHandler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	org, err := h.organizationUsecase.CreateOrganization(r.Context(), identity, &req)
	if err != nil {
		response.DatabaseError(w, "Failed to create organization", err)
		return
	}

	response.Success(w, http.StatusCreated, "Organization created successfully", org)
}

func (h *OrganizationHandler) ListMyOrganizations(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	orgs, err := h.organizationUsecase.ListMyOrganizations(r.Context(), identity)
	if err != nil {
		response.DatabaseError(w, "Failed to get organizations", err)
		return
	}

	response.Success(w, http.StatusOK, "Organizations retrieved successfully", orgs)
}

func (h *OrganizationHandler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.AcceptInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	org, err := h.organizationUsecase.AcceptInvitation(r.Context(), identity, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidID):
			response.BadRequest(w, "Invalid invitation ID")
		case errors.Is(err, usecase.ErrInvitationNotFound), errors.Is(err, usecase.ErrOrganizationNotFound):
			response.NotFound(w, "Invitation not found")
		case errors.Is(err, usecase.ErrInvitationInvalid):
			response.Forbidden(w, "Invitation token is invalid or expired")
		case errors.Is(err, usecase.ErrMemberExists):
			response.Conflict(w, "You are already a member of this organization")
		default:
			response.DatabaseError(w, "Failed to accept invitation", err)
		}
		return
	}

	response.Success(w, http.StatusOK, "Invitation accepted successfully", org)
}

func (h *OrganizationHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}

	members, err := h.organizationUsecase.ListMembers(r.Context(), scope)
	if err != nil {
		response.DatabaseError(w, "Failed to get members", err)
		return
	}

	response.Success(w, http.StatusOK, "Members retrieved successfully", members)
}

func (h *OrganizationHandler) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}

	var req dto.CreateInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	invitation, err := h.organizationUsecase.CreateInvitation(r.Context(), scope, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrForbidden):
			response.Forbidden(w, "You don't have permission to invite members")
		case errors.Is(err, usecase.ErrMemberExists):
			response.Conflict(w, "A member with this email already exists")
		default:
			response.DatabaseError(w, "Failed to create invitation", err)
		}
		return
	}

	response.Success(w, http.StatusCreated, "Invitation created successfully", invitation)
}

func (h *OrganizationHandler) DeleteOrganization(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}

	if err := h.organizationUsecase.DeleteOrganization(r.Context(), scope); err != nil {
		switch {
		case errors.Is(err, usecase.ErrForbidden):
			response.Forbidden(w, "Only the owner can delete the organization")
		case errors.Is(err, usecase.ErrOrganizationNotFound):
			response.NotFound(w, "Organization not found")
		default:
			response.DatabaseError(w, "Failed to delete organization", err)
		}
		return
	}

	response.Success(w, http.StatusOK, "Organization deleted successfully", nil)
}
