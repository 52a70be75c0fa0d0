package handler

import (
	"net/http"
	"strconv"

	"clinic-agenda/internal/delivery/http/middleware"
	"clinic-agenda/internal/tenancy"
	"clinic-agenda/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// requireScope reads the organization scope set by the tenant middleware
func requireScope(w http.ResponseWriter, r *http.Request) (tenancy.Scope, bool) {
	scope, ok := tenancy.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Organization membership is required")
		return tenancy.Scope{}, false
	}
	return scope, true
}

// requireIdentity reads the authenticated user for routes without an organization
func requireIdentity(w http.ResponseWriter, r *http.Request) (tenancy.Scope, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return tenancy.Scope{}, false
	}
	email, _ := middleware.GetUserEmailFromContext(r.Context())
	return tenancy.Scope{UserID: userID, Email: email}, true
}

func pathID(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid "+label+" ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return fallback
	}
	return v
}
