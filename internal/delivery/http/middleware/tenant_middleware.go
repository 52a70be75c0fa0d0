package middleware

import (
	"context"
	"errors"
	"net/http"

	"clinic-agenda/internal/tenancy"
	"clinic-agenda/internal/usecase"
	"clinic-agenda/pkg/response"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const OrganizationHeader = "x-organization-id"

// MembershipResolver maps an authenticated user to their role in an organization
type MembershipResolver interface {
	ResolveMembership(ctx context.Context, userID, organizationID uuid.UUID) (*tenancy.Scope, error)
}

type TenantMiddleware struct {
	log      *logrus.Logger
	resolver MembershipResolver
}

func NewTenantMiddleware(log *logrus.Logger, resolver MembershipResolver) *TenantMiddleware {
	return &TenantMiddleware{
		log:      log,
		resolver: resolver,
	}
}

// Resolve requires Authenticate to run first
func (m *TenantMiddleware) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "User not authenticated")
			return
		}

		raw := organizationIDFromRequest(r)
		if raw == "" {
			response.BadRequest(w, "Organization id is required")
			return
		}
		organizationID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid organization id")
			return
		}

		scope, err := m.resolver.ResolveMembership(r.Context(), userID, organizationID)
		if err != nil {
			if errors.Is(err, usecase.ErrNotMember) {
				response.Forbidden(w, "You are not a member of this organization")
				return
			}
			m.log.Warnf("Failed to resolve membership: %+v", err)
			response.DatabaseError(w, "Failed to resolve membership", err)
			return
		}

		next.ServeHTTP(w, r.WithContext(tenancy.WithScope(r.Context(), *scope)))
	})
}

func organizationIDFromRequest(r *http.Request) string {
	if v := r.Header.Get(OrganizationHeader); v != "" {
		return v
	}
	query := r.URL.Query()
	if v := query.Get("organizationId"); v != "" {
		return v
	}
	return query.Get("organization_id")
}
