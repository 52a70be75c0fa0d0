package middleware

import (
	"net/http"

	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/tenancy"
	"clinic-agenda/pkg/response"
)

// RequireRole creates a middleware that checks the member role resolved by TenantMiddleware
func RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope, ok := tenancy.FromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			allowed := false
			for _, role := range allowedRoles {
				if scope.Role == role {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for owner or admin endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.MemberRoleOwner, entity.MemberRoleAdmin)(next)
}

// RequireOwner is a convenience middleware for owner-only endpoints
func RequireOwner(next http.Handler) http.Handler {
	return RequireRole(entity.MemberRoleOwner)(next)
}
