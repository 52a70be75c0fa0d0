package middleware

import (
	"errors"
	"net/http"

	"clinic-agenda/internal/service"
	"clinic-agenda/internal/tenancy"
	"clinic-agenda/pkg/response"

	"github.com/sirupsen/logrus"
)

type SubscriptionMiddleware struct {
	log   *logrus.Logger
	cache service.SubscriptionCache
}

func NewSubscriptionMiddleware(log *logrus.Logger, cache service.SubscriptionCache) *SubscriptionMiddleware {
	return &SubscriptionMiddleware{
		log:   log,
		cache: cache,
	}
}

// RequireActive blocks organizations whose subscription is neither active nor trialing
func (m *SubscriptionMiddleware) RequireActive(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope, ok := tenancy.FromContext(r.Context())
		if !ok {
			response.BadRequest(w, "Organization id is required")
			return
		}

		status, err := m.cache.Status(r.Context(), scope.OrganizationID)
		if err != nil {
			if errors.Is(err, service.ErrOrganizationNotFound) {
				response.NotFound(w, "Organization not found")
				return
			}
			m.log.Warnf("Failed to resolve subscription: %+v", err)
			response.DatabaseError(w, "Failed to resolve subscription", err)
			return
		}

		if !status.IsEntitled() {
			response.PaymentRequired(w, "Subscription is not active")
			return
		}

		next.ServeHTTP(w, r)
	})
}
