// Package tenancy carries the organization scope of a request.
package tenancy

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const scopeKey ctxKey = "clinic_agenda.scope"

// Scope identifies the caller inside one organization
type Scope struct {
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	MemberID       uuid.UUID
	Role           string
	Email          string
}

// WithScope stores the scope in context.
func WithScope(ctx context.Context, scope Scope) context.Context {
	return context.WithValue(ctx, scopeKey, scope)
}

// FromContext extracts the scope if an organization has been resolved.
func FromContext(ctx context.Context) (Scope, bool) {
	scope, ok := ctx.Value(scopeKey).(Scope)
	return scope, ok && scope.OrganizationID != uuid.Nil
}

// UserRef returns a pointer to the user id for audit entries
func (s Scope) UserRef() *uuid.UUID {
	if s.UserID == uuid.Nil {
		return nil
	}
	id := s.UserID
	return &id
}
