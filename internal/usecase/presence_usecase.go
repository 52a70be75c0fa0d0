package usecase

import (
	"context"
	"errors"

	"clinic-agenda/internal/domain/event"
	"clinic-agenda/internal/domain/repository"
	"clinic-agenda/internal/tenancy"

	"github.com/sirupsen/logrus"
)

var ErrInvalidPresenceStatus = errors.New("status must be online, busy or offline")

type PresenceUsecase interface {
	// UpdateStatus stores the caller's status and announces it to the caller's organization only
	UpdateStatus(ctx context.Context, scope tenancy.Scope, status string) (*event.StatusPayload, error)
	ListPresence(ctx context.Context, scope tenancy.Scope) (map[string]string, error)
}

type presenceUsecase struct {
	log          *logrus.Logger
	presenceRepo repository.PresenceRepository
	publisher    event.Publisher
}

func NewPresenceUsecase(log *logrus.Logger, presenceRepo repository.PresenceRepository, publisher event.Publisher) PresenceUsecase {
	return &presenceUsecase{
		log:          log,
		presenceRepo: presenceRepo,
		publisher:    publisher,
	}
}

func (u *presenceUsecase) UpdateStatus(ctx context.Context, scope tenancy.Scope, status string) (*event.StatusPayload, error) {
	if !event.IsValidStatus(status) {
		return nil, ErrInvalidPresenceStatus
	}

	var err error
	if status == event.StatusOffline {
		err = u.presenceRepo.Remove(ctx, scope.OrganizationID, scope.UserID)
	} else {
		err = u.presenceRepo.Set(ctx, scope.OrganizationID, scope.UserID, status)
	}
	if err != nil {
		// presence is best effort; the broadcast still goes out
		u.log.Warnf("Failed to store presence: %+v", err)
	}

	payload := &event.StatusPayload{
		UserID:         scope.UserID,
		OrganizationID: scope.OrganizationID,
		Status:         status,
	}
	frame, err := event.NewEnvelope(event.StatusChange, payload)
	if err != nil {
		return nil, err
	}
	u.publisher.PublishToOrganization(scope.OrganizationID, frame)

	return payload, nil
}

func (u *presenceUsecase) ListPresence(ctx context.Context, scope tenancy.Scope) (map[string]string, error) {
	presence, err := u.presenceRepo.List(ctx, scope.OrganizationID)
	if err != nil {
		u.log.Warnf("Failed to list presence: %+v", err)
		return nil, err
	}
	if presence == nil {
		presence = map[string]string{}
	}
	return presence, nil
}
