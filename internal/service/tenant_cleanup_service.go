package service

import (
	"context"
	"time"

	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/domain/repository"
	"clinic-agenda/pkg/metrics"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const publishedOutboxRetention = 7 * 24 * time.Hour

// CleanupReport summarizes one cleanup pass
type CleanupReport struct {
	OrganizationsDeleted int64
	InvitationsExpired   int64
	OutboxEventsDeleted  int64
}

// TenantCleanupService removes organizations whose subscription was canceled
// longer than the retention window ago and expires stale invitations.
type TenantCleanupService struct {
	db            *gorm.DB
	log           *logrus.Logger
	orgRepo       repository.OrganizationRepository
	memberRepo    repository.MemberRepository
	outboxRepo    repository.OutboxRepository
	subscriptions SubscriptionCache
	metrics       *metrics.Collector

	interval  time.Duration
	retention time.Duration
	inviteTTL time.Duration
	now       func() time.Time
}

func NewTenantCleanupService(
	db *gorm.DB,
	log *logrus.Logger,
	orgRepo repository.OrganizationRepository,
	memberRepo repository.MemberRepository,
	outboxRepo repository.OutboxRepository,
	subscriptions SubscriptionCache,
	m *metrics.Collector,
	interval, retention, inviteTTL time.Duration,
) *TenantCleanupService {
	return &TenantCleanupService{
		db:            db,
		log:           log,
		orgRepo:       orgRepo,
		memberRepo:    memberRepo,
		outboxRepo:    outboxRepo,
		subscriptions: subscriptions,
		metrics:       m,
		interval:      interval,
		retention:     retention,
		inviteTTL:     inviteTTL,
		now:           time.Now,
	}
}

// Run executes a pass immediately and then once per interval until ctx is cancelled
func (s *TenantCleanupService) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Infof("Tenant cleanup started (interval %s)", s.interval)
	for {
		if _, err := s.RunOnce(ctx); err != nil {
			s.log.Warnf("Tenant cleanup pass failed: %+v", err)
		}
		select {
		case <-ctx.Done():
			s.log.Info("Tenant cleanup stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (s *TenantCleanupService) RunOnce(ctx context.Context) (*CleanupReport, error) {
	now := s.now()
	report := &CleanupReport{}

	orgs, err := s.orgRepo.FindCanceledBefore(ctx, s.db, now.Add(-s.retention))
	if err != nil {
		s.log.Warnf("Failed to find canceled organizations: %+v", err)
		return nil, err
	}
	for _, org := range orgs {
		if err := s.deleteOrganization(ctx, org); err != nil {
			s.log.Warnf("Failed to delete organization %s: %+v", org.ID, err)
			continue
		}
		report.OrganizationsDeleted++
	}

	expired, err := s.memberRepo.ExpireInvitations(ctx, s.db, now.Add(-s.inviteTTL))
	if err != nil {
		s.log.Warnf("Failed to expire invitations: %+v", err)
		return report, err
	}
	report.InvitationsExpired = expired

	purged, err := s.outboxRepo.DeletePublishedBefore(ctx, s.db, now.Add(-publishedOutboxRetention))
	if err != nil {
		s.log.Warnf("Failed to purge outbox: %+v", err)
		return report, err
	}
	report.OutboxEventsDeleted = purged

	s.metrics.CleanupRows("organizations", report.OrganizationsDeleted)
	s.metrics.CleanupRows("invitations", report.InvitationsExpired)
	s.metrics.CleanupRows("outbox_events", report.OutboxEventsDeleted)

	s.log.WithFields(logrus.Fields{
		"organizations_deleted": report.OrganizationsDeleted,
		"invitations_expired":   report.InvitationsExpired,
		"outbox_deleted":        report.OutboxEventsDeleted,
	}).Info("Tenant cleanup pass finished")

	return report, nil
}

func (s *TenantCleanupService) deleteOrganization(ctx context.Context, org entity.Organization) error {
	if _, err := s.orgRepo.Delete(ctx, s.db, org.ID); err != nil {
		return err
	}
	if err := s.subscriptions.Invalidate(ctx, org.ID); err != nil {
		s.log.Warnf("Failed to invalidate subscription cache: %+v", err)
	}
	s.log.Infof("Deleted organization %s canceled at %v", org.ID, org.CanceledAt)
	return nil
}
