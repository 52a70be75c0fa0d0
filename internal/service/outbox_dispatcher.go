package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/domain/event"
	"clinic-agenda/internal/domain/repository"
	"clinic-agenda/pkg/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	defaultOutboxBatchSize = 50
	defaultOutboxInterval  = 2 * time.Second
)

// EventOutbox records realtime events inside a business transaction
type EventOutbox interface {
	// Enqueue stores the event using tx so it commits or rolls back with the change
	Enqueue(ctx context.Context, tx *gorm.DB, organizationID uuid.UUID, eventType string, rooms []string, payload interface{}) error
	// Notify wakes the dispatcher after a commit
	Notify()
}

// OutboxDispatcher polls committed outbox events and publishes them to socket rooms
type OutboxDispatcher struct {
	db        *gorm.DB
	log       *logrus.Logger
	repo      repository.OutboxRepository
	publisher event.Publisher
	metrics   *metrics.Collector
	batchSize int
	interval  time.Duration
	wake      chan struct{}
}

func NewOutboxDispatcher(db *gorm.DB, log *logrus.Logger, repo repository.OutboxRepository, publisher event.Publisher, m *metrics.Collector) *OutboxDispatcher {
	return &OutboxDispatcher{
		db:        db,
		log:       log,
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		batchSize: defaultOutboxBatchSize,
		interval:  defaultOutboxInterval,
		wake:      make(chan struct{}, 1),
	}
}

func (d *OutboxDispatcher) WithBatchSize(size int) *OutboxDispatcher {
	if size > 0 {
		d.batchSize = size
	}
	return d
}

func (d *OutboxDispatcher) WithInterval(interval time.Duration) *OutboxDispatcher {
	if interval > 0 {
		d.interval = interval
	}
	return d
}

func (d *OutboxDispatcher) Enqueue(ctx context.Context, tx *gorm.DB, organizationID uuid.UUID, eventType string, rooms []string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("outbox: marshal payload: %w", err)
	}
	return d.repo.Insert(ctx, tx, &entity.OutboxEvent{
		OrganizationID: organizationID,
		EventType:      eventType,
		Rooms:          rooms,
		Payload:        data,
	})
}

func (d *OutboxDispatcher) Notify() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Run drains the outbox until ctx is cancelled
func (d *OutboxDispatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.log.Infof("Outbox dispatcher started (interval %s, batch %d)", d.interval, d.batchSize)
	for {
		select {
		case <-ctx.Done():
			d.log.Info("Outbox dispatcher stopped")
			return nil
		case <-ticker.C:
		case <-d.wake:
		}
		for {
			n, err := d.Drain(ctx)
			if err != nil {
				d.log.Warnf("Failed to drain outbox: %+v", err)
				break
			}
			if n < d.batchSize {
				break
			}
		}
	}
}

// Drain publishes one batch of pending events and returns how many were published
func (d *OutboxDispatcher) Drain(ctx context.Context) (int, error) {
	published := 0
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		events, err := d.repo.FetchPending(ctx, tx, d.batchSize)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, 0, len(events))
		for _, ev := range events {
			frame, err := json.Marshal(event.Envelope{Event: ev.EventType, Data: json.RawMessage(ev.Payload)})
			if err != nil {
				d.log.Warnf("Dropping undecodable outbox event %s: %+v", ev.ID, err)
				ids = append(ids, ev.ID)
				continue
			}
			if len(ev.Rooms) > 0 {
				d.publisher.PublishToRooms(ev.OrganizationID, ev.Rooms, frame)
			} else {
				d.publisher.PublishToOrganization(ev.OrganizationID, frame)
			}
			d.metrics.OutboxPublished(ev.EventType)
			ids = append(ids, ev.ID)
		}
		published = len(ids)
		return d.repo.MarkPublished(ctx, tx, ids, time.Now())
	})
	if err != nil {
		return 0, err
	}
	return published, nil
}
