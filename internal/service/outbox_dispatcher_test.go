package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"clinic-agenda/internal/domain/event"
	"clinic-agenda/internal/repository"
	"clinic-agenda/pkg/metrics"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	organizationID uuid.UUID
	rooms          []string
	frame          []byte
}

type recordingPublisher struct {
	mu     sync.Mutex
	frames []published
}

func (p *recordingPublisher) PublishToRooms(organizationID uuid.UUID, rooms []string, frame []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames = append(p.frames, published{organizationID, rooms, frame})
}

func (p *recordingPublisher) PublishToOrganization(organizationID uuid.UUID, frame []byte) {
	p.PublishToRooms(organizationID, nil, frame)
}

var outboxColumns = []string{"id", "organization_id", "event_type", "rooms", "payload", "created_at"}

func TestOutboxDispatcher_Drain(t *testing.T) {
	db, mock := newMockDB(t)
	publisher := &recordingPublisher{}
	dispatcher := NewOutboxDispatcher(db, newTestLogger(), repository.NewOutboxRepository(), publisher, metrics.NewCollector(prometheus.NewRegistry())).
		WithBatchSize(10)
	orgID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "outbox_events" WHERE published_at IS NULL .*FOR UPDATE SKIP LOCKED`).
		WillReturnRows(sqlmock.NewRows(outboxColumns).
			AddRow(uuid.NewString(), orgID.String(), event.ReceiveMessage, []byte(`["u1","u2"]`), []byte(`{"content":"oi"}`), time.Now()).
			AddRow(uuid.NewString(), orgID.String(), event.StatusChange, []byte(`[]`), []byte(`{"status":"busy"}`), time.Now()))
	mock.ExpectExec(`UPDATE "outbox_events" SET "published_at"=\$1 WHERE id IN \(\$2,\$3\)`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	n, err := dispatcher.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.Len(t, publisher.frames, 2)
	assert.Equal(t, []string{"u1", "u2"}, publisher.frames[0].rooms)
	assert.Nil(t, publisher.frames[1].rooms)

	var env event.Envelope
	require.NoError(t, json.Unmarshal(publisher.frames[0].frame, &env))
	assert.Equal(t, event.ReceiveMessage, env.Event)
	assert.JSONEq(t, `{"content":"oi"}`, string(env.Data))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxDispatcher_DrainEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	publisher := &recordingPublisher{}
	dispatcher := NewOutboxDispatcher(db, newTestLogger(), repository.NewOutboxRepository(), publisher, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "outbox_events"`).WillReturnRows(sqlmock.NewRows(outboxColumns))
	mock.ExpectCommit()

	n, err := dispatcher.Drain(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, publisher.frames)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxDispatcher_PublishFailureKeepsEvents(t *testing.T) {
	db, mock := newMockDB(t)
	publisher := &recordingPublisher{}
	dispatcher := NewOutboxDispatcher(db, newTestLogger(), repository.NewOutboxRepository(), publisher, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "outbox_events"`).
		WillReturnRows(sqlmock.NewRows(outboxColumns).
			AddRow(uuid.NewString(), uuid.NewString(), event.ReceiveMessage, []byte(`["u1"]`), []byte(`{}`), time.Now()))
	mock.ExpectExec(`UPDATE "outbox_events"`).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := dispatcher.Drain(context.Background())
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxDispatcher_Enqueue(t *testing.T) {
	db, mock := newMockDB(t)
	dispatcher := NewOutboxDispatcher(db, newTestLogger(), repository.NewOutboxRepository(), &recordingPublisher{}, nil)

	mock.ExpectExec(`INSERT INTO "outbox_events"`).WillReturnResult(sqlmock.NewResult(0, 1))
	err := dispatcher.Enqueue(context.Background(), db, uuid.New(), event.ReceiveMessage, []string{"u1"}, event.MessagePayload{Content: "oi"})
	require.NoError(t, err)

	err = dispatcher.Enqueue(context.Background(), db, uuid.New(), event.ReceiveMessage, nil, make(chan int))
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxDispatcher_RunStopsOnCancel(t *testing.T) {
	db, mock := newMockDB(t)
	dispatcher := NewOutboxDispatcher(db, newTestLogger(), repository.NewOutboxRepository(), &recordingPublisher{}, nil).
		WithInterval(time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "outbox_events"`).WillReturnRows(sqlmock.NewRows(outboxColumns))
	mock.ExpectCommit()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- dispatcher.Run(ctx) }()

	dispatcher.Notify()
	require.Eventually(t, func() bool { return mock.ExpectationsWereMet() == nil }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop")
	}
}
