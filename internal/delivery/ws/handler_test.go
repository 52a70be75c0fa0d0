package ws

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/event"
	"clinic-agenda/internal/repository"
	"clinic-agenda/internal/tenancy"
	"clinic-agenda/internal/usecase"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	gorillawebsocket "github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	in     chan []byte
	mu     sync.Mutex
	frames [][]byte
}

func newFakeConn() *fakeConn {
	return &fakeConn{in: make(chan []byte, 16)}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	raw, ok := <-c.in
	if !ok {
		return 0, nil, io.EOF
	}
	return gorillawebsocket.TextMessage, raw, nil
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	if messageType != gorillawebsocket.TextMessage {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, data)
	return nil
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) envelopes() []event.Envelope {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]event.Envelope, 0, len(c.frames))
	for _, f := range c.frames {
		var env event.Envelope
		if json.Unmarshal(f, &env) == nil {
			out = append(out, env)
		}
	}
	return out
}

func (c *fakeConn) waitFor(t *testing.T, name string) event.Envelope {
	t.Helper()
	var found event.Envelope
	require.Eventually(t, func() bool {
		for _, env := range c.envelopes() {
			if env.Event == name {
				found = env
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond, "no %s frame", name)
	return found
}

type fakeConversationUsecase struct {
	usecase.ConversationUsecase
	mu   sync.Mutex
	sent []dto.SendMessageRequest
	err  error
}

func (f *fakeConversationUsecase) SendMessage(ctx context.Context, scope tenancy.Scope, conversationID uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, *req)
	return &dto.MessageResponse{ID: uuid.New(), ConversationID: conversationID, Content: req.Content, TempID: req.TempID}, nil
}

type socketFixture struct {
	hub           *Hub
	handler       *Handler
	conversations *fakeConversationUsecase
	presence      usecase.PresenceUsecase
	redis         *miniredis.Miniredis
}

func newSocketFixture(t *testing.T) *socketFixture {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	hub := NewHub()
	presence := usecase.NewPresenceUsecase(log, repository.NewPresenceRepository(client, time.Hour), hub)
	conversations := &fakeConversationUsecase{}
	return &socketFixture{
		hub:           hub,
		handler:       NewHandler(hub, log, conversations, presence, nil, nil),
		conversations: conversations,
		presence:      presence,
		redis:         mr,
	}
}

func frame(t *testing.T, name string, data interface{}) []byte {
	t.Helper()
	raw, err := event.NewEnvelope(name, data)
	require.NoError(t, err)
	return raw
}

func TestServe_PresenceLifecycle(t *testing.T) {
	f := newSocketFixture(t)
	scope := tenancy.Scope{OrganizationID: uuid.New(), UserID: uuid.New()}

	observer := newFakeConn()
	observerClient := NewClient(tenancy.Scope{OrganizationID: scope.OrganizationID, UserID: uuid.New()}, observer)
	f.hub.Register(observerClient)
	go observerClient.writePump()

	conn := newFakeConn()
	done := make(chan struct{})
	go func() {
		f.handler.Serve(context.Background(), NewClient(scope, conn))
		close(done)
	}()

	env := observer.waitFor(t, event.StatusChange)
	var status event.StatusPayload
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.Equal(t, scope.UserID, status.UserID)
	assert.Equal(t, event.StatusOnline, status.Status)

	conn.in <- frame(t, event.UpdateStatus, event.UpdateStatusRequest{Status: event.StatusBusy})
	require.Eventually(t, func() bool {
		list, err := f.presence.ListPresence(context.Background(), scope)
		return err == nil && list[scope.UserID.String()] == event.StatusBusy
	}, time.Second, 5*time.Millisecond)

	close(conn.in)
	<-done

	list, err := f.presence.ListPresence(context.Background(), scope)
	require.NoError(t, err)
	assert.NotContains(t, list, scope.UserID.String())
	assert.Equal(t, 1, f.hub.ClientCount())
}

func TestServe_OfflineOnlyAfterLastTab(t *testing.T) {
	f := newSocketFixture(t)
	scope := tenancy.Scope{OrganizationID: uuid.New(), UserID: uuid.New()}

	first, second := newFakeConn(), newFakeConn()
	firstDone, secondDone := make(chan struct{}), make(chan struct{})
	go func() { f.handler.Serve(context.Background(), NewClient(scope, first)); close(firstDone) }()
	go func() { f.handler.Serve(context.Background(), NewClient(scope, second)); close(secondDone) }()
	require.Eventually(t, func() bool { return f.hub.RoomCount(scope.OrganizationID, scope.UserID.String()) == 2 }, time.Second, 5*time.Millisecond)

	close(first.in)
	<-firstDone
	list, err := f.presence.ListPresence(context.Background(), scope)
	require.NoError(t, err)
	assert.Equal(t, event.StatusOnline, list[scope.UserID.String()])

	close(second.in)
	<-secondDone
	list, err = f.presence.ListPresence(context.Background(), scope)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDispatch(t *testing.T) {
	f := newSocketFixture(t)
	scope := tenancy.Scope{OrganizationID: uuid.New(), UserID: uuid.New()}
	conn := newFakeConn()
	client := NewClient(scope, conn)
	f.hub.Register(client)

	errorMessage := func(raw []byte) event.ErrorPayload {
		t.Helper()
		f.handler.dispatch(context.Background(), client, raw)
		frames := drain(client)
		require.Len(t, frames, 1)
		var env event.Envelope
		require.NoError(t, json.Unmarshal(frames[0], &env))
		require.Equal(t, event.Error, env.Event)
		var payload event.ErrorPayload
		require.NoError(t, json.Unmarshal(env.Data, &payload))
		return payload
	}

	assert.Equal(t, "invalid frame", errorMessage([]byte("{")).Message)
	assert.Equal(t, "unknown event", errorMessage(frame(t, "dance", nil)).Message)
	assert.Equal(t, "cannot join another user's room", errorMessage(frame(t, event.JoinRoom, event.JoinRoomRequest{Room: uuid.NewString()})).Message)
	assert.Equal(t, usecase.ErrInvalidPresenceStatus.Error(), errorMessage(frame(t, event.UpdateStatus, event.UpdateStatusRequest{Status: "away"})).Message)

	bad := errorMessage(frame(t, event.SendMessage, event.SendMessageRequest{ConversationID: "nope", Content: "oi", TempID: "t1"}))
	assert.Equal(t, "t1", bad.TempID)

	f.conversations.err = usecase.ErrConversationNotFound
	notFound := errorMessage(frame(t, event.SendMessage, event.SendMessageRequest{ConversationID: uuid.NewString(), Content: "oi", TempID: "t2"}))
	assert.Equal(t, usecase.ErrConversationNotFound.Error(), notFound.Message)
	assert.Equal(t, "t2", notFound.TempID)

	f.conversations.err = errors.New("connection reset")
	internal := errorMessage(frame(t, event.SendMessage, event.SendMessageRequest{ConversationID: uuid.NewString(), Content: "oi"}))
	assert.Equal(t, "failed to send message", internal.Message)

	f.conversations.err = nil
	f.handler.dispatch(context.Background(), client, frame(t, event.SendMessage, event.SendMessageRequest{ConversationID: uuid.NewString(), Content: "oi", TempID: "t3"}))
	assert.Empty(t, drain(client))
	require.Len(t, f.conversations.sent, 1)
	assert.Equal(t, "t3", f.conversations.sent[0].TempID)

	f.handler.dispatch(context.Background(), client, frame(t, event.JoinRoom, event.JoinRoomRequest{Room: scope.UserID.String()}))
	assert.Empty(t, drain(client))
}

func TestServeHTTP_RequiresScope(t *testing.T) {
	f := newSocketFixture(t)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServeHTTP_Upgrade(t *testing.T) {
	f := newSocketFixture(t)
	scope := tenancy.Scope{OrganizationID: uuid.New(), UserID: uuid.New()}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.handler.ServeHTTP(w, r.WithContext(tenancy.WithScope(r.Context(), scope)))
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := gorillawebsocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var env event.Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, event.StatusChange, env.Event)

	require.NoError(t, conn.WriteMessage(gorillawebsocket.TextMessage, frame(t, "dance", nil)))
	_, raw, err = conn.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, event.Error, env.Event)
}
