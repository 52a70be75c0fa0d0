package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveRequest("GET", "/api/holidays", "200", 0.01)
	c.SocketConnected()
	c.SocketConnected()
	c.SocketDisconnected()
	c.OutboxPublished("receive_message")
	c.BlockedDayOutcome("conflict")
	c.WebhookEvent("customer.subscription.updated", "ok")
	c.CleanupRows("organizations", 2)
	c.CleanupRows("invitations", 0)

	assert.Equal(t, float64(1), testutil.ToFloat64(c.socketConnections))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.blockedDayOutcomes.WithLabelValues("conflict")))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.cleanupDeleted.WithLabelValues("organizations")))
}

func TestCollectorNilSafe(t *testing.T) {
	var c *Collector
	c.ObserveRequest("GET", "/", "200", 0.1)
	c.SocketConnected()
	c.SocketDisconnected()
	c.OutboxPublished("status_change")
	c.BlockedDayOutcome("created")
	c.WebhookEvent("x", "ignored")
	c.CleanupRows("organizations", 1)
}

func TestHandlerServesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.OutboxPublished("receive_message")

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "clinic_agenda_realtime_outbox_published_total")
}
