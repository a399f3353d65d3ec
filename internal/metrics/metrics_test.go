package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.Transition("contract", "scheduled")
	m.Transition("contract", "scheduled")
	m.Reminder("sent")
	m.CacheLookup("dashboard", true)
	m.ObserveRequest("GET", "/health", "200", 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues("contract", "scheduled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reminders.WithLabelValues("sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cache.WithLabelValues("dashboard", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/health", "200")))
}

func TestNilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.Transition("appointment", "confirmed")
		m.Summary("ok")
		m.Payment("manual")
		m.ObserveRequest("GET", "/", "200", time.Second)
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.Payment("mercadopago")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `studio_payments_total{source="mercadopago"} 1`)
}
