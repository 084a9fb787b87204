package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorsCountEvents(t *testing.T) {
	c := NewCollector("serene")
	c.ObserveChatReply("stress")
	c.ObserveChatReply("stress")
	c.ObserveMoodEntry("great")
	c.ObserveTimeline(6)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.ChatReplies.WithLabelValues("stress")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.MoodEntries.WithLabelValues("great")))
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveChatReply("neutral")
		c.ObserveMoodEntry("okay")
		c.ObserveTimeline(7)
	})
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	c := NewCollector("serene")
	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/42", nil))

	got := testutil.ToFloat64(c.HTTPRequests.WithLabelValues(http.MethodGet, "/items/{id}", "418"))
	assert.Equal(t, 1.0, got)
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector("serene")
	c.ObserveChatReply("happiness")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `serene_chat_replies_total{sentiment="happiness"} 1`)
}
