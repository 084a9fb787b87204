package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/serene/backend/internal/metrics"
	"github.com/zhouzirui/serene/backend/internal/middleware"
	"github.com/zhouzirui/serene/backend/internal/model/catalog"
	moodModel "github.com/zhouzirui/serene/backend/internal/model/mood"
	chatService "github.com/zhouzirui/serene/backend/internal/service/chat"
	journalService "github.com/zhouzirui/serene/backend/internal/service/journal"
	moodService "github.com/zhouzirui/serene/backend/internal/service/mood"
)

type failingHealth struct{}

func (failingHealth) HealthCheck(context.Context) error { return errors.New("disk gone") }

func newTestDeps() Deps {
	collector := metrics.NewCollector("serene_test")
	return Deps{
		Moods:   moodService.NewService(moodModel.NewMemoryStore(), moodService.WithMetrics(collector)),
		Chat:    chatService.NewService(chatService.WithMetrics(collector)),
		Journal: journalService.NewService(),
		Catalog: catalog.NewMemoryStore(catalog.Seed()),
		Metrics: collector,
	}
}

func serve(h http.Handler, method, path, user, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if user != "" {
		req.Header.Set(middleware.UserHeader, user)
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestHealth(t *testing.T) {
	resp := serve(NewRouter(newTestDeps()), http.MethodGet, "/api/health", "", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"ok"}`, resp.Body.String())
}

func TestHealthReportsStorageFailure(t *testing.T) {
	deps := newTestDeps()
	deps.Health = failingHealth{}
	resp := serve(NewRouter(deps), http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestRoutesAreMounted(t *testing.T) {
	router := NewRouter(newTestDeps())

	cases := []struct {
		method, path, user, body string
		want                     int
	}{
		{http.MethodGet, "/api/moods", "", "", http.StatusOK},
		{http.MethodPost, "/api/mood-entries", "u1", `{"mood":"okay"}`, http.StatusCreated},
		{http.MethodGet, "/api/mood-entries", "", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/mood-timeline", "u1", "", http.StatusOK},
		{http.MethodPost, "/api/chat", "u1", `{"message":"hi"}`, http.StatusOK},
		{http.MethodGet, "/api/chat/history", "u1", "", http.StatusOK},
		{http.MethodGet, "/api/meditations?category=focus", "", "", http.StatusOK},
		{http.MethodGet, "/api/meditations/categories", "", "", http.StatusOK},
		{http.MethodGet, "/api/professionals?q=therapist", "", "", http.StatusOK},
		{http.MethodGet, "/api/journal", "u1", "", http.StatusOK},
	}
	for _, tc := range cases {
		resp := serve(router, tc.method, tc.path, tc.user, tc.body)
		assert.Equal(t, tc.want, resp.Code, "%s %s", tc.method, tc.path)
	}
}

func TestMetricsEndpointExposesCounters(t *testing.T) {
	router := NewRouter(newTestDeps())
	serve(router, http.MethodPost, "/api/chat", "u1", `{"message":"so stressed"}`)

	resp := serve(router, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, `serene_test_chat_replies_total{sentiment="stress"} 1`)
	assert.Contains(t, body, `serene_test_http_requests_total`)
}
