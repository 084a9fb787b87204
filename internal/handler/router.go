package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/serene/backend/internal/handler/catalog"
	"github.com/zhouzirui/serene/backend/internal/handler/chat"
	"github.com/zhouzirui/serene/backend/internal/handler/journal"
	"github.com/zhouzirui/serene/backend/internal/handler/mood"
	"github.com/zhouzirui/serene/backend/internal/metrics"
	middlewarePkg "github.com/zhouzirui/serene/backend/internal/middleware"
	catalogModel "github.com/zhouzirui/serene/backend/internal/model/catalog"
	chatService "github.com/zhouzirui/serene/backend/internal/service/chat"
	journalService "github.com/zhouzirui/serene/backend/internal/service/journal"
	moodService "github.com/zhouzirui/serene/backend/internal/service/mood"
	"github.com/zhouzirui/serene/backend/pkg/utils"
)

// HealthChecker is implemented by storage backends that can report their state.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Deps are the services the router exposes. Streamer, Metrics and Health are optional.
// Empty AllowedOrigins allows any origin.
type Deps struct {
	AllowedOrigins []string
	Moods          *moodService.Service
	Chat           *chatService.Service
	Journal        *journalService.Service
	Catalog        catalogModel.Store
	Streamer       chat.Streamer
	Metrics        *metrics.Collector
	Health         HealthChecker
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(deps.AllowedOrigins))

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", handleHealth(deps.Health))

		mood.New(deps.Moods).RegisterRoutes(api)
		chat.New(deps.Chat, deps.Streamer).RegisterRoutes(api)
		journal.New(deps.Journal).RegisterRoutes(api)
		catalog.New(deps.Catalog).RegisterRoutes(api)
	})

	return r
}

func handleHealth(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.HealthCheck(r.Context()); err != nil {
				log.Warn().Err(err).Str("component", "health").Msg("storage unhealthy")
				utils.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
