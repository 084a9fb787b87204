package mood

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/serene/backend/internal/middleware"
	model "github.com/zhouzirui/serene/backend/internal/model/mood"
	moodservice "github.com/zhouzirui/serene/backend/internal/service/mood"
	"github.com/zhouzirui/serene/backend/internal/validation"
	"github.com/zhouzirui/serene/backend/pkg/utils"
)

// Handler 心情记录的HTTP处理器
type Handler struct {
	svc *moodservice.Service
}

// New 创建心情处理器
func New(svc *moodservice.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册心情相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/moods", h.handleListMoods)

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireUser)
		pr.Post("/mood-entries", h.handleCreateEntry)
		pr.Get("/mood-entries", h.handleListEntries)
		pr.Get("/mood-timeline", h.handleTimeline)
	})
}

type createEntryRequest struct {
	Mood  string `json:"mood" validate:"required,mood"`
	Notes string `json:"notes" validate:"max=500"`
}

func (h *Handler) handleListMoods(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, model.Catalog())
}

// handleCreateEntry 记录一条心情
func (h *Handler) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var payload createEntryRequest
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request data")
		return
	}
	if err := validation.Struct(payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.svc.Record(r.Context(), middleware.UserID(r.Context()), payload.Mood, payload.Notes)
	if err != nil {
		if errors.Is(err, moodservice.ErrInvalidMood) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Str("component", "mood").Msg("record mood failed")
		utils.RespondError(w, http.StatusInternalServerError, "failed to record mood")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, entry)
}

func (h *Handler) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Entries(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		log.Error().Err(err).Str("component", "mood").Msg("list moods failed")
		utils.RespondError(w, http.StatusInternalServerError, "failed to load mood entries")
		return
	}
	utils.RespondJSON(w, http.StatusOK, entries)
}

// handleTimeline 返回仪表盘所需的 7 天心情曲线
func (h *Handler) handleTimeline(w http.ResponseWriter, r *http.Request) {
	points, err := h.svc.Timeline(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		log.Error().Err(err).Str("component", "mood").Msg("build timeline failed")
		utils.RespondError(w, http.StatusInternalServerError, "failed to build timeline")
		return
	}
	utils.RespondJSON(w, http.StatusOK, points)
}
