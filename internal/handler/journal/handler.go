package journal

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/serene/backend/internal/middleware"
	journalservice "github.com/zhouzirui/serene/backend/internal/service/journal"
	"github.com/zhouzirui/serene/backend/internal/validation"
	"github.com/zhouzirui/serene/backend/pkg/utils"
)

// Handler 日记的HTTP处理器
type Handler struct {
	svc *journalservice.Service
}

// New 创建日记处理器
func New(svc *journalservice.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册日记相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/journal", func(jr chi.Router) {
		jr.Use(middleware.RequireUser)
		jr.Post("/", h.handleCreate)
		jr.Get("/", h.handleList)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload journalservice.Input
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request data")
		return
	}

	entry, err := h.svc.Create(r.Context(), middleware.UserID(r.Context()), payload)
	if err != nil {
		var vErr *validation.Error
		switch {
		case errors.As(err, &vErr):
			utils.RespondError(w, http.StatusBadRequest, vErr.Error())
		case errors.Is(err, journalservice.ErrInvalidJournal):
			utils.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Str("component", "journal").Msg("create journal entry failed")
			utils.RespondError(w, http.StatusInternalServerError, "failed to save journal entry")
		}
		return
	}

	utils.RespondJSON(w, http.StatusCreated, entry)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.List(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		log.Error().Err(err).Str("component", "journal").Msg("list journal failed")
		utils.RespondError(w, http.StatusInternalServerError, "failed to load journal")
		return
	}
	utils.RespondJSON(w, http.StatusOK, entries)
}
