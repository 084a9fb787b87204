package chat

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/cloudwego/eino/schema"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/serene/backend/internal/analysis/sentiment"
	"github.com/zhouzirui/serene/backend/internal/middleware"
	"github.com/zhouzirui/serene/backend/internal/model/chat"
	chatservice "github.com/zhouzirui/serene/backend/internal/service/chat"
	"github.com/zhouzirui/serene/backend/internal/validation"
	"github.com/zhouzirui/serene/backend/pkg/utils"
)

const maxHistoryLimit = 100

// Streamer 可选的流式回复生成器
type Streamer interface {
	StreamingEnabled() bool
	Stream(ctx context.Context, history []chat.Message, message string, canned sentiment.Response) (*schema.StreamReader[*schema.Message], error)
}

// Handler 聊天服务的HTTP处理器
type Handler struct {
	chatSvc  *chatservice.Service
	streamer Streamer
	upgrader websocket.Upgrader
}

// New 创建聊天处理器，streamer 可以为 nil
func New(chatSvc *chatservice.Service, streamer Streamer) *Handler {
	return &Handler{
		chatSvc:  chatSvc,
		streamer: streamer,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/chat", func(cr chi.Router) {
		cr.Use(middleware.RequireUser)
		cr.Post("/", h.handleReply)
		cr.Get("/history", h.handleHistory)
		cr.Get("/stream", h.handleStream)
		cr.Get("/ws", h.handleWebSocket)
	})
}

type replyRequest struct {
	Message string `json:"message" validate:"notblank,max=2000"`
}

// validateMessage 对所有聊天通道执行相同的消息校验
func validateMessage(message string) error {
	return validation.Struct(replyRequest{Message: message})
}

// handleReply 对用户消息做情绪分类并返回预设回复
func (h *Handler) handleReply(w http.ResponseWriter, r *http.Request) {
	var payload replyRequest
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request data")
		return
	}
	if err := validateMessage(payload.Message); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := h.chatSvc.Reply(r.Context(), middleware.UserID(r.Context()), payload.Message)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, reply)
}

// handleHistory 返回最近的聊天记录
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.RespondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	messages, err := h.chatSvc.RecentHistory(r.Context(), middleware.UserID(r.Context()), limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, messages)
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chatservice.ErrEmptyMessage):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, chatservice.ErrUserRequired):
		utils.RespondError(w, http.StatusUnauthorized, "unauthorized")
	default:
		log.Error().Err(err).Str("component", "chat").Msg("chat request failed")
		utils.RespondError(w, http.StatusInternalServerError, "failed to process message")
	}
}
