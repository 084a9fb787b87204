package chat

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/serene/backend/internal/middleware"
	chatservice "github.com/zhouzirui/serene/backend/internal/service/chat"
)

const (
	wsReadTimeout  = 60 * time.Second
	wsPingInterval = 54 * time.Second
	wsMaxMessage   = 8 << 10
)

type inboundMessage struct {
	Message string `json:"message"`
}

type outgoingMessage struct {
	Type  string             `json:"type"`
	Reply *chatservice.Reply `json:"reply,omitempty"`
	Error string             `json:"error,omitempty"`
}

// handleWebSocket 处理WebSocket聊天连接，每条入站消息对应一条回复
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("component", "websocket").Msg("upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadLimit(wsMaxMessage)
	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	go pingLoop(ctx, conn)

	log.Debug().Str("component", "websocket").Str("user_id", userID).Msg("connection opened")

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("component", "websocket").Msg("read error")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		var out outgoingMessage
		if err := validateMessage(msg.Message); err != nil {
			out = outgoingMessage{Type: "error", Error: err.Error()}
		} else if reply, err := h.chatSvc.Reply(ctx, userID, msg.Message); err != nil {
			out = outgoingMessage{Type: "error", Error: err.Error()}
		} else {
			out = outgoingMessage{Type: "reply", Reply: &reply}
		}
		if err := conn.WriteJSON(out); err != nil {
			log.Warn().Err(err).Str("component", "websocket").Msg("write failed")
			return
		}
	}
}

// pingLoop 定期发送ping消息
func pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deadline := time.Now().Add(10 * time.Second)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}
