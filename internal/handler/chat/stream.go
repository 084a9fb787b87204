package chat

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/serene/backend/internal/analysis/sentiment"
	"github.com/zhouzirui/serene/backend/internal/middleware"
	chatservice "github.com/zhouzirui/serene/backend/internal/service/chat"
	"github.com/zhouzirui/serene/backend/pkg/utils"
)

// streamStart opens an SSE reply before any text is produced.
type streamStart struct {
	Sentiment   sentiment.Label `json:"sentiment"`
	Suggestions []string        `json:"suggestions"`
}

type streamDelta struct {
	Content string `json:"content"`
}

type streamEnd struct {
	Finished bool `json:"finished"`
}

// handleStream answers ?message= over Server-Sent Events: start, delta*, message, end.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	message := r.URL.Query().Get("message")
	if err := validateMessage(message); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	turn, err := h.chatSvc.Begin(ctx, middleware.UserID(ctx), message)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	utils.SendSSEEvent(w, flusher, "start", streamStart{
		Sentiment:   turn.Response.Sentiment,
		Suggestions: turn.Response.Suggestions,
	})

	text := h.streamText(w, flusher, r, turn)
	reply := h.chatSvc.Finish(ctx, turn, text)

	utils.SendSSEEvent(w, flusher, "message", reply)
	utils.SendSSEEvent(w, flusher, "end", streamEnd{Finished: true})

	log.Debug().Str("component", "stream").Str("user_id", turn.UserID).
		Str("sentiment", string(reply.Sentiment)).Msg("stream completed")
}

// streamText forwards companion chunks as delta events and returns the full text.
// Without a working companion the canned reply is sent as a single delta.
func (h *Handler) streamText(w http.ResponseWriter, flusher http.Flusher, r *http.Request, turn chatservice.Turn) string {
	canned := turn.Response.Text
	if h.streamer == nil || !h.streamer.StreamingEnabled() {
		utils.SendSSEEvent(w, flusher, "delta", streamDelta{Content: canned})
		return canned
	}

	stream, err := h.streamer.Stream(r.Context(), turn.History, turn.Message, turn.Response)
	if err != nil {
		log.Warn().Err(err).Str("component", "stream").Msg("companion stream failed, using canned reply")
		utils.SendSSEEvent(w, flusher, "delta", streamDelta{Content: canned})
		return canned
	}
	defer stream.Close()

	chunks := make([]*schema.Message, 0, 8)
	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			log.Warn().Err(recvErr).Str("component", "stream").Msg("companion stream interrupted")
			break
		}
		if chunk == nil {
			continue
		}

		chunks = append(chunks, chunk)
		if chunk.Content != "" {
			utils.SendSSEEvent(w, flusher, "delta", streamDelta{Content: chunk.Content})
		}
	}

	if len(chunks) > 0 {
		if full, err := schema.ConcatMessages(chunks); err == nil && strings.TrimSpace(full.Content) != "" {
			return full.Content
		}
	}

	utils.SendSSEEvent(w, flusher, "delta", streamDelta{Content: canned})
	return canned
}
