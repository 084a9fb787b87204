package chat

import "time"

const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// Message persists one side of a chat turn.
type Message struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Sender      string    `json:"sender"`
	Content     string    `json:"message"`
	Sentiment   string    `json:"sentiment,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
	CreatedAt   time.Time `json:"timestamp"`
}
