package companion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/zhouzirui/serene/backend/internal/analysis/sentiment"
	"github.com/zhouzirui/serene/backend/internal/config"
	"github.com/zhouzirui/serene/backend/internal/model/chat"
)

// Service rewrites canned chat replies with a chat model, keeping the
// classified sentiment and suggestions as guidance.
// Calls run behind a circuit breaker so an unavailable model fails fast.
type Service struct {
	chain        compose.Runnable[map[string]any, *schema.Message]
	breaker      *gobreaker.TwoStepCircuitBreaker
	historyLimit int
	streaming    bool
}

const (
	breakerFailures = 5
	breakerTimeout  = 30 * time.Second
)

func newBreaker() *gobreaker.TwoStepCircuitBreaker {
	return gobreaker.NewTwoStepCircuitBreaker(gobreaker.Settings{
		Name:        "companion",
		MaxRequests: 1,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("component", "companion").Str("breaker", name).
				Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
}

// isSuccessful does not count a caller that went away against the model.
func isSuccessful(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}

// NewService creates the companion from AI configuration.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return NewServiceWithModel(ctx, chatModel, cfg.HistoryLimit, cfg.StreamResponse)
}

// NewServiceWithModel compiles the reply chain around an existing model.
func NewServiceWithModel(ctx context.Context, chatModel model.ChatModel, historyLimit int, streaming bool) (*Service, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is required")
	}
	if historyLimit < 1 {
		historyLimit = 1
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile companion chain: %w", err)
	}

	return &Service{
		chain:        runnable,
		breaker:      newBreaker(),
		historyLimit: historyLimit,
		streaming:    streaming,
	}, nil
}

// StreamingEnabled reports whether Stream should be used for SSE replies.
func (s *Service) StreamingEnabled() bool {
	return s != nil && s.streaming
}

// Rewrite returns a model-written reply for message.
func (s *Service) Rewrite(ctx context.Context, history []chat.Message, message string, canned sentiment.Response) (string, error) {
	done, err := s.breaker.Allow()
	if err != nil {
		return "", fmt.Errorf("failed to run companion chain: %w", err)
	}
	response, err := s.chain.Invoke(ctx, s.buildChainInput(history, message, canned))
	done(isSuccessful(err))
	if err != nil {
		return "", fmt.Errorf("failed to run companion chain: %w", err)
	}

	content := strings.TrimSpace(response.Content)
	log.Debug().Str("component", "companion").Str("sentiment", string(canned.Sentiment)).Int("length", len(content)).Msg("generated reply")
	return content, nil
}

// Stream streams the reply chunk by chunk. The caller must Close the reader.
func (s *Service) Stream(ctx context.Context, history []chat.Message, message string, canned sentiment.Response) (*schema.StreamReader[*schema.Message], error) {
	if !s.StreamingEnabled() {
		return nil, fmt.Errorf("streaming disabled in configuration")
	}

	done, err := s.breaker.Allow()
	if err != nil {
		return nil, fmt.Errorf("failed to stream companion chain output: %w", err)
	}
	upstream, err := s.chain.Stream(ctx, s.buildChainInput(history, message, canned))
	if err != nil {
		done(isSuccessful(err))
		return nil, fmt.Errorf("failed to stream companion chain output: %w", err)
	}
	return trackStream(upstream, done), nil
}

// trackStream relays upstream and reports its outcome to the breaker once it
// ends, so failures after the first chunk still count.
func trackStream(upstream *schema.StreamReader[*schema.Message], done func(success bool)) *schema.StreamReader[*schema.Message] {
	reader, writer := schema.Pipe[*schema.Message](8)
	go func() {
		defer upstream.Close()
		defer writer.Close()
		for {
			chunk, err := upstream.Recv()
			if errors.Is(err, io.EOF) {
				done(true)
				return
			}
			if err != nil {
				done(isSuccessful(err))
				writer.Send(nil, err)
				return
			}
			if writer.Send(chunk, nil) {
				// reader closed by the consumer
				done(true)
				return
			}
		}
	}()
	return reader
}

func (s *Service) buildChainInput(history []chat.Message, message string, canned sentiment.Response) map[string]any {
	return map[string]any{
		"system":  buildSystemPrompt(canned),
		"history": buildHistoryMessages(history, s.historyLimit),
		"query":   strings.TrimSpace(message),
	}
}

const basePrompt = "You are SereneAI, a warm and supportive mental wellness companion. " +
	"Reply in two to four short sentences. Never diagnose or give medical advice; " +
	"if the user mentions self-harm, encourage them to contact local emergency services or a crisis line."

func buildSystemPrompt(canned sentiment.Response) string {
	var builder strings.Builder
	builder.WriteString(basePrompt)

	builder.WriteString("\n\nDetected sentiment: ")
	builder.WriteString(string(canned.Sentiment))
	builder.WriteString(". ")
	builder.WriteString(styleBySentiment[canned.Sentiment])

	if len(canned.Suggestions) > 0 {
		builder.WriteString("\nGently offer these next steps: ")
		builder.WriteString(strings.Join(canned.Suggestions, "; "))
		builder.WriteString(".")
	}
	builder.WriteString("\nReference reply (keep its intent): ")
	builder.WriteString(canned.Text)
	return builder.String()
}

func buildHistoryMessages(messages []chat.Message, limit int) []*schema.Message {
	if len(messages) == 0 {
		return nil
	}

	start := 0
	if len(messages) > limit {
		start = len(messages) - limit
	}

	history := make([]*schema.Message, 0, len(messages)-start)
	for _, msg := range messages[start:] {
		switch msg.Sender {
		case chat.SenderUser:
			history = append(history, schema.UserMessage(msg.Content))
		case chat.SenderAI:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}
	return history
}

var styleBySentiment = map[sentiment.Label]string{
	sentiment.Stress:    "Be calm and grounding; slow the pace and suggest a breathing exercise.",
	sentiment.Sadness:   "Be gentle and validating; invite them to share more.",
	sentiment.Happiness: "Be warm and encouraging; help them savour the feeling.",
	sentiment.Neutral:   "Be friendly and curious; ask how you can help.",
}
