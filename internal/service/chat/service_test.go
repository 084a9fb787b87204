package chat_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/serene/backend/internal/analysis/sentiment"
	model "github.com/zhouzirui/serene/backend/internal/model/chat"
	chat "github.com/zhouzirui/serene/backend/internal/service/chat"
)

type stubCompanion struct {
	text    string
	err     error
	history []model.Message
}

func (s *stubCompanion) Rewrite(_ context.Context, history []model.Message, _ string, _ sentiment.Response) (string, error) {
	s.history = history
	return s.text, s.err
}

func TestReplyUsesCannedResponse(t *testing.T) {
	now := time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC)
	svc := chat.NewService(chat.WithClock(func() time.Time { return now }))

	reply, err := svc.Reply(context.Background(), "u1", "  I'm anxious about tomorrow ")
	require.NoError(t, err)
	assert.NotEmpty(t, reply.ID)
	assert.Equal(t, sentiment.Stress, reply.Sentiment)
	assert.Equal(t, sentiment.Classify("anxious").Text, reply.Message)
	assert.Len(t, reply.Suggestions, 2)
	assert.Equal(t, now, reply.Timestamp)
}

func TestReplyRejectsEmptyMessage(t *testing.T) {
	svc := chat.NewService()
	_, err := svc.Reply(context.Background(), "u1", "   ")
	assert.True(t, errors.Is(err, chat.ErrEmptyMessage))

	_, err = svc.Reply(context.Background(), "", "hello")
	assert.ErrorIs(t, err, chat.ErrUserRequired)
}

func TestReplyRecordsBothSides(t *testing.T) {
	svc := chat.NewService()
	ctx := context.Background()

	_, err := svc.Reply(ctx, "u1", "happy day")
	require.NoError(t, err)

	history, err := svc.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, model.SenderUser, history[0].Sender)
	assert.Equal(t, "happy day", history[0].Content)
	assert.Equal(t, model.SenderAI, history[1].Sender)
	assert.Equal(t, string(sentiment.Happiness), history[1].Sentiment)

	other, err := svc.History(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestRecentHistoryKeepsTail(t *testing.T) {
	svc := chat.NewService()
	ctx := context.Background()
	for _, msg := range []string{"one", "two", "three"} {
		_, err := svc.Reply(ctx, "u1", msg)
		require.NoError(t, err)
	}

	recent, err := svc.RecentHistory(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "three", recent[0].Content)
	assert.Equal(t, model.SenderAI, recent[1].Sender)
}

func TestReplyPrefersCompanionText(t *testing.T) {
	companion := &stubCompanion{text: "Let's take a slow breath together."}
	svc := chat.NewService(chat.WithCompanion(companion), chat.WithHistoryLimit(1))
	ctx := context.Background()

	_, err := svc.Reply(ctx, "u1", "first")
	require.NoError(t, err)

	reply, err := svc.Reply(ctx, "u1", "so stressed")
	require.NoError(t, err)
	assert.Equal(t, "Let's take a slow breath together.", reply.Message)
	assert.Equal(t, sentiment.Stress, reply.Sentiment)
	require.Len(t, companion.history, 1)
	assert.Equal(t, model.SenderAI, companion.history[0].Sender)
}

func TestReplyFallsBackWhenCompanionFails(t *testing.T) {
	svc := chat.NewService(chat.WithCompanion(&stubCompanion{err: errors.New("boom")}))

	reply, err := svc.Reply(context.Background(), "u1", "feeling down")
	require.NoError(t, err)
	assert.Equal(t, sentiment.Classify("down").Text, reply.Message)
}

func TestReplyFallsBackOnEmptyCompanionText(t *testing.T) {
	svc := chat.NewService(chat.WithCompanion(&stubCompanion{}))

	reply, err := svc.Reply(context.Background(), "u1", "weather")
	require.NoError(t, err)
	assert.Equal(t, sentiment.Classify("weather").Text, reply.Message)
}

func TestBeginDoesNotRecord(t *testing.T) {
	svc := chat.NewService()
	ctx := context.Background()

	turn, err := svc.Begin(ctx, "u1", "sad")
	require.NoError(t, err)
	assert.Equal(t, sentiment.Sadness, turn.Response.Sentiment)

	history, err := svc.History(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, history)

	reply := svc.Finish(ctx, turn, "custom")
	assert.Equal(t, "custom", reply.Message)
	history, err = svc.History(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
