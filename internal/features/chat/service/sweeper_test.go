package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviato-app/aviato-backend/internal/features/chat/models"
)

func TestSweepStampsExpiredRounds(t *testing.T) {
	convs := newMemoryConvs()
	ctx := context.Background()

	nowMs := time.Now().UnixMilli()
	expired := &models.Conversation{
		ID:           "expired",
		Participants: []string{"a", "b"},
		Messages:     []models.Message{{ID: "m1", SenderID: "a", Timestamp: nowMs - 300_000}},
		TimerStarted: nowMs - 300_000,
	}
	running := &models.Conversation{
		ID:           "running",
		Participants: []string{"a", "c"},
		Messages:     []models.Message{{ID: "m2", SenderID: "a", Timestamp: nowMs - 10_000}},
		TimerStarted: nowMs - 10_000,
	}
	rated := &models.Conversation{
		ID:           "rated",
		Participants: []string{"a", "d"},
		TimerStarted: nowMs - 300_000,
		Rated:        true,
	}
	idle := &models.Conversation{
		ID:           "idle",
		Participants: []string{"a", "e"},
	}
	for _, c := range []*models.Conversation{expired, running, rated, idle} {
		require.NoError(t, convs.Create(ctx, c))
	}

	s := NewRoundSweeper(convs, 2*time.Minute, time.Second)
	require.NoError(t, s.sweep())

	got, _ := convs.GetByID(ctx, "expired")
	assert.True(t, got.TimerExpired)

	got, _ = convs.GetByID(ctx, "running")
	assert.False(t, got.TimerExpired, "open rounds are untouched")

	got, _ = convs.GetByID(ctx, "rated")
	assert.False(t, got.TimerExpired, "settled rounds are untouched")

	got, _ = convs.GetByID(ctx, "idle")
	assert.False(t, got.TimerExpired)
}

func TestSweepIsIdempotent(t *testing.T) {
	convs := newMemoryConvs()
	ctx := context.Background()

	nowMs := time.Now().UnixMilli()
	require.NoError(t, convs.Create(ctx, &models.Conversation{
		ID:           "expired",
		Participants: []string{"a", "b"},
		Messages:     []models.Message{{ID: "m1", SenderID: "a", Timestamp: nowMs - 300_000}},
		TimerStarted: nowMs - 300_000,
	}))

	s := NewRoundSweeper(convs, 2*time.Minute, time.Second)
	require.NoError(t, s.sweep())
	require.NoError(t, s.sweep())

	got, _ := convs.GetByID(ctx, "expired")
	assert.True(t, got.TimerExpired)
}

func TestSweeperStartStop(t *testing.T) {
	s := NewRoundSweeper(newMemoryConvs(), 2*time.Minute, 10*time.Millisecond)
	s.Start()
	time.Sleep(30 * time.Millisecond)
	s.Stop()
}
