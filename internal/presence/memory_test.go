package presence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canusa-hub/knowledge-nexus/internal/models"
)

func TestHeartbeatReturnsOtherEditors(t *testing.T) {
	tracker := NewMemoryTracker()
	ctx := context.Background()

	_, err := tracker.Heartbeat(ctx, "art_a", models.Presence{UserID: "user_1", Name: "Anna"})
	require.NoError(t, err)

	others, err := tracker.Heartbeat(ctx, "art_a", models.Presence{UserID: "user_2", Name: "Ben"})
	require.NoError(t, err)

	require.Len(t, others, 1)
	assert.Equal(t, "user_1", others[0].UserID)
	assert.Equal(t, "Anna", others[0].Name)
	assert.False(t, others[0].LastSeen.IsZero())
}

func TestHeartbeatExcludesSelf(t *testing.T) {
	tracker := NewMemoryTracker()

	others, err := tracker.Heartbeat(context.Background(), "art_a", models.Presence{UserID: "user_1"})
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestHeartbeatExpiresStaleEditors(t *testing.T) {
	tracker := NewMemoryTracker()
	ctx := context.Background()

	now := time.Now()
	tracker.now = func() time.Time { return now }

	_, err := tracker.Heartbeat(ctx, "art_a", models.Presence{UserID: "user_1", Name: "Anna"})
	require.NoError(t, err)

	// 31 seconds later the first editor must no longer be reported.
	tracker.now = func() time.Time { return now.Add(31 * time.Second) }
	others, err := tracker.Heartbeat(ctx, "art_a", models.Presence{UserID: "user_2", Name: "Ben"})
	require.NoError(t, err)
	assert.Empty(t, others)

	// And the entry is gone, not just filtered.
	others, err = tracker.Heartbeat(ctx, "art_a", models.Presence{UserID: "user_3"})
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, "user_2", others[0].UserID)
}

func TestLeaveRemovesEditor(t *testing.T) {
	tracker := NewMemoryTracker()
	ctx := context.Background()

	_, err := tracker.Heartbeat(ctx, "art_a", models.Presence{UserID: "user_1"})
	require.NoError(t, err)
	require.NoError(t, tracker.Leave(ctx, "art_a", "user_1"))

	others, err := tracker.Heartbeat(ctx, "art_a", models.Presence{UserID: "user_2"})
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestLeaveUnknownArticleIsNoop(t *testing.T) {
	tracker := NewMemoryTracker()
	assert.NoError(t, tracker.Leave(context.Background(), "art_missing", "user_1"))
}

func TestPresencePerArticleIsolation(t *testing.T) {
	tracker := NewMemoryTracker()
	ctx := context.Background()

	_, err := tracker.Heartbeat(ctx, "art_a", models.Presence{UserID: "user_1"})
	require.NoError(t, err)

	others, err := tracker.Heartbeat(ctx, "art_b", models.Presence{UserID: "user_2"})
	require.NoError(t, err)
	assert.Empty(t, others)
}
