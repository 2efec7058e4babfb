package presence

import (
	"context"
	"sync"
	"time"

	"github.com/canusa-hub/knowledge-nexus/internal/models"
)

var _ Tracker = (*MemoryTracker)(nil)

// MemoryTracker keeps presence in process memory. Expired entries are
// swept lazily on each heartbeat, so an idle article holds at most the
// editors of its last active window.
type MemoryTracker struct {
	mu      sync.Mutex
	editors map[string]map[string]models.Presence

	// now is swappable for tests.
	now func() time.Time
}

func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{
		editors: make(map[string]map[string]models.Presence),
		now:     time.Now,
	}
}

func (t *MemoryTracker) Heartbeat(_ context.Context, articleID string, user models.Presence) ([]models.Presence, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	article := t.editors[articleID]
	if article == nil {
		article = make(map[string]models.Presence)
		t.editors[articleID] = article
	}

	user.LastSeen = now
	article[user.UserID] = user

	cutoff := now.Add(-TTL)
	others := make([]models.Presence, 0, len(article))
	for uid, entry := range article {
		if entry.LastSeen.Before(cutoff) {
			delete(article, uid)
			continue
		}
		if uid != user.UserID {
			others = append(others, entry)
		}
	}
	return others, nil
}

func (t *MemoryTracker) Leave(_ context.Context, articleID, userID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if article, ok := t.editors[articleID]; ok {
		delete(article, userID)
		if len(article) == 0 {
			delete(t.editors, articleID)
		}
	}
	return nil
}
