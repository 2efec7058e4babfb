// Package presence tracks which users are currently editing an article.
// Entries expire after a short TTL; a client that stops sending
// heartbeats simply disappears from the active-editor list.
package presence

import (
	"context"
	"time"

	"github.com/canusa-hub/knowledge-nexus/internal/models"
)

// TTL after which an editor without a heartbeat counts as gone.
const TTL = 30 * time.Second

// Tracker records editor heartbeats per article. Implementations must be
// safe for concurrent use.
type Tracker interface {
	// Heartbeat records the user as active on the article and returns
	// the other currently active editors, excluding the user itself.
	Heartbeat(ctx context.Context, articleID string, user models.Presence) ([]models.Presence, error)
	// Leave removes the user's presence entry. Unknown entries are
	// ignored.
	Leave(ctx context.Context, articleID, userID string) error
}
