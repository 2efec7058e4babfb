package article

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canusa-hub/knowledge-nexus/internal/indexer"
	"github.com/canusa-hub/knowledge-nexus/internal/models"
	"github.com/canusa-hub/knowledge-nexus/internal/store/memory"
	"github.com/canusa-hub/knowledge-nexus/internal/vectorindex"
	"github.com/canusa-hub/knowledge-nexus/pkg/logger"
)

type env struct {
	svc      *Service
	articles *memory.ArticleStore
	users    *memory.UserStore
	index    *vectorindex.MemoryIndex
}

func newEnv(t *testing.T) *env {
	t.Helper()

	articles := memory.NewArticleStore()
	users := memory.NewUserStore()
	index := vectorindex.NewMemoryIndex()
	ix := indexer.NewIndexer(index, indexer.NewHashEmbedder(), logger.NewTestLogger())

	svc := NewService(articles, users, ix, nil, logger.NewTestLogger())
	return &env{svc: svc, articles: articles, users: users, index: index}
}

func (e *env) seedUser(t *testing.T, userID string) {
	t.Helper()
	require.NoError(t, e.users.Insert(context.Background(), &models.User{
		UserID: userID,
		Email:  userID + "@canusa.example",
		Name:   "Test User",
	}))
}

func TestCreateDraftIsNotIndexed(t *testing.T) {
	e := newEnv(t)

	article, err := e.svc.Create(context.Background(), CreateInput{
		Title:   "Buchungsprozess",
		Content: "Inhalt",
	}, "user_1")
	require.NoError(t, err)

	assert.Equal(t, models.ArticleDraft, article.Status)
	assert.Equal(t, models.VisibilityAll, article.Visibility)
	assert.Equal(t, "user_1", article.CreatedBy)
	assert.Zero(t, e.index.Len())
}

func TestCreatePublishedIsIndexed(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.Create(context.Background(), CreateInput{
		Title:   "Buchungsprozess",
		Content: "Inhalt über Buchungen",
		Status:  models.ArticlePublished,
	}, "user_1")
	require.NoError(t, err)

	assert.Greater(t, e.index.Len(), 0)
}

func TestCreateRequiresTitle(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.Create(context.Background(), CreateInput{Title: "   "}, "user_1")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestUpdateUnpublishRemovesFromIndex(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	created, err := e.svc.Create(ctx, CreateInput{
		Title:   "Buchungsprozess",
		Content: "Inhalt",
		Status:  models.ArticlePublished,
	}, "user_1")
	require.NoError(t, err)
	require.Greater(t, e.index.Len(), 0)

	draft := models.ArticleDraft
	updated, err := e.svc.Update(ctx, created.ArticleID, models.ArticleUpdate{Status: &draft}, "user_2")
	require.NoError(t, err)

	assert.Equal(t, models.ArticleDraft, updated.Status)
	assert.Equal(t, "user_2", updated.UpdatedBy)
	assert.Zero(t, e.index.Len())
}

func TestDeleteRemovesFromIndex(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	created, err := e.svc.Create(ctx, CreateInput{
		Title:   "Buchungsprozess",
		Content: "Inhalt",
		Status:  models.ArticlePublished,
	}, "user_1")
	require.NoError(t, err)

	require.NoError(t, e.svc.Delete(ctx, created.ArticleID))
	assert.Zero(t, e.index.Len())

	_, err = e.svc.Get(ctx, created.ArticleID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestToggleFavorite(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	created, err := e.svc.Create(ctx, CreateInput{Title: "Mietwagen"}, "user_1")
	require.NoError(t, err)

	favorited, err := e.svc.ToggleFavorite(ctx, created.ArticleID, "user_2")
	require.NoError(t, err)
	assert.True(t, favorited)

	favorites, err := e.svc.Favorites(ctx, "user_2", 0)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, created.ArticleID, favorites[0].ArticleID)

	favorited, err = e.svc.ToggleFavorite(ctx, created.ArticleID, "user_2")
	require.NoError(t, err)
	assert.False(t, favorited)

	favorites, err = e.svc.Favorites(ctx, "user_2", 0)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestMarkViewedFrontInsertsAndCaps(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "user_1")
	ctx := context.Background()

	var ids []string
	for i := 0; i < recentlyViewedCap+3; i++ {
		created, err := e.svc.Create(ctx, CreateInput{Title: fmt.Sprintf("Artikel %d", i)}, "user_9")
		require.NoError(t, err)
		ids = append(ids, created.ArticleID)
		require.NoError(t, e.svc.MarkViewed(ctx, created.ArticleID, "user_1"))
	}

	user, err := e.users.Get(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, user.RecentlyViewed, recentlyViewedCap)
	// Most recent first.
	assert.Equal(t, ids[len(ids)-1], user.RecentlyViewed[0])

	// Re-viewing an older article moves it to the front without growing
	// the list.
	target := ids[len(ids)-3]
	require.NoError(t, e.svc.MarkViewed(ctx, target, "user_1"))
	user, err = e.users.Get(ctx, "user_1")
	require.NoError(t, err)
	assert.Len(t, user.RecentlyViewed, recentlyViewedCap)
	assert.Equal(t, target, user.RecentlyViewed[0])
}

func TestMarkViewedIncrementsViewCount(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "user_1")
	ctx := context.Background()

	created, err := e.svc.Create(ctx, CreateInput{Title: "Einreise"}, "user_9")
	require.NoError(t, err)

	require.NoError(t, e.svc.MarkViewed(ctx, created.ArticleID, "user_1"))
	require.NoError(t, e.svc.MarkViewed(ctx, created.ArticleID, "user_1"))

	article, err := e.svc.Get(ctx, created.ArticleID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), article.ViewCount)
}

func TestRecentlyViewedSkipsDeletedArticles(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "user_1")
	ctx := context.Background()

	first, err := e.svc.Create(ctx, CreateInput{Title: "Erster"}, "user_9")
	require.NoError(t, err)
	second, err := e.svc.Create(ctx, CreateInput{Title: "Zweiter"}, "user_9")
	require.NoError(t, err)

	require.NoError(t, e.svc.MarkViewed(ctx, first.ArticleID, "user_1"))
	require.NoError(t, e.svc.MarkViewed(ctx, second.ArticleID, "user_1"))
	require.NoError(t, e.svc.Delete(ctx, first.ArticleID))

	viewed, err := e.svc.RecentlyViewed(ctx, "user_1", 10)
	require.NoError(t, err)
	require.Len(t, viewed, 1)
	assert.Equal(t, second.ArticleID, viewed[0].ArticleID)
}

func TestGenerateSummarySkipsShortContent(t *testing.T) {
	e := newEnv(t)
	assert.Empty(t, e.svc.GenerateSummary(context.Background(), "<p>kurz</p>"))
}
