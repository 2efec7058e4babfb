package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canusa-hub/knowledge-nexus/internal/models"
	"github.com/canusa-hub/knowledge-nexus/internal/store/memory"
	"github.com/canusa-hub/knowledge-nexus/pkg/logger"
)

func newService() *Service {
	return NewService(memory.NewCategoryStore(), logger.NewTestLogger())
}

func TestCreateAndListCategories(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	root, err := svc.Create(ctx, Input{Name: "Reiseziele", Order: 1}, "user_1")
	require.NoError(t, err)
	child, err := svc.Create(ctx, Input{Name: "Kanada", ParentID: root.CategoryID, Order: 2}, "user_1")
	require.NoError(t, err)

	assert.Equal(t, root.CategoryID, child.ParentID)

	categories, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

func TestCreateRejectsMissingParent(t *testing.T) {
	svc := newService()

	_, err := svc.Create(context.Background(), Input{Name: "Kanada", ParentID: "cat_missing00000"}, "user_1")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestCreateRequiresName(t *testing.T) {
	svc := newService()

	_, err := svc.Create(context.Background(), Input{Name: "  "}, "user_1")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestUpdateRejectsDirectCycle(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	root, err := svc.Create(ctx, Input{Name: "Reiseziele"}, "user_1")
	require.NoError(t, err)

	_, err = svc.Update(ctx, root.CategoryID, Input{Name: "Reiseziele", ParentID: root.CategoryID})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestUpdateRejectsTransitiveCycle(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	a, err := svc.Create(ctx, Input{Name: "A"}, "user_1")
	require.NoError(t, err)
	b, err := svc.Create(ctx, Input{Name: "B", ParentID: a.CategoryID}, "user_1")
	require.NoError(t, err)
	c, err := svc.Create(ctx, Input{Name: "C", ParentID: b.CategoryID}, "user_1")
	require.NoError(t, err)

	// Moving A under C would close the loop A -> B -> C -> A.
	_, err = svc.Update(ctx, a.CategoryID, Input{Name: "A", ParentID: c.CategoryID})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestUpdateMovesCategory(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	a, err := svc.Create(ctx, Input{Name: "A"}, "user_1")
	require.NoError(t, err)
	b, err := svc.Create(ctx, Input{Name: "B"}, "user_1")
	require.NoError(t, err)

	moved, err := svc.Update(ctx, b.CategoryID, Input{Name: "B neu", ParentID: a.CategoryID, Order: 5})
	require.NoError(t, err)

	assert.Equal(t, "B neu", moved.Name)
	assert.Equal(t, a.CategoryID, moved.ParentID)
	assert.Equal(t, 5, moved.Order)
}

func TestDeleteCategory(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	a, err := svc.Create(ctx, Input{Name: "A"}, "user_1")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.CategoryID))
	assert.ErrorIs(t, svc.Delete(ctx, a.CategoryID), models.ErrNotFound)
}
