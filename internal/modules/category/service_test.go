package category

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/gluto-backend/internal/apperr"
	"github.com/georgemunganga/gluto-backend/internal/cache"
)

func newTestService() *service {
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &service{
		repo:  NewMemoryRepository(),
		cache: cache.Noop{},
		now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	}
}

func strPtr(s string) *string { return &s }

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	root, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "  Rice  "})
	require.NoError(t, err)
	assert.Equal(t, "Rice", root.Name)
	assert.True(t, root.IsActive)
	assert.Nil(t, root.ParentID)
	assert.NotEmpty(t, root.ID)

	_, err = svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Rice"})
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	_, err = svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Beans", ParentID: strPtr("missing")})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestCreateCategoryRejectsInactiveParent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	parent, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Agri"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteCategory(ctx, parent.ID))

	_, err = svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Rice", ParentID: &parent.ID})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestUpdateCategoryRejectsCycles(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	a, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "A"})
	require.NoError(t, err)
	b, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "B", ParentID: &a.ID})
	require.NoError(t, err)
	c, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "C", ParentID: &b.ID})
	require.NoError(t, err)

	tests := []struct {
		name   string
		id     string
		parent string
	}{
		{"self parent", a.ID, a.ID},
		{"direct child", a.ID, b.ID},
		{"grandchild", a.ID, c.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateCategory(ctx, tt.id, UpdateCategoryRequest{
				ParentID: OptionalID{Set: true, Value: strPtr(tt.parent)},
			})
			assert.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)
		})
	}

	got, err := svc.GetCategory(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
}

func TestUpdateCategoryPatch(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	parent, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Agri"})
	require.NoError(t, err)
	c, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Rice", Description: "grains", ParentID: &parent.ID})
	require.NoError(t, err)

	updated, err := svc.UpdateCategory(ctx, c.ID, UpdateCategoryRequest{Name: strPtr("Rice & Grains")})
	require.NoError(t, err)
	assert.Equal(t, "Rice & Grains", updated.Name)
	assert.Equal(t, "grains", updated.Description)
	require.NotNil(t, updated.ParentID)
	assert.Equal(t, parent.ID, *updated.ParentID)
	assert.True(t, updated.UpdatedAt.After(c.UpdatedAt))

	detached, err := svc.UpdateCategory(ctx, c.ID, UpdateCategoryRequest{ParentID: OptionalID{Set: true}})
	require.NoError(t, err)
	assert.Nil(t, detached.ParentID)

	_, err = svc.UpdateCategory(ctx, "missing", UpdateCategoryRequest{Name: strPtr("x")})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestDeleteCategoryIsSoft(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	c, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Fish"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteCategory(ctx, c.ID))

	list, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	stored, err := svc.GetCategory(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	err = svc.DeleteCategory(ctx, c.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	_, err = svc.UpdateCategory(ctx, c.ID, UpdateCategoryRequest{Name: strPtr("Seafood")})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestDeletedCategoryReleasesItsName(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	old, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Rice"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteCategory(ctx, old.ID))

	again, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Rice"})
	require.NoError(t, err)
	assert.NotEqual(t, old.ID, again.ID)

	_, err = svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Rice"})
	assert.True(t, apperr.Is(err, apperr.KindConflict), "active names stay unique")

	beans, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Beans"})
	require.NoError(t, err)
	_, err = svc.UpdateCategory(ctx, beans.ID, UpdateCategoryRequest{Name: strPtr("Rice")})
	assert.True(t, apperr.Is(err, apperr.KindConflict))
}

func TestListCategoriesOrderedByName(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	for _, name := range []string{"Seeds", "Beans", "Rice"} {
		_, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: name})
		require.NoError(t, err)
	}
	list, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(list))
	for _, c := range list {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Beans", "Rice", "Seeds"}, names)
}

type recordingCache struct {
	cache.Noop
	deleted []string
}

func (c *recordingCache) Delete(_ context.Context, keys ...string) error {
	c.deleted = append(c.deleted, keys...)
	return nil
}

func TestWritesInvalidateCache(t *testing.T) {
	ctx := context.Background()
	rc := &recordingCache{}
	svc := NewService(NewMemoryRepository(), rc)

	c, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Drinks"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteCategory(ctx, c.ID))

	assert.Equal(t, []string{listCacheKey, treeCacheKey, listCacheKey, treeCacheKey}, rc.deleted)
}
