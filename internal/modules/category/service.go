package category

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/gluto-backend/internal/apperr"
	"github.com/georgemunganga/gluto-backend/internal/cache"
	"github.com/georgemunganga/gluto-backend/internal/logger"
)

// Service defines category business logic.
type Service interface {
	// ListCategories returns active categories ordered by name.
	ListCategories(ctx context.Context) ([]*Category, error)
	// Tree returns active root categories with their active descendants.
	Tree(ctx context.Context) ([]*Node, error)
	// GetCategory returns a category by id, active or not.
	GetCategory(ctx context.Context, id string) (*Category, error)
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	UpdateCategory(ctx context.Context, id string, req UpdateCategoryRequest) (*Category, error)
	// DeleteCategory clears the active flag; the record is kept.
	DeleteCategory(ctx context.Context, id string) error
}

const (
	listCacheKey = "categories:active"
	treeCacheKey = "categories:tree"
)

type service struct {
	repo  Repository
	cache cache.Cache
	now   func() time.Time
}

// NewService creates a category service. c may be cache.Noop{}.
func NewService(repo Repository, c cache.Cache) Service {
	return &service{repo: repo, cache: c, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	var cached []*Category
	if s.cacheGet(ctx, listCacheKey, &cached) {
		return cached, nil
	}
	list, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*Category{}
	}
	s.cacheSet(ctx, listCacheKey, list)
	return list, nil
}

func (s *service) Tree(ctx context.Context) ([]*Node, error) {
	var cached []*Node
	if s.cacheGet(ctx, treeCacheKey, &cached) {
		return cached, nil
	}
	list, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	tree := BuildTree(list)
	s.cacheSet(ctx, treeCacheKey, tree)
	return tree, nil
}

func (s *service) GetCategory(ctx context.Context, id string) (*Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.ValidationFields(map[string]string{"name": "required"})
	}
	now := s.now()
	c := &Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.ParentID != nil {
		if err := s.checkParent(ctx, c.ID, *req.ParentID); err != nil {
			return nil, err
		}
		parent := *req.ParentID
		c.ParentID = &parent
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return c, nil
}

func (s *service) UpdateCategory(ctx context.Context, id string, req UpdateCategoryRequest) (*Category, error) {
	c, err := s.activeCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperr.ValidationFields(map[string]string{"name": "required"})
		}
		c.Name = name
	}
	if req.Description != nil {
		c.Description = strings.TrimSpace(*req.Description)
	}
	if req.ParentID.Set {
		if req.ParentID.Value == nil || *req.ParentID.Value == "" {
			c.ParentID = nil
		} else {
			if err := s.checkParent(ctx, c.ID, *req.ParentID.Value); err != nil {
				return nil, err
			}
			parent := *req.ParentID.Value
			c.ParentID = &parent
		}
	}
	c.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return c, nil
}

func (s *service) DeleteCategory(ctx context.Context, id string) error {
	c, err := s.activeCategory(ctx, id)
	if err != nil {
		return err
	}
	c.IsActive = false
	c.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, c); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// activeCategory loads id for an admin write. Soft-deleted categories are
// hidden from admins too, so they read as not found.
func (s *service) activeCategory(ctx context.Context, id string) (*Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, apperr.NotFound("category", id)
	}
	return c, nil
}

// checkParent rejects a parent that is missing, inactive, the category itself,
// or one of its descendants.
func (s *service) checkParent(ctx context.Context, selfID, parentID string) error {
	if parentID == selfID {
		return apperr.Validation("category cannot be its own parent")
	}
	parent, err := s.repo.GetByID(ctx, parentID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return apperr.Validation("parent category %s does not exist", parentID)
		}
		return err
	}
	if !parent.IsActive {
		return apperr.Validation("parent category %s is not active", parentID)
	}

	seen := map[string]bool{parent.ID: true}
	for cur := parent; cur.ParentID != nil; {
		next := *cur.ParentID
		if next == selfID {
			return apperr.Validation("parent category %s would create a cycle", parentID)
		}
		if seen[next] {
			// Pre-existing loop above the parent; stop walking.
			return nil
		}
		seen[next] = true
		cur, err = s.repo.GetByID(ctx, next)
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return nil
			}
			return err
		}
	}
	return nil
}

func (s *service) cacheGet(ctx context.Context, key string, dest any) bool {
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		logger.FromContext(ctx).Warn("category cache read failed", "key", key, "error", err)
		return false
	}
	return found
}

func (s *service) cacheSet(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value, 0); err != nil {
		logger.FromContext(ctx).Warn("category cache write failed", "key", key, "error", err)
	}
}

func (s *service) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, listCacheKey, treeCacheKey); err != nil {
		logger.FromContext(ctx).Warn("category cache invalidation failed", "error", err)
	}
}
