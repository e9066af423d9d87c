package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/georgemunganga/gluto-backend/internal/apperr"
	"github.com/georgemunganga/gluto-backend/internal/cache"
	"github.com/georgemunganga/gluto-backend/internal/logger"
	"github.com/georgemunganga/gluto-backend/internal/modules/category"
)

// Service defines catalog business logic.
type Service interface {
	// ListProducts runs a catalog query over active products.
	ListProducts(ctx context.Context, q Query) (*Page, error)
	// GetProduct returns a product. With activeOnly set, a soft-deleted
	// product reads as not found.
	GetProduct(ctx context.Context, id string, activeOnly bool) (*Product, error)
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// Categories resolves category ids; category.Service satisfies it.
type Categories interface {
	GetCategory(ctx context.Context, id string) (*category.Category, error)
}

// Cached pages live under a generation key that every write replaces, so a
// single Set retires all pages at once.
const generationKey = "catalog:gen"

type service struct {
	repo       Repository
	categories Categories
	cache      cache.Cache
	loads      singleflight.Group // collapses concurrent misses of one page
	now        func() time.Time
}

func NewService(repo Repository, categories Categories, c cache.Cache) Service {
	return &service{
		repo:       repo,
		categories: categories,
		cache:      c,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) ListProducts(ctx context.Context, q Query) (*Page, error) {
	gen := s.generation(ctx)
	key := "catalog:" + gen + ":" + q.Key()

	var cached Page
	if gen != "" {
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.FromContext(ctx).Warn("catalog cache read failed", "key", key, "error", err)
		} else if found {
			return &cached, nil
		}
	}

	v, err, _ := s.loads.Do(key, func() (any, error) {
		products, err := s.repo.ListActive(ctx, q.CategoryID)
		if err != nil {
			return nil, err
		}
		return Apply(products, q), nil
	})
	if err != nil {
		return nil, err
	}
	page := v.(*Page)

	if gen != "" {
		if err := s.cache.Set(ctx, key, page, 0); err != nil {
			logger.FromContext(ctx).Warn("catalog cache write failed", "key", key, "error", err)
		}
	}
	return page, nil
}

func (s *service) GetProduct(ctx context.Context, id string, activeOnly bool) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if activeOnly && !p.IsActive {
		return nil, apperr.NotFound("product", id)
	}
	return p, nil
}

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	now := s.now()
	p := &Product{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		Price:        req.Price,
		Availability: req.Availability,
		CategoryID:   req.CategoryID,
		Origin:       req.Origin,
		Weight:       req.Weight,
		Packaging:    req.Packaging,
		LeadTime:     req.LeadTime,
		ShelfLife:    req.ShelfLife,
		EanUpc:       req.EanUpc,
		ImageURL:     req.ImageURL,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.validate(ctx, p); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.bumpGeneration(ctx)
	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error) {
	p, err := s.GetProduct(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Availability != nil {
		p.Availability = *req.Availability
	}
	if req.CategoryID != nil {
		p.CategoryID = *req.CategoryID
	}
	setString(&p.Origin, req.Origin)
	setString(&p.Weight, req.Weight)
	setString(&p.Packaging, req.Packaging)
	setString(&p.LeadTime, req.LeadTime)
	setString(&p.ShelfLife, req.ShelfLife)
	setString(&p.EanUpc, req.EanUpc)
	setString(&p.ImageURL, req.ImageURL)

	if err := s.validate(ctx, p); err != nil {
		return nil, err
	}
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.bumpGeneration(ctx)
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	p, err := s.GetProduct(ctx, id, true)
	if err != nil {
		return err
	}
	p.IsActive = false
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	s.bumpGeneration(ctx)
	return nil
}

// validate checks the field ranges and that the category exists and is active.
func (s *service) validate(ctx context.Context, p *Product) error {
	fields := map[string]string{}
	if p.Name == "" {
		fields["name"] = "required"
	}
	if p.Price < 0 {
		fields["price"] = "min=0"
	}
	if p.Availability < 0 || p.Availability > 100 {
		fields["availability"] = "range=0..100"
	}
	if p.CategoryID == "" {
		fields["categoryId"] = "required"
	}
	if len(fields) > 0 {
		return apperr.ValidationFields(fields)
	}

	c, err := s.categories.GetCategory(ctx, p.CategoryID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return apperr.ValidationFields(map[string]string{"categoryId": "exists"})
		}
		return err
	}
	if !c.IsActive {
		return apperr.ValidationFields(map[string]string{"categoryId": "active"})
	}
	return nil
}

// generation returns the current page generation, creating one if absent.
// An empty result disables page caching for this call.
func (s *service) generation(ctx context.Context) string {
	var gen string
	found, err := s.cache.Get(ctx, generationKey, &gen)
	if err != nil {
		logger.FromContext(ctx).Warn("catalog generation read failed", "error", err)
		return ""
	}
	if found && gen != "" {
		return gen
	}
	gen = uuid.NewString()
	if err := s.cache.Set(ctx, generationKey, gen, 0); err != nil {
		logger.FromContext(ctx).Warn("catalog generation write failed", "error", err)
		return ""
	}
	return gen
}

func (s *service) bumpGeneration(ctx context.Context) {
	if err := s.cache.Set(ctx, generationKey, uuid.NewString(), 0); err != nil {
		logger.FromContext(ctx).Warn("catalog cache invalidation failed", "error", err)
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
