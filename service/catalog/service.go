// Package catalog serves product records to the storefront and the admin API.
// Reads are cached; every write invalidates the cache and the search index.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"mixtape.GO/core/cache"
	catalogEntity "mixtape.GO/model/entity/catalog"
)

const (
	CacheTag       = "catalog"
	listCacheKey   = "catalog:list"
	productKeyFmt  = "catalog:product:%d"
	defaultListTTL = 5 * time.Minute
)

// Repository is the product persistence the service needs.
type Repository interface {
	FindAll(ctx context.Context) ([]catalogEntity.Product, error)
	FindByID(ctx context.Context, id uint) (*catalogEntity.Product, error)
	FindByIDs(ctx context.Context, ids []uint) ([]catalogEntity.Product, error)
	SearchByTitle(ctx context.Context, q string) ([]catalogEntity.Product, error)
	Create(ctx context.Context, p *catalogEntity.Product) error
	Update(ctx context.Context, p *catalogEntity.Product) error
	Upsert(ctx context.Context, p *catalogEntity.Product) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

type Options struct {
	Cache    *cache.Cache
	TTL      time.Duration
	Searcher Searcher
	Log      *zap.Logger
}

type Service struct {
	repo     Repository
	cache    *cache.Cache
	ttl      time.Duration
	searcher Searcher
	log      *zap.Logger
}

func NewService(repo Repository, opts Options) *Service {
	if opts.Cache == nil {
		opts.Cache = cache.New()
	}
	if opts.TTL <= 0 {
		opts.TTL = defaultListTTL
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &Service{repo: repo, cache: opts.Cache, ttl: opts.TTL, searcher: opts.Searcher, log: opts.Log}
}

// ListProducts returns the whole catalog ordered by id.
func (s *Service) ListProducts(ctx context.Context) ([]catalogEntity.Product, error) {
	if v, ok := s.cache.Get(listCacheKey); ok {
		return cloneProducts(v.([]catalogEntity.Product)), nil
	}
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	s.cache.Set(listCacheKey, products, s.ttl, CacheTag)
	return cloneProducts(products), nil
}

// GetProduct returns ErrNotFound for unknown ids.
func (s *Service) GetProduct(ctx context.Context, id uint) (*catalogEntity.Product, error) {
	key := fmt.Sprintf(productKeyFmt, id)
	if v, ok := s.cache.Get(key); ok {
		p := v.(catalogEntity.Product)
		return &p, nil
	}
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	s.cache.Set(key, *p, s.ttl, CacheTag)
	return p, nil
}

// GetProductByRef accepts the textual id used in URLs.
func (s *Service) GetProductByRef(ctx context.Context, ref string) (*catalogEntity.Product, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(ref), 10, 64)
	if err != nil || id == 0 {
		return nil, fmt.Errorf("%w: id %q", ErrNotFound, ref)
	}
	return s.GetProduct(ctx, uint(id))
}

// Search matches titles. The search index is used when configured; any index
// failure falls back to a database substring match.
func (s *Service) Search(ctx context.Context, q string) ([]catalogEntity.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return s.ListProducts(ctx)
	}
	if s.searcher != nil {
		ids, err := s.searcher.Search(ctx, q)
		if err == nil {
			return s.repo.FindByIDs(ctx, ids)
		}
		s.log.Warn("search index unavailable, using database", zap.String("query", q), zap.Error(err))
	}
	products, err := s.repo.SearchByTitle(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return products, nil
}

func (s *Service) Create(ctx context.Context, in ProductInput) (*catalogEntity.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var p catalogEntity.Product
	in.apply(&p)
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.afterWrite(ctx, &p)
	return &p, nil
}

func (s *Service) Update(ctx context.Context, id uint, in ProductInput) (*catalogEntity.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	in.apply(p)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	s.afterWrite(ctx, p)
	return p, nil
}

// Upsert writes a product under a fixed id. Reports whether it was created.
func (s *Service) Upsert(ctx context.Context, id uint, in ProductInput) (created bool, err error) {
	if err := in.Validate(); err != nil {
		return false, err
	}
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("upsert product %d: %w", id, err)
	}
	p := catalogEntity.Product{ID: id}
	in.apply(&p)
	if err := s.repo.Upsert(ctx, &p); err != nil {
		return false, fmt.Errorf("upsert product %d: %w", id, err)
	}
	s.afterWrite(ctx, &p)
	return !exists, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	s.Invalidate()
	if s.searcher != nil {
		if err := s.searcher.Remove(ctx, id); err != nil {
			s.log.Warn("search index remove failed", zap.Uint("id", id), zap.Error(err))
		}
	}
	return nil
}

// Invalidate drops every cached catalog read.
func (s *Service) Invalidate() {
	s.cache.DeleteByTag(CacheTag)
}

// Warm reloads the cache from the database and returns the product count.
func (s *Service) Warm(ctx context.Context) (int, error) {
	s.Invalidate()
	products, err := s.ListProducts(ctx)
	if err != nil {
		return 0, err
	}
	for _, p := range products {
		s.cache.Set(fmt.Sprintf(productKeyFmt, p.ID), p, s.ttl, CacheTag)
	}
	return len(products), nil
}

// Reindex pushes every product to the search index.
func (s *Service) Reindex(ctx context.Context) (int, error) {
	if s.searcher == nil {
		return 0, nil
	}
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("reindex: %w", err)
	}
	for i := range products {
		if err := s.searcher.Index(ctx, &products[i]); err != nil {
			return i, fmt.Errorf("reindex product %d: %w", products[i].ID, err)
		}
	}
	return len(products), nil
}

func (s *Service) afterWrite(ctx context.Context, p *catalogEntity.Product) {
	s.Invalidate()
	if s.searcher == nil {
		return
	}
	if err := s.searcher.Index(ctx, p); err != nil {
		s.log.Warn("search index update failed", zap.Uint("id", p.ID), zap.Error(err))
	}
}

func cloneProducts(in []catalogEntity.Product) []catalogEntity.Product {
	return append([]catalogEntity.Product(nil), in...)
}
