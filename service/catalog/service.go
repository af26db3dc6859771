package catalog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"shopzone.GO/core/cache"
	"shopzone.GO/model/entity"
)

// CacheTag groups every catalog cache entry for invalidation.
const CacheTag = "catalog"

const (
	cacheKeyProducts   = "catalog:products"
	cacheKeyComponents = "catalog:components"
)

type ProductLister interface {
	List(ctx context.Context) ([]entity.Product, error)
}

type ComponentLister interface {
	List(ctx context.Context) ([]entity.CustomComponent, error)
}

// Service serves the storefront catalog from the repositories through
// the in-process cache.
type Service struct {
	products   ProductLister
	components ComponentLister
	cache      *cache.Cache
	ttl        time.Duration
	search     Searcher
	log        *zap.Logger
}

func NewService(products ProductLister, components ComponentLister, c *cache.Cache, ttl time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{products: products, components: components, cache: c, ttl: ttl, log: log}
}

// WithSearch enables search narrowing; a nil Searcher disables it.
func (s *Service) WithSearch(sr Searcher) *Service {
	s.search = sr
	return s
}

// Products returns all products in source order.
func (s *Service) Products(ctx context.Context) ([]entity.Product, error) {
	if v, ok := s.cache.Get(cacheKeyProducts); ok {
		return v.([]entity.Product), nil
	}
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetTTL(cacheKeyProducts, products, s.ttl, []string{CacheTag})
	return products, nil
}

// Product looks a product up in the cached listing.
func (s *Service) Product(ctx context.Context, id uint) (entity.Product, bool, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return entity.Product{}, false, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, true, nil
		}
	}
	return entity.Product{}, false, nil
}

func (s *Service) Components(ctx context.Context) ([]entity.CustomComponent, error) {
	if v, ok := s.cache.Get(cacheKeyComponents); ok {
		return v.([]entity.CustomComponent), nil
	}
	components, err := s.components.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetTTL(cacheKeyComponents, components, s.ttl, []string{CacheTag})
	return components, nil
}

// Browse applies f to the catalog. With a Searcher configured and a
// non-empty search, the listing is first narrowed to the search hits,
// keeping catalog order; search failures fall back to the full listing.
func (s *Service) Browse(ctx context.Context, f FilterState) (Result, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return Result{}, err
	}
	if s.search != nil && f.Search != "" {
		ids, err := s.search.SearchProductIDs(ctx, f.Search)
		if err != nil {
			s.log.Warn("search unavailable, filtering full catalog", zap.Error(err))
		} else {
			products = narrow(products, ids)
		}
	}
	return Filter(products, f), nil
}

func narrow(products []entity.Product, ids []uint) []entity.Product {
	hit := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		hit[id] = struct{}{}
	}
	out := make([]entity.Product, 0, len(ids))
	for _, p := range products {
		if _, ok := hit[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Invalidate drops every cached catalog entry.
func (s *Service) Invalidate() {
	s.cache.DeleteByTag(CacheTag)
}
