package service

import (
	"context"
	"sync"
	"time"

	"github.com/voicecart/voicecart-server/internal/app/model"
	"github.com/voicecart/voicecart-server/pkg/logger"
)

// CatalogAPI is the slice of the backend client the catalog needs.
type CatalogAPI interface {
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListDeals(ctx context.Context) ([]model.Product, error)
	SearchProducts(ctx context.Context, query string) ([]model.Product, error)
}

type CatalogService interface {
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	SearchProducts(ctx context.Context, query string) ([]model.Product, error)
	Deals(ctx context.Context) ([]model.Product, error)
	RefreshDeals(ctx context.Context) error
}

// catalogService proxies product reads to the backend. The deals listing
// is cached and refreshed on a schedule; when a refresh fails, the last
// good listing keeps being served.
type catalogService struct {
	api      CatalogAPI
	dealsTTL time.Duration

	mu           sync.RWMutex
	deals        []model.Product
	dealsFetched time.Time
}

func NewCatalogService(api CatalogAPI, dealsTTL time.Duration) CatalogService {
	return &catalogService{
		api:      api,
		dealsTTL: dealsTTL,
	}
}

func (s *catalogService) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.api.GetProduct(ctx, productID)
	if err != nil {
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return product, nil
}

func (s *catalogService) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		logger.Error("Failed to fetch product listing", err, nil)
		return nil, err
	}
	return products, nil
}

func (s *catalogService) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	products, err := s.api.SearchProducts(ctx, query)
	if err != nil {
		logger.Error("Product search failed", err, map[string]interface{}{
			"query": query,
		})
		return nil, err
	}
	return products, nil
}

// Deals returns the cached deals listing, refreshing it when stale.
func (s *catalogService) Deals(ctx context.Context) ([]model.Product, error) {
	s.mu.RLock()
	fresh := s.deals != nil && time.Since(s.dealsFetched) < s.dealsTTL
	cached := s.copyDealsLocked()
	s.mu.RUnlock()

	if fresh {
		return cached, nil
	}

	if err := s.RefreshDeals(ctx); err != nil {
		if cached != nil {
			logger.Warn("Serving stale deals listing after refresh failure", map[string]interface{}{
				"error": err.Error(),
			})
			return cached, nil
		}
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyDealsLocked(), nil
}

// RefreshDeals fetches the deals listing from the backend and replaces the
// cache. Called on a schedule and on cache miss.
func (s *catalogService) RefreshDeals(ctx context.Context) error {
	deals, err := s.api.ListDeals(ctx)
	if err != nil {
		logger.Error("Failed to refresh deals listing", err, nil)
		return err
	}
	if deals == nil {
		deals = []model.Product{}
	}

	s.mu.Lock()
	s.deals = deals
	s.dealsFetched = time.Now()
	s.mu.Unlock()

	logger.Info("Deals listing refreshed", map[string]interface{}{
		"count": len(deals),
	})
	return nil
}

// copyDealsLocked returns a copy of the cached deals. Callers must hold
// at least a read lock.
func (s *catalogService) copyDealsLocked() []model.Product {
	if s.deals == nil {
		return nil
	}
	out := make([]model.Product, len(s.deals))
	copy(out, s.deals)
	return out
}
