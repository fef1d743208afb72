package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voicecart/voicecart-server/internal/app/model"
)

type fakeCatalogAPI struct {
	products []model.Product
	deals    []model.Product
	dealsErr error

	dealsCalls int
}

func (f *fakeCatalogAPI) GetProduct(_ context.Context, productID string) (*model.Product, error) {
	for _, p := range f.products {
		if p.ID == productID {
			return &p, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeCatalogAPI) ListProducts(context.Context) ([]model.Product, error) {
	return f.products, nil
}

func (f *fakeCatalogAPI) ListDeals(context.Context) ([]model.Product, error) {
	f.dealsCalls++
	if f.dealsErr != nil {
		return nil, f.dealsErr
	}
	return f.deals, nil
}

func (f *fakeCatalogAPI) SearchProducts(context.Context, string) ([]model.Product, error) {
	return f.products, nil
}

func TestCatalogService_DealsCached(t *testing.T) {
	api := &fakeCatalogAPI{deals: []model.Product{{ID: "p1"}}}
	svc := NewCatalogService(api, time.Minute)
	ctx := context.Background()

	first, err := svc.Deals(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 1)

	// Second call within the TTL hits the cache.
	_, err = svc.Deals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, api.dealsCalls)
}

func TestCatalogService_DealsRefreshedWhenStale(t *testing.T) {
	api := &fakeCatalogAPI{deals: []model.Product{{ID: "p1"}}}
	svc := NewCatalogService(api, time.Nanosecond)
	ctx := context.Background()

	_, err := svc.Deals(ctx)
	require.NoError(t, err)

	api.deals = []model.Product{{ID: "p1"}, {ID: "p2"}}
	time.Sleep(time.Millisecond)

	deals, err := svc.Deals(ctx)
	require.NoError(t, err)
	assert.Len(t, deals, 2)
	assert.Equal(t, 2, api.dealsCalls)
}

func TestCatalogService_ServesStaleOnRefreshFailure(t *testing.T) {
	api := &fakeCatalogAPI{deals: []model.Product{{ID: "p1"}}}
	svc := NewCatalogService(api, time.Nanosecond)
	ctx := context.Background()

	_, err := svc.Deals(ctx)
	require.NoError(t, err)

	api.dealsErr = errors.New("backend down")
	time.Sleep(time.Millisecond)

	deals, err := svc.Deals(ctx)
	require.NoError(t, err)
	assert.Len(t, deals, 1)
	assert.Equal(t, "p1", deals[0].ID)
}

func TestCatalogService_DealsErrorWithoutCache(t *testing.T) {
	api := &fakeCatalogAPI{dealsErr: errors.New("backend down")}
	svc := NewCatalogService(api, time.Minute)

	_, err := svc.Deals(context.Background())
	assert.Error(t, err)
}

func TestCatalogService_RefreshDeals(t *testing.T) {
	api := &fakeCatalogAPI{}
	svc := NewCatalogService(api, time.Minute)
	ctx := context.Background()

	require.NoError(t, svc.RefreshDeals(ctx))

	// An empty backend listing caches as empty, not as a miss.
	deals, err := svc.Deals(ctx)
	require.NoError(t, err)
	assert.NotNil(t, deals)
	assert.Empty(t, deals)
	assert.Equal(t, 1, api.dealsCalls)
}
